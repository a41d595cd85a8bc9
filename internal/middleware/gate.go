package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/studio-ops-api/internal/errors"
)

// ProtectedPrefixes are the page paths that need a signed-in user
var ProtectedPrefixes = []string{
	"/dashboard",
	"/projects",
	"/tasks",
	"/assets",
	"/feedback",
	"/team",
	"/invoices",
	"/settings",
}

var authPages = []string{"/login", "/signup"}

// PageGate sends anonymous page loads to the login page and signed-in users
// away from it. Anonymous non-GET requests to protected paths get 401.
func PageGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		_, authenticated := GetUserID(c)

		switch {
		case matchesPrefix(path, ProtectedPrefixes) && !authenticated:
			if c.Request.Method == http.MethodGet {
				c.Redirect(http.StatusSeeOther, "/login")
				c.Abort()
				return
			}
			apierrors.Unauthorized(c, "")
			return
		case matchesPrefix(path, authPages) && authenticated && c.Request.Method == http.MethodGet:
			c.Redirect(http.StatusSeeOther, "/dashboard")
			c.Abort()
			return
		}

		c.Next()
	}
}

func matchesPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
