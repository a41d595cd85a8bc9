package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildNotificationMessage(t *testing.T) {
	msg := buildNotificationMessage("studio@example.com", "designer@example.com", NotificationMail{
		Title:   "New task assigned",
		Message: `You have been assigned to "<Hero> banner"`,
		Link:    "/projects/42",
	})

	assert.Equal(t, []string{"studio@example.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"designer@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"New task assigned"}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "text/html")
	assert.Contains(t, raw, "text/plain")
	assert.Contains(t, raw, "&lt;Hero&gt;")
	assert.Contains(t, raw, "/projects/42")
}
