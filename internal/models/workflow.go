package models

import (
	"errors"
	"sort"

	"github.com/yukikurage/studio-ops-api/internal/constants"
)

var ErrFolderCycle = errors.New("folder cannot be placed inside itself or one of its descendants")

const FirstAssetVersion = 1

// Level derives a user's level from experience points. Negative input is
// treated as zero.
func Level(xp int) int {
	if xp < 0 {
		return 0
	}
	return xp / constants.XPPerLevel
}

// LevelProgress is the progress within the current level, 0 to 99.
func LevelProgress(xp int) int {
	if xp < 0 {
		return 0
	}
	return xp % constants.XPPerLevel
}

// InvoiceTotal is computed once when an invoice is created and stored.
func InvoiceTotal(subtotal, tax float64) float64 {
	return subtotal + tax
}

// EligibleBadges returns badges whose threshold is met by xp and that are not
// in owned, ordered by threshold.
func EligibleBadges(xp int, badges []Badge, owned map[string]bool) []Badge {
	eligible := make([]Badge, 0)
	for _, b := range badges {
		if b.XPRequired <= xp && !owned[b.ID] {
			eligible = append(eligible, b)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].XPRequired < eligible[j].XPRequired
	})
	return eligible
}
