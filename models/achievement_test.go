package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAchievementByID(t *testing.T) {
	a, ok := AchievementByID("first_post")

	assert.True(t, ok)
	assert.Equal(t, "First Post", a.Title)

	_, ok = AchievementByID("no_such_achievement")
	assert.False(t, ok)
}

func TestCatalogIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, a := range Achievements {
		assert.False(t, seen[a.ID], "duplicate achievement id %q", a.ID)
		seen[a.ID] = true
	}
}
