package display

import (
	"testing"
	"time"

	"echofeed/models"

	"github.com/stretchr/testify/assert"
)

func TestCompactCount(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1.0K"},
		{1500, "1.5K"},
		{1999, "1.9K"}, // truncated, not rounded
		{999_999, "999.9K"},
		{1_000_000, "1.0M"},
		{2_350_000, "2.3M"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CompactCount(c.n), "n=%d", c.n)
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "just now"},
		{1 * time.Minute, "1 minute ago"},
		{5 * time.Minute, "5 minutes ago"},
		{3 * time.Hour, "3 hours ago"},
		{26 * time.Hour, "1 day ago"},
		{72 * 24 * time.Hour, "2 months ago"},
		{800 * 24 * time.Hour, "2 years ago"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, RelativeTime(now.Add(-c.ago), now))
	}
}

func TestSortCommentsNewestFirst(t *testing.T) {
	comments := []models.Comment{
		{ID: "c1", CreatedAt: 100},
		{ID: "c2", CreatedAt: 300},
		{ID: "c3", CreatedAt: 200},
	}

	sorted := SortCommentsNewestFirst(comments)

	assert.Equal(t, "c2", sorted[0].ID)
	assert.Equal(t, "c3", sorted[1].ID)
	assert.Equal(t, "c1", sorted[2].ID)

	// Input untouched.
	assert.Equal(t, "c1", comments[0].ID)
}

func TestSortCommentsNewestFirstIsStable(t *testing.T) {
	comments := []models.Comment{
		{ID: "first", CreatedAt: 100},
		{ID: "second", CreatedAt: 100},
		{ID: "third", CreatedAt: 100},
	}

	sorted := SortCommentsNewestFirst(comments)

	assert.Equal(t, []models.Comment{
		{ID: "first", CreatedAt: 100},
		{ID: "second", CreatedAt: 100},
		{ID: "third", CreatedAt: 100},
	}, sorted)
}

func TestResolveDisplayedBadges(t *testing.T) {
	ids := []string{"story_teller", "gone_from_catalog", "first_post"}

	resolved := ResolveDisplayedBadges(ids, models.Achievements)

	assert.Len(t, resolved, 2)
	assert.Equal(t, "story_teller", resolved[0].ID)
	assert.Equal(t, "first_post", resolved[1].ID)
}

func TestResolveDisplayedBadgesEmpty(t *testing.T) {
	assert.Empty(t, ResolveDisplayedBadges(nil, models.Achievements))
}
