// Package display derives presentation values from stored documents. Nothing
// here mutates state.
package display

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"echofeed/models"
)

// CompactCount abbreviates large counts ("1.5K", "2.0M"). The decimal is
// truncated, not rounded, so 1999 renders as "1.9K".
func CompactCount(n int) string {
	switch {
	case n < 1000:
		return strconv.Itoa(n)
	case n < 1_000_000:
		return truncOneDecimal(float64(n)/1000) + "K"
	default:
		return truncOneDecimal(float64(n)/1_000_000) + "M"
	}
}

func truncOneDecimal(v float64) string {
	return strconv.FormatFloat(math.Trunc(v*10)/10, 'f', 1, 64)
}

// RelativeTime renders t as a human phrase relative to now ("3 hours ago").
// The phrase is fixed at call time; callers re-invoke to refresh it.
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	case d < 30*24*time.Hour:
		return plural(int(d.Hours()/24), "day")
	case d < 365*24*time.Hour:
		return plural(int(d.Hours()/(24*30)), "month")
	default:
		return plural(int(d.Hours()/(24*365)), "year")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// SortCommentsNewestFirst returns a new slice ordered by creation time
// descending. The sort is stable: comments with equal timestamps keep their
// insertion order.
func SortCommentsNewestFirst(comments []models.Comment) []models.Comment {
	out := make([]models.Comment, len(comments))
	copy(out, comments)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out
}

// ResolveDisplayedBadges maps stored badge ids to catalog entries, keeping
// the stored order. Ids with no catalog match are dropped silently so a
// removed achievement never breaks a profile.
func ResolveDisplayedBadges(ids []string, catalog []models.Achievement) []models.Achievement {
	byID := make(map[string]models.Achievement, len(catalog))
	for _, a := range catalog {
		byID[a.ID] = a
	}

	out := make([]models.Achievement, 0, len(ids))
	for _, id := range ids {
		if a, ok := byID[id]; ok {
			out = append(out, a)
		}
	}
	return out
}
