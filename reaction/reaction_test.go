package reaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleUpvoteAddsVote(t *testing.T) {
	s := VoteState{}

	next, patch := ToggleUpvote(s, "u1")

	assert.Equal(t, []string{"u1"}, next.Upvotes)
	assert.Empty(t, next.Downvotes)
	assert.Equal(t, VotePatch{AddUpvote: "u1"}, patch)
}

func TestToggleUpvoteIsInvolution(t *testing.T) {
	s := VoteState{Upvotes: []string{"a", "b"}, Downvotes: []string{"x"}}

	once, _ := ToggleUpvote(s, "u1")
	twice, patch := ToggleUpvote(once, "u1")

	assert.Equal(t, s.Upvotes, twice.Upvotes)
	assert.Equal(t, s.Downvotes, twice.Downvotes)
	assert.Equal(t, VotePatch{RemoveUpvote: "u1"}, patch)
}

func TestToggleDownvoteIsInvolution(t *testing.T) {
	s := VoteState{Upvotes: []string{"a"}}

	once, _ := ToggleDownvote(s, "u1")
	twice, _ := ToggleDownvote(once, "u1")

	assert.Equal(t, s.Upvotes, twice.Upvotes)
	assert.Empty(t, twice.Downvotes)
}

func TestVoteSwitchMovesActorInOneStep(t *testing.T) {
	s := VoteState{}

	s, _ = ToggleUpvote(s, "u1")
	assert.Equal(t, []string{"u1"}, s.Upvotes)
	assert.Empty(t, s.Downvotes)

	s, patch := ToggleDownvote(s, "u1")
	assert.Empty(t, s.Upvotes)
	assert.Equal(t, []string{"u1"}, s.Downvotes)
	assert.Equal(t, VotePatch{AddDownvote: "u1", RemoveUpvote: "u1"}, patch)
}

func TestToggleVoteActorInAtMostOneSet(t *testing.T) {
	states := []VoteState{
		{},
		{Upvotes: []string{"u1"}},
		{Downvotes: []string{"u1"}},
		{Upvotes: []string{"a", "u1"}, Downvotes: []string{"b"}},
		{Upvotes: []string{"a"}, Downvotes: []string{"b", "u1"}},
	}

	for _, s := range states {
		up, _ := ToggleUpvote(s, "u1")
		assert.False(t, Has(up.Upvotes, "u1") && Has(up.Downvotes, "u1"))

		down, _ := ToggleDownvote(s, "u1")
		assert.False(t, Has(down.Upvotes, "u1") && Has(down.Downvotes, "u1"))
	}
}

func TestToggleUpvoteDoesNotMutateInput(t *testing.T) {
	s := VoteState{Upvotes: []string{"a"}, Downvotes: []string{"u1"}}

	ToggleUpvote(s, "u1")

	assert.Equal(t, []string{"a"}, s.Upvotes)
	assert.Equal(t, []string{"u1"}, s.Downvotes)
}

func TestToggleLikeIsOwnInverse(t *testing.T) {
	likes := []string{"a", "b"}

	liked, patch := ToggleLike(likes, "u1")
	assert.Equal(t, []string{"a", "b", "u1"}, liked)
	assert.Equal(t, LikePatch{Add: "u1"}, patch)

	unliked, patch := ToggleLike(liked, "u1")
	assert.Equal(t, likes, unliked)
	assert.Equal(t, LikePatch{Remove: "u1"}, patch)
}

func TestScore(t *testing.T) {
	assert.Equal(t, 0, Score(nil, nil))
	assert.Equal(t, 2, Score([]string{"a", "b", "c"}, []string{"x"}))
	assert.Equal(t, -3, Score(nil, []string{"a", "b", "c"}))
}

func TestToggleFollowEstablish(t *testing.T) {
	p := ToggleFollow("alice", "bob", false)

	assert.Equal(t, SetPatch{Add: "bob"}, p.Following)
	assert.Equal(t, SetPatch{Add: "alice"}, p.Followers)
}

func TestToggleFollowSever(t *testing.T) {
	p := ToggleFollow("alice", "bob", true)

	assert.Equal(t, SetPatch{Remove: "bob"}, p.Following)
	assert.Equal(t, SetPatch{Remove: "alice"}, p.Followers)
}

func TestToggleDisplayedBadgeRoundTrip(t *testing.T) {
	unlocked := []string{"first_post"}

	displayed, err := ToggleDisplayedBadge(nil, "first_post", unlocked)
	require.NoError(t, err)
	assert.Equal(t, []string{"first_post"}, displayed)

	displayed, err = ToggleDisplayedBadge(displayed, "first_post", unlocked)
	require.NoError(t, err)
	assert.Empty(t, displayed)
}

func TestToggleDisplayedBadgeNotUnlocked(t *testing.T) {
	displayed := []string{"first_post"}

	got, err := ToggleDisplayedBadge(displayed, "story_teller", []string{"first_post"})

	assert.ErrorIs(t, err, ErrNotUnlocked)
	assert.Equal(t, displayed, got)
}

func TestToggleDisplayedBadgeLimit(t *testing.T) {
	unlocked := []string{"a", "b", "c", "d", "e", "f"}
	displayed := []string{"a", "b", "c", "d", "e"}

	got, err := ToggleDisplayedBadge(displayed, "f", unlocked)

	assert.ErrorIs(t, err, ErrBadgeLimit)
	assert.Equal(t, displayed, got)
	assert.Len(t, got, MaxDisplayedBadges)

	// Removal still works at the limit.
	got, err = ToggleDisplayedBadge(displayed, "c", unlocked)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "d", "e"}, got)
}
