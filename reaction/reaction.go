// Package reaction computes the next state of a document's reaction fields
// (votes, likes, follower sets, displayed badges). Every function is pure:
// inputs are never mutated and the returned patches describe the exact set
// membership changes, so callers can persist them with atomic $addToSet/$pull
// updates instead of replacing whole arrays.
package reaction

import "errors"

// MaxDisplayedBadges bounds how many achievements a profile can show at once.
const MaxDisplayedBadges = 5

var (
	ErrNotUnlocked = errors.New("achievement not unlocked")
	ErrBadgeLimit  = errors.New("you can only display up to 5 badges")
)

// VoteState holds the two mutually exclusive vote sets of a post.
type VoteState struct {
	Upvotes   []string
	Downvotes []string
}

// VotePatch lists the membership changes a vote toggle produced. Empty
// strings mean no change to that field.
type VotePatch struct {
	AddUpvote      string
	RemoveUpvote   string
	AddDownvote    string
	RemoveDownvote string
}

// IsZero reports whether the patch changes nothing.
func (p VotePatch) IsZero() bool {
	return p == VotePatch{}
}

// Has reports set membership.
func Has(set []string, id string) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}

func without(set []string, id string) []string {
	out := make([]string, 0, len(set))
	for _, v := range set {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func withAppended(set []string, id string) []string {
	out := make([]string, 0, len(set)+1)
	out = append(out, set...)
	return append(out, id)
}

// ToggleUpvote flips actorID's upvote. Adding an upvote removes any standing
// downvote so the actor ends up in at most one of the two sets; toggling
// twice restores the original state.
func ToggleUpvote(s VoteState, actorID string) (VoteState, VotePatch) {
	var patch VotePatch
	next := VoteState{Upvotes: s.Upvotes, Downvotes: s.Downvotes}

	if Has(s.Upvotes, actorID) {
		next.Upvotes = without(s.Upvotes, actorID)
		patch.RemoveUpvote = actorID
		return next, patch
	}

	next.Upvotes = withAppended(s.Upvotes, actorID)
	patch.AddUpvote = actorID
	if Has(s.Downvotes, actorID) {
		next.Downvotes = without(s.Downvotes, actorID)
		patch.RemoveDownvote = actorID
	}
	return next, patch
}

// ToggleDownvote is the mirror of ToggleUpvote.
func ToggleDownvote(s VoteState, actorID string) (VoteState, VotePatch) {
	var patch VotePatch
	next := VoteState{Upvotes: s.Upvotes, Downvotes: s.Downvotes}

	if Has(s.Downvotes, actorID) {
		next.Downvotes = without(s.Downvotes, actorID)
		patch.RemoveDownvote = actorID
		return next, patch
	}

	next.Downvotes = withAppended(s.Downvotes, actorID)
	patch.AddDownvote = actorID
	if Has(s.Upvotes, actorID) {
		next.Upvotes = without(s.Upvotes, actorID)
		patch.RemoveUpvote = actorID
	}
	return next, patch
}

// LikePatch describes a simple set flip; exactly one field is set.
type LikePatch struct {
	Add    string
	Remove string
}

// ToggleLike flips actorID's membership in a like set. It is its own inverse.
func ToggleLike(likes []string, actorID string) ([]string, LikePatch) {
	if Has(likes, actorID) {
		return without(likes, actorID), LikePatch{Remove: actorID}
	}
	return withAppended(likes, actorID), LikePatch{Add: actorID}
}

// Score is the net vote value of a post. It may be negative.
func Score(upvotes, downvotes []string) int {
	return len(upvotes) - len(downvotes)
}

// SetPatch is a single idempotent set toggle on one document field.
type SetPatch struct {
	Add    string
	Remove string
}

// FollowPatch carries the two independent writes a follow toggle needs: one
// on the actor's following set and one on the target's followers set. The
// caller applies them separately; nothing here makes the pair atomic.
type FollowPatch struct {
	Following SetPatch // applied to the actor's document
	Followers SetPatch // applied to the target's document
}

// ToggleFollow computes the patches that establish or sever the symmetric
// follow relationship, based on whether the actor currently follows target.
func ToggleFollow(actorID, targetID string, isFollowing bool) FollowPatch {
	if isFollowing {
		return FollowPatch{
			Following: SetPatch{Remove: targetID},
			Followers: SetPatch{Remove: actorID},
		}
	}
	return FollowPatch{
		Following: SetPatch{Add: targetID},
		Followers: SetPatch{Add: actorID},
	}
}

// ToggleDisplayedBadge flips achievementID in the profile's displayed badge
// list. Removal always succeeds; adding requires the achievement to be
// unlocked and fewer than MaxDisplayedBadges already shown. On error the
// input list is returned unchanged.
func ToggleDisplayedBadge(displayed []string, achievementID string, unlocked []string) ([]string, error) {
	if !Has(unlocked, achievementID) {
		return displayed, ErrNotUnlocked
	}
	if Has(displayed, achievementID) {
		return without(displayed, achievementID), nil
	}
	if len(displayed) >= MaxDisplayedBadges {
		return displayed, ErrBadgeLimit
	}
	return withAppended(displayed, achievementID), nil
}
