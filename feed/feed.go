// Package feed classifies store query results into the states presentation
// needs to tell apart: a feed still loading, a resolved-but-empty feed, and a
// populated one. Items arrive already ordered by the store (createdAt
// descending); nothing here reorders them.
package feed

// DefaultLimit is the single page size every feed query uses. There is no
// pagination; a feed is one bounded page.
const DefaultLimit = 50

type State int

const (
	Loading State = iota
	Empty
	Populated
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Empty:
		return "empty"
	default:
		return "populated"
	}
}

// Result is a query outcome plus its observable state.
type Result[T any] struct {
	State State
	Items []T
}

// NewLoading represents a query that has been issued but not resolved.
func NewLoading[T any]() Result[T] {
	return Result[T]{State: Loading}
}

// FromItems classifies a resolved query: zero rows is Empty, anything else
// Populated. The item order is preserved as-is.
func FromItems[T any](items []T) Result[T] {
	if len(items) == 0 {
		return Result[T]{State: Empty, Items: []T{}}
	}
	return Result[T]{State: Populated, Items: items}
}

// IsEmpty reports whether the query resolved with zero results. It is false
// while still loading.
func (r Result[T]) IsEmpty() bool {
	return r.State == Empty
}
