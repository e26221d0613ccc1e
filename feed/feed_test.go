package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadingIsNotEmpty(t *testing.T) {
	r := NewLoading[string]()

	assert.Equal(t, Loading, r.State)
	assert.False(t, r.IsEmpty())
	assert.Nil(t, r.Items)
}

func TestFromItemsEmpty(t *testing.T) {
	r := FromItems([]string{})

	assert.Equal(t, Empty, r.State)
	assert.True(t, r.IsEmpty())
	assert.NotNil(t, r.Items)
	assert.Len(t, r.Items, 0)
}

func TestFromItemsNilSlice(t *testing.T) {
	r := FromItems[string](nil)

	assert.Equal(t, Empty, r.State)
}

func TestFromItemsPopulatedKeepsOrder(t *testing.T) {
	r := FromItems([]string{"newest", "older", "oldest"})

	assert.Equal(t, Populated, r.State)
	assert.Equal(t, []string{"newest", "older", "oldest"}, r.Items)
	assert.False(t, r.IsEmpty())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "empty", Empty.String())
	assert.Equal(t, "populated", Populated.String())
}
