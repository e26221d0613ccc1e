package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModel struct {
	calls      int
	lastPrompt string
	reply      string
	err        error
}

func (f *fakeModel) GenerateText(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	return f.reply, f.err
}

func TestGenerateSubstitutesPrompt(t *testing.T) {
	model := &fakeModel{reply: "a generated post"}
	r := NewReplier(model)

	out, err := r.Generate(context.Background(), "my cat learned to fetch")

	require.NoError(t, err)
	assert.Equal(t, "a generated post", out)
	assert.Equal(t, 1, model.calls)
	assert.True(t, strings.HasSuffix(model.lastPrompt, "my cat learned to fetch"))
	assert.Contains(t, model.lastPrompt, "Generate an initial post")
}

func TestGenerateEmptyInputSkipsModelCall(t *testing.T) {
	model := &fakeModel{reply: "should never be returned"}
	r := NewReplier(model)

	_, err := r.Generate(context.Background(), "   ")

	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.Zero(t, model.calls, "empty input must fail before any model call")
}

func TestGenerateWrapsUpstreamError(t *testing.T) {
	upstream := errors.New("quota exceeded")
	r := NewReplier(&fakeModel{err: upstream})

	_, err := r.Generate(context.Background(), "hello")

	require.Error(t, err)
	assert.ErrorIs(t, err, upstream)
}

func TestGenerateEmptyPayloadIsError(t *testing.T) {
	model := &fakeModel{reply: "  \n "}
	r := NewReplier(model)

	_, err := r.Generate(context.Background(), "hello")

	require.Error(t, err)
	assert.Equal(t, 1, model.calls)
	assert.Contains(t, err.Error(), "empty response")
}

func TestSummarizeTrending(t *testing.T) {
	model := &fakeModel{reply: "everyone is talking about cats"}
	r := NewReplier(model)

	out, err := r.SummarizeTrending(context.Background(), "cats, go, synthwave")

	require.NoError(t, err)
	assert.Equal(t, "everyone is talking about cats", out)
	assert.Contains(t, model.lastPrompt, "cats, go, synthwave")
	assert.Contains(t, model.lastPrompt, "trending topics")
}

func TestSummarizeTrendingEmptyInput(t *testing.T) {
	model := &fakeModel{}
	r := NewReplier(model)

	_, err := r.SummarizeTrending(context.Background(), "")

	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.Zero(t, model.calls)
}
