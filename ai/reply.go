// Package ai turns free text into a generated reply through a hosted model.
// One prompt template per feature, no retries, no state.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrEmptyInput = errors.New("prompt cannot be empty")

const (
	replyPrompt = "Generate an initial post based on the following prompt: %s"

	trendingPrompt = `You are an AI assistant specializing in summarizing trending topics.

Provide a concise summary of the following trending topics:

%s`
)

// TextModel is the surface of the hosted model the replier needs.
type TextModel interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type Replier struct {
	model TextModel
}

func NewReplier(model TextModel) *Replier {
	return &Replier{model: model}
}

// Generate produces a reply for the echo canvas transcript. Blank input fails
// before any model call; upstream failures come back wrapped and unretried.
func (r *Replier) Generate(ctx context.Context, text string) (string, error) {
	return r.invoke(ctx, replyPrompt, text)
}

// SummarizeTrending condenses a comma-separated topic list into an overview.
func (r *Replier) SummarizeTrending(ctx context.Context, topics string) (string, error) {
	return r.invoke(ctx, trendingPrompt, topics)
}

func (r *Replier) invoke(ctx context.Context, template, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyInput
	}

	out, err := r.model.GenerateText(ctx, fmt.Sprintf(template, text))
	if err != nil {
		return "", fmt.Errorf("model call failed: %w", err)
	}
	if strings.TrimSpace(out) == "" {
		return "", errors.New("model returned an empty response")
	}
	return out, nil
}
