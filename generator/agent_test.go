package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// llmFunc adapts a function to LLMClient for tests.
type llmFunc func(ctx context.Context, prompt Prompt) (string, error)

func (f llmFunc) Complete(ctx context.Context, prompt Prompt) (string, error) {
	return f(ctx, prompt)
}

func TestAgentGenerate(t *testing.T) {
	var gotPrompt Prompt
	agent, err := NewAgent(LinkedInProfile(), llmFunc(func(_ context.Context, p Prompt) (string, error) {
		gotPrompt = p
		return "generated posts", nil
	}))
	require.NoError(t, err)

	res, err := agent.Generate(context.Background(), Request{Context: "ctx", Examples: "ex", NumPosts: 3})
	require.NoError(t, err)

	assert.Equal(t, "LinkedIn", res.Platform)
	assert.Equal(t, 3, res.NumPosts)
	assert.Equal(t, "generated posts", res.Posts)
	assert.Equal(t, "LinkedIn Content Creator", res.Agent)
	assert.Contains(t, gotPrompt.User, "Generate 3 unique LinkedIn posts")
}

func TestAgentGenerateInputErrorsBeforeRemoteCall(t *testing.T) {
	calls := 0
	agent, err := NewAgent(XProfile(), llmFunc(func(context.Context, Prompt) (string, error) {
		calls++
		return "", nil
	}))
	require.NoError(t, err)

	_, err = agent.Generate(context.Background(), Request{Context: "   ", Examples: "ex", NumPosts: 1})
	assert.ErrorIs(t, err, ErrEmptyContext)

	_, err = agent.Generate(context.Background(), Request{Context: "ctx", Examples: "ex", NumPosts: 0})
	assert.ErrorIs(t, err, ErrBadNumPosts)

	assert.Zero(t, calls, "no remote call may happen on input errors")
}

func TestAgentGenerateRemoteErrorPropagates(t *testing.T) {
	remoteErr := errors.New("model unavailable")
	agent, err := NewAgent(LinkedInProfile(), llmFunc(func(context.Context, Prompt) (string, error) {
		return "", remoteErr
	}))
	require.NoError(t, err)

	_, err = agent.Generate(context.Background(), Request{Context: "ctx", Examples: "ex", NumPosts: 1})
	assert.ErrorIs(t, err, remoteErr)
}

func TestNewAgentRequiresClient(t *testing.T) {
	_, err := NewAgent(LinkedInProfile(), nil)
	assert.Error(t, err)
}

func TestMockLLMGeneration(t *testing.T) {
	prompt := BuildGenerationPrompt(XProfile(), Request{Context: "c", Examples: "e", NumPosts: 4})
	out, err := MockLLM{}.Complete(context.Background(), prompt)
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(out, "---\nPost "))
}

func TestMockLLMValidation(t *testing.T) {
	req := Request{Context: "c", Examples: "e", NumPosts: 1}
	prompt := BuildValidationPrompt(req, Result{}, Result{})
	out, err := MockLLM{}.Complete(context.Background(), prompt)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.NotContains(t, out, "Post 1")
}
