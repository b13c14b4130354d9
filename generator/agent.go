package generator

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrEmptyContext = errors.New("context is required")
	ErrBadNumPosts  = errors.New("num posts must be at least 1")
)

// Agent 负责按平台 Profile 生成内容。
type Agent struct {
	profile Profile
	llm     LLMClient
}

func NewAgent(profile Profile, llm LLMClient) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	return &Agent{profile: profile, llm: llm}, nil
}

// Profile returns the agent's platform configuration.
func (a *Agent) Profile() Profile {
	return a.profile
}

// Generate builds the platform prompt, performs one LLM call, and wraps
// the raw response. Input errors surface before any remote call; remote
// errors propagate unchanged.
func (a *Agent) Generate(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.Context) == "" {
		return Result{}, ErrEmptyContext
	}
	if req.NumPosts < 1 {
		return Result{}, ErrBadNumPosts
	}

	prompt := BuildGenerationPrompt(a.profile, req)
	raw, err := a.llm.Complete(ctx, prompt)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Platform: a.profile.Platform,
		NumPosts: req.NumPosts,
		Posts:    raw,
		Agent:    a.profile.Agent,
	}, nil
}
