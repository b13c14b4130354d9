package generator

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MockLLM 一个简单的占位实现，便于本地调试，不调用外部模型。
type MockLLM struct{}

var numPostsRe = regexp.MustCompile(`^Generate (\d+) unique`)

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	// Validation prompts get a canned summary; generation prompts get
	// numbered placeholder posts so downstream formatting stays exercised.
	if strings.HasPrefix(prompt.User, "Review the following generated posts") {
		return "All posts align with the provided context and meet quality standards.", nil
	}

	n := 1
	if match := numPostsRe.FindStringSubmatch(prompt.User); len(match) == 2 {
		n, _ = strconv.Atoi(match[1])
	}

	var sb strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&sb, "---\nPost %d\nPlaceholder post %d generated without calling an external model. #mock\n---\n", i, i)
	}
	return sb.String(), nil
}
