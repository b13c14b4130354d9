package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"thought_leadership_workflow/generator"
)

// OrchestratorName labels the validation persona in workflow metadata.
const OrchestratorName = "Master Orchestrator"

// Orchestrator runs both platform agents in parallel, then validates the
// combined output with one dependent LLM call.
type Orchestrator struct {
	linkedin *generator.Agent
	x        *generator.Agent
	llm      generator.LLMClient
	log      *logrus.Logger
}

func New(llm generator.LLMClient, log *logrus.Logger) (*Orchestrator, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	li, err := generator.NewAgent(generator.LinkedInProfile(), llm)
	if err != nil {
		return nil, err
	}
	x, err := generator.NewAgent(generator.XProfile(), llm)
	if err != nil {
		return nil, err
	}
	return &Orchestrator{linkedin: li, x: x, llm: llm, log: log}, nil
}

// Execute 执行完整工作流：并行生成 → 汇总校验 → 组装报告。
//
// Both generator calls must succeed; the first failure cancels the group
// context and fails the whole run with no partial report. The validation
// call never starts before both results exist.
func (o *Orchestrator) Execute(ctx context.Context, req generator.Request) (*Report, error) {
	if strings.TrimSpace(req.Context) == "" {
		return nil, generator.ErrEmptyContext
	}
	if req.NumPosts < 1 {
		return nil, generator.ErrBadNumPosts
	}

	o.log.WithFields(logrus.Fields{
		"context_len":  len(req.Context),
		"examples_len": len(req.Examples),
		"num_posts":    req.NumPosts,
	}).Info("starting thought leadership workflow")

	var liRes, xRes generator.Result

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := o.linkedin.Generate(gctx, req)
		if err != nil {
			return fmt.Errorf("LinkedIn agent failed: %w", err)
		}
		liRes = res
		o.log.WithField("agent", o.linkedin.Profile().Agent).Info("platform agent completed")
		return nil
	})
	g.Go(func() error {
		res, err := o.x.Generate(gctx, req)
		if err != nil {
			return fmt.Errorf("X agent failed: %w", err)
		}
		xRes = res
		o.log.WithField("agent", o.x.Profile().Agent).Info("platform agent completed")
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	o.log.Info("both agents completed, validating generated content")

	summary, err := o.llm.Complete(ctx, generator.BuildValidationPrompt(req, liRes, xRes))
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	o.log.Info("validation complete")

	return &Report{
		Status:            StatusCompleted,
		ContextExcerpt:    excerpt(req.Context, 100),
		AgentsUsed:        []string{liRes.Agent, xRes.Agent, OrchestratorName},
		ValidationSummary: summary,
		LinkedIn:          liRes,
		X:                 xRes,
		GeneratedAt:       time.Now(),
	}, nil
}

func excerpt(s string, limit int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
