package server

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"thought_leadership_workflow/generator"
	"thought_leadership_workflow/scraper"
	"thought_leadership_workflow/workflow"
)

// runWorkflow is the background run: credential check, example scraping
// (with fallback), generation, validation, and publishing the result into
// the status cell. Every failure lands there as a display string.
func (s *Server) runWorkflow(ctx context.Context, runID string, req startWorkflowReq) {
	log := s.log.WithField("run_id", runID)

	ctx, cancel := context.WithTimeout(ctx, s.cfg.RunTimeout)
	defer cancel()

	fail := func(err error) {
		log.WithError(err).Error("workflow failed")
		s.state.fail(err)
	}

	s.state.setProgress("Validating API keys...")
	if !s.skipKeyCheck {
		if err := s.cfg.RequireOpenAI(); err != nil {
			fail(err)
			return
		}
		if err := s.cfg.RequireApify(); err != nil {
			fail(err)
			return
		}
	}

	s.state.setProgress("Scraping LinkedIn posts...")
	linkedInExamples := scraper.FallbackLinkedInExamples
	if len(req.LinkedInURLs) > 0 && s.linkedin != nil {
		got, err := s.linkedin.Fetch(ctx, req.LinkedInURLs, 5)
		if err != nil {
			log.WithError(err).Warn("LinkedIn scraping failed, using fallback examples")
		} else {
			linkedInExamples = got
		}
	}

	s.state.setProgress("Scraping X posts...")
	xExamples := scraper.FallbackXExamples
	sel := scraper.Selectors{StartURLs: req.XURLs, SearchTerms: req.XSearchTerms}
	if (len(req.XURLs) > 0 || len(req.XSearchTerms) > 0) && s.x != nil {
		got, err := s.x.Fetch(ctx, sel, 20)
		if err != nil {
			log.WithError(err).Warn("X scraping failed, using fallback examples")
		} else {
			xExamples = got
		}
	}

	s.state.setProgress("Preparing content generation...")
	examples := linkedInExamples + "\n\n---\n\n" + xExamples

	s.state.setProgress("Generating content with AI agents...")
	report, err := s.orch.Execute(ctx, generator.Request{
		Context:  strings.TrimSpace(req.Context),
		Examples: strings.TrimSpace(examples),
		NumPosts: req.NumPosts,
	})
	if err != nil {
		fail(err)
		return
	}

	full := report.Format()
	path, err := saveOutput(s.outputDir, full, report.GeneratedAt)
	if err != nil {
		fail(err)
		return
	}
	log.WithField("path", path).Info("saved workflow output")

	html, err := renderHTML(report.Markdown())
	if err != nil {
		// Display falls back to the text view; not worth failing the run.
		log.WithError(err).Warn("markdown rendering failed")
		html = ""
	}

	s.state.finish(report.FormatForUI(), html, full)
	log.Info("workflow complete")
}

// SaveReport persists a report the way the background runner does; the
// CLI one-shot mode shares it.
func SaveReport(dir string, r *workflow.Report) (string, error) {
	return saveOutput(dir, r.Format(), r.GeneratedAt)
}

// saveOutput persists one timestamped text file per completed run.
func saveOutput(dir, content string, at time.Time) (string, error) {
	name := "output_" + at.Format("20060102_150405") + ".txt"
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func renderHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
