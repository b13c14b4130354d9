package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"thought_leadership_workflow/config"
	"thought_leadership_workflow/generator"
	"thought_leadership_workflow/scraper"
	"thought_leadership_workflow/server"
	"thought_leadership_workflow/workflow"
)

func main() {
	envFile := flag.String("env", "", "path to .env file (default: .env in current directory)")
	contextText := flag.String("context", "", "business context for the posts")
	contextFile := flag.String("context-file", "", "read the context from a text file")
	posts := flag.Int("posts", 3, "posts to generate per platform")
	liURLs := flag.String("linkedin-urls", "", "comma-separated LinkedIn URLs to scrape for style examples")
	xURLs := flag.String("x-urls", "", "comma-separated X URLs to scrape for style examples")
	xTerms := flag.String("x-terms", "", "comma-separated X search terms to scrape for style examples")
	outputDir := flag.String("output-dir", ".", "directory for per-run output files")
	serve := flag.Bool("serve", false, "start web server")
	addr := flag.String("addr", "", "http listen address when --serve (overrides ADDRESS)")
	mock := flag.Bool("mock", false, "use the mock LLM; no credentials needed")
	verbose := flag.Bool("v", false, "enable debug logs")
	flag.Parse()

	log := logrus.New()

	var cfg config.Config
	var err error
	if *envFile != "" {
		cfg, err = config.Load(*envFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if level, perr := logrus.ParseLevel(cfg.LogLevel); perr == nil {
		log.SetLevel(level)
	}
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if !*serve && !*mock {
		if err := cfg.RequireOpenAI(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	llm, err := buildLLM(cfg, *mock, !*serve)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	orch, err := workflow.New(llm, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var liScraper *scraper.LinkedInScraper
	var xScraper *scraper.XScraper
	if cfg.HasApify() {
		client, cerr := scraper.NewClient(cfg.ApifyAPIToken, nil)
		if cerr != nil {
			fmt.Fprintln(os.Stderr, cerr)
			os.Exit(1)
		}
		if liScraper, err = scraper.NewLinkedInScraper(client, log); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if xScraper, err = scraper.NewXScraper(client, log); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	// Web server mode
	if *serve {
		srv, serr := server.New(server.Options{
			Orchestrator: orch,
			LinkedIn:     liScraper,
			X:            xScraper,
			Config:       cfg,
			SkipKeyCheck: *mock,
			Logger:       log,
			OutputDir:    *outputDir,
		})
		if serr != nil {
			fmt.Fprintln(os.Stderr, serr)
			os.Exit(1)
		}
		listen := cfg.Address
		if *addr != "" {
			listen = *addr
		}
		log.Infof("Starting web server on %s", listen)
		if err := http.ListenAndServe(listen, srv.Routes()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	// One-shot pipeline mode
	ctxText := strings.TrimSpace(*contextText)
	if ctxText == "" && *contextFile != "" {
		data, rerr := os.ReadFile(*contextFile)
		if rerr != nil {
			fmt.Fprintln(os.Stderr, rerr)
			os.Exit(1)
		}
		ctxText = strings.TrimSpace(string(data))
	}
	if ctxText == "" {
		fmt.Fprintln(os.Stderr, "--context or --context-file is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RunTimeout)
	defer cancel()

	linkedInExamples := fetchOrFallback(log, "LinkedIn", scraper.FallbackLinkedInExamples, func() (string, error) {
		urls := splitList(*liURLs)
		if len(urls) == 0 || liScraper == nil {
			return "", nil
		}
		return liScraper.Fetch(ctx, urls, 5)
	})

	xExamples := fetchOrFallback(log, "X", scraper.FallbackXExamples, func() (string, error) {
		sel := scraper.Selectors{StartURLs: splitList(*xURLs), SearchTerms: splitList(*xTerms)}
		if (len(sel.StartURLs) == 0 && len(sel.SearchTerms) == 0) || xScraper == nil {
			return "", nil
		}
		return xScraper.Fetch(ctx, sel, 20)
	})

	report, err := orch.Execute(ctx, generator.Request{
		Context:  ctxText,
		Examples: linkedInExamples + "\n\n---\n\n" + xExamples,
		NumPosts: *posts,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println(report.Format())

	if path, werr := server.SaveReport(*outputDir, report); werr != nil {
		log.WithError(werr).Warn("could not save output file")
	} else {
		log.Infof("output saved to %s", path)
	}
}

func buildLLM(cfg config.Config, mock bool, strict bool) (generator.LLMClient, error) {
	if mock {
		return generator.MockLLM{}, nil
	}
	// Serve mode starts without credentials; the runner reports the
	// missing key when a workflow is actually started.
	if !strict && !cfg.HasOpenAI() {
		return &generator.OpenAILLM{Model: cfg.OpenAIModel}, nil
	}
	return generator.NewOpenAILLMFromConfig(&generator.LLMSettings{
		Model:   cfg.OpenAIModel,
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
	})
}

// fetchOrFallback runs one scrape and substitutes the hardcoded examples
// when nothing was requested or the scrape fails.
func fetchOrFallback(log *logrus.Logger, platform, fallback string, fetch func() (string, error)) string {
	got, err := fetch()
	if err != nil {
		log.WithError(err).Warnf("%s scraping failed, using fallback examples", platform)
		return fallback
	}
	if got == "" {
		return fallback
	}
	return got
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
