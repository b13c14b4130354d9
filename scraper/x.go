package scraper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

const xActor = "apidojo/tweet-scraper"

const (
	// Shorter entries are fragments, longer ones usually carry quoted
	// threads; both make poor style examples.
	minXTextLen = 10
	maxXTextLen = 400
)

// Selectors is the union of inputs the tweet actor accepts. At least one
// list must be non-empty.
type Selectors struct {
	StartURLs   []string
	SearchTerms []string
	Handles     []string
}

func (s Selectors) normalized() Selectors {
	return Selectors{
		StartURLs:   compact(s.StartURLs),
		SearchTerms: compact(s.SearchTerms),
		Handles:     compact(s.Handles),
	}
}

func (s Selectors) empty() bool {
	return len(s.StartURLs) == 0 && len(s.SearchTerms) == 0 && len(s.Handles) == 0
}

// XScraper fetches prior X posts to use as style examples.
type XScraper struct {
	client *Client
	log    *logrus.Logger
}

func NewXScraper(client *Client, log *logrus.Logger) (*XScraper, error) {
	if client == nil {
		return nil, errors.New("apify client is required")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &XScraper{client: client, log: log}, nil
}

// Fetch scrapes recent English tweets for the given selectors and formats
// the survivors as example blocks.
func (s *XScraper) Fetch(ctx context.Context, sel Selectors, maxItems int) (string, error) {
	sel = sel.normalized()
	if sel.empty() {
		return "", ErrNoSelectors
	}
	if maxItems <= 0 {
		maxItems = 50
	}

	input := map[string]any{
		"maxItems":      maxItems,
		"sort":          "Latest",
		"tweetLanguage": "en",
	}
	if len(sel.StartURLs) > 0 {
		input["startUrls"] = sel.StartURLs
	}
	if len(sel.SearchTerms) > 0 {
		input["searchTerms"] = sel.SearchTerms
	}
	if len(sel.Handles) > 0 {
		input["twitterHandles"] = sel.Handles
	}

	s.log.WithFields(logrus.Fields{
		"sources":   len(sel.StartURLs) + len(sel.SearchTerms) + len(sel.Handles),
		"max_items": maxItems,
	}).Info("starting X scraping")

	items, err := s.client.RunActor(ctx, xActor, input)
	if err != nil {
		return "", fmt.Errorf("x scraping failed: %w", err)
	}

	s.log.WithField("items", len(items)).Info("scraped X posts")

	return formatXExamples(items), nil
}

func formatXExamples(items []gjson.Result) string {
	var examples []string
	for idx, item := range items {
		text := strings.TrimSpace(item.Get("text").String())
		if text == "" {
			text = strings.TrimSpace(item.Get("full_text").String())
		}
		// Thresholds count characters, not bytes; emoji-heavy tweets
		// near the ceiling must not be dropped early.
		if n := utf8.RuneCountInString(text); n < minXTextLen || n > maxXTextLen {
			continue
		}
		// Bare retweets add nothing as style references.
		if strings.HasPrefix(text, "RT @") {
			continue
		}
		examples = append(examples,
			fmt.Sprintf("X Example %d:\n%q\n(Author: @%s)\n", idx+1, text, xAuthor(item)))
	}
	if len(examples) == 0 {
		return NoExamplesPlaceholder
	}
	return strings.Join(examples, "\n---\n\n")
}

// xAuthor handles the actor's varying author shapes: an object with
// userName/name, a bare string, or missing entirely.
func xAuthor(item gjson.Result) string {
	author := item.Get("author")
	switch {
	case author.IsObject():
		if name := author.Get("userName").String(); name != "" {
			return name
		}
		if name := author.Get("name").String(); name != "" {
			return name
		}
	case author.Type == gjson.String && author.String() != "":
		return author.String()
	}
	return "Unknown Author"
}
