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

// ErrNoSelectors is returned before any remote call when a scraper is
// given nothing to scrape.
var ErrNoSelectors = errors.New("must provide at least one url, search term, or handle to scrape")

// NoExamplesPlaceholder is returned when every scraped record was
// filtered out. Callers rely on getting this instead of an empty string.
const NoExamplesPlaceholder = "No valid examples found from scraped content."

const linkedInActor = "supreme_coder/linkedin-post"

// LinkedIn posts shorter than this are noise (reactions, truncated
// records) and get dropped.
const minLinkedInTextLen = 20

// LinkedInScraper fetches prior LinkedIn posts to use as style examples.
type LinkedInScraper struct {
	client *Client
	log    *logrus.Logger
}

func NewLinkedInScraper(client *Client, log *logrus.Logger) (*LinkedInScraper, error) {
	if client == nil {
		return nil, errors.New("apify client is required")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LinkedInScraper{client: client, log: log}, nil
}

// Fetch scrapes posts from the given LinkedIn URLs (posts, profiles, or
// search results) and formats the survivors as example blocks.
func (s *LinkedInScraper) Fetch(ctx context.Context, urls []string, limitPerSource int) (string, error) {
	urls = compact(urls)
	if len(urls) == 0 {
		return "", ErrNoSelectors
	}
	if limitPerSource <= 0 {
		limitPerSource = 10
	}

	s.log.WithField("urls", len(urls)).Info("starting LinkedIn scraping")

	items, err := s.client.RunActor(ctx, linkedInActor, map[string]any{
		"urls":           urls,
		"limitPerSource": limitPerSource,
	})
	if err != nil {
		return "", fmt.Errorf("linkedin scraping failed: %w", err)
	}

	s.log.WithField("items", len(items)).Info("scraped LinkedIn posts")

	return formatLinkedInExamples(items), nil
}

func formatLinkedInExamples(items []gjson.Result) string {
	var examples []string
	for idx, item := range items {
		text := strings.TrimSpace(item.Get("text").String())
		if utf8.RuneCountInString(text) < minLinkedInTextLen {
			continue
		}
		author := item.Get("author.name").String()
		if author == "" {
			author = "Unknown Author"
		}
		examples = append(examples,
			fmt.Sprintf("LinkedIn Example %d:\n%q\n(Author: %s)\n", idx+1, text, author))
	}
	if len(examples) == 0 {
		return NoExamplesPlaceholder
	}
	return strings.Join(examples, "\n---\n\n")
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}
