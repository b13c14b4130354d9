package scraper

// Hardcoded style examples used when no selectors are supplied or a
// scrape fails. Scraping is the one remote dependency the workflow can
// proceed without.
const (
	FallbackLinkedInExamples = `LinkedIn Example:
"Customer expectations have never been higher.
In 2024, 73% of customers expect immediate responses.
This is where AI-powered automation becomes essential.
#CustomerService #AI"`

	FallbackXExamples = `X Example:
"AI won't replace customer service agents.
But agents using AI will replace those who don't.
#CX #AI"`
)
