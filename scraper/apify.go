package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const defaultBaseURL = "https://api.apify.com"

// Apify 同步运行有 5 分钟上限，客户端超时需要略大于它。
const runSyncTimeout = 5*time.Minute + 30*time.Second

// Client calls Apify actors through the run-sync-get-dataset-items
// endpoint: one POST per scrape, dataset items returned inline.
type Client struct {
	token   string
	baseURL string
	client  *http.Client
}

func NewClient(token string, httpClient *http.Client) (*Client, error) {
	if token == "" {
		return nil, errors.New("apify api token is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: runSyncTimeout}
	}
	return &Client{token: token, baseURL: defaultBaseURL, client: httpClient}, nil
}

// RunActor runs one actor synchronously and returns its dataset items.
// Records are heterogeneous across actors, so they stay as gjson values
// and each scraper picks the fields it knows about.
func (c *Client) RunActor(ctx context.Context, actorID string, input any) ([]gjson.Result, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}

	// The acts API addresses "user/actor" as "user~actor".
	url := fmt.Sprintf("%s/v2/acts/%s/run-sync-get-dataset-items",
		c.baseURL, strings.Replace(actorID, "/", "~", 1))

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	q := req.URL.Query()
	q.Set("token", c.token)
	q.Set("format", "json")
	req.URL.RawQuery = q.Encode()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("apify actor %s returned %d: %s", actorID, resp.StatusCode, excerptBytes(data, 200))
	}

	parsed := gjson.ParseBytes(data)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("apify actor %s returned unexpected payload", actorID)
	}
	return parsed.Array(), nil
}

func excerptBytes(b []byte, limit int) string {
	s := strings.TrimSpace(string(b))
	// Truncate on rune boundaries so multibyte payloads stay valid UTF-8.
	runes := []rune(s)
	if len(runes) > limit {
		s = string(runes[:limit])
	}
	return s
}
