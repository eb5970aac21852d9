package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"

	"github.com/simongoricar/lastfm-extended-scrobbles/internal/version"
)

// DefaultBaseURL is the public YouTube site root.
const DefaultBaseURL = "https://www.youtube.com"

// ErrNoResults indicates the search page contained no parsable videos.
var ErrNoResults = errors.New("no youtube results")

// Video is one search result with a parsed duration.
type Video struct {
	ID              string
	Title           string
	DurationSeconds float64
}

// Client scrapes YouTube search result pages.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	maxResults int
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithMaxResults caps how many parsed videos a search returns.
func WithMaxResults(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxResults = n
		}
	}
}

// New creates a YouTube search client.
func New(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  version.UserAgent(),
		httpClient: &http.Client{Timeout: 20 * time.Second},
		maxResults: 10,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Search runs a search and returns the videos found on the first results
// page, in page order. Results without a length badge (live streams,
// premieres) are skipped.
func (c *Client) Search(ctx context.Context, query string) ([]Video, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("search query is empty")
	}

	endpoint := c.baseURL + "/results?search_query=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube search returned %d", resp.StatusCode)
	}

	document, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse search page: %w", err)
	}

	payload := initialDataFrom(document)
	if payload == "" {
		return nil, fmt.Errorf("%w: ytInitialData not found", ErrNoResults)
	}

	videos := parseVideos(payload, c.maxResults)
	if len(videos) == 0 {
		return nil, ErrNoResults
	}
	return videos, nil
}

// initialDataFrom locates the script tag assigning ytInitialData and
// extracts the JSON object literal.
func initialDataFrom(document *goquery.Document) string {
	var payload string
	document.Find("script").EachWithBreak(func(_ int, script *goquery.Selection) bool {
		text := script.Text()
		marker := strings.Index(text, "ytInitialData")
		if marker < 0 {
			return true
		}
		start := strings.Index(text[marker:], "{")
		if start < 0 {
			return true
		}
		start += marker
		end := strings.LastIndex(text, "}")
		if end <= start {
			return true
		}
		candidate := text[start : end+1]
		if !gjson.Valid(candidate) {
			return true
		}
		payload = candidate
		return false
	})
	return payload
}

func parseVideos(payload string, limit int) []Video {
	sections := gjson.Get(payload,
		"contents.twoColumnSearchResultsRenderer.primaryContents.sectionListRenderer.contents")

	var videos []Video
	sections.ForEach(func(_, section gjson.Result) bool {
		items := section.Get("itemSectionRenderer.contents")
		items.ForEach(func(_, item gjson.Result) bool {
			renderer := item.Get("videoRenderer")
			if !renderer.Exists() {
				return true
			}
			id := renderer.Get("videoId").String()
			title := renderer.Get("title.runs.0.text").String()
			length := renderer.Get("lengthText.simpleText").String()
			if id == "" || title == "" || length == "" {
				return true
			}
			seconds, err := ParseDuration(length)
			if err != nil {
				return true
			}
			videos = append(videos, Video{ID: id, Title: title, DurationSeconds: seconds})
			return len(videos) < limit
		})
		return len(videos) < limit
	})
	return videos
}
