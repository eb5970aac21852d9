package musicbrainz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/simongoricar/lastfm-extended-scrobbles/internal/version"
)

// DefaultBaseURL is the production MusicBrainz web service root.
const DefaultBaseURL = "https://musicbrainz.org/ws/2"

// ErrTrackNotFound indicates no release carries the requested track.
var ErrTrackNotFound = errors.New("track not found on musicbrainz")

// Client provides access to the MusicBrainz web service.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	cache      *gocache.Cache
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

// WithCacheTTL sets how long lookups (hits and misses alike) stay cached.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl > 0 {
			c.cache = gocache.New(ttl, 2*ttl)
		}
	}
}

// New creates a MusicBrainz client.
func New(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  version.UserAgent(),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cache:      gocache.New(30*time.Minute, time.Hour),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type releaseBrowse struct {
	Releases []struct {
		Media []struct {
			Tracks []struct {
				ID     string `json:"id"`
				Length *int   `json:"length"`
			} `json:"tracks"`
		} `json:"media"`
	} `json:"releases"`
}

type cachedLength struct {
	seconds float64
	found   bool
}

// TrackLengthSeconds resolves a MusicBrainz track MBID to its length in
// seconds, rounded from the stored millisecond value. ErrTrackNotFound is
// returned when no release lists the track or the listing has no length.
func (c *Client) TrackLengthSeconds(ctx context.Context, trackMBID string) (float64, error) {
	trackMBID = strings.TrimSpace(trackMBID)
	if trackMBID == "" {
		return 0, errors.New("track mbid is empty")
	}

	if entry, ok := c.cache.Get(trackMBID); ok {
		cached := entry.(cachedLength)
		if !cached.found {
			return 0, ErrTrackNotFound
		}
		return cached.seconds, nil
	}

	seconds, err := c.fetchTrackLength(ctx, trackMBID)
	if errors.Is(err, ErrTrackNotFound) {
		c.cache.SetDefault(trackMBID, cachedLength{})
		return 0, err
	}
	if err != nil {
		return 0, err
	}
	c.cache.SetDefault(trackMBID, cachedLength{seconds: seconds, found: true})
	return seconds, nil
}

func (c *Client) fetchTrackLength(ctx context.Context, trackMBID string) (float64, error) {
	endpoint, err := url.Parse(c.baseURL + "/release")
	if err != nil {
		return 0, fmt.Errorf("parse musicbrainz url: %w", err)
	}
	query := url.Values{}
	query.Set("track", trackMBID)
	query.Set("inc", "recordings")
	query.Set("fmt", "json")
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return 0, ErrTrackNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("musicbrainz release browse returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read response: %w", err)
	}

	var browse releaseBrowse
	if err := json.Unmarshal(body, &browse); err != nil {
		return 0, fmt.Errorf("decode release browse: %w", err)
	}

	for _, release := range browse.Releases {
		for _, media := range release.Media {
			for _, track := range media.Tracks {
				if track.ID != trackMBID || track.Length == nil || *track.Length <= 0 {
					continue
				}
				return math.Round(float64(*track.Length) / 1000), nil
			}
		}
	}
	return 0, ErrTrackNotFound
}
