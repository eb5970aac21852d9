package lastfm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// RecentTracksOptions contains optional parameters for the scrobble history
// request. See https://www.last.fm/api/show/user.getRecentTracks.
type RecentTracksOptions struct {
	// PerPage is the number of scrobbles per page, capped at 200 by the API.
	PerPage int

	// Page to fetch, one-indexed.
	Page int

	// Extended requests additional data per scrobble (loved flag, artist
	// images).
	Extended bool

	// From limits results to scrobbles at or after this time (inclusive).
	From *time.Time

	// To limits results to scrobbles before this time (exclusive).
	To *time.Time
}

// RecentTracksPage is one page of a user's scrobble history.
type RecentTracksPage struct {
	User       string
	Page       int
	TotalPages int
	PerPage    int
	Total      int
	Tracks     []Track
}

type rawRecentTracksResponse struct {
	RecentTracks struct {
		Track []json.RawMessage `json:"track"`
		Attr  rawPageAttr       `json:"@attr"`
	} `json:"recenttracks"`
}

type rawPageAttr struct {
	User       string `json:"user"`
	TotalPages string `json:"totalPages"`
	Page       string `json:"page"`
	PerPage    string `json:"perPage"`
	Total      string `json:"total"`
}

// GetRecentTracks fetches one page of the user's scrobble history.
func (c *Client) GetRecentTracks(ctx context.Context, user string, opts RecentTracksOptions) (*RecentTracksPage, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return nil, errors.New("username must not be empty")
	}

	perPage := opts.PerPage
	if perPage <= 0 || perPage > 200 {
		perPage = 200
	}
	page := opts.Page
	if page <= 0 {
		page = 1
	}

	params := url.Values{}
	params.Set("user", user)
	params.Set("limit", strconv.Itoa(perPage))
	params.Set("page", strconv.Itoa(page))
	if opts.Extended {
		params.Set("extended", "1")
	} else {
		params.Set("extended", "0")
	}
	if opts.From != nil {
		params.Set("from", strconv.FormatInt(opts.From.Unix(), 10))
	}
	if opts.To != nil {
		params.Set("to", strconv.FormatInt(opts.To.Unix(), 10))
	}

	var payload rawRecentTracksResponse
	if err := c.get(ctx, "user.getrecenttracks", params, &payload); err != nil {
		return nil, err
	}

	attr := payload.RecentTracks.Attr
	result := &RecentTracksPage{User: attr.User}
	var err error
	if result.Page, err = strconv.Atoi(attr.Page); err != nil {
		return nil, fmt.Errorf("parse @attr.page: %w", err)
	}
	if result.TotalPages, err = strconv.Atoi(attr.TotalPages); err != nil {
		return nil, fmt.Errorf("parse @attr.totalPages: %w", err)
	}
	if result.PerPage, err = strconv.Atoi(attr.PerPage); err != nil {
		return nil, fmt.Errorf("parse @attr.perPage: %w", err)
	}
	if result.Total, err = strconv.Atoi(attr.Total); err != nil {
		return nil, fmt.Errorf("parse @attr.total: %w", err)
	}

	result.Tracks = make([]Track, 0, len(payload.RecentTracks.Track))
	for i, raw := range payload.RecentTracks.Track {
		track, err := ParseRawTrack(raw)
		if err != nil {
			return nil, fmt.Errorf("track %d on page %d: %w", i, result.Page, err)
		}
		result.Tracks = append(result.Tracks, track)
	}
	return result, nil
}
