package lastfm

import (
	"context"
	"net/url"
	"strconv"
)

// TrackResult is one hit from track.search.
type TrackResult struct {
	Name   string `json:"name"`
	Artist string `json:"artist"`
	MBID   string `json:"mbid"`
}

// AlbumResult is one hit from album.search.
type AlbumResult struct {
	Name   string `json:"name"`
	Artist string `json:"artist"`
	MBID   string `json:"mbid"`
}

// ArtistResult is one hit from artist.search.
type ArtistResult struct {
	Name string `json:"name"`
	MBID string `json:"mbid"`
}

type rawTrackSearchResponse struct {
	Results struct {
		TrackMatches struct {
			Track []TrackResult `json:"track"`
		} `json:"trackmatches"`
	} `json:"results"`
}

type rawAlbumSearchResponse struct {
	Results struct {
		AlbumMatches struct {
			Album []AlbumResult `json:"album"`
		} `json:"albummatches"`
	} `json:"results"`
}

type rawArtistSearchResponse struct {
	Results struct {
		ArtistMatches struct {
			Artist []ArtistResult `json:"artist"`
		} `json:"artistmatches"`
	} `json:"results"`
}

// SearchTracks collects track.search results across pages, stopping at the
// first empty page or the hard page limit.
func (c *Client) SearchTracks(ctx context.Context, artist, track string, pageLimit int) ([]TrackResult, error) {
	var all []TrackResult
	for page := 1; page <= max(pageLimit, 1); page++ {
		params := url.Values{}
		params.Set("track", track)
		if artist != "" {
			params.Set("artist", artist)
		}
		params.Set("page", strconv.Itoa(page))

		var payload rawTrackSearchResponse
		if err := c.get(ctx, "track.search", params, &payload); err != nil {
			return nil, err
		}
		hits := payload.Results.TrackMatches.Track
		if len(hits) == 0 {
			break
		}
		all = append(all, hits...)
	}
	return all, nil
}

// SearchAlbums collects album.search results across pages.
func (c *Client) SearchAlbums(ctx context.Context, album string, pageLimit int) ([]AlbumResult, error) {
	var all []AlbumResult
	for page := 1; page <= max(pageLimit, 1); page++ {
		params := url.Values{}
		params.Set("album", album)
		params.Set("page", strconv.Itoa(page))

		var payload rawAlbumSearchResponse
		if err := c.get(ctx, "album.search", params, &payload); err != nil {
			return nil, err
		}
		hits := payload.Results.AlbumMatches.Album
		if len(hits) == 0 {
			break
		}
		all = append(all, hits...)
	}
	return all, nil
}

// SearchArtists collects artist.search results across pages.
func (c *Client) SearchArtists(ctx context.Context, artist string, pageLimit int) ([]ArtistResult, error) {
	var all []ArtistResult
	for page := 1; page <= max(pageLimit, 1); page++ {
		params := url.Values{}
		params.Set("artist", artist)
		params.Set("page", strconv.Itoa(page))

		var payload rawArtistSearchResponse
		if err := c.get(ctx, "artist.search", params, &payload); err != nil {
			return nil, err
		}
		hits := payload.Results.ArtistMatches.Artist
		if len(hits) == 0 {
			break
		}
		all = append(all, hits...)
	}
	return all, nil
}
