package lastfm

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
)

// TopTag is one user-applied tag with its aggregate weight.
type TopTag struct {
	Name   string
	Weight int
}

type rawTopTagsResponse struct {
	TopTags struct {
		Tag []struct {
			Name  string      `json:"name"`
			Count json.Number `json:"count"`
		} `json:"tag"`
	} `json:"toptags"`
}

// TrackTopTags fetches the top tags for a track, addressed by MBID when
// available, otherwise by artist + track name.
func (c *Client) TrackTopTags(ctx context.Context, artist, track, mbid string) ([]TopTag, error) {
	params := url.Values{}
	if mbid != "" {
		params.Set("mbid", mbid)
	} else {
		if artist == "" || track == "" {
			return nil, errors.New("track top tags need an mbid or artist and track names")
		}
		params.Set("artist", artist)
		params.Set("track", track)
	}
	return c.topTags(ctx, "track.gettoptags", params)
}

// AlbumTopTags fetches the top tags for an album.
func (c *Client) AlbumTopTags(ctx context.Context, artist, album, mbid string) ([]TopTag, error) {
	params := url.Values{}
	if mbid != "" {
		params.Set("mbid", mbid)
	} else {
		if artist == "" || album == "" {
			return nil, errors.New("album top tags need an mbid or artist and album names")
		}
		params.Set("artist", artist)
		params.Set("album", album)
	}
	return c.topTags(ctx, "album.gettoptags", params)
}

// ArtistTopTags fetches the top tags for an artist.
func (c *Client) ArtistTopTags(ctx context.Context, artist, mbid string) ([]TopTag, error) {
	params := url.Values{}
	if mbid != "" {
		params.Set("mbid", mbid)
	} else {
		if artist == "" {
			return nil, errors.New("artist top tags need an mbid or an artist name")
		}
		params.Set("artist", artist)
	}
	return c.topTags(ctx, "artist.gettoptags", params)
}

func (c *Client) topTags(ctx context.Context, method string, params url.Values) ([]TopTag, error) {
	var payload rawTopTagsResponse
	if err := c.get(ctx, method, params, &payload); err != nil {
		return nil, err
	}

	tags := make([]TopTag, 0, len(payload.TopTags.Tag))
	for _, tag := range payload.TopTags.Tag {
		if tag.Name == "" {
			continue
		}
		weight, err := strconv.Atoi(tag.Count.String())
		if err != nil {
			// Some responses report the count as a float.
			f, ferr := tag.Count.Float64()
			if ferr != nil {
				continue
			}
			weight = int(f)
		}
		tags = append(tags, TopTag{Name: tag.Name, Weight: weight})
	}
	return tags, nil
}
