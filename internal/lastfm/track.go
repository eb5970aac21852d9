package lastfm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Entity is a named Last.fm entity with an optional MusicBrainz ID.
// An empty MBID means the API had none on record.
type Entity struct {
	Name string `json:"name"`
	MBID string `json:"mbid,omitempty"`
}

// Image is one entry of a track or artist image set.
type Image struct {
	Size string `json:"size"`
	URL  string `json:"url"`
}

// Track is a single validated scrobble entry from the recent-tracks history.
type Track struct {
	Name   string  `json:"name"`
	MBID   string  `json:"mbid,omitempty"`
	URL    string  `json:"url"`
	Artist Entity  `json:"artist"`
	Album  *Entity `json:"album,omitempty"`
	Images []Image `json:"images,omitempty"`

	Streamable bool `json:"streamable"`
	Loved      bool `json:"loved,omitempty"`

	// NowPlaying marks the in-progress track the API prepends to page one.
	// Such entries carry no scrobble timestamp.
	NowPlaying  bool      `json:"now_playing,omitempty"`
	ScrobbledAt time.Time `json:"scrobbled_at"`
}

// Raw wire shapes. Field presence and emptiness rules were derived from
// observing the API across a large scrobble history; ParseRawTrack enforces
// them so the rest of the program never sees malformed entries.

type rawTrack struct {
	Artist     rawArtist  `json:"artist"`
	Streamable string     `json:"streamable"`
	Image      []rawImage `json:"image"`
	MBID       string     `json:"mbid"`
	Album      rawAlbum   `json:"album"`
	Name       string     `json:"name"`
	URL        string     `json:"url"`
	Date       *rawDate   `json:"date"`
	Loved      string     `json:"loved"`
	Attr       *struct {
		NowPlaying string `json:"nowplaying"`
	} `json:"@attr"`
}

// rawArtist covers both response variants: the normal form carries the name
// in "#text", the extended form (extended=1) in "name".
type rawArtist struct {
	MBID string `json:"mbid"`
	Text string `json:"#text"`
	Name string `json:"name"`
}

type rawAlbum struct {
	MBID string `json:"mbid"`
	Text string `json:"#text"`
}

type rawImage struct {
	Size string `json:"size"`
	Text string `json:"#text"`
}

type rawDate struct {
	UTS  string `json:"uts"`
	Text string `json:"#text"`
}

// ParseRawTrack decodes and validates a single raw recent-tracks entry.
func ParseRawTrack(data []byte) (Track, error) {
	var raw rawTrack
	if err := json.Unmarshal(data, &raw); err != nil {
		return Track{}, fmt.Errorf("decode track: %w", err)
	}
	return raw.validate()
}

func (raw rawTrack) validate() (Track, error) {
	artistName := raw.Artist.Name
	if artistName == "" {
		artistName = raw.Artist.Text
	}
	if artistName == "" {
		return Track{}, errors.New("artist name is empty")
	}
	artistMBID, err := checkMBID(raw.Artist.MBID)
	if err != nil {
		return Track{}, fmt.Errorf("artist mbid: %w", err)
	}

	album, err := parseAlbum(raw.Album)
	if err != nil {
		return Track{}, err
	}

	if raw.Name == "" {
		return Track{}, errors.New("track name is empty")
	}
	trackMBID, err := checkMBID(raw.MBID)
	if err != nil {
		return Track{}, fmt.Errorf("track mbid: %w", err)
	}

	if raw.URL == "" {
		return Track{}, errors.New("track url is empty")
	}
	trackURL, err := url.Parse(raw.URL)
	if err != nil {
		return Track{}, fmt.Errorf("parse track url: %w", err)
	}
	if trackURL.Scheme != "http" && trackURL.Scheme != "https" {
		return Track{}, fmt.Errorf("track url %q is not http(s)", raw.URL)
	}
	if !strings.HasPrefix(trackURL.Hostname(), "www.last.fm") {
		return Track{}, fmt.Errorf("track url %q is not hosted on www.last.fm", raw.URL)
	}

	streamable, err := parseFlag(raw.Streamable)
	if err != nil {
		return Track{}, fmt.Errorf("streamable: %w", err)
	}
	loved := false
	if raw.Loved != "" {
		if loved, err = parseFlag(raw.Loved); err != nil {
			return Track{}, fmt.Errorf("loved: %w", err)
		}
	}

	nowPlaying := raw.Attr != nil && raw.Attr.NowPlaying == "true"
	var scrobbledAt time.Time
	if raw.Date != nil {
		epoch, err := strconv.ParseInt(raw.Date.UTS, 10, 64)
		if err != nil {
			return Track{}, fmt.Errorf("parse date.uts: %w", err)
		}
		scrobbledAt = time.Unix(epoch, 0).UTC()
	} else if !nowPlaying {
		return Track{}, errors.New("scrobble has neither a date nor a nowplaying marker")
	}

	images := make([]Image, 0, len(raw.Image))
	for _, img := range raw.Image {
		if img.Text == "" {
			continue
		}
		images = append(images, Image{Size: img.Size, URL: img.Text})
	}

	return Track{
		Name:        raw.Name,
		MBID:        trackMBID,
		URL:         raw.URL,
		Artist:      Entity{Name: artistName, MBID: artistMBID},
		Album:       album,
		Images:      images,
		Streamable:  streamable,
		Loved:       loved,
		NowPlaying:  nowPlaying,
		ScrobbledAt: scrobbledAt,
	}, nil
}

func parseAlbum(raw rawAlbum) (*Entity, error) {
	switch {
	case raw.Text == "" && raw.MBID == "":
		// Common for scrobbles sourced outside regular releases.
		return nil, nil
	case raw.Text != "":
		mbid, err := checkMBID(raw.MBID)
		if err != nil {
			return nil, fmt.Errorf("album mbid: %w", err)
		}
		return &Entity{Name: raw.Text, MBID: mbid}, nil
	default:
		return nil, errors.New("album has an mbid but no title")
	}
}

// checkMBID accepts an empty string (absent) or a 36-character MusicBrainz
// identifier. See https://wiki.musicbrainz.org/MusicBrainz_Identifier.
func checkMBID(mbid string) (string, error) {
	if mbid == "" {
		return "", nil
	}
	if len(mbid) != 36 {
		return "", fmt.Errorf("invalid musicbrainz id %q", mbid)
	}
	return mbid, nil
}

func parseFlag(value string) (bool, error) {
	switch value {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid flag value %q", value)
	}
}
