package library

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dhowden/tag"
)

// ReadTrack opens an audio file and extracts the metadata this tool cares
// about. Files without any parsable tag block yield an error.
func ReadTrack(path string) (Track, error) {
	file, err := os.Open(path)
	if err != nil {
		return Track{}, fmt.Errorf("open audio file: %w", err)
	}
	defer file.Close()

	meta, err := tag.ReadFrom(file)
	if err != nil {
		return Track{}, fmt.Errorf("read tags: %w", err)
	}

	raw := meta.Raw()
	return Track{
		FilePath:        path,
		DurationSeconds: durationFromRaw(raw),
		ArtistName:      meta.Artist(),
		ArtistMBID:      mbidFromRaw(raw, "musicbrainz_artistid", "musicbrainz artist id"),
		AlbumName:       meta.Album(),
		AlbumMBID:       mbidFromRaw(raw, "musicbrainz_albumid", "musicbrainz album id"),
		TrackTitle:      meta.Title(),
		TrackMBID:       mbidFromRaw(raw, "musicbrainz_trackid", "musicbrainz release track id"),
	}, nil
}

// mbidFromRaw digs a MusicBrainz identifier out of the raw tag map. Vorbis
// comments use plain lowercase keys; ID3v2 stores them in TXXX frames whose
// description carries the name.
func mbidFromRaw(raw map[string]any, keys ...string) string {
	for rawKey, rawValue := range raw {
		normalized := strings.ToLower(strings.TrimSpace(rawKey))
		normalized = strings.TrimPrefix(normalized, "txxx:")
		value := rawValueText(rawValue, &normalized)
		if value == "" {
			continue
		}
		for _, key := range keys {
			if normalized == key {
				if len(value) == 36 {
					return value
				}
			}
		}
	}
	return ""
}

// rawValueText extracts the textual payload of a raw tag value. TXXX frames
// decode to *tag.Comm with the real key in the description; in that case the
// key is rewritten in place.
func rawValueText(value any, key *string) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case *tag.Comm:
		if v == nil {
			return ""
		}
		if desc := strings.ToLower(strings.TrimSpace(v.Description)); desc != "" {
			*key = desc
		}
		return strings.TrimSpace(v.Text)
	default:
		return ""
	}
}

// durationFromRaw reads a track length tag when one exists. ID3 TLEN is in
// milliseconds, vorbis LENGTH is usually in seconds; values that look like
// milliseconds are scaled down.
func durationFromRaw(raw map[string]any) float64 {
	for rawKey, rawValue := range raw {
		normalized := strings.ToLower(strings.TrimSpace(rawKey))
		normalized = strings.TrimPrefix(normalized, "txxx:")
		if normalized != "tlen" && normalized != "length" {
			continue
		}
		text := rawValueText(rawValue, &normalized)
		if text == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(text, 64)
		if err != nil || parsed <= 0 {
			continue
		}
		if parsed > 10000 {
			parsed /= 1000
		}
		return parsed
	}
	return 0
}
