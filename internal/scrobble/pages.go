package scrobble

import (
	"encoding/json"
	"fmt"

	"github.com/simongoricar/lastfm-extended-scrobbles/internal/lastfm"
)

// isLegacyPageList distinguishes the old downloader's output, a JSON array
// of API result pages, from the current metadata-wrapped object form.
func isLegacyPageList(data []byte) bool {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}

// parseLegacyPages flattens a legacy page list into validated tracks,
// preserving page order.
func parseLegacyPages(data []byte) ([]lastfm.Track, error) {
	var pages [][]json.RawMessage
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, fmt.Errorf("decode page list: %w", err)
	}

	var tracks []lastfm.Track
	for pageIndex, page := range pages {
		for entryIndex, entry := range page {
			track, err := lastfm.ParseRawTrack(entry)
			if err != nil {
				return nil, fmt.Errorf("page %d entry %d: %w", pageIndex, entryIndex, err)
			}
			tracks = append(tracks, track)
		}
	}
	return tracks, nil
}
