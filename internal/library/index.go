package library

import (
	"sort"

	"github.com/simongoricar/lastfm-extended-scrobbles/internal/textmatch"
)

// Index groups the scanned tracks for the lookups the resolution chain
// performs: exact track MBID hits, and fuzzy matching over normalized
// artist, album and title names.
type Index struct {
	tracks []Track

	byTrackMBID map[string]Track
	byArtist    map[string][]Track
	byAlbum     map[string][]Track
	byTitle     map[string][]Track

	artistNames []string
	albumNames  []string
	titleNames  []string
}

// NewIndex builds the lookup structures over the given tracks.
func NewIndex(tracks []Track) *Index {
	index := &Index{
		tracks:      tracks,
		byTrackMBID: make(map[string]Track),
		byArtist:    make(map[string][]Track),
		byAlbum:     make(map[string][]Track),
		byTitle:     make(map[string][]Track),
	}
	for _, track := range tracks {
		if track.TrackMBID != "" {
			index.byTrackMBID[track.TrackMBID] = track
		}
		if key := textmatch.Normalize(track.ArtistName); key != "" {
			index.byArtist[key] = append(index.byArtist[key], track)
		}
		if key := textmatch.Normalize(track.AlbumName); key != "" {
			index.byAlbum[key] = append(index.byAlbum[key], track)
		}
		if key := textmatch.Normalize(track.TrackTitle); key != "" {
			index.byTitle[key] = append(index.byTitle[key], track)
		}
	}
	index.artistNames = sortedKeys(index.byArtist)
	index.albumNames = sortedKeys(index.byAlbum)
	index.titleNames = sortedKeys(index.byTitle)
	return index
}

func sortedKeys(m map[string][]Track) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Tracks returns every indexed track.
func (i *Index) Tracks() []Track { return i.tracks }

// Size reports the number of indexed tracks.
func (i *Index) Size() int { return len(i.tracks) }

// ByTrackMBID looks a track up by its MusicBrainz track identifier.
func (i *Index) ByTrackMBID(mbid string) (Track, bool) {
	track, ok := i.byTrackMBID[mbid]
	return track, ok
}

// ByArtist returns the tracks filed under the normalized artist name.
func (i *Index) ByArtist(name string) []Track {
	return i.byArtist[textmatch.Normalize(name)]
}

// ByAlbum returns the tracks filed under the normalized album name.
func (i *Index) ByAlbum(name string) []Track {
	return i.byAlbum[textmatch.Normalize(name)]
}

// ByTitle returns the tracks filed under the normalized track title.
func (i *Index) ByTitle(name string) []Track {
	return i.byTitle[textmatch.Normalize(name)]
}

// ArtistNames returns the normalized artist names, sorted.
func (i *Index) ArtistNames() []string { return i.artistNames }

// AlbumNames returns the normalized album names, sorted.
func (i *Index) AlbumNames() []string { return i.albumNames }

// TitleNames returns the normalized track titles, sorted.
func (i *Index) TitleNames() []string { return i.titleNames }
