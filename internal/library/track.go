package library

// Track is the cached metadata of one audio file in the local library.
// Name and MBID fields are empty when the underlying tag is absent.
type Track struct {
	FilePath string

	// DurationSeconds is zero when no length-bearing tag was present.
	DurationSeconds float64

	ArtistName string
	ArtistMBID string

	AlbumName string
	AlbumMBID string

	TrackTitle string
	TrackMBID  string
}

// HasMetadata reports whether the track carries at least a title, an artist,
// or an album to match on.
func (t Track) HasMetadata() bool {
	return t.TrackTitle != "" || t.ArtistName != "" || t.AlbumName != ""
}
