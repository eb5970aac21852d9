package analysis

import (
	"time"

	"github.com/simongoricar/lastfm-extended-scrobbles/internal/scrobble"
)

// Stats summarizes one pipeline run.
type Stats struct {
	RunID string

	Total   int
	Skipped int
	// BySource counts resolved scrobbles per source.
	BySource map[scrobble.Source]int
	// WithGenres counts scrobbles that received at least one genre.
	WithGenres int

	Elapsed time.Duration
}

func newStats(runID string) *Stats {
	return &Stats{
		RunID:    runID,
		BySource: make(map[scrobble.Source]int),
	}
}

func (s *Stats) record(extended scrobble.Extended) {
	s.BySource[extended.Source]++
	if len(extended.Genres) > 0 {
		s.WithGenres++
	}
}
