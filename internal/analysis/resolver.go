package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	gocache "github.com/patrickmn/go-cache"

	"github.com/simongoricar/lastfm-extended-scrobbles/internal/genres"
	"github.com/simongoricar/lastfm-extended-scrobbles/internal/library"
	"github.com/simongoricar/lastfm-extended-scrobbles/internal/musicbrainz"
	"github.com/simongoricar/lastfm-extended-scrobbles/internal/scrobble"
	"github.com/simongoricar/lastfm-extended-scrobbles/internal/textmatch"
	"github.com/simongoricar/lastfm-extended-scrobbles/internal/youtube"
)

// DurationSource resolves a track MBID to a length in seconds.
type DurationSource interface {
	TrackLengthSeconds(ctx context.Context, trackMBID string) (float64, error)
}

// VideoSource searches for videos matching a free-text query.
type VideoSource interface {
	Search(ctx context.Context, query string) ([]youtube.Video, error)
}

// GenreSource resolves genres for a track.
type GenreSource interface {
	Resolve(ctx context.Context, info genres.TrackInfo) ([]string, error)
}

// Thresholds are the fuzzy-match cutoffs of the resolution chain, 0 to 100.
type Thresholds struct {
	MinArtistScore       int
	MinAlbumScore        int
	MinTitleScore        int
	MinYouTubeTitleScore int
}

// Deps are the metadata sources a resolver draws on. Library is required;
// the rest may be nil, which skips the corresponding chain step.
type Deps struct {
	Library   *library.Index
	Durations DurationSource
	Videos    VideoSource
	Genres    GenreSource
	Logger    *slog.Logger
}

// resolver walks one scrobble through the source chain. Fuzzy and YouTube
// lookups are memoized for the lifetime of a run since histories repeat
// tracks heavily.
type resolver struct {
	deps       Deps
	thresholds Thresholds
	logger     *slog.Logger

	fuzzyCache   *gocache.Cache
	youtubeCache *gocache.Cache
}

func newResolver(deps Deps, thresholds Thresholds) *resolver {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &resolver{
		deps:         deps,
		thresholds:   thresholds,
		logger:       logger,
		fuzzyCache:   gocache.New(gocache.NoExpiration, 0),
		youtubeCache: gocache.New(gocache.NoExpiration, 0),
	}
}

// resolve runs the chain for one scrobble.
func (r *resolver) resolve(ctx context.Context, raw scrobble.Raw) (scrobble.Extended, error) {
	if extended, ok := r.byLibraryMBID(raw); ok {
		return extended, nil
	}
	if extended, ok := r.byExactMetadata(raw); ok {
		return extended, nil
	}
	if extended, ok := r.byFuzzyMetadata(raw); ok {
		return extended, nil
	}
	if extended, ok, err := r.byMusicBrainz(ctx, raw); err != nil {
		return scrobble.Extended{}, err
	} else if ok {
		return extended, nil
	}
	if extended, ok, err := r.byYouTube(ctx, raw); err != nil {
		return scrobble.Extended{}, err
	} else if ok {
		return extended, nil
	}
	return scrobble.ExtendBasic(raw), nil
}

func (r *resolver) byLibraryMBID(raw scrobble.Raw) (scrobble.Extended, bool) {
	if raw.TrackMBID == "" {
		return scrobble.Extended{}, false
	}
	track, ok := r.deps.Library.ByTrackMBID(raw.TrackMBID)
	if !ok {
		return scrobble.Extended{}, false
	}
	return scrobble.ExtendFromLibrary(raw, track, scrobble.SourceLocalLibraryMBID), true
}

// byExactMetadata matches by normalized title first: a unique title hit is
// accepted as-is. When several library tracks share the title, the artist
// and then the album narrow the candidates; a match that stays ambiguous
// resolves to nothing so the fuzzy step can have a go.
func (r *resolver) byExactMetadata(raw scrobble.Raw) (scrobble.Extended, bool) {
	if raw.TrackName == "" {
		return scrobble.Extended{}, false
	}

	matches := r.deps.Library.ByTitle(raw.TrackName)
	if len(matches) == 0 {
		return scrobble.Extended{}, false
	}
	if len(matches) == 1 {
		return scrobble.ExtendFromLibrary(raw, matches[0], scrobble.SourceLocalLibraryMetadata), true
	}

	narrowers := []func(library.Track) bool{
		func(track library.Track) bool {
			return textmatch.Normalize(track.ArtistName) == textmatch.Normalize(raw.ArtistName)
		},
		func(track library.Track) bool {
			return textmatch.Normalize(track.AlbumName) == textmatch.Normalize(raw.AlbumName)
		},
	}
	for _, keep := range narrowers {
		var kept []library.Track
		for _, track := range matches {
			if keep(track) {
				kept = append(kept, track)
			}
		}
		matches = kept
		if len(matches) == 0 {
			return scrobble.Extended{}, false
		}
		if len(matches) == 1 {
			return scrobble.ExtendFromLibrary(raw, matches[0], scrobble.SourceLocalLibraryMetadata), true
		}
	}

	r.logger.Debug("full metadata match stayed ambiguous",
		"artist", raw.ArtistName, "album", raw.AlbumName, "track", raw.TrackName,
		"matches", len(matches))
	return scrobble.Extended{}, false
}

type fuzzyResult struct {
	track library.Track
	found bool
}

// byFuzzyMetadata finds the closest library track: the artist must clear
// the artist cutoff and the title the title cutoff within that artist's
// tracks. An album that clears the album cutoff narrows the candidates
// first, but an unmatched album never rejects the track.
func (r *resolver) byFuzzyMetadata(raw scrobble.Raw) (scrobble.Extended, bool) {
	if raw.ArtistName == "" || raw.TrackName == "" {
		return scrobble.Extended{}, false
	}

	key := strings.Join([]string{
		textmatch.Normalize(raw.ArtistName),
		textmatch.Normalize(raw.AlbumName),
		textmatch.Normalize(raw.TrackName),
	}, "|")
	if entry, ok := r.fuzzyCache.Get(key); ok {
		cached := entry.(fuzzyResult)
		if !cached.found {
			return scrobble.Extended{}, false
		}
		return scrobble.ExtendFromLibrary(raw, cached.track, scrobble.SourceLocalLibraryMetadata), true
	}

	track, found := r.fuzzyLookup(raw)
	r.fuzzyCache.SetDefault(key, fuzzyResult{track: track, found: found})
	if !found {
		return scrobble.Extended{}, false
	}
	return scrobble.ExtendFromLibrary(raw, track, scrobble.SourceLocalLibraryMetadata), true
}

func (r *resolver) fuzzyLookup(raw scrobble.Raw) (library.Track, bool) {
	artistMatch, ok := textmatch.ExtractOne(
		textmatch.Normalize(raw.ArtistName),
		r.deps.Library.ArtistNames(),
		textmatch.WRatio,
		r.thresholds.MinArtistScore,
	)
	if !ok {
		return library.Track{}, false
	}

	candidates := r.deps.Library.ByArtist(artistMatch.Value)

	if raw.AlbumName != "" {
		albums := make([]string, 0, len(candidates))
		seen := make(map[string]bool)
		for _, track := range candidates {
			key := textmatch.Normalize(track.AlbumName)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			albums = append(albums, key)
		}
		albumMatch, ok := textmatch.ExtractOne(
			textmatch.Normalize(raw.AlbumName),
			albums,
			textmatch.WRatio,
			r.thresholds.MinAlbumScore,
		)
		if ok {
			var kept []library.Track
			for _, track := range candidates {
				if textmatch.Normalize(track.AlbumName) == albumMatch.Value {
					kept = append(kept, track)
				}
			}
			candidates = kept
		}
	}

	titles := make([]string, len(candidates))
	for i, track := range candidates {
		titles[i] = textmatch.Normalize(track.TrackTitle)
	}
	titleMatch, ok := textmatch.ExtractOne(
		textmatch.Normalize(raw.TrackName),
		titles,
		textmatch.WRatio,
		r.thresholds.MinTitleScore,
	)
	if !ok {
		return library.Track{}, false
	}
	return candidates[titleMatch.Index], true
}

func (r *resolver) byMusicBrainz(ctx context.Context, raw scrobble.Raw) (scrobble.Extended, bool, error) {
	if r.deps.Durations == nil || raw.TrackMBID == "" {
		return scrobble.Extended{}, false, nil
	}
	seconds, err := r.deps.Durations.TrackLengthSeconds(ctx, raw.TrackMBID)
	if errors.Is(err, musicbrainz.ErrTrackNotFound) {
		return scrobble.Extended{}, false, nil
	}
	if err != nil {
		return scrobble.Extended{}, false, fmt.Errorf("musicbrainz lookup for %s: %w", raw.TrackMBID, err)
	}
	return scrobble.ExtendFromDuration(raw, seconds, scrobble.SourceMusicBrainz), true, nil
}

type youtubeResult struct {
	seconds float64
	found   bool
}

// byYouTube searches for "artist track" and accepts the best result whose
// title is close enough to the query.
func (r *resolver) byYouTube(ctx context.Context, raw scrobble.Raw) (scrobble.Extended, bool, error) {
	if r.deps.Videos == nil || raw.ArtistName == "" || raw.TrackName == "" {
		return scrobble.Extended{}, false, nil
	}

	query := fmt.Sprintf("%s %s", raw.ArtistName, raw.TrackName)
	key := textmatch.Normalize(query)
	if entry, ok := r.youtubeCache.Get(key); ok {
		cached := entry.(youtubeResult)
		if !cached.found {
			return scrobble.Extended{}, false, nil
		}
		return scrobble.ExtendFromDuration(raw, cached.seconds, scrobble.SourceYouTube), true, nil
	}

	videos, err := r.deps.Videos.Search(ctx, query)
	if errors.Is(err, youtube.ErrNoResults) {
		r.youtubeCache.SetDefault(key, youtubeResult{})
		return scrobble.Extended{}, false, nil
	}
	if err != nil {
		return scrobble.Extended{}, false, fmt.Errorf("youtube search %q: %w", query, err)
	}

	titles := make([]string, len(videos))
	for i, video := range videos {
		titles[i] = video.Title
	}
	match, ok := textmatch.ExtractOne(query, titles, textmatch.WRatio, r.thresholds.MinYouTubeTitleScore)
	if !ok {
		r.youtubeCache.SetDefault(key, youtubeResult{})
		return scrobble.Extended{}, false, nil
	}
	seconds := videos[match.Index].DurationSeconds
	r.youtubeCache.SetDefault(key, youtubeResult{seconds: seconds, found: true})
	return scrobble.ExtendFromDuration(raw, seconds, scrobble.SourceYouTube), true, nil
}

// fillGenres annotates an extended scrobble in place. Genre failures are
// logged and leave the scrobble without genres rather than failing the run.
func (r *resolver) fillGenres(ctx context.Context, extended *scrobble.Extended) {
	if r.deps.Genres == nil {
		return
	}
	resolved, err := r.deps.Genres.Resolve(ctx, genres.TrackInfo{
		ArtistName: extended.ArtistName,
		ArtistMBID: extended.ArtistMBID,
		AlbumName:  extended.AlbumName,
		AlbumMBID:  extended.AlbumMBID,
		TrackName:  extended.TrackName,
		TrackMBID:  extended.TrackMBID,
	})
	if err != nil {
		r.logger.Warn("genre resolution failed",
			"artist", extended.ArtistName, "track", extended.TrackName, "error", err)
		return
	}
	extended.Genres = resolved
}
