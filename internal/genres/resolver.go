package genres

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/simongoricar/lastfm-extended-scrobbles/internal/lastfm"
	"github.com/simongoricar/lastfm-extended-scrobbles/internal/textmatch"
)

// TagSource is the slice of the Last.fm API the resolver consumes.
type TagSource interface {
	TrackTopTags(ctx context.Context, artist, track, mbid string) ([]lastfm.TopTag, error)
	AlbumTopTags(ctx context.Context, artist, album, mbid string) ([]lastfm.TopTag, error)
	ArtistTopTags(ctx context.Context, artist, mbid string) ([]lastfm.TopTag, error)
	SearchAlbums(ctx context.Context, album string, pageLimit int) ([]lastfm.AlbumResult, error)
}

// TrackInfo identifies the track a genre lookup is for. MBID fields may be
// empty; the resolver falls back to name addressing.
type TrackInfo struct {
	ArtistName string
	ArtistMBID string
	AlbumName  string
	AlbumMBID  string
	TrackName  string
	TrackMBID  string
}

// ResolverOptions tunes genre resolution.
type ResolverOptions struct {
	// MaxCount caps the genres returned per track.
	MaxCount int
	// MinWeight drops tags below this aggregate weight.
	MinWeight int
	// MinSimilarity is the fuzzy-match cutoff for the album search
	// fallback, 0 to 100.
	MinSimilarity int
	// SearchPageLimit bounds album search pagination.
	SearchPageLimit int
	// CacheTTL controls the per-track result cache.
	CacheTTL time.Duration
}

// Resolver turns Last.fm top tags into whitelisted genres.
type Resolver struct {
	source    TagSource
	whitelist *Whitelist
	tree      *Tree
	opts      ResolverOptions
	cache     *gocache.Cache
}

// NewResolver builds a Resolver. The tree may be nil, which disables
// ancestor canonicalization.
func NewResolver(source TagSource, whitelist *Whitelist, tree *Tree, opts ResolverOptions) *Resolver {
	if opts.MaxCount <= 0 {
		opts.MaxCount = 3
	}
	if opts.MinSimilarity <= 0 {
		opts.MinSimilarity = 75
	}
	if opts.SearchPageLimit <= 0 {
		opts.SearchPageLimit = 1
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Resolver{
		source:    source,
		whitelist: whitelist,
		tree:      tree,
		opts:      opts,
		cache:     gocache.New(ttl, 2*ttl),
	}
}

// Resolve returns the genres for a track, most significant first. Tracks
// with no acceptable tags resolve to an empty list, not an error; errors
// are reserved for API failures on every route.
func (r *Resolver) Resolve(ctx context.Context, info TrackInfo) ([]string, error) {
	key := r.cacheKey(info)
	if entry, ok := r.cache.Get(key); ok {
		return entry.([]string), nil
	}

	tags, err := r.collectTags(ctx, info)
	if err != nil {
		return nil, err
	}

	genres := r.filter(tags)
	r.cache.SetDefault(key, genres)
	return genres, nil
}

func (r *Resolver) cacheKey(info TrackInfo) string {
	if info.TrackMBID != "" {
		return "mbid:" + info.TrackMBID
	}
	return strings.Join([]string{
		textmatch.Normalize(info.ArtistName),
		textmatch.Normalize(info.AlbumName),
		textmatch.Normalize(info.TrackName),
	}, "|")
}

// collectTags gathers the track, album and artist top tags and merges them
// into one weight-ordered pool; the album route falls back to album.search
// when the direct lookup has no tags. A route error is surfaced only when
// every route came back empty.
func (r *Resolver) collectTags(ctx context.Context, info TrackInfo) ([]lastfm.TopTag, error) {
	var merged []lastfm.TopTag
	var firstErr error
	keepErr := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	if info.TrackMBID != "" || (info.ArtistName != "" && info.TrackName != "") {
		tags, err := r.source.TrackTopTags(ctx, info.ArtistName, info.TrackName, info.TrackMBID)
		if err != nil {
			keepErr(err)
		} else {
			merged = append(merged, tags...)
		}
	}

	var albumTags []lastfm.TopTag
	if info.AlbumMBID != "" || (info.ArtistName != "" && info.AlbumName != "") {
		tags, err := r.source.AlbumTopTags(ctx, info.ArtistName, info.AlbumName, info.AlbumMBID)
		if err != nil {
			keepErr(err)
		} else {
			albumTags = tags
		}
	}
	if len(albumTags) == 0 && info.AlbumName != "" {
		tags, err := r.albumSearchTags(ctx, info)
		if err != nil {
			keepErr(err)
		} else {
			albumTags = tags
		}
	}
	merged = append(merged, albumTags...)

	if info.ArtistName != "" || info.ArtistMBID != "" {
		tags, err := r.source.ArtistTopTags(ctx, info.ArtistName, info.ArtistMBID)
		if err != nil {
			keepErr(err)
		} else {
			merged = append(merged, tags...)
		}
	}

	if len(merged) == 0 {
		return nil, firstErr
	}
	return merged, nil
}

// albumSearchTags finds the scrobbled album through album.search and reads
// its tags. The best hit must clear the fuzzy similarity cutoff on
// "artist album" to avoid tagging from an unrelated album of the same name.
func (r *Resolver) albumSearchTags(ctx context.Context, info TrackInfo) ([]lastfm.TopTag, error) {
	results, err := r.source.SearchAlbums(ctx, info.AlbumName, r.opts.SearchPageLimit)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	choices := make([]string, len(results))
	for i, result := range results {
		choices[i] = fmt.Sprintf("%s %s", result.Artist, result.Name)
	}
	query := fmt.Sprintf("%s %s", info.ArtistName, info.AlbumName)

	best, ok := textmatch.ExtractOne(query, choices, textmatch.WRatio, r.opts.MinSimilarity)
	if !ok {
		return nil, nil
	}
	hit := results[best.Index]
	return r.source.AlbumTopTags(ctx, hit.Artist, hit.Name, hit.MBID)
}

// filter maps raw tags to whitelisted genres in weight order.
func (r *Resolver) filter(tags []lastfm.TopTag) []string {
	sort.SliceStable(tags, func(i, j int) bool { return tags[i].Weight > tags[j].Weight })

	genres := make([]string, 0, r.opts.MaxCount)
	seen := make(map[string]bool)
	add := func(name string) bool {
		lower := strings.ToLower(strings.TrimSpace(name))
		if lower == "" || seen[lower] {
			return false
		}
		seen[lower] = true
		genres = append(genres, Canonical(lower))
		return true
	}

	for _, tag := range tags {
		if len(genres) >= r.opts.MaxCount {
			break
		}
		if tag.Weight < r.opts.MinWeight {
			continue
		}
		if r.whitelist.Contains(tag.Name) {
			add(tag.Name)
			continue
		}
		if r.tree == nil {
			continue
		}
		for _, ancestor := range r.tree.Parents(tag.Name) {
			if r.whitelist.Contains(ancestor) {
				add(ancestor)
				break
			}
		}
	}
	return genres
}
