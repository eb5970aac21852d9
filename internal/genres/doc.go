// Package genres assigns canonical genres to scrobbles from Last.fm top
// tags. Raw tags are noisy ("seen live", misspellings, moods), so every
// candidate is filtered through the beets lastgenre whitelist and, when the
// tag itself is not whitelisted, canonicalized by walking the beets genre
// tree up to the nearest whitelisted ancestor.
package genres
