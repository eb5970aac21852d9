// Package youtube resolves track durations by scraping YouTube search
// result pages. There is no API key involved: the search page embeds its
// results as a ytInitialData JSON blob inside a script tag, which is enough
// to recover video titles and lengths.
package youtube
