// Package downloader fills the local scrobble archive from the Last.fm
// history API. Each run looks at the archives already on disk, computes the
// time ranges they do not cover, and downloads only those ranges, so
// interrupted runs resume where they stopped.
package downloader
