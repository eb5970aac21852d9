// Package main hosts the scrobbles CLI entrypoint and command graph.
//
// The Cobra-based command tree covers the full workflow: downloading the
// scrobble history into local archives, scanning the music library into the
// cache, syncing the beets genre data, and running the analysis that
// produces the extended spreadsheet. It centralizes configuration
// resolution and structured logging setup so subcommands can focus on user
// experience instead of wiring.
package main
