// Package report writes the extended scrobble history as an xlsx
// spreadsheet. Saving retries for a while when the target file is locked,
// which is the usual state of affairs when the spreadsheet is open in a
// viewer during a run.
package report
