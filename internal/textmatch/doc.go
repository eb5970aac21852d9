// Package textmatch provides fuzzy string comparison for metadata reconciliation.
//
// Scores are integers from 0 to 100, computed over normalized input:
// lowercased, diacritics folded, punctuation collapsed to single spaces.
// The package offers edit-distance ratios (full, partial, token-sort and
// token-set variants) plus ExtractOne for picking the best candidate out of
// a choice list with a score cutoff.
package textmatch
