package textmatch_test

import (
	"testing"

	"github.com/simongoricar/lastfm-extended-scrobbles/internal/textmatch"
)

func TestExtractOnePicksBestChoice(t *testing.T) {
	choices := []string{"Radiohead", "Radical Face", "R.E.M."}
	match, ok := textmatch.ExtractOne("radiohed", choices, textmatch.QRatio, 70)
	if !ok {
		t.Fatal("expected a match above cutoff")
	}
	if match.Value != "Radiohead" || match.Index != 0 {
		t.Fatalf("unexpected match: %+v", match)
	}
}

func TestExtractOneRespectsCutoff(t *testing.T) {
	if _, ok := textmatch.ExtractOne("zzzz", []string{"Radiohead"}, textmatch.QRatio, 80); ok {
		t.Fatal("expected no match below cutoff")
	}
}

func TestExtractOneEmptyChoices(t *testing.T) {
	if _, ok := textmatch.ExtractOne("anything", nil, textmatch.QRatio, 0); ok {
		t.Fatal("expected no match for empty choices")
	}
}
