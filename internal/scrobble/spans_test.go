package scrobble

import (
	"testing"
	"time"
)

func span(from, to int64) TimeSpan {
	return TimeSpan{From: time.Unix(from, 0).UTC(), To: time.Unix(to, 0).UTC()}
}

func file(from, to int64) ArchiveFile {
	return ArchiveFile{From: time.Unix(from, 0).UTC(), To: time.Unix(to, 0).UTC()}
}

func assertSpans(t *testing.T, got []TimeSpan, want []TimeSpan) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d spans %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if !got[i].From.Equal(want[i].From) || !got[i].To.Equal(want[i].To) {
			t.Fatalf("span %d: got %v..%v, want %v..%v", i, got[i].From, got[i].To, want[i].From, want[i].To)
		}
	}
}

func TestMissingSpansNoArchives(t *testing.T) {
	got := MissingSpans(nil, time.Unix(5000, 0).UTC())
	assertSpans(t, got, []TimeSpan{span(0, 5000)})
}

func TestMissingSpansGapBetweenArchives(t *testing.T) {
	got := MissingSpans([]ArchiveFile{file(0, 1000), file(2000, 3000)}, time.Unix(5000, 0).UTC())
	assertSpans(t, got, []TimeSpan{span(1000, 2000), span(3000, 5000)})
}

func TestMissingSpansOverlapsMerge(t *testing.T) {
	got := MissingSpans([]ArchiveFile{file(0, 1500), file(1000, 3000), file(3000, 4000)}, time.Unix(5000, 0).UTC())
	assertSpans(t, got, []TimeSpan{span(4000, 5000)})
}

func TestMissingSpansFullyCovered(t *testing.T) {
	got := MissingSpans([]ArchiveFile{file(0, 6000)}, time.Unix(5000, 0).UTC())
	assertSpans(t, got, nil)
}

func TestMissingSpansUnsortedInput(t *testing.T) {
	got := MissingSpans([]ArchiveFile{file(3000, 4000), file(0, 1000)}, time.Unix(4000, 0).UTC())
	assertSpans(t, got, []TimeSpan{span(1000, 3000)})
}
