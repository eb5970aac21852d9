package musicbrainz

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

const sampleBrowse = `{
  "releases": [
    {
      "media": [
        {
          "tracks": [
            {"id": "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa", "length": 181000},
            {"id": "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb", "length": 216500}
          ]
        }
      ]
    }
  ]
}`

func TestTrackLengthSeconds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/release" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("track"); got != "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb" {
			t.Errorf("unexpected track param %q", got)
		}
		if got := r.URL.Query().Get("fmt"); got != "json" {
			t.Errorf("unexpected fmt param %q", got)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("missing user agent")
		}
		_, _ = w.Write([]byte(sampleBrowse))
	}))
	defer server.Close()

	client := New(server.URL)
	seconds, err := client.TrackLengthSeconds(context.Background(), "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")
	if err != nil {
		t.Fatalf("TrackLengthSeconds: %v", err)
	}
	// 216500 ms rounds to 217 s.
	if seconds != 217 {
		t.Fatalf("expected 217 seconds, got %v", seconds)
	}
}

func TestTrackLengthSecondsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"releases": []}`))
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.TrackLengthSeconds(context.Background(), "cccccccc-cccc-cccc-cccc-cccccccccccc")
	if !errors.Is(err, ErrTrackNotFound) {
		t.Fatalf("expected ErrTrackNotFound, got %v", err)
	}
}

func TestTrackLengthSecondsCachesHitsAndMisses(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Query().Get("track") == "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa" {
			_, _ = w.Write([]byte(sampleBrowse))
			return
		}
		_, _ = w.Write([]byte(`{"releases": []}`))
	}))
	defer server.Close()

	client := New(server.URL)
	ctx := context.Background()

	for range 3 {
		if _, err := client.TrackLengthSeconds(ctx, "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"); err != nil {
			t.Fatalf("hit lookup: %v", err)
		}
	}
	for range 3 {
		if _, err := client.TrackLengthSeconds(ctx, "dddddddd-dddd-dddd-dddd-dddddddddddd"); !errors.Is(err, ErrTrackNotFound) {
			t.Fatalf("miss lookup: %v", err)
		}
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", got)
	}
}

func TestTrackLengthSecondsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := New(server.URL)
	if _, err := client.TrackLengthSeconds(context.Background(), "eeeeeeee-eeee-eeee-eeee-eeeeeeeeeeee"); err == nil {
		t.Fatal("expected error for 503 response")
	}
}
