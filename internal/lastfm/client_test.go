package lastfm_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/simongoricar/lastfm-extended-scrobbles/internal/lastfm"
)

const sampleRecentTracks = `{
  "recenttracks": {
    "track": [
      {
        "artist": {"mbid": "cc197bad-dc9c-440d-a5b5-d52ba2e14234", "#text": "Radiohead"},
        "streamable": "0",
        "image": [{"size": "small", "#text": "https://lastfm.freetls.fastly.net/i/u/34s/x.png"}],
        "mbid": "db22a8bb-63c6-4e01-b32b-2787fc146ef2",
        "album": {"mbid": "b1392450-e666-3926-a536-22c65f834433", "#text": "OK Computer"},
        "name": "Karma Police",
        "url": "https://www.last.fm/music/Radiohead/_/Karma+Police",
        "date": {"uts": "1579000000", "#text": "14 Jan 2020, 11:06"},
        "loved": "1"
      },
      {
        "artist": {"mbid": "", "#text": "Unknown Artist"},
        "streamable": "0",
        "image": [],
        "mbid": "",
        "album": {"mbid": "", "#text": ""},
        "name": "Bootleg Song",
        "url": "https://www.last.fm/music/Unknown/_/Bootleg+Song",
        "date": {"uts": "1579000600", "#text": "14 Jan 2020, 11:16"}
      }
    ],
    "@attr": {"user": "testuser", "totalPages": "3", "page": "1", "perPage": "2", "total": "6"}
  }
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *lastfm.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := lastfm.New("key", server.URL, lastfm.WithRequestInterval(0))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return client
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := lastfm.New("", ""); err == nil {
		t.Fatal("expected error when api key missing")
	}
}

func TestGetRecentTracksParsesPage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("method") != "user.getrecenttracks" {
			t.Fatalf("unexpected method param: %q", query.Get("method"))
		}
		if query.Get("api_key") != "key" {
			t.Fatalf("missing api_key: %q", r.URL.RawQuery)
		}
		if query.Get("user") != "testuser" {
			t.Fatalf("unexpected user: %q", query.Get("user"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleRecentTracks))
	})

	page, err := client.GetRecentTracks(context.Background(), "testuser", lastfm.RecentTracksOptions{})
	if err != nil {
		t.Fatalf("GetRecentTracks returned error: %v", err)
	}
	if page.TotalPages != 3 || page.Total != 6 {
		t.Fatalf("unexpected paging: %+v", page)
	}
	if len(page.Tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(page.Tracks))
	}

	first := page.Tracks[0]
	if first.Name != "Karma Police" || first.MBID != "db22a8bb-63c6-4e01-b32b-2787fc146ef2" {
		t.Fatalf("unexpected first track: %+v", first)
	}
	if first.Album == nil || first.Album.Name != "OK Computer" {
		t.Fatalf("unexpected album: %+v", first.Album)
	}
	if !first.Loved {
		t.Fatal("expected loved flag")
	}
	if got := first.ScrobbledAt.Unix(); got != 1579000000 {
		t.Fatalf("scrobbled at = %d", got)
	}

	second := page.Tracks[1]
	if second.Album != nil {
		t.Fatalf("expected albumless track, got %+v", second.Album)
	}
	if second.MBID != "" {
		t.Fatalf("expected empty mbid, got %q", second.MBID)
	}
}

func TestGetRecentTracksRangeParams(t *testing.T) {
	from := time.Unix(1500000000, 0).UTC()
	to := time.Unix(1600000000, 0).UTC()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("from") != "1500000000" || query.Get("to") != "1600000000" {
			t.Fatalf("range params missing: %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"recenttracks":{"track":[],"@attr":{"user":"u","totalPages":"0","page":"1","perPage":"200","total":"0"}}}`))
	})

	_, err := client.GetRecentTracks(context.Background(), "u", lastfm.RecentTracksOptions{From: &from, To: &to})
	if err != nil {
		t.Fatalf("GetRecentTracks returned error: %v", err)
	}
}

func TestGetSurfacesErrorEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message": "Invalid API key", "error": 10}`))
	})

	_, err := client.GetRecentTracks(context.Background(), "u", lastfm.RecentTracksOptions{})
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr, ok := err.(*lastfm.APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Code != 10 {
		t.Fatalf("unexpected code: %d", apiErr.Code)
	}
}

func TestTrackTopTags(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("method") != "track.gettoptags" {
			t.Fatalf("unexpected method: %q", r.URL.Query().Get("method"))
		}
		_, _ = w.Write([]byte(`{"toptags":{"tag":[{"name":"rock","count":100},{"name":"alternative","count":64}]}}`))
	})

	tags, err := client.TrackTopTags(context.Background(), "Radiohead", "Karma Police", "")
	if err != nil {
		t.Fatalf("TrackTopTags returned error: %v", err)
	}
	if len(tags) != 2 || tags[0].Name != "rock" || tags[0].Weight != 100 {
		t.Fatalf("unexpected tags: %+v", tags)
	}
}

func TestSearchTracksStopsAtEmptyPage(t *testing.T) {
	requests := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Query().Get("page") == "1" {
			_, _ = w.Write([]byte(`{"results":{"trackmatches":{"track":[{"name":"Hurt","artist":"Johnny Cash","mbid":""}]}}}`))
			return
		}
		_, _ = w.Write([]byte(`{"results":{"trackmatches":{"track":[]}}}`))
	})

	hits, err := client.SearchTracks(context.Background(), "Johnny Cash", "Hurt", 15)
	if err != nil {
		t.Fatalf("SearchTracks returned error: %v", err)
	}
	if len(hits) != 1 || hits[0].Artist != "Johnny Cash" {
		t.Fatalf("unexpected hits: %+v", hits)
	}
	if requests != 2 {
		t.Fatalf("expected 2 requests, got %d", requests)
	}
}
