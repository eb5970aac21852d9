package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleInitialData = `{
  "contents": {
    "twoColumnSearchResultsRenderer": {
      "primaryContents": {
        "sectionListRenderer": {
          "contents": [
            {
              "itemSectionRenderer": {
                "contents": [
                  {"adSlotRenderer": {}},
                  {
                    "videoRenderer": {
                      "videoId": "vt1TqW_HBMI",
                      "title": {"runs": [{"text": "Johnny Cash - Hurt (Official Music Video)"}]},
                      "lengthText": {"simpleText": "3:51"}
                    }
                  },
                  {
                    "videoRenderer": {
                      "videoId": "livestream1",
                      "title": {"runs": [{"text": "Hurt 24/7 live"}]}
                    }
                  },
                  {
                    "videoRenderer": {
                      "videoId": "longmix001",
                      "title": {"runs": [{"text": "Hurt 1 hour loop"}]},
                      "lengthText": {"simpleText": "1:02:45"}
                    }
                  }
                ]
              }
            }
          ]
        }
      }
    }
  }
}`

func searchPage(initialData string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html><head><title>results</title></head>
<body>
<script>var something = 1;</script>
<script>var ytInitialData = %s;</script>
</body></html>`, initialData)
}

func newTestServer(t *testing.T, page string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/results" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("search_query") == "" {
			t.Error("missing search_query")
		}
		_, _ = w.Write([]byte(page))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestSearchParsesVideos(t *testing.T) {
	server := newTestServer(t, searchPage(sampleInitialData))

	client := New(server.URL)
	videos, err := client.Search(context.Background(), "Johnny Cash Hurt")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(videos) != 2 {
		t.Fatalf("expected 2 videos, got %d", len(videos))
	}
	if videos[0].ID != "vt1TqW_HBMI" {
		t.Fatalf("unexpected first video %+v", videos[0])
	}
	if videos[0].DurationSeconds != 231 {
		t.Fatalf("expected 231 seconds, got %v", videos[0].DurationSeconds)
	}
	if videos[1].DurationSeconds != 3765 {
		t.Fatalf("expected 3765 seconds, got %v", videos[1].DurationSeconds)
	}
}

func TestSearchHonorsMaxResults(t *testing.T) {
	server := newTestServer(t, searchPage(sampleInitialData))

	client := New(server.URL, WithMaxResults(1))
	videos, err := client.Search(context.Background(), "Johnny Cash Hurt")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(videos) != 1 {
		t.Fatalf("expected 1 video, got %d", len(videos))
	}
}

func TestSearchNoInitialData(t *testing.T) {
	server := newTestServer(t, "<html><body><script>var x = 1;</script></body></html>")

	client := New(server.URL)
	if _, err := client.Search(context.Background(), "anything"); !errors.Is(err, ErrNoResults) {
		t.Fatalf("expected ErrNoResults, got %v", err)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	client := New("http://localhost:1")
	if _, err := client.Search(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"3:51", 231, true},
		{"0:59", 59, true},
		{"1:02:45", 3765, true},
		{"12", 0, false},
		{"1:2:3:4", 0, false},
		{"x:30", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDuration(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("ParseDuration(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Errorf("ParseDuration(%q) succeeded, want error", tc.in)
		}
	}
}
