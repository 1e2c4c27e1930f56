package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domain "github.com/veriview/veriview/internal/domain/analyses"
)

func TestExtractVideoID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want string
		ok   bool
	}{
		{name: "watch url", url: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ", ok: true},
		{name: "short link", url: "https://youtu.be/dQw4w9WgXcQ", want: "dQw4w9WgXcQ", ok: true},
		{name: "embed url", url: "https://www.youtube.com/embed/dQw4w9WgXcQ", want: "dQw4w9WgXcQ", ok: true},
		{name: "v later in query", url: "https://www.youtube.com/watch?t=30&v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ", ok: true},
		{name: "channel url", url: "https://www.youtube.com/@somechannel", ok: false},
		{name: "not youtube", url: "https://www.tiktok.com/@x/video/1", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractVideoID(tt.url)
			if ok != tt.ok {
				t.Fatalf("ExtractVideoID(%q) ok = %v, want %v", tt.url, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Fatalf("ExtractVideoID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func testClient(srv *httptest.Server) *Client {
	return &Client{
		apiKey:  "test-key",
		baseURL: srv.URL,
		http:    &http.Client{Timeout: time.Second},
	}
}

func TestFetchVideoParsesPayload(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("id") != "dQw4w9WgXcQ" || q.Get("key") != "test-key" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		if q.Get("part") != "snippet,statistics,contentDetails" {
			t.Errorf("part = %q", q.Get("part"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"items": [{
				"id": "dQw4w9WgXcQ",
				"snippet": {
					"publishedAt": "2009-10-25T06:57:33Z",
					"channelId": "UCuAXFkgsw1L7xaCfnd5JJOw",
					"channelTitle": "Rick Astley",
					"title": "Never Gonna Give You Up",
					"description": "The official video."
				},
				"statistics": {
					"viewCount": "1400000000",
					"likeCount": "16000000",
					"commentCount": "2200000"
				},
				"contentDetails": {"duration": "PT3M33S"}
			}]
		}`))
	}))
	defer srv.Close()

	meta, err := testClient(srv).FetchVideo(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("FetchVideo() error = %v", err)
	}
	if meta.VideoID != "dQw4w9WgXcQ" {
		t.Fatalf("VideoID = %q", meta.VideoID)
	}
	if meta.ViewCount != 1400000000 {
		t.Fatalf("ViewCount = %d, want 1400000000", meta.ViewCount)
	}
	if meta.DislikeCount != 0 {
		t.Fatalf("DislikeCount = %d, want 0 when absent", meta.DislikeCount)
	}
	if meta.ChannelTitle != "Rick Astley" || meta.Duration != "PT3M33S" {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
	if meta.PublishedAt.Year() != 2009 {
		t.Fatalf("PublishedAt = %v", meta.PublishedAt)
	}
}

func TestFetchVideoNoExtractableID(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made when the id cannot be extracted")
	}))
	defer srv.Close()

	_, err := testClient(srv).FetchVideo(context.Background(), "https://www.youtube.com/@somechannel")
	if !errors.Is(err, domain.ErrNoVideoID) {
		t.Fatalf("FetchVideo() error = %v, want ErrNoVideoID", err)
	}
}

func TestFetchVideoEmptyItems(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": []}`))
	}))
	defer srv.Close()

	_, err := testClient(srv).FetchVideo(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if !errors.Is(err, domain.ErrVideoNotFound) {
		t.Fatalf("FetchVideo() error = %v, want ErrVideoNotFound", err)
	}
}

func TestFetchVideoRemoteError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer srv.Close()

	if _, err := testClient(srv).FetchVideo(context.Background(), "https://youtu.be/dQw4w9WgXcQ"); err == nil {
		t.Fatal("FetchVideo() expected error on non-200 response")
	}
}
