package scraper

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gianmaria/reddit-image-downloader/internal/checkpoint"
	"github.com/gianmaria/reddit-image-downloader/internal/ledger"
)

// fakeForum serves the reddit listing, the imgur API and the media files from
// one httptest server; paths keep the surfaces apart.
type fakeForum struct {
	t            *testing.T
	base         string
	listingAfter []string // "after" param of every listing request, in order
	pages        map[string]string
}

func (f *fakeForum) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/r/", func(w http.ResponseWriter, r *http.Request) {
		after := r.URL.Query().Get("after")
		f.listingAfter = append(f.listingAfter, after)
		page, ok := f.pages[after]
		if !ok {
			f.t.Errorf("unexpected listing request with after=%q", after)
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, page)
	})

	mux.HandleFunc("/3/gallery/r/pics/abum1", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Client-ID test-id" {
			f.t.Errorf("imgur Authorization = %q", got)
		}
		fmt.Fprintf(w, `{"success":true,"status":200,"data":{"images":[{"link":"%s"},{"link":"%s"}]}}`,
			f.mediaURL("/media/one.jpg"), f.mediaURL("/media/two.gif"))
	})

	mux.HandleFunc("/media/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "bytes of %s", r.URL.Path)
	})

	return mux
}

func (f *fakeForum) mediaURL(path string) string {
	return f.base + path
}

func newScenarioServer(t *testing.T) (*httptest.Server, *fakeForum) {
	forum := &fakeForum{t: t}
	srv := httptest.NewServer(forum.handler())
	forum.base = srv.URL

	// Page one: a direct .png post, an imgur gallery post expanding to two
	// images, and a post on an unrecognized domain with no extension.
	forum.pages = map[string]string{
		"": fmt.Sprintf(`{
			"data": {
				"children": [
					{"data": {"id": "p1", "title": "direct post", "url": "%s/media/direct.png", "domain": "media.test", "ups": 10}},
					{"data": {"id": "p2", "title": "imgur album", "url": "https://imgur.com/gallery/abum1", "domain": "imgur.com", "subreddit": "pics", "ups": 10}},
					{"data": {"id": "p3", "title": "mystery", "url": "https://unknown.example/post", "domain": "unknown.example", "ups": 10}}
				],
				"after": "t3_page2"
			}
		}`, srv.URL),
		"t3_page2": `{"data": {"children": [], "after": null}}`,
	}
	return srv, forum
}

func TestRunEndToEnd(t *testing.T) {
	srv, forum := newScenarioServer(t)
	defer srv.Close()

	dir := t.TempDir()
	var out bytes.Buffer

	s := New(Config{
		Subreddit:     "pics",
		When:          "all",
		DestDir:       dir,
		Concurrency:   2,
		RateLimitMs:   1,
		UserAgent:     "rid-test/1.0",
		ImgurClientID: "test-id",
		Out:           &out,
		RedditBaseURL: srv.URL,
		ImgurBaseURL:  srv.URL,
	}, nil)

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	// Both pages requested, the second with the checkpointed cursor.
	if len(forum.listingAfter) != 2 || forum.listingAfter[0] != "" || forum.listingAfter[1] != "t3_page2" {
		t.Fatalf("listing requests = %v, want [\"\" t3_page2]", forum.listingAfter)
	}

	// 1 direct + 2 imgur assets on disk.
	for _, name := range []string{"direct post.png", "imgur album.jpg", "imgur album.gif"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected downloaded file %q: %v", name, err)
		}
	}

	// Drained run leaves no cursor behind.
	if _, err := os.Stat(filepath.Join(dir, "after.txt")); !os.IsNotExist(err) {
		t.Error("after.txt must be removed once the forum is exhausted")
	}

	// The page drains from the end backward: the unknown-domain post is
	// processed first and the unresolvable line echoes its URL.
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("output lines = %d, want 3 results + All done!:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "[0001] mystery") || !strings.Contains(lines[0], "UNABLE") ||
		!strings.Contains(lines[0], "url: 'https://unknown.example/post'") {
		t.Errorf("line 1 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "[0002] imgur album") || !strings.Contains(lines[1], "OK") {
		t.Errorf("line 2 = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "[0003] direct post") || !strings.Contains(lines[2], "OK") {
		t.Errorf("line 3 = %q", lines[2])
	}
	if lines[3] != "All done!" {
		t.Errorf("line 4 = %q, want All done!", lines[3])
	}

	// The ledger recorded one row per post.
	led, err := ledger.Open(dir)
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	defer led.Close()
	sum, err := led.Summary()
	if err != nil {
		t.Fatalf("ledger summary: %v", err)
	}
	if sum.Total != 3 || sum.ByResult["OK"] != 2 || sum.ByResult["UNABLE"] != 1 {
		t.Fatalf("ledger summary = %+v", sum)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	srv, _ := newScenarioServer(t)
	defer srv.Close()

	dir := t.TempDir()
	cfg := Config{
		Subreddit:     "pics",
		When:          "all",
		DestDir:       dir,
		Concurrency:   2,
		RateLimitMs:   1,
		UserAgent:     "rid-test/1.0",
		ImgurClientID: "test-id",
		RedditBaseURL: srv.URL,
		ImgurBaseURL:  srv.URL,
	}

	var first bytes.Buffer
	cfg.Out = &first
	if err := New(cfg, nil).Run(context.Background()); err != nil {
		t.Fatalf("first Run() error: %v", err)
	}

	var second bytes.Buffer
	cfg.Out = &second
	if err := New(cfg, nil).Run(context.Background()); err != nil {
		t.Fatalf("second Run() error: %v", err)
	}

	if !strings.Contains(second.String(), "direct post") || !strings.Contains(second.String(), "SKIP") {
		t.Fatalf("second run should skip existing files:\n%s", second.String())
	}
	if strings.Count(second.String(), "OK") != 0 {
		t.Fatalf("second run re-downloaded something:\n%s", second.String())
	}
}

func TestRunResumesFromCheckpoint(t *testing.T) {
	srv, forum := newScenarioServer(t)
	defer srv.Close()

	dir := t.TempDir()
	if err := checkpoint.NewStore(dir).Save("t3_page2"); err != nil {
		t.Fatal(err)
	}

	s := New(Config{
		Subreddit:     "pics",
		When:          "all",
		DestDir:       dir,
		RateLimitMs:   1,
		UserAgent:     "rid-test/1.0",
		RedditBaseURL: srv.URL,
	}, nil)

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if len(forum.listingAfter) != 1 || forum.listingAfter[0] != "t3_page2" {
		t.Fatalf("listing requests = %v, want [t3_page2] only", forum.listingAfter)
	}
}

func TestRunFatalOnBadListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	s := New(Config{
		Subreddit:     "pics",
		When:          "all",
		DestDir:       t.TempDir(),
		RateLimitMs:   1,
		UserAgent:     "rid-test/1.0",
		RedditBaseURL: srv.URL,
	}, nil)

	if err := s.Run(context.Background()); err == nil {
		t.Fatal("Run() = nil error, want fatal listing failure")
	}
}
