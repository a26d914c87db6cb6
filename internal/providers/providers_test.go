package providers

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/cascadia-snow/resortwatch/internal/images"
)

type fakeExtractor struct {
	lastStreamURL string
	frame         string
	err           error
}

func (f *fakeExtractor) ExtractFrame(ctx context.Context, streamURL string) (string, error) {
	f.lastStreamURL = streamURL
	return f.frame, f.err
}

func TestBrownriceResolve(t *testing.T) {
	p := NewBrownrice()
	ref, err := p.Resolve(context.Background(), "stevenspassjupiter")
	if err != nil {
		t.Fatalf("Resolve() returned error: %v", err)
	}
	if ref.URLOrData != "https://player.brownrice.com/snapshot/stevenspassjupiter" {
		t.Errorf("unexpected URL: %s", ref.URLOrData)
	}
	if ref.IsBase64 {
		t.Error("brownrice references should not be base64")
	}
	if ref.ExpiryMinutes != nil {
		t.Error("brownrice URLs are permanent, expected nil expiry")
	}
}

func TestYouTubeResolve(t *testing.T) {
	p := NewYouTube()
	ref, err := p.Resolve(context.Background(), "w4Sno8NIjmU")
	if err != nil {
		t.Fatalf("Resolve() returned error: %v", err)
	}
	if ref.URLOrData != "https://i.ytimg.com/vi/w4Sno8NIjmU/maxresdefault_live.jpg" {
		t.Errorf("unexpected URL: %s", ref.URLOrData)
	}
	if ref.ExpiryMinutes != nil {
		t.Error("youtube thumbnail URLs are permanent, expected nil expiry")
	}
}

func TestSki49nResolveInlinesImage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lodge.jpg" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if _, err := w.Write([]byte("jpegdata")); err != nil {
			t.Errorf("write failed: %v", err)
		}
	}))
	defer ts.Close()

	p := NewSki49n(images.NewFetcher())
	p.BaseURL = ts.URL

	ref, err := p.Resolve(context.Background(), "lodge")
	if err != nil {
		t.Fatalf("Resolve() returned error: %v", err)
	}
	if !ref.IsBase64 {
		t.Fatal("ski49n references should be inline base64")
	}
	decoded, err := base64.StdEncoding.DecodeString(ref.URLOrData)
	if err != nil {
		t.Fatalf("reference is not valid base64: %v", err)
	}
	if string(decoded) != "jpegdata" {
		t.Errorf("unexpected decoded image: %q", decoded)
	}
	if ref.ExpiryMinutes != nil {
		t.Error("ski49n addresses are permanent, expected nil expiry")
	}
}

func TestWetMetResolve(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("uid") != "abc123" {
			t.Errorf("unexpected uid: %s", r.URL.Query().Get("uid"))
		}
		if _, err := w.Write([]byte(`<script>var vurl = 'https://stream.example/playlist.m3u8?wmsAuthSign=tok';</script>`)); err != nil {
			t.Errorf("write failed: %v", err)
		}
	}))
	defer ts.Close()

	extractor := &fakeExtractor{frame: base64.StdEncoding.EncodeToString([]byte("framedata"))}
	p := NewWetMet(images.NewFetcher(), extractor)
	p.WidgetURL = ts.URL

	ref, err := p.Resolve(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Resolve() returned error: %v", err)
	}
	if extractor.lastStreamURL != "https://stream.example/playlist.m3u8?wmsAuthSign=tok" {
		t.Errorf("extractor got wrong stream URL: %s", extractor.lastStreamURL)
	}
	if !ref.IsBase64 {
		t.Error("wetmet references should be inline base64")
	}
	if ref.ExpiryMinutes == nil || *ref.ExpiryMinutes != 30 {
		t.Errorf("expected 30 minute expiry, got %v", ref.ExpiryMinutes)
	}
}

func TestWetMetResolveMissingStreamURL(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("<html>no player here</html>")); err != nil {
			t.Errorf("write failed: %v", err)
		}
	}))
	defer ts.Close()

	p := NewWetMet(images.NewFetcher(), &fakeExtractor{})
	p.WidgetURL = ts.URL

	if _, err := p.Resolve(context.Background(), "abc123"); err == nil {
		t.Error("expected error when widget has no stream URL")
	}
}

func TestBigWhiteScrapeCache(t *testing.T) {
	var pageHits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/mountain-conditions/webcams", func(w http.ResponseWriter, r *http.Request) {
		pageHits.Add(1)
		html := `<img src="/sites/default/files/village_849.jpg"><img src="/sites/default/files/powpow_123.jpg">`
		if _, err := w.Write([]byte(html)); err != nil {
			t.Errorf("write failed: %v", err)
		}
	})
	mux.HandleFunc("/sites/default/files/", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("imagedata")); err != nil {
			t.Errorf("write failed: %v", err)
		}
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	p := NewBigWhite(images.NewFetcher())
	p.PageURL = ts.URL + "/mountain-conditions/webcams"

	ref, err := p.Resolve(context.Background(), "Village")
	if err != nil {
		t.Fatalf("Resolve() returned error: %v", err)
	}
	if !ref.IsBase64 {
		t.Error("bigwhite references should be inline base64")
	}

	// Second resolve hits the cached mapping, not the page.
	if _, err := p.Resolve(context.Background(), "powpow"); err != nil {
		t.Fatalf("second Resolve() returned error: %v", err)
	}
	if got := pageHits.Load(); got != 1 {
		t.Errorf("expected 1 page scrape, got %d", got)
	}

	if _, err := p.Resolve(context.Background(), "missing"); err == nil {
		t.Error("expected error for camera absent from the scraped page")
	}
}

func TestRegistryUnknownProvider(t *testing.T) {
	r := NewRegistry(images.NewFetcher(), &fakeExtractor{})
	if _, err := r.Get("telepherique"); err == nil {
		t.Error("expected error for unknown provider name")
	}

	for _, name := range []string{"brownrice", "youtube", "ski49n", "wetmet", "bigwhite"} {
		if _, err := r.Get(name); err != nil {
			t.Errorf("expected provider %s to be registered: %v", name, err)
		}
	}
}
