package images

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDownloadSendsUserAgent(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		if _, err := w.Write([]byte("imagebytes")); err != nil {
			t.Errorf("write failed: %v", err)
		}
	}))
	defer ts.Close()

	f := NewFetcher()
	data, err := f.Download(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("Download() returned error: %v", err)
	}
	if string(data) != "imagebytes" {
		t.Errorf("expected body imagebytes, got %q", data)
	}
	if gotUA != defaultUserAgent {
		t.Errorf("expected browser-like User-Agent, got %q", gotUA)
	}
}

func TestDownloadNon200(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	f := NewFetcher()
	if _, err := f.Download(context.Background(), ts.URL); err == nil {
		t.Error("expected error for 403 response")
	}
}

func TestDownloadEmptyBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer ts.Close()

	f := NewFetcher()
	if _, err := f.Download(context.Background(), ts.URL); err == nil {
		t.Error("expected error for empty body")
	}
}

func TestDownloadBase64(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte{0xff, 0xd8, 0xff}); err != nil {
			t.Errorf("write failed: %v", err)
		}
	}))
	defer ts.Close()

	f := NewFetcher()
	encoded, err := f.DownloadBase64(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("DownloadBase64() returned error: %v", err)
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("result is not valid base64: %v", err)
	}
	if len(decoded) != 3 || decoded[0] != 0xff {
		t.Errorf("unexpected decoded bytes: %v", decoded)
	}
}

func TestFetchPage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("<html>cams</html>")); err != nil {
			t.Errorf("write failed: %v", err)
		}
	}))
	defer ts.Close()

	f := NewFetcher()
	html, err := f.FetchPage(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("FetchPage() returned error: %v", err)
	}
	if html != "<html>cams</html>" {
		t.Errorf("unexpected page body: %q", html)
	}
}
