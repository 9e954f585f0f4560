package downloader

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"adsgen/internal/core/domain"
)

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("video-bytes"))
	}))
	defer srv.Close()

	body, err := NewHTTPDownloader().Download(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(data) != "video-bytes" {
		t.Errorf("unexpected content %q", data)
	}
}

func TestDownload_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewHTTPDownloader().Download(context.Background(), srv.URL)
	var dlErr *domain.DownloadError
	if !errors.As(err, &dlErr) {
		t.Fatalf("expected DownloadError, got %T: %v", err, err)
	}
}

func TestDownload_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := NewHTTPDownloader().Download(context.Background(), srv.URL)
	var dlErr *domain.DownloadError
	if !errors.As(err, &dlErr) {
		t.Fatalf("expected DownloadError, got %T: %v", err, err)
	}
}
