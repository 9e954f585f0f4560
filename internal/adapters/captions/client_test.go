package captions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"adsgen/internal/core/domain"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient("test-key", zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	client.baseURL = srv.URL
	return client
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient("", zerolog.Nop())
	var authErr *domain.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %T: %v", err, err)
	}
}

func TestSubmitJob(t *testing.T) {
	var gotPayload map[string]any
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != submitEndpoint {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected Authorization header %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"operationId": "op-123"})
	}))

	cfg := domain.ProductConfig{
		Script:      "A valid advertisement script.",
		CreatorName: "Jason",
		MediaURLs:   []string{"https://example.com/a.jpg"},
		Resolution:  domain.ResolutionFHD,
	}
	id, err := client.SubmitJob(context.Background(), cfg)
	if err != nil {
		t.Fatalf("SubmitJob: %v", err)
	}
	if id != "op-123" {
		t.Errorf("operation ID = %q, want op-123", id)
	}
	if gotPayload["creatorName"] != "Jason" || gotPayload["resolution"] != "fhd" {
		t.Errorf("unexpected payload: %v", gotPayload)
	}
	if _, present := gotPayload["webhookId"]; present {
		t.Error("nil webhookId must be omitted from the payload")
	}
}

func TestSubmitJob_NoOperationID(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))

	_, err := client.SubmitJob(context.Background(), domain.ProductConfig{})
	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		status int
		check  func(error) bool
	}{
		{http.StatusUnauthorized, func(err error) bool {
			var e *domain.AuthError
			return errors.As(err, &e)
		}},
		{http.StatusTooManyRequests, func(err error) bool {
			var e *domain.RateLimitError
			return errors.As(err, &e)
		}},
		{http.StatusPaymentRequired, func(err error) bool {
			var e *domain.APIError
			return errors.As(err, &e) && e.StatusCode == http.StatusPaymentRequired
		}},
		{http.StatusInternalServerError, func(err error) bool {
			var e *domain.APIError
			return errors.As(err, &e) && e.StatusCode == http.StatusInternalServerError
		}},
	}

	for _, c := range cases {
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(c.status)
		}))
		_, err := client.SubmitJob(context.Background(), domain.ProductConfig{})
		if err == nil || !c.check(err) {
			t.Errorf("status %d: wrong error %T: %v", c.status, err, err)
		}
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on

	client, err := NewClient("test-key", zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	client.baseURL = srv.URL

	_, err = client.GetJobStatus(context.Background(), "op-123")
	var netErr *domain.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %T: %v", err, err)
	}
}

func TestGetJobStatus(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != pollEndpoint {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var payload map[string]string
		json.NewDecoder(r.Body).Decode(&payload)
		if payload["operationId"] != "op-123" {
			t.Errorf("unexpected payload: %v", payload)
		}
		json.NewEncoder(w).Encode(map[string]string{
			"state": "COMPLETE",
			"url":   "https://cdn.example.com/video.mp4",
		})
	}))

	job, err := client.GetJobStatus(context.Background(), "op-123")
	if err != nil {
		t.Fatalf("GetJobStatus: %v", err)
	}
	if job.Status != domain.StatusComplete {
		t.Errorf("status = %q, want complete", job.Status)
	}
	if job.ResultURL != "https://cdn.example.com/video.mp4" {
		t.Errorf("unexpected result URL %q", job.ResultURL)
	}
}

func TestGetJobStatus_UnknownState(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"state": "EXPLODED"})
	}))

	_, err := client.GetJobStatus(context.Background(), "op-123")
	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
}

func TestListCreators_CachesForProcessLifetime(t *testing.T) {
	calls := 0
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != listCreatorsEndpoint {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		calls++
		json.NewEncoder(w).Encode(map[string]any{
			"supportedCreators": []string{"Jason", "Maya"},
			"thumbnails": map[string]any{
				"Jason": "https://cdn.example.com/jason.jpg",
				"Maya":  map[string]string{"small": "https://cdn.example.com/maya.jpg"},
			},
		})
	}))

	for i := 0; i < 3; i++ {
		creators, err := client.ListCreators(context.Background())
		if err != nil {
			t.Fatalf("ListCreators: %v", err)
		}
		if len(creators) != 2 {
			t.Fatalf("expected 2 creators, got %d", len(creators))
		}
		if creators[0].Name != "Jason" || creators[0].Thumbnail != "https://cdn.example.com/jason.jpg" {
			t.Errorf("unexpected creator %+v", creators[0])
		}
		// Non-string thumbnail payloads degrade to empty.
		if creators[1].Thumbnail != "" {
			t.Errorf("expected empty thumbnail, got %q", creators[1].Thumbnail)
		}
	}
	if calls != 1 {
		t.Errorf("expected 1 API call, got %d", calls)
	}
}
