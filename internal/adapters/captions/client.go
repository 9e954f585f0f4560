package captions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"adsgen/internal/core/domain"
)

const (
	defaultBaseURL = "https://api.captions.ai"
	userAgent      = "ads-cli/1.0"

	submitEndpoint       = "/api/ads/submit"
	pollEndpoint         = "/api/ads/poll"
	listCreatorsEndpoint = "/api/ads/list-creators"
)

// Client implements ports.AdsAPI against the Captions AI Ads REST API.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  zerolog.Logger

	// creators are reference data, fetched once per process.
	mu       sync.Mutex
	creators []domain.Creator
}

// NewClient creates a Client authenticating with the given API key.
func NewClient(apiKey string, logger zerolog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, &domain.AuthError{
			Message: "API key is required, set CAPTIONS_API_KEY or pass -api-key",
		}
	}
	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 5 * time.Minute,
		},
		logger: logger,
	}, nil
}

// SubmitJob submits the configuration and returns the operation ID.
func (c *Client) SubmitJob(ctx context.Context, cfg domain.ProductConfig) (string, error) {
	c.logger.Info().Str("creator", cfg.CreatorName).Msg("submitting ad generation job")

	body, err := c.post(ctx, submitEndpoint, cfg)
	if err != nil {
		return "", err
	}

	var resp struct {
		OperationID string `json:"operationId"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &domain.APIError{Message: fmt.Sprintf("malformed submit response: %v", err)}
	}
	if resp.OperationID == "" {
		return "", &domain.APIError{Message: "no operation ID received from API"}
	}

	c.logger.Info().Str("operation_id", resp.OperationID).Msg("job created")
	return resp.OperationID, nil
}

// GetJobStatus fetches the current state of a job.
func (c *Client) GetJobStatus(ctx context.Context, operationID string) (*domain.GenerationJob, error) {
	payload := map[string]string{"operationId": operationID}
	body, err := c.post(ctx, pollEndpoint, payload)
	if err != nil {
		return nil, err
	}

	var resp struct {
		State string `json:"state"`
		URL   string `json:"url"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &domain.APIError{Message: fmt.Sprintf("malformed poll response: %v", err)}
	}

	status, err := domain.ParseJobStatus(resp.State)
	if err != nil {
		return nil, &domain.APIError{Message: err.Error()}
	}

	return &domain.GenerationJob{
		OperationID: operationID,
		Status:      status,
		ResultURL:   resp.URL,
		Error:       resp.Error,
	}, nil
}

// ListCreators returns the available AI creators, cached for the
// lifetime of the client.
func (c *Client) ListCreators(ctx context.Context) ([]domain.Creator, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.creators != nil {
		return c.creators, nil
	}

	body, err := c.post(ctx, listCreatorsEndpoint, nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		SupportedCreators []string       `json:"supportedCreators"`
		Thumbnails        map[string]any `json:"thumbnails"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &domain.APIError{Message: fmt.Sprintf("malformed creators response: %v", err)}
	}

	creators := make([]domain.Creator, 0, len(resp.SupportedCreators))
	for _, name := range resp.SupportedCreators {
		thumb, _ := resp.Thumbnails[name].(string)
		creators = append(creators, domain.Creator{Name: name, Thumbnail: thumb})
	}

	c.creators = creators
	return creators, nil
}

// post sends a JSON request and maps the response onto the error taxonomy.
func (c *Client) post(ctx context.Context, endpoint string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug().Str("endpoint", endpoint).Msg("calling API")
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &domain.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.NetworkError{Err: err}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, &domain.AuthError{}
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &domain.RateLimitError{}
	case resp.StatusCode == http.StatusPaymentRequired:
		return nil, &domain.APIError{
			StatusCode: resp.StatusCode,
			Message:    "insufficient credits, please purchase more credits",
		}
	}
	return nil, &domain.APIError{
		StatusCode: resp.StatusCode,
		Message:    excerpt(body),
	}
}

func excerpt(body []byte) string {
	const max = 200
	s := string(bytes.TrimSpace(body))
	if len(s) > max {
		s = s[:max] + "..."
	}
	if s == "" {
		s = "no response body"
	}
	return s
}
