package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	nrpkg "github.com/mwangi/kodisha/internal/pkg/newrelic"
)

// Client is a generic HTTP client for communicating with external services
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new HTTP client
func NewClient(serviceURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		BaseURL: serviceURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetJSON performs a GET request and decodes the JSON response into out
func (c *Client) GetJSON(ctx context.Context, path string, headers map[string]string, out interface{}) (int, error) {
	return c.doJSON(ctx, http.MethodGet, path, nil, headers, out)
}

// PostJSON performs a POST request with a JSON body and decodes the response
func (c *Client) PostJSON(ctx context.Context, path string, body interface{}, headers map[string]string, out interface{}) (int, error) {
	return c.doJSON(ctx, http.MethodPost, path, body, headers, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body interface{}, headers map[string]string, out interface{}) (int, error) {
	url := c.BaseURL + path

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	var resp *http.Response
	err = nrpkg.WithExternalSegment(ctx, c.BaseURL, method, url, func() error {
		var doErr error
		resp, doErr = c.HTTPClient.Do(req)
		return doErr
	})
	if err != nil {
		return 0, fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			return resp.StatusCode, fmt.Errorf("failed to decode response from %s: %w", url, err)
		}
	}

	return resp.StatusCode, nil
}
