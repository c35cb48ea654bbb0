package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const requestTimeout = 10 * time.Second

// HTTPClient is the shared JSON-over-HTTP transport for upstream
// services such as the clinic records feed. Typed clients embed it and
// layer their endpoints and credential headers on top.
type HTTPClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewHTTPClient creates a client rooted at the service base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Request performs one JSON request against the service and decodes the
// reply into response when it is non-nil. A non-2xx reply surfaces as an
// error carrying the status and the response body, which the records
// service uses for its error payloads.
func (c *HTTPClient) Request(method, endpoint string, headers map[string]string, body interface{}, response interface{}) error {
	var requestBody []byte
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		requestBody = jsonBody
	}

	req, err := http.NewRequest(method, c.BaseURL+endpoint, bytes.NewBuffer(requestBody))
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", endpoint, err)
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %s: %s", res.Status, strings.TrimSpace(string(resBody)))
	}

	if response != nil {
		if err := json.Unmarshal(resBody, response); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}
