package ghl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// DefaultBaseURL is the GoHighLevel v1 REST endpoint.
const DefaultBaseURL = "https://rest.gohighlevel.com/v1"

// Client talks to the GoHighLevel contacts API with bearer-token
// authentication.
type Client struct {
	apiKey       string
	baseURL      string
	client       *http.Client
	apiCallCount int64
	apiCallMutex sync.Mutex
}

// Contact is the response shape of an upsert call. Only the fields the
// importer logs are decoded.
type Contact struct {
	ID          string   `json:"id"`
	LocationID  string   `json:"locationId"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Source      string   `json:"source"`
	DateUpdated string   `json:"dateUpdated"`
	Tags        []string `json:"tags"`
}

type upsertResponse struct {
	Contact Contact `json:"contact"`
}

func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// IncrementAPICall safely increments the API call counter
func (c *Client) IncrementAPICall() {
	c.apiCallMutex.Lock()
	c.apiCallCount++
	c.apiCallMutex.Unlock()
}

// GetAPICallCount returns the current API call count
func (c *Client) GetAPICallCount() int64 {
	c.apiCallMutex.Lock()
	defer c.apiCallMutex.Unlock()
	return c.apiCallCount
}

// ResetAPICallCount resets the API call counter to zero
func (c *Client) ResetAPICallCount() {
	c.apiCallMutex.Lock()
	c.apiCallCount = 0
	c.apiCallMutex.Unlock()
}

// UpsertContact creates or updates one contact. GHL matches the record
// server-side by email/phone, so repeated sends of the same row are
// idempotent. Any non-2xx response is returned as an error with the
// status and response body.
func (c *Client) UpsertContact(ctx context.Context, contact map[string]string) error {
	_, err := c.Upsert(ctx, contact)
	return err
}

// Upsert is UpsertContact with the decoded contact response.
func (c *Client) Upsert(ctx context.Context, contact map[string]string) (*Contact, error) {
	body, err := json.Marshal(contact)
	if err != nil {
		return nil, fmt.Errorf("failed to encode contact: %w", err)
	}

	url := c.baseURL + "/contacts/"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	// Increment API call counter
	c.IncrementAPICall()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var result upsertResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result.Contact, nil
}
