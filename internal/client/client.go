// Package client is a Go client for the zone API, mirroring the browser
// client's contract: reads fail open to the built-in default document, and
// writes report a structured failure reason instead of returning an error.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"edudash/internal/content"
)

// Client talks to a running edudash server. The underlying HTTP client
// carries a cookie jar, so a successful Login authenticates later SaveZone
// calls.
type Client struct {
	baseURL string
	http    *http.Client
}

// SaveResult is the outcome of a zone write.
type SaveResult struct {
	OK    bool
	Error string
}

// New creates a client for the server at baseURL.
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: 15 * time.Second,
		},
	}, nil
}

// Login authenticates against the server and stores the session cookie.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/login", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		if payload.Error == "" {
			payload.Error = resp.Status
		}
		return fmt.Errorf("login rejected: %s", payload.Error)
	}
	return nil
}

// FetchZone reads the document under key ("" for the server default). A
// failed or empty read yields the built-in default document rather than an
// error.
func (c *Client) FetchZone(ctx context.Context, key string) content.ZoneData {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.zoneURL(key), nil)
	if err != nil {
		return content.DefaultDocument()
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return content.DefaultDocument()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return content.DefaultDocument()
	}

	var payload struct {
		Data *content.ZoneData `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Data == nil {
		return content.DefaultDocument()
	}
	return *payload.Data
}

// SaveZone writes the document under key. Requires a prior Login.
func (c *Client) SaveZone(ctx context.Context, doc content.ZoneData, key string) SaveResult {
	body, err := json.Marshal(map[string]interface{}{"key": key, "data": doc})
	if err != nil {
		return SaveResult{Error: "Failed to serialize document"}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/zone", bytes.NewReader(body))
	if err != nil {
		return SaveResult{Error: "Network error"}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return SaveResult{Error: "Network error"}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		if payload.Error == "" {
			payload.Error = "Failed to save"
		}
		return SaveResult{Error: payload.Error}
	}
	return SaveResult{OK: true}
}

func (c *Client) zoneURL(key string) string {
	if key == "" {
		return c.baseURL + "/api/zone"
	}
	params := url.Values{"key": {key}}
	return c.baseURL + "/api/zone?" + params.Encode()
}
