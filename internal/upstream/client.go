// Package upstream talks to the Lightspeed retail API on behalf of the
// bridge, using whatever access token the lifecycle manager hands out.
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// APIError is a non-2xx Lightspeed response. The body is kept verbatim so
// handlers can surface it as the failure detail.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("lightspeed responded %d: %s", e.StatusCode, e.Body)
}

// Client handles communication with the Lightspeed API.
type Client struct {
	baseURL    string
	accountID  string
	httpClient *http.Client
}

// NewClient creates an upstream client for the given API base URL and
// Lightspeed account ID.
func NewClient(baseURL, accountID string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		accountID: accountID,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ListItems fetches the item matrix listing and returns the raw JSON body.
// A non-200 response becomes an APIError carrying the upstream body.
func (c *Client) ListItems(ctx context.Context, accessToken string) ([]byte, error) {
	url := fmt.Sprintf("%s/Account/%s/ItemMatrix.json", c.baseURL, c.accountID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
