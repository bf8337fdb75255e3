// Package phone talks to the api-ninjas phone validation API, which is the
// only source of a contact's timezone.
package phone

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/agenda/agenda-service/pkg/metrics"
)

const DefaultURL = "https://api.api-ninjas.com/v1/validatephone"

var (
	ErrMissingAPIKey     = errors.New("phone api key is not configured")
	ErrMalformedResponse = errors.New("malformed phone api response")
)

// StatusError is returned when the API answers with anything but 200.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("phone api returned %d: %s", e.Code, e.Body)
}

// Client resolves phone numbers to timezones. The API key is only checked
// when a lookup is attempted.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &Client{baseURL: baseURL, apiKey: apiKey, http: &http.Client{Timeout: timeout}}
}

type validateResponse struct {
	Timezones *[]string `json:"timezones"`
}

// Timezone returns the first timezone the API reports for number. An empty
// timezones array yields "".
func (c *Client) Timezone(ctx context.Context, number string) (string, error) {
	tz, err := c.lookup(ctx, number)
	if err != nil {
		metrics.PhoneLookups.WithLabelValues("error").Inc()
		return "", err
	}
	metrics.PhoneLookups.WithLabelValues("ok").Inc()
	return tz, nil
}

func (c *Client) lookup(ctx context.Context, number string) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse phone api url: %w", err)
	}
	q := u.Query()
	q.Set("number", number)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("phone api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &StatusError{Code: resp.StatusCode, Body: string(b)}
	}
	var vr validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if vr.Timezones == nil {
		return "", fmt.Errorf("%w: no timezones field", ErrMalformedResponse)
	}
	if len(*vr.Timezones) == 0 {
		return "", nil
	}
	return (*vr.Timezones)[0], nil
}
