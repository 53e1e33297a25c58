package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/marcus/bookmodal/internal/models"
)

// SignatureHeader carries the hex HMAC-SHA256 of the request body.
const SignatureHeader = "X-Bookmodal-Signature"

// Event is the envelope POSTed for each confirmed booking.
type Event struct {
	Type    string         `json:"type"`
	Booking models.Payload `json:"booking"`
}

// Client posts booking events to a single endpoint.
type Client struct {
	URL    string
	Secret string
	HTTP   *http.Client
}

// NewClient creates a client with a bounded request timeout.
func NewClient(url, secret string) *Client {
	return &Client{
		URL:    url,
		Secret: secret,
		HTTP:   &http.Client{Timeout: 10 * time.Second},
	}
}

// FromConfig builds a client from env/config, or returns nil when no URL is set.
func FromConfig(baseDir string) *Client {
	url := GetURL(baseDir)
	if url == "" {
		return nil
	}
	return NewClient(url, GetSecret(baseDir))
}

// Sign returns the hex-encoded HMAC-SHA256 of body.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks a signature produced by Sign.
func Verify(secret string, body []byte, signature string) bool {
	want, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hmac.Equal(mac.Sum(nil), want)
}

// Send POSTs the submission. Non-2xx responses are errors.
func (c *Client) Send(ctx context.Context, sub models.Submission) error {
	body, err := json.Marshal(Event{Type: "booking.requested", Booking: sub.Payload()})
	if err != nil {
		return fmt.Errorf("marshal booking event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Secret != "" {
		req.Header.Set(SignatureHeader, Sign(c.Secret, body))
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %s", resp.Status)
	}
	return nil
}

// Submit lets the client act as a submission collaborator.
func (c *Client) Submit(ctx context.Context, sub models.Submission) error {
	return c.Send(ctx, sub)
}
