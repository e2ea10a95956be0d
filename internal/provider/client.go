package provider

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
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/phonelens/phonelens/pkg/version"
)

// client is the shared HTTP plumbing for concrete providers: auth headers,
// request signing and JSON decoding.
type client struct {
	cfg  Config
	http *http.Client
	log  zerolog.Logger

	now func() time.Time // for testing
}

func newClient(cfg Config, logger zerolog.Logger) client {
	cfg = cfg.withDefaults()
	return client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  logger.With().Str("component", "provider").Str("provider", cfg.Name).Logger(),
		now:  time.Now,
	}
}

// authHeaders builds the authentication headers for a request. Without an
// API key the request goes out bare; with a key and secret the request is
// additionally signed.
func (c *client) authHeaders() map[string]string {
	if c.cfg.APIKey == "" {
		return nil
	}

	headers := map[string]string{
		"Authorization": "Bearer " + c.cfg.APIKey,
		"User-Agent":    "phonelens/" + version.GetVersion(),
		"Content-Type":  "application/json",
	}

	if c.cfg.APISecret != "" {
		timestamp := strconv.FormatInt(c.now().Unix(), 10)
		headers["X-Timestamp"] = timestamp
		headers["X-Signature"] = c.sign(timestamp)
	}
	return headers
}

// sign computes the request signature: hex HMAC-SHA256 over the API key
// concatenated with the unix timestamp, keyed by the API secret.
func (c *client) sign(timestamp string) string {
	mac := hmac.New(sha256.New, []byte(c.cfg.APISecret))
	mac.Write([]byte(c.cfg.APIKey + timestamp))
	return hex.EncodeToString(mac.Sum(nil))
}

// getJSON performs an authenticated GET and decodes the JSON response.
func (c *client) getJSON(ctx context.Context, url string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	return c.doJSON(req)
}

// postJSON performs an authenticated POST with a JSON body and decodes the
// JSON response.
func (c *client) postJSON(ctx context.Context, url string, body any) (map[string]any, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doJSON(req)
}

func (c *client) doJSON(req *http.Request) (map[string]any, error) {
	for key, value := range c.authHeaders() {
		req.Header.Set(key, value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return decoded, nil
}

// getOr returns raw[key] if present and non-nil, else fallback.
func getOr(raw map[string]any, key string, fallback any) any {
	if v, ok := raw[key]; ok && v != nil {
		return v
	}
	return fallback
}
