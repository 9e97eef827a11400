package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultMyMemoryURL is the public MyMemory translation endpoint.
	DefaultMyMemoryURL = "https://api.mymemory.translated.net"
	// DefaultTimeout bounds a single translation request.
	DefaultTimeout = 5 * time.Second
)

// MyMemoryClient implements Translator against the MyMemory REST API.
type MyMemoryClient struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewMyMemoryClient creates a client for the given endpoint. An empty
// baseURL selects the public API; a zero timeout selects DefaultTimeout.
func NewMyMemoryClient(baseURL string, timeout time.Duration) *MyMemoryClient {
	if baseURL == "" {
		baseURL = DefaultMyMemoryURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &MyMemoryClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        slog.Default().With("service", "translate"),
	}
}

// myMemoryResponse is the subset of the provider's response we consume.
type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	ResponseStatus any `json:"responseStatus"`
}

// Translate converts text between two language codes. Provider errors,
// timeouts, and malformed responses come back wrapping ErrUnavailable so
// callers can distinguish them from translator misuse.
func (c *MyMemoryClient) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if sourceLang == targetLang {
		return text, nil
	}

	params := url.Values{}
	params.Set("q", text)
	params.Set("langpair", sourceLang+"|"+targetLang)
	// Skip crowdsourced entries and force machine translation, matching
	// what the provider recommends for unattended use.
	params.Set("onlyprivate", "1")
	params.Set("mt", "1")

	reqURL := c.baseURL + "/get?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observeRequest(statusError, time.Since(start))
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		observeRequest(statusError, time.Since(start))
		return "", fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var mmResp myMemoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&mmResp); err != nil {
		observeRequest(statusError, time.Since(start))
		return "", fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}

	translated := strings.TrimSpace(mmResp.ResponseData.TranslatedText)
	if translated == "" {
		// The service answered but produced nothing usable for this text.
		observeRequest(statusEmpty, time.Since(start))
		return "", fmt.Errorf("provider returned no translation for %q pair", sourceLang+"|"+targetLang)
	}

	observeRequest(statusSuccess, time.Since(start))
	c.log.Debug("Translation completed",
		"source", sourceLang,
		"target", targetLang,
		"duration_ms", time.Since(start).Milliseconds())

	return translated, nil
}
