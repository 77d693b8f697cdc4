package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout is the default timeout for provider requests.
const DefaultTimeout = 10 * time.Second

const (
	sourceLang = "de"
	targetLang = "en"
)

var (
	_ Provider = (*LibreTranslate)(nil)
	_ Provider = (*MyMemory)(nil)
)

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// LibreTranslate calls a LibreTranslate-compatible REST endpoint.
type LibreTranslate struct {
	client   *http.Client
	endpoint string
	apiKey   string
}

type libreRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type libreResponse struct {
	TranslatedText string `json:"translatedText"`
}

// NewLibreTranslate creates a provider posting to endpoint.
func NewLibreTranslate(endpoint, apiKey string, timeout time.Duration) *LibreTranslate {
	return &LibreTranslate{
		client:   newHTTPClient(timeout),
		endpoint: endpoint,
		apiKey:   apiKey,
	}
}

// Name returns provider name
func (p *LibreTranslate) Name() string {
	return "libretranslate"
}

// Translate posts text and returns translatedText.
func (p *LibreTranslate) Translate(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(libreRequest{
		Q:      text,
		Source: sourceLang,
		Target: targetLang,
		Format: "text",
		APIKey: p.apiKey,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	var out libreResponse
	if err := doJSON(p.client, req, &out); err != nil {
		return "", err
	}
	return out.TranslatedText, nil
}

// MyMemory calls the MyMemory query-parameter API.
type MyMemory struct {
	client   *http.Client
	endpoint string
	email    string
}

type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
}

// NewMyMemory creates a provider querying endpoint. A non-empty email raises
// the anonymous daily quota.
func NewMyMemory(endpoint, email string, timeout time.Duration) *MyMemory {
	return &MyMemory{
		client:   newHTTPClient(timeout),
		endpoint: endpoint,
		email:    email,
	}
}

// Name returns provider name
func (p *MyMemory) Name() string {
	return "mymemory"
}

// Translate queries text and returns responseData.translatedText.
func (p *MyMemory) Translate(ctx context.Context, text string) (string, error) {
	u, err := url.Parse(p.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint: %w", err)
	}
	q := u.Query()
	q.Set("q", text)
	q.Set("langpair", sourceLang+"|"+targetLang)
	if p.email != "" {
		q.Set("de", p.email)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}

	var out myMemoryResponse
	if err := doJSON(p.client, req, &out); err != nil {
		return "", err
	}
	return out.ResponseData.TranslatedText, nil
}

func doJSON(client *http.Client, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, req.URL.Host)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
