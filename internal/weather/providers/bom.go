package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/station-observations/internal/resilience"
	"github.com/i474232898/station-observations/internal/weather"
)

// BOMProvider implements the weather.Fetcher interface for the Bureau of
// Meteorology observation JSON feed.
type BOMProvider struct {
	name      string
	baseURL   *url.URL
	userAgent string
	httpCfg   resilience.HTTPClientConfig
	circuit   *gobreaker.CircuitBreaker
}

// DefaultUserAgent is sent when no User-Agent is configured.
const DefaultUserAgent = "station-observations/1.0"

// NewBOMProvider creates a provider rooted at baseURL. The feed refuses requests
// that carry no User-Agent, so an empty userAgent falls back to DefaultUserAgent.
func NewBOMProvider(client *http.Client, baseURL, userAgent string) (*BOMProvider, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid bom base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid bom base url %q: scheme and host are required", baseURL)
	}
	if strings.TrimSpace(userAgent) == "" {
		userAgent = DefaultUserAgent
	}

	return &BOMProvider{
		name:      "bom",
		baseURL:   u,
		userAgent: userAgent,
		httpCfg: resilience.HTTPClientConfig{
			Client:  client,
			Backoff: resilience.DefaultBackoff,
		},
		circuit: resilience.NewBreaker("bom"),
	}, nil
}

func (p *BOMProvider) Name() string {
	return p.name
}

// WithBackoff overrides the retry policy.
func (p *BOMProvider) WithBackoff(b resilience.BackoffConfig) *BOMProvider {
	p.httpCfg.Backoff = b
	return p
}

// URLFor returns the absolute URL for relativePath. Any query string or fragment
// is dropped; the feed only serves plain paths.
func (p *BOMProvider) URLFor(relativePath string) string {
	path, _, _ := strings.Cut(relativePath, "?")
	path, _, _ = strings.Cut(path, "#")

	u := p.baseURL.JoinPath(path)
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

func (p *BOMProvider) Fetch(ctx context.Context, relativePath string) (*weather.Response, error) {
	target := p.URLFor(relativePath)

	buildRequest := func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodGet, target, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", p.userAgent)
		return req, nil
	}

	resp, err := resilience.Do(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", weather.ErrUpstreamNotFound, relativePath)
	}

	var payload weather.Response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode bom observations: %w", err)
	}
	return &payload, nil
}
