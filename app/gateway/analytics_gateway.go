package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"dashboard-gateway/app/domain"
	"dashboard-gateway/app/port"
)

// maxUpstreamResponse caps how much of an analytics response is read.
const maxUpstreamResponse = 16 << 20 // 16 MiB, correlation plots are large

// AnalyticsGateway implements port.AnalyticsGateway against the external
// analytics service over HTTP. One synchronous attempt per request; the
// client timeout bounds every capability uniformly.
type AnalyticsGateway struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewAnalyticsGateway creates a gateway for the analytics service at
// baseURL with the given per-request timeout.
func NewAnalyticsGateway(baseURL string, timeout time.Duration, logger *slog.Logger) *AnalyticsGateway {
	return &AnalyticsGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger.With("component", "analytics_gateway"),
	}
}

// Get issues a GET for the capability and returns the raw response body.
func (g *AnalyticsGateway) Get(ctx context.Context, capability port.Capability, pathSuffix string) (*port.ForwardResult, error) {
	url := g.capabilityURL(capability, pathSuffix)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		g.logger.Error("failed to build upstream request", "capability", capability, "error", err)
		return nil, domain.ErrUpstream
	}

	return g.do(req, capability)
}

// Post forwards the raw request body to the capability endpoint and returns
// the raw response body. The payload is not interpreted here.
func (g *AnalyticsGateway) Post(ctx context.Context, capability port.Capability, payload []byte) (*port.ForwardResult, error) {
	url := g.capabilityURL(capability, "")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		g.logger.Error("failed to build upstream request", "capability", capability, "error", err)
		return nil, domain.ErrUpstream
	}
	req.Header.Set("Content-Type", "application/json")

	return g.do(req, capability)
}

// do executes a single forwarding attempt. Network errors, timeouts and
// non-2xx responses all surface as domain.ErrUpstream; the detail stays in
// the server log.
func (g *AnalyticsGateway) do(req *http.Request, capability port.Capability) (*port.ForwardResult, error) {
	start := time.Now()

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Error("upstream call failed",
			"capability", capability,
			"error", err,
			"duration_ms", time.Since(start).Milliseconds())
		return nil, domain.ErrUpstream
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamResponse))
	if err != nil {
		g.logger.Error("failed to read upstream response", "capability", capability, "error", err)
		return nil, domain.ErrUpstream
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		g.logger.Error("upstream returned failure",
			"capability", capability,
			"status", resp.StatusCode,
			"body", truncate(string(body), 512))
		return nil, domain.ErrUpstream
	}

	g.logger.Debug("upstream call completed",
		"capability", capability,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}

	return &port.ForwardResult{
		Body:        body,
		ContentType: contentType,
	}, nil
}

func (g *AnalyticsGateway) capabilityURL(capability port.Capability, pathSuffix string) string {
	if pathSuffix != "" {
		return fmt.Sprintf("%s/%s/%s", g.baseURL, capability, pathSuffix)
	}
	return fmt.Sprintf("%s/%s", g.baseURL, capability)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
