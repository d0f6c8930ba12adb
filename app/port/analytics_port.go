package port

import "context"

// Capability names one analytics operation exposed by the ML service.
type Capability string

const (
	CapabilityIndexOverview     Capability = "index/overview"
	CapabilityStockList         Capability = "stocks/list"
	CapabilityStockAnalysis     Capability = "stock"
	CapabilitySectorOverview    Capability = "sector/overview"
	CapabilityPrediction        Capability = "predict"
	CapabilityPortfolioOptimize Capability = "portfolio/optimize"
	CapabilityCorrelationNet    Capability = "correlation/network"
	CapabilityCorrelationPlot   Capability = "correlation/plot"
	CapabilityHealth            Capability = "health"
)

// ForwardResult is the verbatim upstream response: raw body plus the
// content type to relay (most capabilities return JSON, the correlation
// plot returns a PNG).
type ForwardResult struct {
	Body        []byte
	ContentType string
}

// AnalyticsGateway defines the forwarding interface to the external
// analytics service. Payloads are opaque; this layer never interprets
// their numeric content.
type AnalyticsGateway interface {
	// Get issues a GET for the capability (path may carry a suffix such as
	// a stock symbol) and returns the raw response.
	Get(ctx context.Context, capability Capability, pathSuffix string) (*ForwardResult, error)
	// Post forwards the raw request body to the capability endpoint and
	// returns the raw response.
	Post(ctx context.Context, capability Capability, payload []byte) (*ForwardResult, error)
}
