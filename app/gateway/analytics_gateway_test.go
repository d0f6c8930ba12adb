package gateway

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard-gateway/app/domain"
	"dashboard-gateway/app/port"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAnalyticsGateway_Get(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/index/overview", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"summary":{"lastClose":"22000.00"}}`))
	}))
	defer upstream.Close()

	g := NewAnalyticsGateway(upstream.URL, 5*time.Second, testLogger())

	result, err := g.Get(context.Background(), port.CapabilityIndexOverview, "")
	require.NoError(t, err)

	assert.JSONEq(t, `{"summary":{"lastClose":"22000.00"}}`, string(result.Body))
	assert.Equal(t, "application/json", result.ContentType)
}

func TestAnalyticsGateway_GetWithPathSuffix(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stock/RELIANCE", r.URL.Path)
		w.Write([]byte(`{}`))
	}))
	defer upstream.Close()

	g := NewAnalyticsGateway(upstream.URL, 5*time.Second, testLogger())

	_, err := g.Get(context.Background(), port.CapabilityStockAnalysis, "RELIANCE")
	require.NoError(t, err)
}

func TestAnalyticsGateway_PostForwardsPayloadVerbatim(t *testing.T) {
	payload := []byte(`{"symbol":"TCS","horizon":30}`)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predict", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, payload, body)

		w.Write([]byte(`{"prediction":[1,2,3]}`))
	}))
	defer upstream.Close()

	g := NewAnalyticsGateway(upstream.URL, 5*time.Second, testLogger())

	result, err := g.Post(context.Background(), port.CapabilityPrediction, payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"prediction":[1,2,3]}`, string(result.Body))
}

func TestAnalyticsGateway_UpstreamFailure(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-2xx response",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"detail":"boom"}`, http.StatusInternalServerError)
			},
		},
		{
			name: "bad request from upstream",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"detail":"threshold out of range"}`, http.StatusBadRequest)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := httptest.NewServer(tt.handler)
			defer upstream.Close()

			g := NewAnalyticsGateway(upstream.URL, 5*time.Second, testLogger())

			_, err := g.Post(context.Background(), port.CapabilityCorrelationNet, []byte(`{}`))
			// Every failure surfaces as the same generic upstream error.
			assert.ErrorIs(t, err, domain.ErrUpstream)
		})
	}
}

func TestAnalyticsGateway_UnreachableUpstream(t *testing.T) {
	// A closed server yields a connection error, not a panic or raw detail.
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close()

	g := NewAnalyticsGateway(upstream.URL, time.Second, testLogger())

	_, err := g.Get(context.Background(), port.CapabilityHealth, "")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestAnalyticsGateway_Timeout(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer upstream.Close()

	g := NewAnalyticsGateway(upstream.URL, 50*time.Millisecond, testLogger())

	start := time.Now()
	_, err := g.Get(context.Background(), port.CapabilitySectorOverview, "")

	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Less(t, time.Since(start), time.Second)
}

func TestAnalyticsGateway_ClientDisconnectCancels(t *testing.T) {
	started := make(chan struct{})

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer upstream.Close()

	g := NewAnalyticsGateway(upstream.URL, 10*time.Second, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := g.Get(ctx, port.CapabilityStockList, "")
		errCh <- err
	}()

	<-started
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, domain.ErrUpstream)
	case <-time.After(2 * time.Second):
		t.Fatal("upstream call was not cancelled")
	}
}
