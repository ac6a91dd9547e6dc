package product

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/saqibullah/regreen-backend/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts Options) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	opts.URLTemplate = server.URL + "/api/v2/product/{barcode}.json"
	return NewClient(opts)
}

func TestLookupReturnsProduct(t *testing.T) {
	var gotPath, gotAgent string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`{"status":1,"product":{"product_name":"Su","packaging_tags":["en:pet-bottle"]}}`))
	}, Options{})

	res := client.Lookup(context.Background(), "8690504000013")
	if !res.Found() {
		t.Fatalf("expected product, got failure %+v", res.Failure)
	}
	if name, _ := res.Product.String("product_name"); name != "Su" {
		t.Fatalf("unexpected product name %q", name)
	}
	if gotPath != "/api/v2/product/8690504000013.json" {
		t.Fatalf("unexpected request path %q", gotPath)
	}
	if gotAgent != DefaultUserAgent {
		t.Fatalf("expected identifying user agent, got %q", gotAgent)
	}
}

func TestLookupFailureKinds(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		kind    FailureKind
		message string
	}{
		{name: "http 404", status: http.StatusNotFound, body: `{"status":0}`, kind: FailureNotFoundStatus, message: "API 404"},
		{name: "http 503", status: http.StatusServiceUnavailable, body: "down", kind: FailureHTTPStatus, message: "(503)"},
		{name: "status zero", status: http.StatusOK, body: `{"status":0,"status_verbose":"product not found"}`, kind: FailureProductNotFound, message: "(product not found)"},
		{name: "missing product", status: http.StatusOK, body: `{"status":1}`, kind: FailureProductNotFound, message: "Ürün bulunamadı."},
		{name: "empty product", status: http.StatusOK, body: `{"status":1,"product":{}}`, kind: FailureProductNotFound, message: "bulunamadı"},
		{name: "html body", status: http.StatusOK, body: "<html>oops</html>", kind: FailureUnparseable, message: "işlenemedi"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}, Options{})

			res := client.Lookup(context.Background(), "123")
			if res.Found() || res.Failure == nil {
				t.Fatalf("expected failure, got product %+v", res.Product)
			}
			if res.Failure.Kind != tc.kind {
				t.Fatalf("expected kind %s, got %s", tc.kind, res.Failure.Kind)
			}
			if !strings.Contains(res.Failure.Message(), tc.message) {
				t.Fatalf("expected message containing %q, got %q", tc.message, res.Failure.Message())
			}
		})
	}
}

func TestLookupTimeout(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, Options{Timeout: 50 * time.Millisecond})

	res := client.Lookup(context.Background(), "123")
	if res.Failure == nil || res.Failure.Kind != FailureTimeout {
		t.Fatalf("expected timeout failure, got %+v", res.Failure)
	}
	if !strings.Contains(res.Failure.Message(), "zaman aşımı") {
		t.Fatalf("unexpected timeout message %q", res.Failure.Message())
	}
}

func TestLookupNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(Options{URLTemplate: url + "/api/v2/product/{barcode}.json"})
	res := client.Lookup(context.Background(), "123")
	if res.Failure == nil || res.Failure.Kind != FailureNetwork {
		t.Fatalf("expected network failure, got %+v", res.Failure)
	}
}

func TestLookupEmptyBarcodeSkipsRequest(t *testing.T) {
	var called atomic.Bool
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called.Store(true)
	}, Options{})

	res := client.Lookup(context.Background(), "  ")
	if res.Failure == nil || res.Failure.Kind != FailureMissingBarcode {
		t.Fatalf("expected missing barcode failure, got %+v", res.Failure)
	}
	if called.Load() {
		t.Fatalf("upstream must not be called for an empty barcode")
	}
}

func TestLookupOpensBreakerAfterServerErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}, Options{Breaker: BreakerOptions{
		Enabled:      true,
		MinRequests:  2,
		FailureRatio: 0.5,
		OpenTimeout:  time.Minute,
	}})

	for i := 0; i < 2; i++ {
		res := client.Lookup(context.Background(), "123")
		if res.Failure == nil || res.Failure.Kind != FailureHTTPStatus {
			t.Fatalf("expected http failure on attempt %d, got %+v", i, res.Failure)
		}
	}

	res := client.Lookup(context.Background(), "123")
	if res.Failure == nil || res.Failure.Kind != FailureUnavailable {
		t.Fatalf("expected open breaker, got %+v", res.Failure)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", calls.Load())
	}
}

func TestLookupNotFoundDoesNotTripBreaker(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, Options{Breaker: BreakerOptions{Enabled: true, MinRequests: 1, FailureRatio: 0.1}})

	for i := 0; i < 3; i++ {
		res := client.Lookup(context.Background(), "123")
		if res.Failure == nil || res.Failure.Kind != FailureNotFoundStatus {
			t.Fatalf("expected 404 failure on attempt %d, got %+v", i, res.Failure)
		}
	}
}

func TestDefaultConfigSendsOneRequestPerLookup(t *testing.T) {
	for _, key := range []string{"OFF_BREAKER_ENABLED", "OFF_BREAKER_MIN_REQUESTS", "OFF_BREAKER_FAILURE_RATIO"} {
		t.Setenv(key, "")
	}
	cfg := config.Load()

	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, Options{
		Timeout: 50 * time.Millisecond,
		Breaker: BreakerOptions{
			Enabled:      cfg.OFFBreakerEnabled,
			MinRequests:  uint32(cfg.OFFBreakerMinReqs),
			FailureRatio: cfg.OFFBreakerFailRatio,
			OpenTimeout:  cfg.OFFBreakerOpenFor,
		},
	})

	const lookups = 15
	for i := 0; i < lookups; i++ {
		res := client.Lookup(context.Background(), "123")
		if res.Failure == nil || res.Failure.Kind != FailureTimeout {
			t.Fatalf("lookup %d: expected timeout failure, got %+v", i, res.Failure)
		}
		if !strings.Contains(res.Failure.Message(), "zaman aşımı") {
			t.Fatalf("lookup %d: unexpected message %q", i, res.Failure.Message())
		}
	}
	deadline := time.Now().Add(2 * time.Second)
	for hits.Load() < lookups && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if got := hits.Load(); got != lookups {
		t.Fatalf("expected %d upstream requests, got %d", lookups, got)
	}
}
