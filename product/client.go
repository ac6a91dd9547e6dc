package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
)

const (
	DefaultURLTemplate = "https://world.openfoodfacts.org/api/v2/product/{barcode}.json"
	DefaultUserAgent   = "ReGreenApp/1.0 - https://your-website.com (Contact: your-email@example.com)"
	DefaultTimeout     = 15 * time.Second
)

// BreakerOptions controls the circuit breaker in front of the upstream API.
type BreakerOptions struct {
	Enabled      bool
	MinRequests  uint32
	FailureRatio float64
	OpenTimeout  time.Duration
}

type Options struct {
	URLTemplate string
	UserAgent   string
	Timeout     time.Duration
	Breaker     BreakerOptions
}

// Client queries the Open Food Facts v2 product endpoint. One attempt per call.
type Client struct {
	rest        *resty.Client
	urlTemplate string
	breaker     *gobreaker.CircuitBreaker[Result]
}

type offResponse struct {
	Status        any    `json:"status"`
	StatusVerbose string `json:"status_verbose"`
	Product       Record `json:"product"`
}

// errUpstream marks outcomes that count against the breaker.
var errUpstream = errors.New("upstream failure")

func NewClient(opts Options) *Client {
	if opts.URLTemplate == "" {
		opts.URLTemplate = DefaultURLTemplate
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	rest := resty.New().
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", opts.UserAgent).
		SetHeader("Accept", "application/json")

	c := &Client{
		rest:        rest,
		urlTemplate: opts.URLTemplate,
	}
	if opts.Breaker.Enabled {
		c.breaker = newBreaker(opts.Breaker)
	}
	return c
}

func newBreaker(opts BreakerOptions) *gobreaker.CircuitBreaker[Result] {
	if opts.MinRequests == 0 {
		opts.MinRequests = 10
	}
	if opts.FailureRatio <= 0 || opts.FailureRatio > 1 {
		opts.FailureRatio = 0.5
	}
	if opts.OpenTimeout <= 0 {
		opts.OpenTimeout = 30 * time.Second
	}

	return gobreaker.NewCircuitBreaker[Result](gobreaker.Settings{
		Name:        "openfoodfacts",
		MaxRequests: 1,
		Timeout:     opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < opts.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= opts.FailureRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("circuit_breaker_state_change", "operation", name, "from", from.String(), "to", to.String())
		},
	})
}

// Lookup fetches the product for barcode. Failures are returned inside the Result.
func (c *Client) Lookup(ctx context.Context, barcode string) Result {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return failed(FailureMissingBarcode, nil)
	}

	slog.Info("product_lookup_started", "barcode", barcode)
	if c.breaker == nil {
		res, _ := c.fetch(ctx, barcode)
		return res
	}

	res, err := c.breaker.Execute(func() (Result, error) {
		return c.fetch(ctx, barcode)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		slog.Warn("product_lookup_rejected", "barcode", barcode, "error", err)
		return failed(FailureUnavailable, err)
	}
	return res
}

func (c *Client) fetch(ctx context.Context, barcode string) (Result, error) {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetPathParam("barcode", barcode).
		Get(c.urlTemplate)
	if err != nil {
		if isTimeout(err) {
			slog.Warn("product_lookup_failed", "barcode", barcode, "reason", FailureTimeout, "error", err)
			return failed(FailureTimeout, err), errUpstream
		}
		slog.Warn("product_lookup_failed", "barcode", barcode, "reason", FailureNetwork, "error", err)
		return failed(FailureNetwork, err), errUpstream
	}

	status := resp.StatusCode()
	slog.Info("product_lookup_response", "barcode", barcode, "status", status)
	switch {
	case status == http.StatusNotFound:
		return failed(FailureNotFoundStatus, nil), nil
	case !resp.IsSuccess():
		res := failed(FailureHTTPStatus, fmt.Errorf("openfoodfacts status: %s", resp.Status()))
		res.Failure.StatusCode = status
		if status >= http.StatusInternalServerError {
			return res, errUpstream
		}
		return res, nil
	}

	var body offResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		slog.Warn("product_lookup_failed", "barcode", barcode, "reason", FailureUnparseable, "error", err)
		return failed(FailureUnparseable, fmt.Errorf("decode product response: %w", err)), nil
	}
	if !statusFound(body.Status) || len(body.Product) == 0 {
		res := failed(FailureProductNotFound, nil)
		res.Failure.Verbose = body.StatusVerbose
		slog.Info("product_not_found", "barcode", barcode, "status_verbose", body.StatusVerbose)
		return res, nil
	}
	return found(body.Product), nil
}

// statusFound accepts 1 as a number or a string; the v2 API has returned both.
func statusFound(v any) bool {
	switch s := v.(type) {
	case float64:
		return s == 1
	case string:
		return strings.TrimSpace(s) == "1"
	default:
		return false
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
