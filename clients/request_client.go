package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "storefront-service/errors"
	"storefront-service/logger"

	"github.com/google/uuid"
)

// Requester performs one call against the storefront API.
// A nil body means the request is sent without one.
type Requester interface {
	Do(ctx context.Context, method, path string, body interface{}) (*Response, error)
}

// MetricsRecorder receives one datapoint set per outbound call.
type MetricsRecorder interface {
	RecordCount(ctx context.Context, metricName string, dimensions map[string]string) error
	RecordLatency(ctx context.Context, metricName string, duration time.Duration, dimensions map[string]string) error
}

const (
	metricRequests = "UpstreamRequests"
	metricErrors   = "UpstreamErrors"
	metricLatency  = "UpstreamLatency"
)

// RequestClient resolves paths against a base URL, injects headers,
// serializes bodies and parses the response envelope.
type RequestClient struct {
	baseURL string
	headers http.Header
	client  *http.Client
	metrics MetricsRecorder
}

// RequestOption customizes a RequestClient
type RequestOption func(*RequestClient)

// WithHTTPClient replaces the underlying *http.Client
func WithHTTPClient(c *http.Client) RequestOption {
	return func(r *RequestClient) { r.client = c }
}

// WithHeader adds a header sent on every request
func WithHeader(key, value string) RequestOption {
	return func(r *RequestClient) { r.headers.Add(key, value) }
}

// WithMetrics records request count, errors and latency for every call
func WithMetrics(m MetricsRecorder) RequestOption {
	return func(r *RequestClient) { r.metrics = m }
}

func NewRequestClient(baseURL string, timeout time.Duration, opts ...RequestOption) *RequestClient {
	r := &RequestClient{
		baseURL: baseURL,
		headers: http.Header{},
		client:  &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *RequestClient) Do(ctx context.Context, method, path string, body interface{}) (*Response, error) {
	start := time.Now()
	resp, err := r.do(ctx, method, path, body)
	r.record(method, path, time.Since(start), err)
	return resp, err
}

func (r *RequestClient) do(ctx context.Context, method, path string, body interface{}) (*Response, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return nil, err
	}

	for k, v := range r.headers {
		for _, vv := range v {
			req.Header.Add(k, vv)
		}
	}
	for k, v := range headersFrom(ctx) {
		req.Header.Del(k)
		for _, vv := range v {
			req.Header.Add(k, vv)
		}
	}
	req.Header.Set("Accept", "application/json")
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if req.Header.Get("X-Request-ID") == "" {
		id, ok := logger.LookupRequestID(ctx)
		if !ok {
			id = uuid.NewString()
		}
		req.Header.Set("X-Request-ID", id)
	}

	httpResp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s request failed: %w", method, path, err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s response: %w", method, path, err)
	}

	resp := newResponse(httpResp.StatusCode, httpResp.Header, raw)
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, apperrors.FromStatus(httpResp.StatusCode, resp.Message, raw)
	}
	return resp, nil
}

// record pushes the datapoints in the background on a detached context.
func (r *RequestClient) record(method, path string, d time.Duration, err error) {
	if r.metrics == nil {
		return
	}
	dims := map[string]string{"Method": method, "Path": pathTemplate(path)}
	failed := err != nil

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = r.metrics.RecordCount(ctx, metricRequests, dims)
		_ = r.metrics.RecordLatency(ctx, metricLatency, d, dims)
		if failed {
			_ = r.metrics.RecordCount(ctx, metricErrors, dims)
		}
	}()
}

// pathTemplate replaces numeric segments with ":id" so metric dimensions
// stay bounded: /api/cart/99 -> /api/cart/:id.
func pathTemplate(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		if _, err := strconv.ParseInt(seg, 10, 64); err == nil {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}

type headersCtxKey struct{}

// WithHeaders returns a context whose requests carry the given headers,
// overriding the client-wide values of the same name.
func WithHeaders(ctx context.Context, h http.Header) context.Context {
	merged := headersFrom(ctx).Clone()
	if merged == nil {
		merged = http.Header{}
	}
	for k, v := range h {
		merged[http.CanonicalHeaderKey(k)] = append([]string(nil), v...)
	}
	return context.WithValue(ctx, headersCtxKey{}, merged)
}

func headersFrom(ctx context.Context) http.Header {
	h, _ := ctx.Value(headersCtxKey{}).(http.Header)
	return h
}
