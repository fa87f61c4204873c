package transport

import (
	"fmt"
	"sync/atomic"
	"time"

	"logward/core"
	"logward/format"
	"logward/level"

	"github.com/lixenwraith/log"
	"github.com/sony/gobreaker/v2"
	"github.com/valyala/fasthttp"
)

// StatusError reports a non-2xx response from a remote log endpoint.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned status %d: %s", e.Code, e.Body)
}

// Terminal reports whether the response is a 4xx-class rejection that must
// not be retried.
func (e *StatusError) Terminal() bool {
	return e.Code >= 400 && e.Code < 500
}

// HTTPOptions configures an HTTP client transport.
type HTTPOptions struct {
	// URL is the remote endpoint entries are POSTed to.
	URL string
	// Level is the transport's own threshold; Unset inherits the logger's.
	Level level.Level
	// Timeout bounds each request. Defaults to 10s.
	Timeout time.Duration
	// Headers are added to every request.
	Headers map[string]string
	// EnableBreaker trips a circuit breaker on consecutive send failures
	// so a dead endpoint stops consuming connections.
	EnableBreaker bool
}

// HTTPTransport posts entries to a remote endpoint as JSON. It is normally
// wrapped in a batching transport; DeliverBatch posts a whole batch as one
// JSON array request.
type HTTPTransport struct {
	name      string
	opts      HTTPOptions
	client    *fasthttp.Client
	formatter format.BatchFormatter
	breaker   *gobreaker.CircuitBreaker[int]
	logger    *log.Logger

	// Statistics
	totalSent   atomic.Uint64
	totalFailed atomic.Uint64
}

// NewHTTP creates an HTTP client transport.
func NewHTTP(name string, opts HTTPOptions, logger *log.Logger) (*HTTPTransport, error) {
	if opts.URL == "" {
		return nil, fmt.Errorf("http transport requires a URL")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = log.NewLogger()
	}
	if name == "" {
		name = "http"
	}

	h := &HTTPTransport{
		name:      name,
		opts:      opts,
		formatter: format.NewJSON(format.Options{}),
		logger:    logger,
		client: &fasthttp.Client{
			MaxConnsPerHost:     10,
			MaxIdleConnDuration: 10 * time.Second,
			ReadTimeout:         opts.Timeout,
			WriteTimeout:        opts.Timeout,
		},
	}

	if opts.EnableBreaker {
		h.breaker = gobreaker.NewCircuitBreaker[int](gobreaker.Settings{
			Name: name,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		})
	}

	return h, nil
}

func (h *HTTPTransport) Name() string { return h.name }

func (h *HTTPTransport) Level() level.Level { return h.opts.Level }

// Deliver posts a single entry.
func (h *HTTPTransport) Deliver(e *core.Entry) error {
	body, err := h.formatter.Format(e)
	if err != nil {
		return fmt.Errorf("failed to encode entry: %w", err)
	}
	return h.send(body)
}

// DeliverBatch posts a whole batch as one JSON array.
func (h *HTTPTransport) DeliverBatch(entries []*core.Entry) error {
	body, err := h.formatter.FormatBatch(entries)
	if err != nil {
		return fmt.Errorf("failed to encode batch: %w", err)
	}
	return h.send(body)
}

func (h *HTTPTransport) send(body []byte) error {
	var err error
	if h.breaker != nil {
		_, err = h.breaker.Execute(func() (int, error) {
			return h.post(body)
		})
	} else {
		_, err = h.post(body)
	}

	if err != nil {
		h.totalFailed.Add(1)
		return err
	}
	h.totalSent.Add(1)
	return nil
}

func (h *HTTPTransport) post(body []byte) (int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(h.opts.URL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	for k, v := range h.opts.Headers {
		req.Header.Set(k, v)
	}
	req.SetBody(body)

	if err := h.client.DoTimeout(req, resp, h.opts.Timeout); err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}

	status := resp.StatusCode()
	if status >= 200 && status < 300 {
		return status, nil
	}
	return status, &StatusError{Code: status, Body: string(resp.Body())}
}

// Stats returns send counters.
func (h *HTTPTransport) Stats() map[string]any {
	return map[string]any{
		"type":         "http",
		"url":          h.opts.URL,
		"total_sent":   h.totalSent.Load(),
		"total_failed": h.totalFailed.Load(),
	}
}
