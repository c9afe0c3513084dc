// Package httpx provides the retrying HTTP client handed to the node's
// JSON-RPC transport.
package httpx

import (
	"bytes"
	"io"
	"math/rand"
	"net/http"
	"time"
)

type transport struct {
	base      http.RoundTripper
	retries   int
	userAgent string
}

// New builds an *http.Client with a per-request timeout and a transport that
// retries transient failures (network errors, 429, 5xx) with jittered
// exponential backoff. Retries require a rewindable body.
func New(timeout time.Duration, retries int) *http.Client {
	if retries < 0 {
		retries = 0
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &transport{
			base:      http.DefaultTransport,
			retries:   retries,
			userAgent: "ava-cli/1.0",
		},
	}
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", t.userAgent)
	}

	var lastErr error
	for attempt := 0; attempt <= t.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-req.Context().Done():
				return nil, req.Context().Err()
			case <-time.After(backoff(attempt)):
			}
		}

		attemptReq := req
		if req.Body != nil && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			attemptReq = req.Clone(req.Context())
			attemptReq.Body = body
		}

		resp, err := t.base.RoundTrip(attemptReq)
		if err != nil {
			lastErr = err
			if attempt < t.retries && req.GetBody != nil {
				continue
			}
			return nil, lastErr
		}

		if retryableStatus(resp.StatusCode) && attempt < t.retries && req.GetBody != nil {
			drain(resp)
			continue
		}
		return resp, nil
	}
	return nil, lastErr
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(nil))
}

func backoff(attempt int) time.Duration {
	base := 120 * time.Millisecond
	d := base * time.Duration(1<<uint(attempt-1))
	if d > 2*time.Second {
		d = 2 * time.Second
	}
	jitter := time.Duration(rand.Intn(75)) * time.Millisecond
	return d + jitter
}
