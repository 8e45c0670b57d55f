package client

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/bookit/internal/common"
	"github.com/dmitrijs2005/bookit/internal/metrics"
	"golang.org/x/time/rate"
)

// bearerTransport sets the Authorization header from the request context.
// The outgoing request is cloned, so callers' requests are never mutated.
type bearerTransport struct {
	next http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, ok := AccessTokenFromContext(req.Context())
	if !ok {
		return t.next.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	return t.next.RoundTrip(r)
}

// throttleTransport waits on a token bucket before each request.
type throttleTransport struct {
	next    http.RoundTripper
	limiter *rate.Limiter
}

func (t *throttleTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.next.RoundTrip(req)
}

type operationKey struct{}

// metricsTransport reports status and latency per API operation.
type metricsTransport struct {
	next     http.RoundTripper
	recorder metrics.Recorder
}

func (t *metricsTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	op, _ := req.Context().Value(operationKey{}).(string)
	if op == "" {
		op = "unknown"
	}

	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	t.recorder.RecordRequest(op, status, time.Since(start))

	return resp, err
}
