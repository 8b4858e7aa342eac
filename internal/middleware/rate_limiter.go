package middleware

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/fakhrymubarak/weather-cli/internal/config"
	"golang.org/x/time/rate"
)

// RateLimitedTransport paces outbound requests with one token bucket per host,
// so the free tiers of ip-api.com (45 req/min) and OpenWeatherMap are respected.
type RateLimitedTransport struct {
	next  http.RoundTripper
	limit rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter // key: host
}

// NewRateLimitedTransport wraps next. A nil next uses http.DefaultTransport.
func NewRateLimitedTransport(next http.RoundTripper, perSecond float64, burst int) *RateLimitedTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &RateLimitedTransport{
		next:     next,
		limit:    rate.Limit(perSecond),
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

// NewRateLimitedClient returns an http.Client paced with the configured rate and burst.
func NewRateLimitedClient() *http.Client {
	perSecond, burst := config.GetRateLimiterConfig()
	return &http.Client{
		Transport: NewRateLimitedTransport(http.DefaultTransport, perSecond, burst),
	}
}

// limiterFor returns the limiter for host, creating one if it does not exist.
func (t *RateLimitedTransport) limiterFor(host string) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.limiters[host]
	if !ok {
		l = rate.NewLimiter(t.limit, t.burst)
		t.limiters[host] = l
	}
	return l
}

// RoundTrip waits for a token for the request's host, then forwards the request.
// The wait ends early with an error if the request context is done.
func (t *RateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	host := req.URL.Host
	if err := t.limiterFor(host).Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("rate limit for %s: %w", host, err)
	}
	return t.next.RoundTrip(req)
}
