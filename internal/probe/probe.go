package probe

import (
	"crypto/x509"
	"errors"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/avela/imgcheck/internal/logger"
)

// DefaultRetries is the number of retries after the initial attempt.
const DefaultRetries = 2

// sleep is swapped out in tests to observe backoff without waiting.
var sleep = time.Sleep

// Prober performs single-URL liveness checks with a fixed per-request
// timeout. Safe for concurrent use.
type Prober struct {
	client  *http.Client
	retries int
}

// New creates a Prober with the given per-request timeout and number of
// retries after the initial attempt.
func New(timeout time.Duration, retries int) *Prober {
	return NewWithClient(&http.Client{Timeout: timeout}, retries)
}

// NewWithClient creates a Prober using the supplied HTTP client.
func NewWithClient(client *http.Client, retries int) *Prober {
	return &Prober{client: client, retries: retries}
}

// Check probes one URL and returns its outcome. Blank URLs are classified
// without touching the network. Transport failures are retried with linear
// backoff (0.5s, then 1.0s); the first response that arrives is trusted as
// final, whatever its status code.
func (p *Prober) Check(rawURL string) Outcome {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return EmptyOutcome()
	}

	var lastErr error
	for attempt := 0; attempt <= p.retries; attempt++ {
		status, err := p.attempt(trimmed)
		if err == nil {
			return StatusOutcome(status)
		}

		lastErr = err
		if attempt < p.retries {
			backoff := 500 * time.Millisecond * time.Duration(attempt+1)
			logger.Debug("Probe of %s failed (attempt %d/%d), retrying in %s: %v",
				trimmed, attempt+1, p.retries+1, backoff, err)
			sleep(backoff)
		}
	}

	kind := faultKind(lastErr)
	logger.Debug("Probe of %s exhausted retries: %s (%v)", trimmed, kind, lastErr)
	return ErrorOutcome(kind)
}

// attempt issues a HEAD request and, when the server rejects or mishandles
// HEAD (405, or any >=400 other than 404), re-checks with a GET. The GET
// body is discarded unread; only the status line matters. A HEAD-reported
// 404 is trusted without GET confirmation.
func (p *Prober) attempt(url string) (int, error) {
	resp, err := p.client.Head(url)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()

	status := resp.StatusCode
	if status == http.StatusMethodNotAllowed || (status >= 400 && status != http.StatusNotFound) {
		getResp, err := p.client.Get(url)
		if err != nil {
			return 0, err
		}
		getResp.Body.Close()
		status = getResp.StatusCode
	}

	return status, nil
}

// faultKind maps a transport error to a stable, human-readable category
// for the error sentinel.
func faultKind(err error) string {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "dns"
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return "connection_refused"
	}

	if errors.Is(err, syscall.ECONNRESET) {
		return "connection_reset"
	}

	var hostErr x509.HostnameError
	var authErr x509.UnknownAuthorityError
	if errors.As(err, &hostErr) || errors.As(err, &authErr) {
		return "tls"
	}

	if err != nil && strings.Contains(err.Error(), "redirects") {
		return "too_many_redirects"
	}

	return "network"
}
