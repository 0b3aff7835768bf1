package resilience

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"
)

// droppedConnErrnos are socket errors after which a fresh request usually
// succeeds.
var droppedConnErrnos = []syscall.Errno{
	syscall.ECONNRESET,
	syscall.ECONNREFUSED,
	syscall.ECONNABORTED,
	syscall.EPIPE,
}

// IsTransient reports whether a transport failure looks temporary: a
// timeout, a dropped or refused connection, a temporary DNS failure, or a
// response cut short. Cancellation is never transient.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsTemporary {
		return true
	}
	for _, errno := range droppedConnErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	// net/http reports these without a typed cause.
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "server closed idle connection") ||
		strings.Contains(msg, "tls handshake timeout")
}

// IsTransientHTTPStatus reports whether a response status is worth
// retrying. 401 is final: the credential has to be replaced first.
func IsTransientHTTPStatus(status int) bool {
	switch status {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
