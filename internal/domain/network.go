package domain

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
)

// NetErrorKind is a high-level classification of transport errors.
type NetErrorKind string

const (
	NetErrorUnknown NetErrorKind = "unknown"
	NetErrorTimeout NetErrorKind = "timeout"
	NetErrorDNS     NetErrorKind = "dns"
	NetErrorConn    NetErrorKind = "connection"
)

// ClassifyNetError maps a transport error to a NetErrorKind.
func ClassifyNetError(err error) NetErrorKind {
	if err == nil {
		return NetErrorUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NetErrorTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return NetErrorDNS
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return NetErrorTimeout
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.EPIPE) {
		return NetErrorConn
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return NetErrorConn
	}

	return NetErrorUnknown
}

// NetworkError wraps a transport failure with its classification.
func NetworkError(op string, err error) error {
	return &OpError{
		Op:   op,
		Kind: KindNetwork,
		Err:  fmt.Errorf("%s: %w", ClassifyNetError(err), err),
	}
}
