package transport

import (
	"errors"
	"fmt"
)

// Kind classifies why a call failed.
type Kind int

const (
	// KindNetworkUnreachable means the request never got a response: DNS
	// failure, refused connection, socket timeout.
	KindNetworkUnreachable Kind = iota + 1
	// KindHTTP means the server answered with a non-2xx status.
	KindHTTP
	// KindParse means the response body was not valid JSON for the target.
	KindParse
	// KindRequest means the request could not be built, e.g. an unencodable body.
	KindRequest
)

func (k Kind) String() string {
	switch k {
	case KindNetworkUnreachable:
		return "network_unreachable"
	case KindHTTP:
		return "http"
	case KindParse:
		return "parse"
	case KindRequest:
		return "request"
	default:
		return "unknown"
	}
}

// Error is returned by Client.Send for every failed call.
type Error struct {
	Kind   Kind
	Status int
	Body   string
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindHTTP:
		return fmt.Sprintf("HTTP %d: %s", e.Status, e.Body)
	case KindNetworkUnreachable:
		return fmt.Sprintf("network request failed: %v", e.Err)
	case KindParse:
		return fmt.Sprintf("decoding response: %v", e.Err)
	default:
		return fmt.Sprintf("building request: %v", e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or 0 when err is not a transport error.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return 0
}

// IsNetworkUnreachable reports whether err means the server could not be reached at all.
func IsNetworkUnreachable(err error) bool {
	return KindOf(err) == KindNetworkUnreachable
}
