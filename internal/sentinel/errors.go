package sentinel

import (
	"errors"
	"fmt"
)

// Kind is the closed error-variant enumeration from spec.md §7.
type Kind int

const (
	KindIO Kind = iota
	KindConfigParse
	KindHTTP
	KindHTTPHeader
	KindURLParse
	KindWS
	KindWSProtocol
	KindWSClosed
	KindJSON
	KindNoData
	KindNoSuchDevice
	KindOpFailed
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "IO"
	case KindConfigParse:
		return "ConfigParse"
	case KindHTTP:
		return "Http"
	case KindHTTPHeader:
		return "HttpHeader"
	case KindURLParse:
		return "UrlParse"
	case KindWS:
		return "Ws"
	case KindWSProtocol:
		return "WsProtocol"
	case KindWSClosed:
		return "WsClosed"
	case KindJSON:
		return "Json"
	case KindNoData:
		return "NoData"
	case KindNoSuchDevice:
		return "NoSuchDevice"
	case KindOpFailed:
		return "OpFailed"
	default:
		return "Unknown"
	}
}

// Error is the connector's single error type; Kind carries the taxonomy,
// Err the wrapped cause. errors.Is/errors.As work via Unwrap.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New wraps an existing error under the given Kind.
func New(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// Newf builds a new Error from a format string, analogous to fmt.Errorf.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// NoData reports an empty "latest record" fetch (spec.md §4.2, §8).
func NoData(msg string) *Error {
	return &Error{Kind: KindNoData, Err: errors.New(msg)}
}

// NoSuchDevice reports a record or lookup addressed at an unknown device id.
func NoSuchDevice(id DeviceId) *Error {
	return &Error{Kind: KindNoSuchDevice, Err: fmt.Errorf("no such device: %s", id)}
}

// OpFailed is the catch-all variant for conditions with no more specific
// Kind (spec.md §7).
func OpFailed(msg string) *Error {
	return &Error{Kind: KindOpFailed, Err: errors.New(msg)}
}

// Is reports whether err is a *Error of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
