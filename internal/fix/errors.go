// Package fix implements the FIX 4.2 wire codec used by the order-management
// simulator: framing, field parsing, and typed message encode/decode.
package fix

import "fmt"

// Kind enumerates the closed set of codec failure modes.
type Kind int

const (
	// KindIncompleteMessage means the buffer does not yet hold a full
	// framed message. Callers should wait for more bytes; it is never
	// surfaced as a session-level error.
	KindIncompleteMessage Kind = iota
	KindInvalidFormat
	KindMissingField
	KindInvalidValue
	KindUnsupportedMessageType
	KindChecksumMismatch
	KindParseDecimal
	KindParseInt
	KindBufferPoolExhausted
	KindBufferAdvance
)

func (k Kind) String() string {
	switch k {
	case KindIncompleteMessage:
		return "IncompleteMessage"
	case KindInvalidFormat:
		return "InvalidFormat"
	case KindMissingField:
		return "MissingField"
	case KindInvalidValue:
		return "InvalidValue"
	case KindUnsupportedMessageType:
		return "UnsupportedMessageType"
	case KindChecksumMismatch:
		return "ChecksumMismatch"
	case KindParseDecimal:
		return "ParseDecimal"
	case KindParseInt:
		return "ParseInt"
	case KindBufferPoolExhausted:
		return "BufferPoolExhausted"
	case KindBufferAdvance:
		return "BufferAdvance"
	default:
		return "Unknown"
	}
}

// Error is the codec's single error type. It never wraps a panic: every
// malformed-input path returns one of these instead.
type Error struct {
	Kind    Kind
	Tag     int    // set for MissingField / InvalidValue
	Value   string // set for InvalidValue
	Detail  string // free-form context, set for InvalidFormat and others
	Cause   error
	Expected int // set for ChecksumMismatch
	Actual   int // set for ChecksumMismatch
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindMissingField:
		return fmt.Sprintf("fix: missing field %d", e.Tag)
	case KindInvalidValue:
		return fmt.Sprintf("fix: invalid value for tag %d: %q", e.Tag, e.Value)
	case KindUnsupportedMessageType:
		return fmt.Sprintf("fix: unsupported msg_type %q", e.Value)
	case KindChecksumMismatch:
		return fmt.Sprintf("fix: checksum mismatch: expected %03d, got %03d", e.Expected, e.Actual)
	case KindInvalidFormat:
		return fmt.Sprintf("fix: invalid format: %s", e.Detail)
	case KindBufferAdvance:
		return fmt.Sprintf("fix: buffer advance past end: %s", e.Detail)
	default:
		if e.Detail != "" {
			return fmt.Sprintf("fix: %s: %s", e.Kind, e.Detail)
		}
		return fmt.Sprintf("fix: %s", e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

func errMissingField(tag int) error {
	return &Error{Kind: KindMissingField, Tag: tag}
}

func errInvalidValue(tag int, value string) error {
	return &Error{Kind: KindInvalidValue, Tag: tag, Value: value}
}

func errUnsupportedType(msgType string) error {
	return &Error{Kind: KindUnsupportedMessageType, Value: msgType}
}

func errInvalidFormat(detail string) error {
	return &Error{Kind: KindInvalidFormat, Detail: detail}
}

func errChecksumMismatch(expected, actual int) error {
	return &Error{Kind: KindChecksumMismatch, Expected: expected, Actual: actual}
}
