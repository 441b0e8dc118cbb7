// Package diag carries non-fatal translation diagnostics.
//
// Producers report through a Sink so the translator holds no global output
// stream; the CLI decides where warnings end up (stderr, a JSON report, or an
// in-memory Collector in tests).
package diag

import "fmt"

// Code classifies a warning.
type Code uint8

const (
	// UnrecognizedConstruct is raised for events, tags or raw markup
	// fragments that no dialect table or whitelist entry covers.
	UnrecognizedConstruct Code = iota + 1
	// UnsupportedConstruct is raised when a recognized construct has no
	// equivalent in the target dialect.
	UnsupportedConstruct
	// EncodingRangeViolation is raised for output characters the target
	// forum cannot store.
	EncodingRangeViolation
)

func (c Code) String() string {
	switch c {
	case UnrecognizedConstruct:
		return "unrecognized_construct"
	case UnsupportedConstruct:
		return "unsupported_construct"
	case EncodingRangeViolation:
		return "encoding_range_violation"
	}
	return "unknown"
}

// Warning is a single human-readable diagnostic.
type Warning struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// Warnf builds a Warning with a formatted message.
func Warnf(code Code, format string, args ...any) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (w Warning) String() string {
	return "[[WARN]] " + w.Message
}

// MarshalText lets Code render by name in JSON reports.
func (c Code) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Code) UnmarshalText(text []byte) error {
	for k := UnrecognizedConstruct; k <= EncodingRangeViolation; k++ {
		if k.String() == string(text) {
			*c = k
			return nil
		}
	}
	return fmt.Errorf("unknown warning code %q", text)
}
