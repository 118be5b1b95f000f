// Package options validates the combination of command-line options before
// any file is touched.
package options

import (
	"fmt"

	"github.com/thirteen37/plistutil/internal/codec"
)

// Mode is the operation an invocation performs.
type Mode int

const (
	// ModeRead re-encodes the whole document.
	ModeRead Mode = iota
	// ModeGet prints the value at a path.
	ModeGet
	// ModeSet writes a value at a path and re-encodes the document.
	ModeSet
)

func (m Mode) String() string {
	switch m {
	case ModeGet:
		return "get"
	case ModeSet:
		return "set"
	default:
		return "read"
	}
}

// Options holds the raw options of one invocation. The Has* fields record
// whether the option was given at all, independent of its value.
type Options struct {
	File string

	Get    string
	Set    string
	Value  string
	Format string

	HasGet    bool
	HasSet    bool
	HasValue  bool
	HasFormat bool
}

// UsageError reports an invalid combination of options or arguments.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}

func usageError(format string, args ...any) *UsageError {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// Validate checks the option rules in order and reports the first violation.
func (o Options) Validate() error {
	switch {
	case o.HasGet && o.HasSet:
		return usageError("get and set are mutually exclusive operations")
	case o.HasGet && o.HasValue:
		return usageError("value only valid with set")
	case o.HasGet && o.HasFormat:
		return usageError("format not valid with get")
	case o.HasSet && !o.HasValue:
		return usageError("set requires value")
	case !o.HasSet && o.HasValue:
		return usageError("value requires set")
	}

	if o.HasFormat {
		if _, err := codec.ParseFormat(o.Format); err != nil {
			return &UsageError{Msg: err.Error()}
		}
	}
	return nil
}

// Mode returns the operation selected by the options. It assumes Validate
// succeeded.
func (o Options) Mode() Mode {
	switch {
	case o.HasGet:
		return ModeGet
	case o.HasSet:
		return ModeSet
	default:
		return ModeRead
	}
}
