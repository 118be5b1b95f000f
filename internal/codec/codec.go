// Package codec decodes documents into value trees and encodes them back,
// trying the property list format first and falling back to JSON.
package codec

import (
	"bytes"
	"fmt"

	"github.com/thirteen37/plistutil/internal/format"
	"github.com/thirteen37/plistutil/internal/format/json"
	"github.com/thirteen37/plistutil/internal/format/plist"
)

// Format names an output encoding.
type Format string

const (
	FormatPlist Format = plist.Name
	FormatJSON  Format = json.Name
)

// DefaultFormat is used when no output format is requested.
const DefaultFormat = FormatPlist

// handlers are the registered format handlers, in decode order.
var handlers = []format.Handler{plist.New(), json.New()}

var utf8BOM = []byte("\xef\xbb\xbf")

// Formats lists the supported output formats.
func Formats() []Format {
	formats := make([]Format, len(handlers))
	for i, h := range handlers {
		formats[i] = Format(h.Name())
	}
	return formats
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats() {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format %q (want plist or json)", name)
}

// DecodeError is returned when a document is neither a property list nor JSON.
type DecodeError struct {
	PlistErr error
	JSONErr  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("document is neither a property list (%v) nor JSON (%v)", e.PlistErr, e.JSONErr)
}

// Handler returns the format handler for f.
func Handler(f Format) (format.Handler, error) {
	for _, h := range handlers {
		if h.Name() == string(f) {
			return h, nil
		}
	}
	return nil, fmt.Errorf("unsupported format %q (want plist or json)", string(f))
}

// Decode parses data as a property list, then as JSON. A leading UTF-8 byte
// order mark is ignored. The returned tree does not record which format
// matched.
func Decode(data []byte, opts format.ParseOptions) (any, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	tree, plistErr := plist.New().Parse(data, opts)
	if plistErr == nil {
		return tree, nil
	}

	tree, jsonErr := json.New().Parse(data, opts)
	if jsonErr == nil {
		return tree, nil
	}

	return nil, &DecodeError{PlistErr: plistErr, JSONErr: jsonErr}
}

// Encode serializes tree in format f.
func Encode(tree any, f Format, opts format.SerializeOptions) ([]byte, error) {
	h, err := Handler(f)
	if err != nil {
		return nil, err
	}
	return h.Serialize(tree, opts)
}

// ParseValue decodes a JSON literal, as given on the command line, into a
// tree value.
func ParseValue(text string) (any, error) {
	return json.New().Parse([]byte(text), format.ParseOptions{})
}
