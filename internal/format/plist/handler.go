// Package plist provides a property list format handler for plistutil.
//
// XML property lists are read and written with key order preserved. Binary
// property lists are read only; their dictionaries come back with sorted keys.
// OpenStep and GNUstep text property lists are not accepted because their
// bare-word syntax overlaps with JSON scalars.
package plist

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/thirteen37/plistutil/internal/format"
	howett "howett.net/plist"
)

// Name is the format name used on the command line.
const Name = "plist"

var binaryMagic = []byte("bplist")

// Handler implements format.Handler for property lists.
type Handler struct{}

// New creates a new property list handler.
func New() *Handler {
	return &Handler{}
}

// Name returns "plist".
func (h *Handler) Name() string {
	return Name
}

// Parse reads an XML or binary property list and returns the decoded tree.
// ParseOptions.StripComments has no effect: XML comments are always skipped.
func (h *Handler) Parse(data []byte, opts format.ParseOptions) (any, error) {
	if bytes.HasPrefix(data, binaryMagic) {
		tree, err := parseBinary(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse binary plist: %w", err)
		}
		return tree, nil
	}

	tree, err := parseXML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse plist: %w", err)
	}
	return tree, nil
}

// Serialize writes the tree as an XML property list.
func (h *Handler) Serialize(tree any, opts format.SerializeOptions) ([]byte, error) {
	w := &xmlWriter{indent: opts.IndentOrDefault()}
	w.buf.WriteString(xmlHeader)
	if err := w.write(tree, 1); err != nil {
		return nil, fmt.Errorf("failed to serialize plist: %w", err)
	}
	w.buf.WriteString("</plist>\n")
	return w.buf.Bytes(), nil
}

func parseBinary(data []byte) (any, error) {
	var raw any
	if _, err := howett.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return fromDecoded(raw), nil
}

// fromDecoded converts the howett.net/plist representation into the
// plistutil tree.
func fromDecoded(v any) any {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		result := format.NewMap()
		for _, k := range keys {
			result.Set(k, fromDecoded(val[k]))
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, item := range val {
			result[i] = fromDecoded(item)
		}
		return result
	case float32:
		return float64(val)
	case howett.UID:
		return uint64(val)
	default:
		return val
	}
}

// Ensure Handler implements format.Handler.
var _ format.Handler = (*Handler)(nil)
