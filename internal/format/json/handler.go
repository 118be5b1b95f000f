// Package json provides a JSON format handler for plistutil.
package json

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/thirteen37/plistutil/internal/format"
	"github.com/tidwall/jsonc"
)

// Name is the format name used on the command line.
const Name = "json"

// Handler implements format.Handler for JSON/JSONC documents.
type Handler struct{}

// New creates a new JSON handler.
func New() *Handler {
	return &Handler{}
}

// Name returns "json".
func (h *Handler) Name() string {
	return Name
}

// StripComments removes // and /* */ comments and trailing commas from JSON.
// This allows parsing JSONC (JSON with comments) files.
func StripComments(data []byte) []byte {
	return jsonc.ToJSON(data)
}

// Parse reads JSON bytes and returns the decoded tree. Objects become
// *orderedmap.OrderedMap so key order survives a round trip; any JSON value
// is accepted at the top level.
func (h *Handler) Parse(data []byte, opts format.ParseOptions) (any, error) {
	if opts.StripComments {
		data = StripComments(data)
	}

	tree, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return tree, nil
}

// decode dispatches on the first significant byte so that objects nested in
// top-level arrays are decoded into ordered maps as well.
func decode(data []byte) (any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	switch trimmed[0] {
	case '{':
		m := format.NewMap()
		if err := json.Unmarshal(trimmed, m); err != nil {
			return nil, err
		}
		return format.Normalize(m), nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		result := make([]any, len(items))
		for i, item := range items {
			v, err := decode(item)
			if err != nil {
				return nil, err
			}
			result[i] = v
		}
		return result, nil
	default:
		var v any
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

// Serialize writes the tree to indented JSON bytes, preserving key order.
func (h *Handler) Serialize(tree any, opts format.SerializeOptions) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", opts.IndentOrDefault())

	// Encode adds the trailing newline
	if err := enc.Encode(tree); err != nil {
		return nil, fmt.Errorf("failed to serialize JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// Ensure Handler implements format.Handler.
var _ format.Handler = (*Handler)(nil)
