// Package format provides interfaces and helpers for the document formats
// plistutil reads and writes.
package format

// ParseOptions configures parsing behavior.
type ParseOptions struct {
	StripComments bool // Strip comments and trailing commas (JSON only)
}

// SerializeOptions configures serialization behavior.
type SerializeOptions struct {
	Indent string // Indentation string (e.g., "  " or "\t")
}

// DefaultIndent is used when SerializeOptions.Indent is empty.
const DefaultIndent = "  "

// Handler defines the interface for document format handlers.
//
// Every handler decodes into the same tree representation, so a tree parsed
// by one handler can be serialized by any other.
type Handler interface {
	// Name returns the format name as used on the command line.
	Name() string

	// Parse reads raw bytes and returns a generic tree structure.
	Parse(data []byte, opts ParseOptions) (any, error)

	// Serialize writes the tree back to bytes.
	Serialize(tree any, opts SerializeOptions) ([]byte, error)
}

// IndentOrDefault returns opts.Indent, or DefaultIndent when unset.
func (opts SerializeOptions) IndentOrDefault() string {
	if opts.Indent == "" {
		return DefaultIndent
	}
	return opts.Indent
}
