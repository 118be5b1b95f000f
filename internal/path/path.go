// Package path provides path selector abstractions for navigating value trees.
package path

import (
	"encoding/json"
	"strings"
)

// Path represents a selector for navigating a value tree.
type Path interface {
	// Segments returns the path as a slice of string keys.
	Segments() []string

	// String returns a canonical string representation.
	String() string
}

// ArrayPath is a path specified as an ordered list of string segments.
// Example: ["CFBundleURLTypes", "0", "CFBundleURLName"]
type ArrayPath struct {
	segments []string
}

// NewArrayPath creates a new ArrayPath from string segments.
func NewArrayPath(segments []string) *ArrayPath {
	return &ArrayPath{segments: segments}
}

// ParseComma parses a comma-delimited path, trimming whitespace around
// each segment. Every string is a valid path: "" yields one empty segment.
// Example input: "CFBundleURLTypes, 0, CFBundleURLName"
func ParseComma(s string) *ArrayPath {
	parts := strings.Split(s, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return &ArrayPath{segments: parts}
}

// Segments returns the path segments.
func (p *ArrayPath) Segments() []string {
	return p.segments
}

// String returns the path as a JSON array string.
func (p *ArrayPath) String() string {
	if len(p.segments) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(p.segments)
	return string(data)
}

// PathError reports a path that cannot be used for the requested operation.
type PathError struct {
	Path   Path
	Reason string
}

func (e *PathError) Error() string {
	if e.Path == nil {
		return "invalid path: " + e.Reason
	}
	return "invalid path " + e.Path.String() + ": " + e.Reason
}
