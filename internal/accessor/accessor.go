// Package accessor reads and writes values at paths inside a value tree.
//
// A segment is interpreted by the kind of node it is applied to: on a
// mapping it is a key, on a sequence it is an index when it is a canonical
// non-negative decimal ("0", "7", but not "07" or "+1").
package accessor

import (
	"fmt"
	"strconv"

	"github.com/iancoleman/orderedmap"
	"github.com/thirteen37/plistutil/internal/format"
	"github.com/thirteen37/plistutil/internal/path"
)

// Get extracts the value at p. The second result is false when any segment
// does not resolve: a missing key, an out-of-range or non-numeric index, or
// a scalar reached before the path ends. An empty path returns tree.
func Get(tree any, p path.Path) (any, bool) {
	current := tree
	for _, segment := range p.Segments() {
		switch format.KindOf(current) {
		case format.KindMapping:
			val, exists := format.ToOrderedMapPtr(current).Get(segment)
			if !exists {
				return nil, false
			}
			current = val
		case format.KindSequence:
			items := current.([]any)
			idx, ok := parseIndex(segment)
			if !ok || idx >= len(items) {
				return nil, false
			}
			current = items[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// MaxPadding is the largest number of nulls Set appends to a sequence to
// reach an index beyond its end.
const MaxPadding = 1 << 16

// Set assigns value at p and returns the updated tree.
//
// Missing intermediate nodes are created as mappings, and intermediate
// scalars are replaced by mappings. Sequences are indexed when the segment
// is an index, padding with nulls when it lies beyond the end; any other
// segment replaces the sequence with a mapping. An index needing more than
// MaxPadding nulls is a *path.PathError and leaves tree unchanged.
//
// The tree is modified in place, but the caller must use the returned root:
// it differs from tree when the root itself was replaced or grown.
func Set(tree any, p path.Path, value any) (any, error) {
	segments := p.Segments()
	if len(segments) == 0 {
		return tree, &path.PathError{Path: p, Reason: "empty path"}
	}
	root, reason := setAt(tree, segments, value)
	if reason != "" {
		return tree, &path.PathError{Path: p, Reason: reason}
	}
	return root, nil
}

// setAt returns the updated node, or a non-empty reason when the path
// cannot be applied. Nodes are only modified once the rest of the path has
// been applied successfully.
func setAt(node any, segments []string, value any) (any, string) {
	segment, rest := segments[0], segments[1:]

	switch format.KindOf(node) {
	case format.KindMapping:
		m := format.ToOrderedMapPtr(node)
		if reason := assign(m, segment, rest, value); reason != "" {
			return nil, reason
		}
		return m, ""
	case format.KindSequence:
		if idx, ok := parseIndex(segment); ok {
			items := node.([]any)
			if idx-len(items) >= MaxPadding {
				return nil, fmt.Sprintf("index %d too far beyond end of sequence of length %d", idx, len(items))
			}

			var child any
			if idx < len(items) {
				child = items[idx]
			}
			if len(rest) > 0 {
				var reason string
				if value, reason = setAt(child, rest, value); reason != "" {
					return nil, reason
				}
			}

			for len(items) <= idx {
				items = append(items, nil)
			}
			items[idx] = value
			return items, ""
		}
	}

	// Last writer wins: anything that cannot hold the segment is replaced.
	m := format.NewMap()
	if reason := assign(m, segment, rest, value); reason != "" {
		return nil, reason
	}
	return m, ""
}

func assign(m *orderedmap.OrderedMap, key string, rest []string, value any) string {
	if len(rest) > 0 {
		child, _ := m.Get(key)
		var reason string
		if value, reason = setAt(child, rest, value); reason != "" {
			return reason
		}
	}
	m.Set(key, value)
	return ""
}

// parseIndex accepts "0" or a decimal without leading zeros.
func parseIndex(segment string) (int, bool) {
	if segment == "" || len(segment) > 1 && segment[0] == '0' {
		return 0, false
	}
	for i := 0; i < len(segment); i++ {
		if segment[i] < '0' || segment[i] > '9' {
			return 0, false
		}
	}
	idx, err := strconv.Atoi(segment)
	if err != nil {
		return 0, false
	}
	return idx, true
}
