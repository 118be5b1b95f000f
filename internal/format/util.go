package format

import (
	"bytes"
	"math"
	"strconv"
	"time"

	"github.com/iancoleman/orderedmap"
)

// Kind tags the variants a value tree node can take.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindDate
	KindData
	KindSequence
	KindMapping
	// KindUnknown marks a Go value outside the tree representation.
	KindUnknown
)

var kindNames = [...]string{
	KindNull:     "null",
	KindBool:     "bool",
	KindNumber:   "number",
	KindString:   "string",
	KindDate:     "date",
	KindData:     "data",
	KindSequence: "sequence",
	KindMapping:  "mapping",
	KindUnknown:  "unknown",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// KindOf returns the variant of v.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindNumber
	case string:
		return KindString
	case time.Time:
		return KindDate
	case []byte:
		return KindData
	case []any:
		return KindSequence
	case *orderedmap.OrderedMap, orderedmap.OrderedMap:
		return KindMapping
	default:
		return KindUnknown
	}
}

// NewMap returns an empty ordered map configured for plistutil output.
func NewMap() *orderedmap.OrderedMap {
	m := orderedmap.New()
	m.SetEscapeHTML(false)
	return m
}

// ToOrderedMapPtr converts both value and pointer types of OrderedMap to a pointer.
// Returns nil if the value is not an OrderedMap.
func ToOrderedMapPtr(v any) *orderedmap.OrderedMap {
	switch val := v.(type) {
	case *orderedmap.OrderedMap:
		return val
	case orderedmap.OrderedMap:
		return &val
	default:
		return nil
	}
}

// Normalize rewrites v so every mapping is a *orderedmap.OrderedMap.
// orderedmap stores nested objects by value when unmarshaling JSON;
// traversal code relies on pointers so that mutations stick.
func Normalize(v any) any {
	switch val := v.(type) {
	case *orderedmap.OrderedMap:
		return normalizeMap(val)
	case orderedmap.OrderedMap:
		return normalizeMap(&val)
	case []any:
		for i, item := range val {
			val[i] = Normalize(item)
		}
		return val
	default:
		return val
	}
}

func normalizeMap(m *orderedmap.OrderedMap) *orderedmap.OrderedMap {
	result := NewMap()
	for _, k := range m.Keys() {
		child, _ := m.Get(k)
		result.Set(k, Normalize(child))
	}
	return result
}

// Equal reports whether a and b hold the same tree. Numbers compare by
// value regardless of their Go type, and mappings compare key-wise without
// regard to order.
func Equal(a, b any) bool {
	ka, kb := KindOf(a), KindOf(b)
	if ka != kb {
		return false
	}

	switch ka {
	case KindNull:
		return true
	case KindNumber:
		return numbersEqual(a, b)
	case KindDate:
		return a.(time.Time).Equal(b.(time.Time))
	case KindData:
		return bytes.Equal(a.([]byte), b.([]byte))
	case KindSequence:
		sa, sb := a.([]any), b.([]any)
		if len(sa) != len(sb) {
			return false
		}
		for i := range sa {
			if !Equal(sa[i], sb[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		ma, mb := ToOrderedMapPtr(a), ToOrderedMapPtr(b)
		if len(ma.Keys()) != len(mb.Keys()) {
			return false
		}
		for _, k := range ma.Keys() {
			va, _ := ma.Get(k)
			vb, ok := mb.Get(k)
			if !ok || !Equal(va, vb) {
				return false
			}
		}
		return true
	case KindUnknown:
		return false
	default:
		return a == b
	}
}

// numberValue splits a number into its integer form (when exact) and its
// float64 approximation.
type numberValue struct {
	isInt    bool
	negative bool
	mag      uint64 // magnitude when isInt
	f        float64
}

func toNumber(v any) numberValue {
	switch n := v.(type) {
	case int:
		return fromInt64(int64(n))
	case int8:
		return fromInt64(int64(n))
	case int16:
		return fromInt64(int64(n))
	case int32:
		return fromInt64(int64(n))
	case int64:
		return fromInt64(n)
	case uint:
		return numberValue{isInt: true, mag: uint64(n), f: float64(n)}
	case uint8:
		return numberValue{isInt: true, mag: uint64(n), f: float64(n)}
	case uint16:
		return numberValue{isInt: true, mag: uint64(n), f: float64(n)}
	case uint32:
		return numberValue{isInt: true, mag: uint64(n), f: float64(n)}
	case uint64:
		return numberValue{isInt: true, mag: n, f: float64(n)}
	case float32:
		return fromFloat(float64(n))
	case float64:
		return fromFloat(n)
	}
	return numberValue{f: math.NaN()}
}

func fromInt64(n int64) numberValue {
	if n < 0 {
		return numberValue{isInt: true, negative: true, mag: uint64(-(n + 1)) + 1, f: float64(n)}
	}
	return numberValue{isInt: true, mag: uint64(n), f: float64(n)}
}

func fromFloat(f float64) numberValue {
	if f == math.Trunc(f) && math.Abs(f) < 1<<63 {
		if f < 0 {
			return numberValue{isInt: true, negative: true, mag: uint64(-f), f: f}
		}
		return numberValue{isInt: true, mag: uint64(f), f: f}
	}
	return numberValue{f: f}
}

func numbersEqual(a, b any) bool {
	na, nb := toNumber(a), toNumber(b)
	if na.isInt && nb.isInt {
		if na.mag == 0 && nb.mag == 0 {
			return true
		}
		return na.negative == nb.negative && na.mag == nb.mag
	}
	return na.f == nb.f
}

// IntegerValue reports whether v is a number with an exact integral value
// representable as int64 or uint64, returning it in decimal form.
func IntegerValue(v any) (string, bool) {
	n := toNumber(v)
	if !n.isInt {
		return "", false
	}
	if n.negative {
		if n.mag > 1<<63 {
			return "", false
		}
		return "-" + strconv.FormatUint(n.mag, 10), true
	}
	return strconv.FormatUint(n.mag, 10), true
}

// Float64 returns v as a float64. ok is false when v is not a number.
func Float64(v any) (float64, bool) {
	if KindOf(v) != KindNumber {
		return 0, false
	}
	return toNumber(v).f, true
}
