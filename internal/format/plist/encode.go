package plist

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/thirteen37/plistutil/internal/format"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
`

type xmlWriter struct {
	buf    bytes.Buffer
	indent string
}

func (w *xmlWriter) line(depth int, s string) {
	for i := 0; i < depth; i++ {
		w.buf.WriteString(w.indent)
	}
	w.buf.WriteString(s)
	w.buf.WriteByte('\n')
}

func (w *xmlWriter) element(depth int, name, content string) {
	w.line(depth, "<"+name+">"+content+"</"+name+">")
}

func (w *xmlWriter) write(v any, depth int) error {
	switch format.KindOf(v) {
	case format.KindNull:
		w.line(depth, "<null/>")
	case format.KindBool:
		if v.(bool) {
			w.line(depth, "<true/>")
		} else {
			w.line(depth, "<false/>")
		}
	case format.KindNumber:
		if s, ok := format.IntegerValue(v); ok {
			w.element(depth, "integer", s)
		} else {
			f, _ := format.Float64(v)
			w.element(depth, "real", formatReal(f))
		}
	case format.KindString:
		w.element(depth, "string", escape(v.(string)))
	case format.KindDate:
		w.element(depth, "date", v.(time.Time).UTC().Format(time.RFC3339))
	case format.KindData:
		w.element(depth, "data", base64.StdEncoding.EncodeToString(v.([]byte)))
	case format.KindSequence:
		items := v.([]any)
		if len(items) == 0 {
			w.line(depth, "<array/>")
			return nil
		}
		w.line(depth, "<array>")
		for _, item := range items {
			if err := w.write(item, depth+1); err != nil {
				return err
			}
		}
		w.line(depth, "</array>")
	case format.KindMapping:
		m := format.ToOrderedMapPtr(v)
		keys := m.Keys()
		if len(keys) == 0 {
			w.line(depth, "<dict/>")
			return nil
		}
		w.line(depth, "<dict>")
		for _, k := range keys {
			child, _ := m.Get(k)
			w.element(depth+1, "key", escape(k))
			if err := w.write(child, depth+1); err != nil {
				return err
			}
		}
		w.line(depth, "</dict>")
	default:
		return fmt.Errorf("unsupported value of type %T", v)
	}
	return nil
}

func formatReal(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "+infinity"
	case math.IsInf(f, -1):
		return "-infinity"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// escape encodes s as XML character data. Carriage returns are written as
// character references because XML parsers fold them into newlines, and
// runes outside the XML character range become U+FFFD.
func escape(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch {
		case r == '&':
			sb.WriteString("&amp;")
		case r == '<':
			sb.WriteString("&lt;")
		case r == '>':
			sb.WriteString("&gt;")
		case r == '\r':
			sb.WriteString("&#xD;")
		case r == utf8.RuneError && size == 1, !isXMLChar(r):
			sb.WriteRune(utf8.RuneError)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}
