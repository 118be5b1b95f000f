package plist

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/thirteen37/plistutil/internal/format"
)

// xmlReader walks the token stream of an XML property list.
type xmlReader struct {
	dec *xml.Decoder
}

func parseXML(data []byte) (any, error) {
	r := &xmlReader{dec: xml.NewDecoder(bytes.NewReader(data))}

	tok, err := r.nextElement()
	if err != nil {
		return nil, err
	}
	root, ok := tok.(xml.StartElement)
	if !ok || root.Name.Local != "plist" {
		return nil, fmt.Errorf("expected <plist> root element")
	}

	tok, err = r.nextElement()
	if err != nil {
		return nil, err
	}
	start, ok := tok.(xml.StartElement)
	if !ok {
		return nil, fmt.Errorf("empty <plist>")
	}

	value, err := r.value(start)
	if err != nil {
		return nil, err
	}

	tok, err = r.nextElement()
	if err != nil {
		return nil, err
	}
	if extra, ok := tok.(xml.StartElement); ok {
		return nil, fmt.Errorf("unexpected <%s>: <plist> holds a single value", extra.Name.Local)
	}

	if err := r.expectEOF(); err != nil {
		return nil, err
	}
	return value, nil
}

// nextElement returns the next StartElement or EndElement, skipping
// comments, processing instructions, directives and whitespace.
func (r *xmlReader) nextElement() (xml.Token, error) {
	for {
		tok, err := r.dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement, xml.EndElement:
			return t, nil
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return nil, fmt.Errorf("unexpected text %q", truncate(string(t)))
			}
		}
	}
}

func (r *xmlReader) expectEOF() error {
	for {
		tok, err := r.dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			return fmt.Errorf("unexpected <%s> after </plist>", t.Name.Local)
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return fmt.Errorf("unexpected text %q after </plist>", truncate(string(t)))
			}
		}
	}
}

// text reads character data up to the end of the current element.
func (r *xmlReader) text(element string) (string, error) {
	var sb strings.Builder
	for {
		tok, err := r.dec.Token()
		if errors.Is(err, io.EOF) {
			return "", io.ErrUnexpectedEOF
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			return "", fmt.Errorf("unexpected <%s> inside <%s>", t.Name.Local, element)
		case xml.EndElement:
			return sb.String(), nil
		}
	}
}

func (r *xmlReader) empty(element string) error {
	s, err := r.text(element)
	if err != nil {
		return err
	}
	if strings.TrimSpace(s) != "" {
		return fmt.Errorf("<%s> must be empty", element)
	}
	return nil
}

func (r *xmlReader) value(start xml.StartElement) (any, error) {
	name := start.Name.Local
	switch name {
	case "dict":
		return r.dict()
	case "array":
		return r.array()
	case "string":
		return r.text(name)
	case "true", "false":
		if err := r.empty(name); err != nil {
			return nil, err
		}
		return name == "true", nil
	case "null":
		if err := r.empty(name); err != nil {
			return nil, err
		}
		return nil, nil
	}

	s, err := r.text(name)
	if err != nil {
		return nil, err
	}

	switch name {
	case "integer":
		return parseInteger(strings.TrimSpace(s))
	case "real":
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid <real> %q", s)
		}
		return f, nil
	case "date":
		t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("invalid <date> %q: %w", s, err)
		}
		return t.UTC(), nil
	case "data":
		b, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(s), ""))
		if err != nil {
			return nil, fmt.Errorf("invalid <data>: %w", err)
		}
		return b, nil
	case "key":
		return nil, fmt.Errorf("<key> outside of <dict>")
	default:
		return nil, fmt.Errorf("unknown element <%s>", name)
	}
}

func (r *xmlReader) dict() (any, error) {
	m := format.NewMap()
	for {
		tok, err := r.nextElement()
		if err != nil {
			return nil, err
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			return m, nil
		}
		if start.Name.Local != "key" {
			return nil, fmt.Errorf("expected <key> in <dict>, found <%s>", start.Name.Local)
		}
		key, err := r.text("key")
		if err != nil {
			return nil, err
		}

		tok, err = r.nextElement()
		if err != nil {
			return nil, err
		}
		valueStart, ok := tok.(xml.StartElement)
		if !ok {
			return nil, fmt.Errorf("missing value for key %q", key)
		}
		v, err := r.value(valueStart)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		m.Set(key, v)
	}
}

func (r *xmlReader) array() (any, error) {
	items := []any{}
	for {
		tok, err := r.nextElement()
		if err != nil {
			return nil, err
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			return items, nil
		}
		v, err := r.value(start)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", len(items), err)
		}
		items = append(items, v)
	}
}

// parseInteger reads a decimal <integer>, using uint64 only for values
// above the int64 range.
func parseInteger(s string) (any, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return n, nil
	}
	return nil, fmt.Errorf("invalid <integer> %q", s)
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 32 {
		return s[:32] + "..."
	}
	return s
}
