package codec

import (
	"errors"
	"testing"

	"github.com/iancoleman/orderedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirteen37/plistutil/internal/format"
)

const plistDoc = `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0">
<dict>
	<key>name</key>
	<string>demo</string>
	<key>count</key>
	<integer>3</integer>
	<key>tags</key>
	<array>
		<string>x</string>
		<real>0.25</real>
		<false/>
	</array>
</dict>
</plist>
`

const jsonDoc = `{"name": "demo", "count": 3, "tags": ["x", 0.25, false], "extra": null}`

func TestDecode_Plist(t *testing.T) {
	tree, err := Decode([]byte(plistDoc), format.ParseOptions{})
	require.NoError(t, err)

	om, ok := tree.(*orderedmap.OrderedMap)
	require.True(t, ok)
	count, _ := om.Get("count")
	assert.Equal(t, int64(3), count)
}

func TestDecode_FallsBackToJSON(t *testing.T) {
	tree, err := Decode([]byte(jsonDoc), format.ParseOptions{})
	require.NoError(t, err)

	om, ok := tree.(*orderedmap.OrderedMap)
	require.True(t, ok)
	assert.Equal(t, []string{"name", "count", "tags", "extra"}, om.Keys())
	count, _ := om.Get("count")
	assert.Equal(t, float64(3), count)
}

func TestDecode_JSONScalar(t *testing.T) {
	tree, err := Decode([]byte("42"), format.ParseOptions{})
	require.NoError(t, err)
	assert.Equal(t, float64(42), tree)
}

func TestDecode_StripComments(t *testing.T) {
	input := []byte("{\n  // comment\n  \"a\": 1,\n}")

	_, err := Decode(input, format.ParseOptions{})
	require.Error(t, err)

	tree, err := Decode(input, format.ParseOptions{StripComments: true})
	require.NoError(t, err)
	a, _ := tree.(*orderedmap.OrderedMap).Get("a")
	assert.Equal(t, float64(1), a)
}

func TestDecode_NeitherFormat(t *testing.T) {
	_, err := Decode([]byte("this is not a document"), format.ParseOptions{})
	require.Error(t, err)

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	require.Error(t, decodeErr.PlistErr)
	require.Error(t, decodeErr.JSONErr)
	assert.Contains(t, err.Error(), "property list")
	assert.Contains(t, err.Error(), decodeErr.PlistErr.Error())
	assert.Contains(t, err.Error(), decodeErr.JSONErr.Error())
}

func TestDecode_ByteOrderMark(t *testing.T) {
	for name, input := range map[string]string{"plist": plistDoc, "json": jsonDoc} {
		t.Run(name, func(t *testing.T) {
			tree, err := Decode([]byte("\ufeff"+input), format.ParseOptions{})
			require.NoError(t, err)

			got, _ := tree.(*orderedmap.OrderedMap).Get("name")
			assert.Equal(t, "demo", got)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := map[string]string{
		"plist": plistDoc,
		"json":  jsonDoc,
	}

	for inputName, input := range inputs {
		tree, err := Decode([]byte(input), format.ParseOptions{})
		require.NoError(t, err)

		for _, f := range Formats() {
			t.Run(inputName+" via "+string(f), func(t *testing.T) {
				data, err := Encode(tree, f, format.SerializeOptions{})
				require.NoError(t, err)

				got, err := Decode(data, format.ParseOptions{})
				require.NoError(t, err)
				assert.True(t, format.Equal(tree, got), "round trip mismatch:\n%s", data)
			})
		}
	}
}

func TestEncode_UnknownFormat(t *testing.T) {
	_, err := Encode(format.NewMap(), Format("xml"), format.SerializeOptions{})
	require.Error(t, err)
}

func TestHandler(t *testing.T) {
	assert.Equal(t, []Format{FormatPlist, FormatJSON}, Formats())

	for _, f := range Formats() {
		h, err := Handler(f)
		require.NoError(t, err)
		assert.Equal(t, string(f), h.Name())
	}

	_, err := Handler(Format("xml"))
	require.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("plist")
	require.NoError(t, err)
	assert.Equal(t, FormatPlist, f)

	_, err = ParseFormat("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    any
		wantErr bool
	}{
		{name: "number", input: "2", want: float64(2)},
		{name: "string", input: `"z"`, want: "z"},
		{name: "bool", input: "true", want: true},
		{name: "null", input: "null", want: nil},
		{name: "array", input: `[1, "a"]`, want: []any{float64(1), "a"}},
		{name: "bare word", input: "z", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseValue(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, format.Equal(tt.want, got), "ParseValue(%q) = %#v", tt.input, got)
		})
	}

	t.Run("object keeps order", func(t *testing.T) {
		got, err := ParseValue(`{"b": 1, "a": 2}`)
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a"}, got.(*orderedmap.OrderedMap).Keys())
	})
}
