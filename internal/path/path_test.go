package path

import "testing"

func TestParseComma(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "single segment",
			input: "CFBundleName",
			want:  []string{"CFBundleName"},
		},
		{
			name:  "nested",
			input: "a,b,c",
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "whitespace trimmed",
			input: " a , b ,c ",
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "numeric segments stay strings",
			input: "items, 0",
			want:  []string{"items", "0"},
		},
		{
			name:  "empty string",
			input: "",
			want:  []string{""},
		},
		{
			name:  "empty middle segment",
			input: "a,,b",
			want:  []string{"a", "", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseComma(tt.input).Segments()
			if len(got) != len(tt.want) {
				t.Fatalf("ParseComma(%q) = %q, want %q", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseComma(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestArrayPath_String(t *testing.T) {
	p := NewArrayPath([]string{"a", "b,c"})
	if got, want := p.String(), `["a","b,c"]`; got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}

func TestPathError(t *testing.T) {
	err := &PathError{Path: NewArrayPath(nil), Reason: "empty path"}
	if got, want := err.Error(), "invalid path []: empty path"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err = &PathError{Reason: "empty path"}
	if got, want := err.Error(), "invalid path: empty path"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
