package options

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr string
		want    Mode
	}{
		{
			name: "read whole document",
			opts: Options{},
			want: ModeRead,
		},
		{
			name: "read with format",
			opts: Options{Format: "json", HasFormat: true},
			want: ModeRead,
		},
		{
			name: "get",
			opts: Options{Get: "a", HasGet: true},
			want: ModeGet,
		},
		{
			name: "set",
			opts: Options{Set: "a", HasSet: true, Value: "1", HasValue: true},
			want: ModeSet,
		},
		{
			name: "set with format",
			opts: Options{Set: "a", HasSet: true, Value: "1", HasValue: true, Format: "plist", HasFormat: true},
			want: ModeSet,
		},
		{
			name:    "get and set",
			opts:    Options{Get: "a", HasGet: true, Set: "b", HasSet: true},
			wantErr: "mutually exclusive",
		},
		{
			name:    "get and set and value reports first rule",
			opts:    Options{Get: "a", HasGet: true, Set: "b", HasSet: true, Value: "1", HasValue: true},
			wantErr: "mutually exclusive",
		},
		{
			name:    "get with value",
			opts:    Options{Get: "a", HasGet: true, Value: "1", HasValue: true},
			wantErr: "value only valid with set",
		},
		{
			name:    "get with format",
			opts:    Options{Get: "a", HasGet: true, Format: "json", HasFormat: true},
			wantErr: "format not valid with get",
		},
		{
			name:    "set without value",
			opts:    Options{Set: "a", HasSet: true},
			wantErr: "set requires value",
		},
		{
			name:    "value without set",
			opts:    Options{Value: "1", HasValue: true},
			wantErr: "value requires set",
		},
		{
			name:    "unsupported format",
			opts:    Options{Format: "xml", HasFormat: true},
			wantErr: "unsupported format",
		},
		{
			name: "empty get still counts as present",
			opts: Options{HasGet: true},
			want: ModeGet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
				}
				var usageErr *UsageError
				if !errors.As(err, &usageErr) {
					t.Errorf("Validate() error is %T, want *UsageError", err)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("Validate() error = %q, want it to contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if got := tt.opts.Mode(); got != tt.want {
				t.Errorf("Mode() = %v, want %v", got, tt.want)
			}
		})
	}
}
