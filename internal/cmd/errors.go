package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// FileReadError reports an input file that could not be read.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// ValueParseError reports a --value argument that is not a JSON literal.
type ValueParseError struct {
	Value string
	Err   error
}

func (e *ValueParseError) Error() string {
	return fmt.Sprintf("invalid value %q: %v", e.Value, e.Err)
}

func (e *ValueParseError) Unwrap() error { return e.Err }

// printError writes err to w as "plistutil: <message>", in red when w is a
// color terminal and color is enabled.
func printError(w io.Writer, err error, noColor bool) {
	renderer := lipgloss.NewRenderer(w)
	if noColor {
		renderer.SetColorProfile(termenv.Ascii)
	}
	style := renderer.NewStyle().Foreground(lipgloss.Color("9"))
	fmt.Fprintln(w, style.Render(commandName+": "+err.Error()))
}
