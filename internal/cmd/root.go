// Package cmd provides the CLI for plistutil.
package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thirteen37/plistutil/internal/options"
)

const commandName = "plistutil"

// flagValues receives the raw flag values of one invocation.
type flagValues struct {
	get, set, value, format string
	indent                  string
	configFile              string
	logLevel                string
	stripComments           bool
	noColor                 bool
}

// command builds the root command. Flag values land in a.flags.
func (a *app) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   commandName + " [flags] <file>",
		Short: "Read, query and edit property list files",
		Long: `plistutil reads a property list (XML or binary) or JSON document and prints
it back, optionally reading or writing a value at a nested path.

Paths are comma delimited: "CFBundleURLTypes,0,CFBundleURLName" selects a key
inside the first element of an array inside a dictionary. Values for --set
are given in JSON notation.

Examples:
  plistutil Info.plist --get CFBundleVersion
  plistutil Info.plist --set CFBundleVersion --value '"1.2.3"'
  plistutil settings.json --format plist`,
		Args:          fileArg,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(optionsFromFlags(cmd.Flags(), &a.flags, args), cmd.Flags())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&a.flags.get, "get", "g", "", "Get value of comma delimited (for nested) property name")
	f.StringVarP(&a.flags.set, "set", "s", "", "Set value of comma delimited (for nested) property name")
	f.StringVarP(&a.flags.value, "value", "v", "", "The value to set for entry in JSON notation")
	f.StringVarP(&a.flags.format, "format", "f", "", "Output format (plist or json, default plist)")
	f.StringVar(&a.flags.indent, "indent", "", `Output indentation: "tab" or a number of spaces`)
	f.StringVar(&a.flags.configFile, "config", "", "Settings file (.toml or .ini)")
	f.StringVar(&a.flags.logLevel, "log-level", "", "Diagnostic log level (debug, info, warn, error)")
	f.BoolVar(&a.flags.stripComments, "strip-comments", false, "Allow comments and trailing commas in JSON input")
	f.BoolVar(&a.flags.noColor, "no-color", false, "Disable colored error output")

	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	return cmd
}

func fileArg(cmd *cobra.Command, args []string) error {
	switch {
	case len(args) == 0:
		return &options.UsageError{Msg: "missing file argument"}
	case len(args) > 1:
		return &options.UsageError{Msg: "too many arguments: expected a single file"}
	}
	return nil
}

// optionsFromFlags records which options were given, not only their values,
// so that an explicitly empty --get still counts as a get.
func optionsFromFlags(flags *pflag.FlagSet, v *flagValues, args []string) options.Options {
	return options.Options{
		File:      args[0],
		Get:       v.get,
		Set:       v.set,
		Value:     v.value,
		Format:    v.format,
		HasGet:    flags.Changed("get"),
		HasSet:    flags.Changed("set"),
		HasValue:  flags.Changed("value"),
		HasFormat: flags.Changed("format"),
	}
}

// Run executes plistutil with args and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	cmd := a.command()
	// cobra falls back to os.Args when given nil
	cmd.SetArgs(append([]string{}, args...))

	if err := cmd.Execute(); err != nil {
		printError(stderr, err, a.flags.noColor || a.noColor)
		return 1
	}
	return 0
}

// Execute runs the root command with the process arguments.
func Execute() {
	if code := Run(os.Args[1:], os.Stdout, os.Stderr); code != 0 {
		os.Exit(code)
	}
}
