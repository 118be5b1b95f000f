package cmd

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"
	"github.com/thirteen37/plistutil/internal/accessor"
	"github.com/thirteen37/plistutil/internal/codec"
	"github.com/thirteen37/plistutil/internal/config"
	"github.com/thirteen37/plistutil/internal/format"
	"github.com/thirteen37/plistutil/internal/format/json"
	"github.com/thirteen37/plistutil/internal/logging"
	"github.com/thirteen37/plistutil/internal/options"
	"github.com/thirteen37/plistutil/internal/path"
)

// app carries the streams and state of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer
	flags  flagValues

	// noColor is set once settings are loaded.
	noColor bool
}

// run validates opts, loads the document and performs the requested
// operation. Nothing is written to stdout unless every step succeeds.
func (a *app) run(opts options.Options, flags *pflag.FlagSet) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	settings, err := a.settings(flags)
	if err != nil {
		return err
	}
	a.noColor = settings.NoColor

	level, indent, err := resolveSettings(settings)
	if err != nil {
		return err
	}
	logger := logging.NewLogger(level, a.stderr).With("file", opts.File, "mode", opts.Mode().String())

	outFormat := codec.Format(settings.Format)
	if opts.HasFormat {
		outFormat = codec.Format(opts.Format)
	}

	data, err := os.ReadFile(opts.File)
	if err != nil {
		return &FileReadError{Path: opts.File, Err: err}
	}

	tree, err := codec.Decode(data, format.ParseOptions{StripComments: settings.StripComments})
	if err != nil {
		return err
	}
	logger.Debug("decoded document", "bytes", len(data))

	switch opts.Mode() {
	case options.ModeGet:
		p := path.ParseComma(opts.Get)
		value, found := accessor.Get(tree, p)
		logger.Debug("resolved path", "path", p.String(), "found", found)
		if !found || isFalsy(value) {
			return nil
		}
		return a.printValue(value, indent)

	case options.ModeSet:
		value, err := codec.ParseValue(opts.Value)
		if err != nil {
			return &ValueParseError{Value: opts.Value, Err: err}
		}
		p := path.ParseComma(opts.Set)
		tree, err = accessor.Set(tree, p, value)
		if err != nil {
			return err
		}
		logger.Debug("set value", "path", p.String(), "kind", format.KindOf(value).String())
	}

	out, err := codec.Encode(tree, outFormat, format.SerializeOptions{Indent: indent})
	if err != nil {
		return err
	}
	logger.Debug("encoded document", "format", string(outFormat), "bytes", len(out))

	_, err = a.stdout.Write(out)
	return err
}

// settings loads the settings file and applies flag overrides.
func (a *app) settings(flags *pflag.FlagSet) (*config.Settings, error) {
	var (
		settings *config.Settings
		err      error
	)
	if a.flags.configFile != "" {
		settings, err = config.Load(a.flags.configFile)
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, &FileReadError{Path: a.flags.configFile, Err: pathErr.Err}
		}
	} else {
		settings, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	if flags.Changed("indent") {
		if _, err := config.ParseIndent(a.flags.indent); err != nil {
			return nil, &options.UsageError{Msg: err.Error()}
		}
		settings.Indent = a.flags.indent
	}
	if flags.Changed("log-level") {
		if _, err := logging.ParseLevel(a.flags.logLevel); err != nil {
			return nil, &options.UsageError{Msg: err.Error()}
		}
		settings.LogLevel = a.flags.logLevel
	}
	if flags.Changed("strip-comments") {
		settings.StripComments = a.flags.stripComments
	}
	if flags.Changed("no-color") {
		settings.NoColor = a.flags.noColor
	}
	return settings, nil
}

// resolveSettings converts the textual log level and indent settings.
func resolveSettings(settings *config.Settings) (slog.Level, string, error) {
	level, err := logging.ParseLevel(settings.LogLevel)
	if err != nil {
		return 0, "", err
	}
	indent, err := config.ParseIndent(settings.Indent)
	if err != nil {
		return 0, "", err
	}
	return level, indent, nil
}

// printValue prints a retrieved value as is: scalars in their plain form,
// containers as indented JSON.
func (a *app) printValue(v any, indent string) error {
	var text string
	switch format.KindOf(v) {
	case format.KindString:
		text = v.(string)
	case format.KindBool:
		text = strconv.FormatBool(v.(bool))
	case format.KindNumber:
		if s, ok := format.IntegerValue(v); ok {
			text = s
		} else {
			f, _ := format.Float64(v)
			text = strconv.FormatFloat(f, 'g', -1, 64)
		}
	case format.KindDate:
		text = v.(time.Time).UTC().Format(time.RFC3339)
	case format.KindData:
		text = base64.StdEncoding.EncodeToString(v.([]byte))
	default:
		out, err := json.New().Serialize(v, format.SerializeOptions{Indent: indent})
		if err != nil {
			return err
		}
		_, err = a.stdout.Write(out)
		return err
	}

	_, err := fmt.Fprintln(a.stdout, text)
	return err
}

// isFalsy reports whether a retrieved value is suppressed like a missing
// one: null, false, zero, NaN and the empty string print nothing.
func isFalsy(v any) bool {
	switch format.KindOf(v) {
	case format.KindNull:
		return true
	case format.KindBool:
		return !v.(bool)
	case format.KindString:
		return v.(string) == ""
	case format.KindNumber:
		f, _ := format.Float64(v)
		return f == 0 || math.IsNaN(f)
	default:
		return false
	}
}
