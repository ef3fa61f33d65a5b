package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/clog/hooks"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
	"github.com/m-mizutani/regmig/pkg/domain/types"
)

// ServiceName is attached to every record of the default logger so that lines of the workers can
// be told apart from the registry's own logs in a shared sink.
const ServiceName = "regmig"

var defaultLogger = slog.New(slog.NewTextHandler(os.Stdout, nil))

func init() {
	_ = Configure("text", "info", "stdout")
}

// Default returns the default logger
func Default() *slog.Logger {
	return defaultLogger
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// secretFilter masks registry and database credentials wherever they show up in attributes,
// including nested in config groups.
func secretFilter() func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(
		masq.WithTag("secret"),
		masq.WithType[types.RegistryToken](masq.MaskWithSymbol('*', 32)),
		masq.WithType[types.NotificationSecret](masq.MaskWithSymbol('*', 32)),
		masq.WithType[types.DatabaseURL](masq.MaskWithSymbol('*', 16)),
	)
}

func openOutput(logOutput string) (io.Writer, error) {
	switch logOutput {
	case "stdout", "-":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	}

	fd, err := os.OpenFile(filepath.Clean(logOutput), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open log file", goerr.V("path", logOutput))
	}
	return fd, nil
}

func newTextHandler(w io.Writer, level slog.Level) slog.Handler {
	return clog.New(
		clog.WithWriter(w),
		clog.WithLevel(level),
		clog.WithSource(true),
		clog.WithColorMap(&clog.ColorMap{
			Level: map[slog.Level]*color.Color{
				slog.LevelDebug: color.New(color.FgGreen),
				slog.LevelInfo:  color.New(color.FgCyan),
				slog.LevelWarn:  color.New(color.FgYellow, color.Bold),
				slog.LevelError: color.New(color.FgRed, color.Bold),
			},
			LevelDefault: color.New(color.FgBlue),
			Time:         color.New(color.FgWhite),
			Message:      color.New(color.FgHiWhite),
			AttrKey:      color.New(color.FgHiCyan),
			AttrValue:    color.New(color.FgHiWhite),
		}),
		clog.WithAttrHook(hooks.GoErr()),
		clog.WithReplaceAttr(secretFilter()),
	)
}

// Configure replaces the default logger. logOutput is stdout, stderr or a file path; a file is
// appended to so that restarts of serve keep earlier worker reports.
func Configure(logFormat, logLevel, logOutput string) error {
	level, ok := logLevels[logLevel]
	if !ok {
		return goerr.Wrap(types.ErrInvalidOption, "invalid log level", goerr.V("value", logLevel))
	}

	var handler slog.Handler
	switch logFormat {
	case "text", "json":
	default:
		return goerr.Wrap(types.ErrInvalidOption, "invalid log format, should be 'json' or 'text'", goerr.V("value", logFormat))
	}

	w, err := openOutput(logOutput)
	if err != nil {
		return err
	}

	if logFormat == "text" {
		handler = newTextHandler(w, level)
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource:   true,
			Level:       level,
			ReplaceAttr: secretFilter(),
		})
	}

	defaultLogger = slog.New(handler).With("service", ServiceName)
	return nil
}
