// Package logger configures the process-wide phuslu logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phuslu/log"
)

// Setup installs the default logger. format is "console" (colored, human
// readable) or "json"; level is trace|debug|info|warn|error.
func Setup(level, format string) error {
	return setup(level, format, os.Stderr)
}

func setup(level, format string, out io.Writer) error {
	lvl, err := parseLevel(level)
	if err != nil {
		return err
	}

	var w log.Writer
	switch strings.ToLower(format) {
	case "", "console":
		w = &log.ConsoleWriter{
			Writer:         out,
			ColorOutput:    isTerminal(out),
			QuoteString:    true,
			EndWithMessage: true,
		}
	case "json":
		w = &log.IOWriter{Writer: out}
	default:
		return fmt.Errorf("unknown log format %q", format)
	}

	log.DefaultLogger = log.Logger{
		Level:      lvl,
		Caller:     0,
		TimeFormat: "15:04:05",
		Writer:     w,
	}
	if format == "json" {
		log.DefaultLogger.TimeFormat = ""
	}
	return nil
}

func parseLevel(level string) (log.Level, error) {
	switch strings.ToLower(level) {
	case "trace":
		return log.TraceLevel, nil
	case "debug":
		return log.DebugLevel, nil
	case "", "info":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	}
	return log.InfoLevel, fmt.Errorf("unknown log level %q", level)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && log.IsTerminal(f.Fd())
}
