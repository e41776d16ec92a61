// Package log wraps apex/log for the redline CLI. The level comes from the
// REDLINE_LOG environment variable; diagnostics go to stderr so they never
// mix with rendered output on stdout.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

// Init sets up apex with the compact handler and a level from REDLINE_LOG.
// Unset or unknown values mean error, so a plain run stays quiet.
func Init() {
	level := log.ErrorLevel
	switch strings.ToLower(os.Getenv("REDLINE_LOG")) {
	case "debug":
		level = log.DebugLevel
	case "info":
		level = log.InfoLevel
	case "warn":
		level = log.WarnLevel
	case "error":
		level = log.ErrorLevel
	case "fatal":
		level = log.FatalLevel
	}
	log.SetHandler(&Handler{Out: os.Stderr})
	log.SetLevel(level)
}

// Handler writes one line per entry: timestamp, level letter, message, then
// any fields as key=value pairs in sorted order.
type Handler struct {
	Out io.Writer
}

// HandleLog implements log.Handler.
func (h *Handler) HandleLog(e *log.Entry) error {
	level := "?"
	switch e.Level {
	case log.DebugLevel:
		level = "D"
	case log.InfoLevel:
		level = "I"
	case log.WarnLevel:
		level = "W"
	case log.ErrorLevel:
		level = "E"
	case log.FatalLevel:
		level = "F"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s", time.Now().Format("2006-01-02 15:04:05"), level, e.Message)
	for _, k := range e.Fields.Names() {
		fmt.Fprintf(&b, " %s=%v", k, e.Fields.Get(k))
	}
	b.WriteByte('\n')
	_, err := io.WriteString(h.Out, b.String())
	return err
}

// Debugf logs at Debug level.
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Infof logs at Info level.
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Warnf logs at Warn level.
func Warnf(format string, args ...interface{}) {
	log.Warnf(format, args...)
}

// Errorf logs at Error level.
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// WithError returns an entry carrying err as a field.
func WithError(err error) *log.Entry {
	return log.WithError(err)
}
