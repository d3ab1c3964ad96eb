// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

var (
	traceEnabled bool

	mu  sync.Mutex
	out io.Writer = os.Stderr
)

// ParseLevel maps a SNAPDIFF_LOG value to an apex level. Unknown or empty
// values resolve to error. The second return reports whether trace output is
// requested.
func ParseLevel(s string) (log.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return log.DebugLevel, true
	case "debug":
		return log.DebugLevel, false
	case "info":
		return log.InfoLevel, false
	case "warn", "warning":
		return log.WarnLevel, false
	case "fatal":
		return log.FatalLevel, false
	default:
		return log.ErrorLevel, false
	}
}

// InitLogger sets up Apex with the snapdiff handler and a log level from the
// SNAPDIFF_LOG env variable.
func InitLogger() {
	level, trace := ParseLevel(os.Getenv("SNAPDIFF_LOG"))
	traceEnabled = trace
	log.SetHandler(&CustomHandler{})
	log.SetLevel(level)
}

// SetOutput redirects log lines. Stderr is the default so that machine
// readable command output on stdout stays clean. A nil writer restores it.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	out = w
}

// CustomHandler formats log messages as "timestamp level message k=v...".
type CustomHandler struct{}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	timestamp := e.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	message := e.Message
	level := "?"
	if strings.HasPrefix(message, "TRACE: ") {
		level = "T"
		message = message[7:]
	} else {
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
	}

	var b strings.Builder
	for _, name := range e.Fields.Names() {
		fmt.Fprintf(&b, " %s=%v", name, e.Fields.Get(name))
	}

	mu.Lock()
	defer mu.Unlock()
	_, err := fmt.Fprintf(out, "%s %s %s%s\n", timestamp.Format("2006-01-02 15:04:05"), level, message, b.String())
	return err
}

// Tracef logs at Trace level (below Debug).
func Tracef(format string, args ...interface{}) {
	if traceEnabled {
		log.Debug("TRACE: " + fmt.Sprintf(format, args...))
	}
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
	log.Warn(fmt.Sprintf(format, args...))
}

// Errorf logs at Error level.
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// WithError returns an entry with error.
func WithError(err error) *log.Entry {
	return log.WithError(err)
}
