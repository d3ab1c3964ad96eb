// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package log

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in        string
		wantLevel log.Level
		wantTrace bool
	}{
		{"", log.ErrorLevel, false},
		{"trace", log.DebugLevel, true},
		{"DEBUG", log.DebugLevel, false},
		{"info", log.InfoLevel, false},
		{" warn ", log.WarnLevel, false},
		{"fatal", log.FatalLevel, false},
		{"bogus", log.ErrorLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			level, trace := ParseLevel(tt.in)
			assert.Equal(t, tt.wantLevel, level)
			assert.Equal(t, tt.wantTrace, trace)
		})
	}
}

func TestCustomHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })

	h := &CustomHandler{}
	e := &log.Entry{
		Level:     log.WarnLevel,
		Message:   "image missing",
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Fields:    log.Fields{"hash": "abc"},
	}
	assert.NoError(t, h.HandleLog(e))
	assert.Equal(t, "2026-01-02 03:04:05 W image missing hash=abc\n", buf.String())
}

func TestCustomHandler_Trace(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })

	h := &CustomHandler{}
	e := &log.Entry{
		Level:     log.DebugLevel,
		Message:   "TRACE: deep",
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	assert.NoError(t, h.HandleLog(e))
	assert.Contains(t, buf.String(), " T deep")
	assert.NotContains(t, buf.String(), "TRACE:")
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	prev := log.Log
	log.Log = &log.Logger{Handler: &CustomHandler{}, Level: log.DebugLevel}
	t.Cleanup(func() {
		log.Log = prev
		SetOutput(nil)
	})

	WithError(errors.New("boom")).Warn("cache cleanup")
	assert.Contains(t, buf.String(), " W cache cleanup error=boom\n")
}
