// Copyright 2026 The OSAL Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package log provides a minimal leveled logging facility.
//
// The library itself logs sparingly: registry lifecycle events at debug
// level and resource-limit hits at warning level. Binaries may replace the
// emitter or raise the level; the default writes warnings to stderr.
package log

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"osal.dev/osal/pkg/sync"
)

// Level is the log level.
type Level uint32

// The following levels are fixed and can never be changed. Since some
// control is exposed over these values at runtime, it is important to keep
// them stable.
const (
	// Warning indicates a problem that may affect correctness or resource
	// availability.
	Warning Level = 0

	// Info is informational and shows lifecycle events.
	Info Level = 1

	// Debug shows detailed per-operation events. Very chatty.
	Debug Level = 2
)

// String implements fmt.Stringer.String.
func (l Level) String() string {
	switch l {
	case Warning:
		return "Warning"
	case Info:
		return "Info"
	case Debug:
		return "Debug"
	default:
		return fmt.Sprintf("Invalid level: %d", l)
	}
}

// Emitter is the final destination for log lines.
type Emitter interface {
	// Emit emits the given log statement. Implementations must be safe for
	// concurrent use.
	Emit(level Level, timestamp time.Time, format string, v ...any)
}

// Writer writes log lines to an io.Writer, one statement per line.
type Writer struct {
	// mu serializes writes.
	mu sync.Mutex

	// Next is the writer lines are emitted to.
	Next io.Writer
}

// Emit implements Emitter.Emit.
func (w *Writer) Emit(level Level, timestamp time.Time, format string, v ...any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.Next, "%c%s] ", level.String()[0], timestamp.Format("0102 15:04:05.000000"))
	fmt.Fprintf(w.Next, format, v...)
	fmt.Fprintln(w.Next)
}

// Logger is a route to an emitter with a level filter.
type Logger struct {
	level atomic.Uint32

	// Emitter is the destination; immutable after construction.
	Emitter Emitter
}

// New returns a Logger emitting at the given level and above.
func New(e Emitter, level Level) *Logger {
	l := &Logger{Emitter: e}
	l.level.Store(uint32(level))
	return l
}

// IsLogging returns whether the given level is being logged.
func (l *Logger) IsLogging(level Level) bool {
	return uint32(level) <= l.level.Load()
}

// SetLevel sets the logging level.
func (l *Logger) SetLevel(level Level) {
	l.level.Store(uint32(level))
}

func (l *Logger) logf(level Level, format string, v ...any) {
	if l.IsLogging(level) {
		l.Emitter.Emit(level, time.Now(), format, v...)
	}
}

// Debugf logs a debug statement.
func (l *Logger) Debugf(format string, v ...any) { l.logf(Debug, format, v...) }

// Infof logs an informational statement.
func (l *Logger) Infof(format string, v ...any) { l.logf(Info, format, v...) }

// Warningf logs a warning.
func (l *Logger) Warningf(format string, v ...any) { l.logf(Warning, format, v...) }

// global is the logger used by the package-level functions.
var global atomic.Pointer[Logger]

func init() {
	global.Store(New(&Writer{Next: os.Stderr}, Warning))
}

// Log returns the global logger.
func Log() *Logger {
	return global.Load()
}

// SetTarget replaces the global logger.
func SetTarget(l *Logger) {
	global.Store(l)
}

// SetLevel sets the level of the global logger.
func SetLevel(level Level) {
	Log().SetLevel(level)
}

// Debugf logs a debug statement to the global logger.
func Debugf(format string, v ...any) { Log().Debugf(format, v...) }

// Infof logs an informational statement to the global logger.
func Infof(format string, v ...any) { Log().Infof(format, v...) }

// Warningf logs a warning to the global logger.
func Warningf(format string, v ...any) { Log().Warningf(format, v...) }
