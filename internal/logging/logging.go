/*
 * logging.go, part of agate.
 *
 * Copyright 2026 The agate Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package logging is a small leveled logger on top of the standard log package.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Level of a log message. Messages above the logger level are dropped.
type Level int

const (
	LevelError Level = iota // the file can't be used
	LevelWarn               // something may be wrong, decoding continues
	LevelInfo               // nothing wrong, informational only
	LevelDebug              // record by record tracing

	// LevelDefault only shows warnings and errors.
	LevelDefault = LevelWarn
)

var levelPrefix = [...]string{"ERROR ", "WARN ", "INFO ", "DEBUG "}

// Logger writes leveled messages through a *log.Logger. The zero value is not usable,
// use New or Discard. A Logger may be shared by concurrent decoders.
type Logger struct {
	level  Level
	logger *log.Logger
}

// New returns a logger writing messages up to level to w.
func New(w io.Writer, level Level) *Logger {
	return Wrap(log.New(w, "agate: ", log.LstdFlags), level)
}

// Wrap uses l for the output.
func Wrap(l *log.Logger, level Level) *Logger {
	if level < LevelError {
		level = LevelError
	}
	if level > LevelDebug {
		level = LevelDebug
	}
	return &Logger{level: level, logger: l}
}

// Default is the logger to stderr at LevelDefault.
func Default() *Logger {
	return New(os.Stderr, LevelDefault)
}

// Discard drops everything.
func Discard() *Logger {
	return New(io.Discard, LevelError)
}

// Level returns the level of the logger.
func (l *Logger) Level() Level { return l.level }

// Enabled returns true if messages at level are printed.
func (l *Logger) Enabled(level Level) bool { return level <= l.level }

func (l *Logger) output(level Level, s string) {
	if level > l.level {
		return
	}
	l.logger.Output(3, levelPrefix[level]+s)
}

func (l *Logger) Errorf(format string, v ...interface{}) { l.output(LevelError, fmt.Sprintf(format, v...)) }
func (l *Logger) Warnf(format string, v ...interface{})  { l.output(LevelWarn, fmt.Sprintf(format, v...)) }
func (l *Logger) Infof(format string, v ...interface{})  { l.output(LevelInfo, fmt.Sprintf(format, v...)) }
func (l *Logger) Debugf(format string, v ...interface{}) { l.output(LevelDebug, fmt.Sprintf(format, v...)) }
