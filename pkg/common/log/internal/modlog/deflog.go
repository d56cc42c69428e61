/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package modlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/workprotocol/signaturesuite/pkg/common/log/internal/metadata"
	"github.com/workprotocol/signaturesuite/spi/log"
)

const (
	moduleField = "module"
	callerField = "caller"
)

//nolint:gochecknoglobals
var (
	outputMu      sync.RWMutex
	defaultOutput io.Writer = os.Stdout
)

// SetDefaultOutput redirects every default logger that has not been given its own output.
func SetDefaultOutput(w io.Writer) {
	outputMu.Lock()
	defer outputMu.Unlock()

	defaultOutput = w
}

// sharedOutput writes to the current default output.
type sharedOutput struct{}

func (sharedOutput) Write(p []byte) (int, error) {
	outputMu.RLock()
	defer outputMu.RUnlock()

	return defaultOutput.Write(p)
}

// NewDefLog returns new DefLog instance based on given module.
func NewDefLog(module string) *DefLog {
	logger := logrus.New()
	logger.SetOutput(sharedOutput{})
	// level filtering happens in ModLog
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&utcFormatter{Formatter: &logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	}})

	return &DefLog{logger: logger, module: module}
}

// DefLog is a logger implementation built on top of logrus.
// Every line carries the module name and, when enabled for the module and level, the caller function.
type DefLog struct {
	logger *logrus.Logger
	module string
}

// Fatalf is CRITICAL log formatted followed by a call to os.Exit(1).
func (l *DefLog) Fatalf(format string, args ...interface{}) {
	l.entry(log.CRITICAL).Fatalf(format, args...)
}

// Panicf is CRITICAL log formatted followed by a call to panic().
func (l *DefLog) Panicf(format string, args ...interface{}) {
	l.entry(log.CRITICAL).Panicf(format, args...)
}

// Debugf logs verbose messages.
func (l *DefLog) Debugf(format string, args ...interface{}) {
	l.entry(log.DEBUG).Debugf(format, args...)
}

// Infof logs general information messages. INFO is default logging level.
func (l *DefLog) Infof(format string, args ...interface{}) {
	l.entry(log.INFO).Infof(format, args...)
}

// Warnf logs possible errors.
func (l *DefLog) Warnf(format string, args ...interface{}) {
	l.entry(log.WARNING).Warnf(format, args...)
}

// Errorf logs errors.
func (l *DefLog) Errorf(format string, args ...interface{}) {
	l.entry(log.ERROR).Errorf(format, args...)
}

// SetOutput sets the output destination for the logger.
func (l *DefLog) SetOutput(output io.Writer) {
	l.logger.SetOutput(output)
}

func (l *DefLog) entry(level log.Level) *logrus.Entry {
	fields := logrus.Fields{moduleField: l.module}

	if metadata.IsCallerInfoEnabled(l.module, level) {
		fields[callerField] = callerInfo()
	}

	return l.logger.WithFields(fields)
}

// callerInfo walks the runtime caller frames to find the caller of the logger function,
// skipping the logging library frames.
func callerInfo() string {
	const (
		maxCallers = 6
		// callerInfo, entry, DefLog.<Level>f, ModLog.<Level>f
		skipCallers      = 5
		notFound         = "n/a"
		defaultLogPrefix = "log.(*Log)"
	)

	fpcs := make([]uintptr, maxCallers)

	n := runtime.Callers(skipCallers, fpcs)
	if n == 0 {
		return notFound
	}

	frames := runtime.CallersFrames(fpcs[:n])
	loggerFrameFound := false

	for f, more := frames.Next(); ; f, more = frames.Next() {
		_, fnName := filepath.Split(f.Function)

		if f.Function == "" {
			fnName = notFound
		}

		switch {
		case loggerFrameFound:
			return fnName
		case strings.HasPrefix(fnName, defaultLogPrefix):
			loggerFrameFound = true
		default:
			return fnName
		}

		if !more {
			return notFound
		}
	}
}

// utcFormatter stamps entries in UTC before delegating to the wrapped formatter.
type utcFormatter struct {
	logrus.Formatter
}

func (f *utcFormatter) Format(e *logrus.Entry) ([]byte, error) {
	e.Time = e.Time.UTC()

	b, err := f.Formatter.Format(e)
	if err != nil {
		return nil, fmt.Errorf("format log entry: %w", err)
	}

	return b, nil
}
