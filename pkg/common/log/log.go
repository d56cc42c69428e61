/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package log provides module based logging for the signature suite.
// Levels and caller info are set per module; output goes to a logrus backed
// default logger unless a custom provider is supplied through Initialize.
package log

import (
	"io"
	"sync"

	"github.com/workprotocol/signaturesuite/pkg/common/log/internal/metadata"
	"github.com/workprotocol/signaturesuite/pkg/common/log/internal/modlog"
	"github.com/workprotocol/signaturesuite/spi/log"
)

const (
	loggerNotInitializedMsg = "Default logger initialized (please call log.Initialize() if you wish to use a custom logger)"
	loggerModule            = "signaturesuite/common"
)

// Level defines all available log levels for log messages.
type Level = log.Level

// Log levels.
const (
	CRITICAL = log.CRITICAL
	ERROR    = log.ERROR
	WARNING  = log.WARNING
	INFO     = log.INFO
	DEBUG    = log.DEBUG
)

// Log is an implementation of Logger interface.
// It encapsulates default or custom logger to provide module and level based logging.
type Log struct {
	instance log.Logger
	module   string
	once     sync.Once
}

// New creates and returns a Logger implementation based on given module name.
// The underlying logger instance is lazy initialized on first use.
func New(module string) *Log {
	return &Log{module: module}
}

// Fatalf calls Fatalf function of underlying logger.
func (l *Log) Fatalf(msg string, args ...interface{}) {
	l.logger().Fatalf(msg, args...)
}

// Panicf calls Panicf function of underlying logger.
func (l *Log) Panicf(msg string, args ...interface{}) {
	l.logger().Panicf(msg, args...)
}

// Debugf calls Debugf function of underlying logger.
func (l *Log) Debugf(msg string, args ...interface{}) {
	l.logger().Debugf(msg, args...)
}

// Infof calls Infof function of underlying logger.
func (l *Log) Infof(msg string, args ...interface{}) {
	l.logger().Infof(msg, args...)
}

// Warnf calls Warnf function of underlying logger.
func (l *Log) Warnf(msg string, args ...interface{}) {
	l.logger().Warnf(msg, args...)
}

// Errorf calls Errorf function of underlying logger.
func (l *Log) Errorf(msg string, args ...interface{}) {
	l.logger().Errorf(msg, args...)
}

func (l *Log) logger() log.Logger {
	l.once.Do(func() {
		l.instance = loggerProvider().GetLogger(l.module)
	})

	return l.instance
}

// SetLevel sets the log level for given module. If not set the level is INFO.
func SetLevel(module string, level Level) {
	metadata.SetLevel(module, level)
}

// GetLevel returns the log level for given module.
func GetLevel(module string) Level {
	return metadata.GetLevel(module)
}

// IsEnabledFor reports whether given log level is enabled for given module.
func IsEnabledFor(module string, level Level) bool {
	return metadata.IsEnabledFor(module, level)
}

// ParseLevel returns the log level from a string representation.
func ParseLevel(level string) (Level, error) {
	return metadata.ParseLevel(level)
}

// ParseString returns the string representation of given log level.
func ParseString(level Level) string {
	return metadata.ParseString(level)
}

// ShowCallerInfo shows caller info in log lines for given log level and module.
// Caller info may not be available for custom logging providers.
func ShowCallerInfo(module string, level Level) {
	metadata.ShowCallerInfo(module, level)
}

// HideCallerInfo hides caller info in log lines for given log level and module.
func HideCallerInfo(module string, level Level) {
	metadata.HideCallerInfo(module, level)
}

// IsCallerInfoEnabled reports whether caller info is enabled for given log level and module.
func IsCallerInfoEnabled(module string, level Level) bool {
	return metadata.IsCallerInfoEnabled(module, level)
}

// SetOutput sets where the default logger writes. It has no effect on a custom provider.
func SetOutput(w io.Writer) {
	modlog.SetDefaultOutput(w)
}
