/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package metadata keeps the per-module log levels and caller info switches.
package metadata

import (
	"errors"
	"sync"

	"github.com/workprotocol/signaturesuite/spi/log"
)

const (
	defaultLogLevel   = log.INFO
	defaultModuleName = ""
)

//nolint:gochecknoglobals
var (
	rwmutex     = &sync.RWMutex{}
	levels      = map[string]log.Level{}
	callerInfos = newCallerInfo()
)

type callerInfoKey struct {
	module string
	level  log.Level
}

type callerInfo struct {
	showcaller map[callerInfoKey]bool
}

func newCallerInfo() *callerInfo {
	return &callerInfo{showcaller: map[callerInfoKey]bool{
		{defaultModuleName, log.CRITICAL}: true,
		{defaultModuleName, log.ERROR}:    true,
		{defaultModuleName, log.WARNING}:  true,
		{defaultModuleName, log.INFO}:     true,
		{defaultModuleName, log.DEBUG}:    true,
	}}
}

func (c *callerInfo) isEnabled(module string, level log.Level) bool {
	show, exists := c.showcaller[callerInfoKey{module, level}]
	if !exists {
		return c.showcaller[callerInfoKey{defaultModuleName, level}]
	}

	return show
}

// SetLevel - setting log level for given module.
func SetLevel(module string, level log.Level) {
	rwmutex.Lock()
	defer rwmutex.Unlock()

	levels[module] = level
}

// GetLevel - getting log level for given module.
func GetLevel(module string) log.Level {
	rwmutex.RLock()
	defer rwmutex.RUnlock()

	return getLevel(module)
}

func getLevel(module string) log.Level {
	level, exists := levels[module]
	if !exists {
		level, exists = levels[defaultModuleName]
		if !exists {
			return defaultLogLevel
		}
	}

	return level
}

// IsEnabledFor - Check if given log level is enabled for given module.
func IsEnabledFor(module string, level log.Level) bool {
	rwmutex.RLock()
	defer rwmutex.RUnlock()

	return level <= getLevel(module)
}

// ShowCallerInfo - Show caller info in log lines for given log level and module.
func ShowCallerInfo(module string, level log.Level) {
	rwmutex.Lock()
	defer rwmutex.Unlock()

	callerInfos.showcaller[callerInfoKey{module, level}] = true
}

// HideCallerInfo - Do not show caller info in log lines for given log level and module.
func HideCallerInfo(module string, level log.Level) {
	rwmutex.Lock()
	defer rwmutex.Unlock()

	callerInfos.showcaller[callerInfoKey{module, level}] = false
}

// IsCallerInfoEnabled - returns if caller info enabled for given log level and module.
func IsCallerInfoEnabled(module string, level log.Level) bool {
	rwmutex.RLock()
	defer rwmutex.RUnlock()

	return callerInfos.isEnabled(module, level)
}

// ParseLevel returns the log level from a string representation.
func ParseLevel(level string) (log.Level, error) {
	l, ok := log.LevelByName(level)
	if !ok {
		return log.ERROR, errors.New("logger: invalid log level")
	}

	return l, nil
}

// ParseString returns string representation of given log level.
func ParseString(level log.Level) string {
	return level.String()
}
