/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocklogger

import (
	"fmt"
	"strings"
	"sync"

	"github.com/workprotocol/signaturesuite/spi/log"
)

// MockLogger is a mocked logger that records every line for testing.
type MockLogger struct {
	mu    sync.Mutex
	lines []string
}

func (m *MockLogger) record(level, msg string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lines = append(m.lines, level+": "+fmt.Sprintf(msg, args...))
}

// Fatalf records a fatal line.
func (m *MockLogger) Fatalf(msg string, args ...interface{}) { m.record("FATAL", msg, args...) }

// Panicf records a panic line.
func (m *MockLogger) Panicf(msg string, args ...interface{}) { m.record("PANIC", msg, args...) }

// Debugf records a debug line.
func (m *MockLogger) Debugf(msg string, args ...interface{}) { m.record("DEBUG", msg, args...) }

// Infof records an info line.
func (m *MockLogger) Infof(msg string, args ...interface{}) { m.record("INFO", msg, args...) }

// Warnf records a warning line.
func (m *MockLogger) Warnf(msg string, args ...interface{}) { m.record("WARN", msg, args...) }

// Errorf records an error line.
func (m *MockLogger) Errorf(msg string, args ...interface{}) { m.record("ERROR", msg, args...) }

// AllLogContents returns every recorded line joined by newlines.
func (m *MockLogger) AllLogContents() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return strings.Join(m.lines, "\n")
}

// Provider is a mock logger provider that hands out a single MockLogger.
type Provider struct {
	MockLogger *MockLogger
}

// GetLogger returns the shared mock logger.
func (p *Provider) GetLogger(string) log.Logger {
	return p.MockLogger
}
