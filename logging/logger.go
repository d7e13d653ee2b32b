// Copyright 2023 The acquirecloud Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package logging

import "sync/atomic"

type (
	// Logger interface exposes some methods for application logging
	Logger interface {
		// Errorf is a function for printing Error-level messages from the source code
		Errorf(format string, args ...interface{})
		// Warnf is a function for printing Warn-level messages from the source code
		Warnf(format string, args ...interface{})
		// Infof is a function for printing Info-level messages from the source code
		Infof(format string, args ...interface{})
		// Debugf is a function for printing Debug-level messages from the source code
		Debugf(format string, args ...interface{})
	}

	// Backend constructs a Logger by the logger name
	Backend func(name string) Logger

	// Level is one of ERROR, WARN, INFO or DEBUG
	Level int32
)

const (
	ERROR Level = iota
	WARN
	INFO
	DEBUG
)

var backend atomic.Value

func init() {
	SetBackend(stdNewLogger)
}

// NewLogger returns the new instance of Logger for the caller name.
func NewLogger(name string) Logger {
	return backend.Load().(Backend)(name)
}

// SetBackend allows to overwrite the function which constructs new loggers.
// It affects the loggers created after the call only.
func SetBackend(b Backend) {
	backend.Store(b)
}

// SetLevel allows to set the logging level for the standard backend
func SetLevel(lvl Level) {
	atomic.StoreInt32(&stdLevel, int32(lvl))
}

// GetLevel returns the current standard backend log level
func GetLevel() Level {
	return Level(atomic.LoadInt32(&stdLevel))
}
