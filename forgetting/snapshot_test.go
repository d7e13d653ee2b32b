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
package forgetting

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type hookCall[K comparable, V any] struct {
	op    string
	stage string
	s     Snapshot[K, V]
}

type hookRecorder[K comparable, V any] struct {
	calls []hookCall[K, V]
}

func (r *hookRecorder[K, V]) hook(op, stage string, s Snapshot[K, V]) {
	r.calls = append(r.calls, hookCall[K, V]{op: op, stage: stage, s: s})
}

func TestMap_DebugHook(t *testing.T) {
	m, _ := New[string, int](10)
	r := &hookRecorder[string, int]{}
	m.SetDebugHook(r.hook)

	m.Add("a", 1)
	assert.Equal(t, 2, len(r.calls))
	assert.Equal(t, "add", r.calls[0].op)
	assert.Equal(t, "before", r.calls[0].stage)
	assert.Nil(t, r.calls[0].s.Head)
	assert.Nil(t, r.calls[0].s.Tail)
	assert.Equal(t, "after", r.calls[1].stage)
	assert.Equal(t, "a", r.calls[1].s.Head.Key)
	assert.Equal(t, 1, r.calls[1].s.Head.Value)
	assert.Equal(t, "a", r.calls[1].s.Tail.Key)
	assert.Nil(t, r.calls[1].s.Head.Neighbor)
	assert.Nil(t, r.calls[1].s.Tail.Neighbor)

	m.Add("b", 2)
	r.calls = nil
	m.Find("a")
	assert.Equal(t, 2, len(r.calls))
	assert.Equal(t, "find", r.calls[0].op)
	// before the lookup "a" is the head, after it "a" is the tail
	assert.Equal(t, "a", r.calls[0].s.Head.Key)
	assert.Equal(t, "b", *r.calls[0].s.Head.Neighbor)
	assert.Equal(t, "b", r.calls[1].s.Head.Key)
	assert.Equal(t, "a", r.calls[1].s.Tail.Key)
	assert.Equal(t, "b", *r.calls[1].s.Tail.Neighbor)
}

func TestMap_DebugHookMiss(t *testing.T) {
	m, _ := New[string, int](10)
	m.Add("a", 1)
	r := &hookRecorder[string, int]{}
	m.SetDebugHook(r.hook)

	// a miss reports the "before" stage only, there is nothing to reorder
	m.Find("nope")
	assert.Equal(t, 1, len(r.calls))
	assert.Equal(t, "find", r.calls[0].op)
	assert.Equal(t, "before", r.calls[0].stage)
}

func TestMap_DebugHookDisabled(t *testing.T) {
	m, _ := New[string, int](10)
	r := &hookRecorder[string, int]{}
	m.SetDebugHook(r.hook)
	m.Add("a", 1)
	assert.NotEqual(t, 0, len(r.calls))

	r.calls = nil
	m.SetDebugHook(nil)
	m.Add("b", 2)
	m.Find("a")
	assert.Equal(t, 0, len(r.calls))
}

type testLogger struct {
	lines []string
}

func (tl *testLogger) Errorf(format string, args ...interface{}) { tl.logf(format, args...) }
func (tl *testLogger) Warnf(format string, args ...interface{})  { tl.logf(format, args...) }
func (tl *testLogger) Infof(format string, args ...interface{})  { tl.logf(format, args...) }
func (tl *testLogger) Debugf(format string, args ...interface{}) { tl.logf(format, args...) }

func (tl *testLogger) logf(format string, args ...interface{}) {
	tl.lines = append(tl.lines, fmt.Sprintf(format, args...))
}

func TestLogHook(t *testing.T) {
	m, _ := New[string, string](10)
	tl := &testLogger{}
	m.SetDebugHook(LogHook[string, string](tl))

	m.Add("a", "1")
	m.Add("b", "2")
	m.Find("a")

	assert.Equal(t, 6, len(tl.lines))
	assert.True(t, strings.HasPrefix(tl.lines[0], "[add-before] HEAD=[null] TAIL=[null]"))
	assert.Contains(t, tl.lines[3], "[add-after] HEAD=[key: a, value: 1, neighbor: b]")
	assert.Contains(t, tl.lines[5], "[find-after]")
	assert.Contains(t, tl.lines[5], "TAIL=[key: a, value: 1, neighbor: b]")
}
