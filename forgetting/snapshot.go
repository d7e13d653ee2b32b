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

	"github.com/acquirecloud/forgettingmap/logging"
	"github.com/davecgh/go-spew/spew"
)

type (
	// Snapshot describes the edges of the recency list at one moment: the
	// least recently used association (Head) and the most recently used one
	// (Tail). Either may be nil when the Map is empty.
	Snapshot[K comparable, V any] struct {
		Head *Edge[K, V]
		Tail *Edge[K, V]
	}

	// Edge is the Head or the Tail view of the Snapshot. Neighbor is the key
	// of the adjacent entry: the next one for the Head, the previous one for
	// the Tail. It is nil when the edge has no neighbor.
	Edge[K comparable, V any] struct {
		Key      K
		Value    V
		Neighbor *K
	}

	// DebugHook is an optional callback invoked around the Map mutating
	// operations. The op is "find" or "add", the stage is "before" or
	// "after". The hook runs under the Map lock, so it must be fast and must
	// not call the Map back.
	DebugHook[K comparable, V any] func(op, stage string, s Snapshot[K, V])
)

const (
	opFind      = "find"
	opAdd       = "add"
	stageBefore = "before"
	stageAfter  = "after"
)

// SetDebugHook installs the hook h, nil removes the previously installed one.
// The Map with no hook pays a single nil check per operation.
func (m *Map[K, V]) SetDebugHook(h DebugHook[K, V]) {
	m.lock.Lock()
	m.hook = h
	m.lock.Unlock()
}

// LogHook returns the DebugHook which prints the snapshots to the log
// provided with the Debug level
func LogHook[K comparable, V any](log logging.Logger) DebugHook[K, V] {
	return func(op, stage string, s Snapshot[K, V]) {
		log.Debugf("[%s-%s] HEAD=%s TAIL=%s", op, stage, edgeString(s.Head), edgeString(s.Tail))
	}
}

func edgeString[K comparable, V any](e *Edge[K, V]) string {
	if e == nil {
		return "[null]"
	}
	neighbor := "null"
	if e.Neighbor != nil {
		neighbor = spew.Sprint(*e.Neighbor)
	}
	return fmt.Sprintf("[key: %s, value: %s, neighbor: %s]", spew.Sprint(e.Key), spew.Sprint(e.Value), neighbor)
}

// fireHook reports the current recency list edges to the installed hook
func (m *Map[K, V]) fireHook(op, stage string) {
	if m.hook == nil {
		return
	}
	var s Snapshot[K, V]
	if m.head != none {
		e := &m.slots[m.head]
		s.Head = &Edge[K, V]{Key: e.key, Value: e.value}
		if e.next != none {
			k := m.slots[e.next].key
			s.Head.Neighbor = &k
		}
	}
	if m.tail != none {
		e := &m.slots[m.tail]
		s.Tail = &Edge[K, V]{Key: e.key, Value: e.value}
		if e.prev != none {
			k := m.slots[e.prev].key
			s.Tail.Neighbor = &k
		}
	}
	m.hook(op, stage, s)
}
