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
	"errors"
	"fmt"
	"sync"
)

type (
	// Map implements a bounded container of the key-value associations with the
	// LRU (Least Recently Used) pull out discipline. The Map never holds more
	// than maxAssociations elements. Adding a new association to the full Map
	// forgets the one which was not touched by Find for the longest time.
	//
	// All the Map operations are safe for the concurrent use. Every operation
	// runs under the single Map lock, so the worst case an operation may take
	// is O(1) while another in-flight operation holds the lock.
	Map[K comparable, V any] struct {
		lock            sync.Mutex
		maxAssociations int
		// slots is the arena which owns all the live entries. The recency list
		// threads the entries via the slot indexes, so relinking never touches
		// the entries values
		slots []entry[K, V]
		// index answers "does the key exist" and points to the entry slot
		index map[K]int
		// free keeps the slot indexes released by the forgotten entries
		free []int
		head int
		tail int
		hook DebugHook[K, V]
	}

	// entry is one association held by the Map. The prev and next fields are
	// the slot indexes of the recency list neighbors, none if there is no one
	entry[K comparable, V any] struct {
		key   K
		value V
		prev  int
		next  int
	}
)

// ErrInvalidCapacity is returned by New when the requested maximum number of
// the associations is not a positive integer
var ErrInvalidCapacity = errors.New("maxAssociations must be a positive integer")

// none marks the absent slot index (an empty Map head or the list edges)
const none = -1

// defaultSlots is the initial arena size. The arena grows lazily by doubling,
// but never beyond maxAssociations slots
const defaultSlots = 10

// New creates the new Map object. It expects the maximum number of the
// associations the Map may hold (maxAssociations) in the parameter. It
// returns ErrInvalidCapacity if maxAssociations is not positive.
func New[K comparable, V any](maxAssociations int) (*Map[K, V], error) {
	if maxAssociations <= 0 {
		return nil, fmt.Errorf("New(): maxAssociations=%d: %w", maxAssociations, ErrInvalidCapacity)
	}
	m := new(Map[K, V])
	m.maxAssociations = maxAssociations
	slots := defaultSlots
	if slots > maxAssociations {
		slots = maxAssociations
	}
	m.slots = make([]entry[K, V], 0, slots)
	m.index = make(map[K]int)
	m.head = none
	m.tail = none
	return m, nil
}

// Find returns the value associated with the key k. The second result is
// false if the association does not exist. A successful Find makes the
// association the most recently used one, so the repeating Find for the same
// key stays cheap.
func (m *Map[K, V]) Find(k K) (V, bool) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.fireHook(opFind, stageBefore)
	idx, ok := m.index[k]
	if !ok {
		return *new(V), false
	}
	m.moveToTail(idx)
	m.fireHook(opFind, stageAfter)
	return m.slots[idx].value, true
}

// Add associates the value v with the key k. If the key already exists its
// value is replaced in place and the recency order is not changed - only Find
// promotes an association. A brand new association becomes the most recently
// used one, forgetting the least recently used entry first if the Map is
// full. Add never fails.
func (m *Map[K, V]) Add(k K, v V) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.fireHook(opAdd, stageBefore)
	if idx, ok := m.index[k]; ok {
		m.slots[idx].value = v
		m.fireHook(opAdd, stageAfter)
		return
	}
	m.ensureRoom()
	idx := m.takeSlot(k, v)
	m.linkTail(idx)
	m.index[k] = idx
	m.fireHook(opAdd, stageAfter)
}

// Len returns the current number of the associations in the Map
func (m *Map[K, V]) Len() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return len(m.index)
}

// ensureRoom prepares the Map for one insertion: the least recently used
// association is forgotten when the Map is full, otherwise the arena is grown
// if it has no spare slot
func (m *Map[K, V]) ensureRoom() {
	if len(m.index) == m.maxAssociations {
		m.evictLeastUsed()
		return
	}
	if len(m.free) == 0 && len(m.slots) == cap(m.slots) {
		newSize := cap(m.slots) * 2
		if newSize > m.maxAssociations {
			newSize = m.maxAssociations
		}
		grown := make([]entry[K, V], len(m.slots), newSize)
		copy(grown, m.slots)
		m.slots = grown
	}
}

// evictLeastUsed unlinks the head of the recency list and releases its slot
// for the reuse. The caller must guarantee the Map is not empty.
func (m *Map[K, V]) evictLeastUsed() {
	victim := m.head
	e := &m.slots[victim]
	m.head = e.next
	if m.head == none {
		m.tail = none
	} else {
		m.slots[m.head].prev = none
	}
	delete(m.index, e.key)
	// zero the slot, so the forgotten key and value do not leak via the arena
	*e = entry[K, V]{prev: none, next: none}
	m.free = append(m.free, victim)
}

// takeSlot places the association into a released slot if there is one, or
// appends the new slot to the arena
func (m *Map[K, V]) takeSlot(k K, v V) int {
	if n := len(m.free); n > 0 {
		idx := m.free[n-1]
		m.free = m.free[:n-1]
		m.slots[idx] = entry[K, V]{key: k, value: v, prev: none, next: none}
		return idx
	}
	m.slots = append(m.slots, entry[K, V]{key: k, value: v, prev: none, next: none})
	return len(m.slots) - 1
}

// linkTail appends the unlinked slot idx to the tail of the recency list,
// making it the most recently used association
func (m *Map[K, V]) linkTail(idx int) {
	m.slots[idx].prev = m.tail
	m.slots[idx].next = none
	if m.tail == none {
		m.head = idx
	} else {
		m.slots[m.tail].next = idx
	}
	m.tail = idx
}

// moveToTail relocates the slot idx to the tail of the recency list. It is a
// no-op when the slot is the tail already. The links of all the other entries
// but the idx neighbors stay untouched.
func (m *Map[K, V]) moveToTail(idx int) {
	if m.tail == idx {
		return
	}
	e := &m.slots[idx]
	if m.head == idx {
		m.head = e.next
	} else {
		m.slots[e.prev].next = e.next
	}
	// e.next exists, the idx is not the tail
	m.slots[e.next].prev = e.prev
	m.linkTail(idx)
}
