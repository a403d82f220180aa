// Package history provides an in-memory implementation of the location
// and history collaborators the router consumes. A browser-backed
// implementation lives with the host environment, outside this module.
package history

import (
	"strings"
	"sync"
)

// entry is one history record: a destination path plus opaque state.
type entry struct {
	path  string
	state any
}

// Memory is a linear history: an entry stack with a cursor. Push drops
// the forward tail, Back/Forward move the cursor and fire pop listeners,
// the way externally driven navigation reaches a router.
// Safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	entries []entry
	index   int
	pops    []func()
}

// NewMemory creates a history seeded with an initial path ("/" when
// empty).
func NewMemory(initial string) *Memory {
	if initial == "" {
		initial = "/"
	}
	return &Memory{entries: []entry{{path: initial}}}
}

// Pathname returns the path component of the current entry.
func (m *Memory) Pathname() string {
	pathname, _, _ := splitPath(m.current())
	return pathname
}

// Search returns the query component of the current entry, without "?".
func (m *Memory) Search() string {
	_, search, _ := splitPath(m.current())
	return search
}

// Hash returns the fragment component of the current entry, without "#".
func (m *Memory) Hash() string {
	_, _, hash := splitPath(m.current())
	return hash
}

// Push appends a new entry after the cursor, discarding any forward
// entries.
func (m *Memory) Push(path string, state any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries[:m.index+1], entry{path: path, state: state})
	m.index = len(m.entries) - 1
}

// Replace overwrites the current entry.
func (m *Memory) Replace(path string, state any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[m.index] = entry{path: path, state: state}
}

// Back moves the cursor one entry back and fires pop listeners. A no-op
// at the oldest entry.
func (m *Memory) Back() {
	m.mu.Lock()
	if m.index == 0 {
		m.mu.Unlock()
		return
	}
	m.index--
	pops := append([]func(){}, m.pops...)
	m.mu.Unlock()

	for _, fn := range pops {
		fn()
	}
}

// Forward moves the cursor one entry forward and fires pop listeners. A
// no-op at the newest entry.
func (m *Memory) Forward() {
	m.mu.Lock()
	if m.index >= len(m.entries)-1 {
		m.mu.Unlock()
		return
	}
	m.index++
	pops := append([]func(){}, m.pops...)
	m.mu.Unlock()

	for _, fn := range pops {
		fn()
	}
}

// OnPop registers a listener for externally driven navigation
// (back/forward). Listeners run after the cursor has moved.
func (m *Memory) OnPop(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pops = append(m.pops, fn)
}

// State returns the opaque state of the current entry.
func (m *Memory) State() any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[m.index].state
}

// Len returns the number of entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memory) current() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[m.index].path
}

// splitPath cuts "pathname?search#hash" into its components. The
// fragment splits first, matching how a location resolves.
func splitPath(path string) (pathname, search, hash string) {
	path, hash, _ = strings.Cut(path, "#")
	pathname, search, _ = strings.Cut(path, "?")
	return pathname, search, hash
}
