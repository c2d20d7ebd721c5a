package symbol

import "sync"

// Table maps symbol names to IDs and back.  Tables are safe for concurrent
// use, so several engines may share one.
type Table interface {
	// Len returns the number of symbols interned in the table.
	Len() int
	// Intern returns the ID of name, assigning the next free ID if name has
	// not been seen before.
	Intern(name string) ID
	// Peek returns the ID of name without interning it.
	Peek(name string) (ID, bool)
	// Symbol returns the name of id.
	Symbol(id ID) (string, bool)
}

// NewTable returns a Table.  Any names given are interned in order and so
// receive the IDs 1, 2, and so on.
func NewTable(names ...string) Table {
	t := &table{ids: make(map[string]ID, len(names))}
	for _, name := range names {
		t.intern(name)
	}
	return t
}

// InternAll interns each name in t and returns their IDs in order.
func InternAll(t Table, names ...string) []ID {
	if t, ok := t.(*table); ok {
		t.mu.Lock()
		defer t.mu.Unlock()
		return t.internAll(names)
	}
	ids := make([]ID, len(names))
	for i, name := range names {
		ids[i] = t.Intern(name)
	}
	return ids
}

type table struct {
	mu    sync.RWMutex
	names []string // names[id-1]
	ids   map[string]ID
}

func (t *table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.names)
}

func (t *table) Intern(name string) ID {
	if id, ok := t.Peek(name); ok {
		return id
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.intern(name)
}

func (t *table) internAll(names []string) []ID {
	ids := make([]ID, len(names))
	for i, name := range names {
		ids[i] = t.intern(name)
	}
	return ids
}

// intern must be called with t.mu held for writing.
func (t *table) intern(name string) ID {
	if id, ok := t.ids[name]; ok {
		return id
	}
	t.names = append(t.names, name)
	id := ID(len(t.names))
	t.ids[name] = id
	return id
}

func (t *table) Peek(name string) (ID, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := t.ids[name]
	return id, ok
}

func (t *table) Symbol(id ID) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if id == 0 || id > ID(len(t.names)) {
		return "", false
	}
	return t.names[id-1], true
}
