package lisp

// MapData is the container that backs LMap values.  Keys are compared with
// Equal.  Entries keep their insertion order.
type MapData struct {
	keys  []LVal
	vals  []LVal
	index map[mapKey]int
}

// mapKey is the hashable form of keys whose Equal semantics reduce to
// comparing their tag and payload.
type mapKey struct {
	typ  LType
	data uint64
	str  string
}

func hashKey(k LVal) (mapKey, bool) {
	switch k.Type() {
	case LNil, LSymbol, LInt:
		return mapKey{typ: k.Type(), data: k.Data}, true
	case LString:
		return mapKey{typ: LString, str: k.Native.(string)}, true
	default:
		return mapKey{}, false
	}
}

// NewMapData returns an empty MapData with room for n entries.
func NewMapData(n int) *MapData {
	return &MapData{
		keys:  make([]LVal, 0, n),
		vals:  make([]LVal, 0, n),
		index: make(map[mapKey]int, n),
	}
}

// Map returns an LMap value backed by data.  The caller must not modify data
// after the value has been shared.
func Map(data *MapData) LVal {
	return LVal{
		LTypeData: Type(LMap),
		Native:    data,
	}
}

// GetMap returns the MapData backing v.
// GetMap returns false if v is not LMap.
func GetMap(v LVal) (*MapData, bool) {
	if v.Type() != LMap {
		return nil, false
	}
	return v.Native.(*MapData), true
}

// Len returns the number of entries in m.
func (m *MapData) Len() int {
	return len(m.keys)
}

func (m *MapData) find(k LVal) (int, bool) {
	if h, ok := hashKey(k); ok {
		i, ok := m.index[h]
		return i, ok
	}
	for i := range m.keys {
		if Equal(m.keys[i], k) {
			return i, true
		}
	}
	return -1, false
}

// Get returns the value associated with k.
func (m *MapData) Get(k LVal) (LVal, bool) {
	i, ok := m.find(k)
	if !ok {
		return Nil(), false
	}
	return m.vals[i], true
}

// Put associates k with v, replacing any value previously associated with k.
func (m *MapData) Put(k, v LVal) {
	i, ok := m.find(k)
	if ok {
		m.vals[i] = v
		return
	}
	if h, ok := hashKey(k); ok {
		m.index[h] = len(m.keys)
	}
	m.keys = append(m.keys, k)
	m.vals = append(m.vals, v)
}

// Each calls fn for every entry of m in insertion order.
func (m *MapData) Each(fn func(k, v LVal)) {
	for i := range m.keys {
		fn(m.keys[i], m.vals[i])
	}
}

func (m *MapData) equal(m2 *MapData) bool {
	if m == m2 {
		return true
	}
	if m.Len() != m2.Len() {
		return false
	}
	for i := range m.keys {
		v, ok := m2.Get(m.keys[i])
		if !ok || !Equal(m.vals[i], v) {
			return false
		}
	}
	return true
}
