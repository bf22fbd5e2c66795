package planogram

import "sync"

// shelfKey identifies one shelf collection in the cache.
type shelfKey struct {
	Branch string
	Shelf  string
}

// Store is the canonical shelf cache. It is an explicit dependency handed to
// the Service rather than package state, so the engine stays independently
// testable. Collections for different shelves are fully independent; the
// per-shelf entry lock serializes mutations of one shelf across the
// suspension points of Add/Delete persistence calls.
type Store struct {
	mu      sync.RWMutex
	shelves map[shelfKey]*ShelfCollection
	locks   map[shelfKey]*sync.Mutex
}

// NewStore creates an empty canonical cache.
func NewStore() *Store {
	return &Store{
		shelves: make(map[shelfKey]*ShelfCollection),
		locks:   make(map[shelfKey]*sync.Mutex),
	}
}

// evict drops the cached collection so the next access reloads it.
func (st *Store) evict(key shelfKey) {
	st.mu.Lock()
	delete(st.shelves, key)
	st.mu.Unlock()
}

// get returns the live cached collection without cloning. Callers must hold
// the shelf lock while mutating it.
func (st *Store) get(key shelfKey) (*ShelfCollection, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	c, ok := st.shelves[key]
	return c, ok
}

func (st *Store) put(key shelfKey, c *ShelfCollection) {
	st.mu.Lock()
	st.shelves[key] = c
	st.mu.Unlock()
}

// shelfLock returns the mutex serializing mutations of one shelf, creating
// it on first use.
func (st *Store) shelfLock(key shelfKey) *sync.Mutex {
	st.mu.Lock()
	defer st.mu.Unlock()
	l, ok := st.locks[key]
	if !ok {
		l = &sync.Mutex{}
		st.locks[key] = l
	}
	return l
}
