package session

import (
	"sync"

	"github.com/sandevgo/salesdash/internal/sales"
)

// Store keeps one session per chat for surfaces that serve several users.
type Store struct {
	ds *sales.Dataset

	mu       sync.Mutex
	sessions map[string]*entry
}

type entry struct {
	mu      sync.Mutex
	session *Session
}

func NewStore(ds *sales.Dataset) *Store {
	return &Store{
		ds:       ds,
		sessions: make(map[string]*entry),
	}
}

// With runs fn with exclusive access to the session for id, creating it on
// first use. Calls for different ids run concurrently.
func (st *Store) With(id string, fn func(*Session)) {
	e := st.get(id)

	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.session)
}

func (st *Store) get(id string) *entry {
	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.sessions[id]
	if !ok {
		e = &entry{session: New(st.ds)}
		st.sessions[id] = e
	}
	return e
}
