package practice

import (
	"sync"
	"time"
)

// Store keeps practice sessions keyed by session id
type Store struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	idleTimeout time.Duration
	now         func() time.Time
}

// NewStore creates a store that evicts sessions idle for longer than
// idleTimeout
func NewStore(idleTimeout time.Duration) *Store {
	return &Store{
		sessions:    make(map[string]*Session),
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// Get returns the session for id, creating it on first use
func (st *Store) Get(id string) *Session {
	now := st.now()

	st.mu.Lock()
	sess, ok := st.sessions[id]
	if !ok {
		sess = NewSession(id)
		st.sessions[id] = sess
	}
	st.mu.Unlock()

	sess.touch(now)
	return sess
}

// Remove closes and forgets the session for id
func (st *Store) Remove(id string) {
	st.mu.Lock()
	sess, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()

	if ok {
		sess.Close()
	}
}

// Sweep closes and removes idle sessions and returns how many were removed
func (st *Store) Sweep() int {
	cutoff := st.now().Add(-st.idleTimeout)

	st.mu.Lock()
	var idle []*Session
	for id, sess := range st.sessions {
		if sess.idleSince().Before(cutoff) {
			idle = append(idle, sess)
			delete(st.sessions, id)
		}
	}
	st.mu.Unlock()

	for _, sess := range idle {
		sess.Close()
	}
	return len(idle)
}

// Len returns the number of live sessions
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Close closes every session
func (st *Store) Close() {
	st.mu.Lock()
	sessions := st.sessions
	st.sessions = make(map[string]*Session)
	st.mu.Unlock()

	for _, sess := range sessions {
		sess.Close()
	}
}
