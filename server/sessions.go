package server

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"sync"
	"time"
)

type sessionEntry[T any] struct {
	value    T
	lastSeen time.Time
}

// sessionTable maps random session ids to values. Entries idle for longer
// than ttl are dropped, and the least recently seen entry makes room once
// max entries are held.
type sessionTable[T any] struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry[T]
	ttl     time.Duration
	max     int
	now     func() time.Time

	// onChange receives the entry count after every insert or removal
	onChange func(n int)
}

func newSessionTable[T any](ttl time.Duration, max int) *sessionTable[T] {
	return &sessionTable[T]{
		entries:  make(map[string]*sessionEntry[T]),
		ttl:      ttl,
		max:      max,
		now:      time.Now,
		onChange: func(int) {},
	}
}

// lookup returns the value of a live session and marks it as seen.
func (st *sessionTable[T]) lookup(id string) (T, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	var zero T
	e, ok := st.entries[id]
	if !ok {
		return zero, false
	}
	now := st.now()
	if now.Sub(e.lastSeen) > st.ttl {
		delete(st.entries, id)
		st.onChange(len(st.entries))
		return zero, false
	}
	e.lastSeen = now
	return e.value, true
}

// create stores v under a new session id.
func (st *sessionTable[T]) create(v T) string {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.sweepLocked()
	for st.max > 0 && len(st.entries) >= st.max {
		st.evictOldestLocked()
	}
	id := newSessionID()
	st.entries[id] = &sessionEntry[T]{value: v, lastSeen: st.now()}
	st.onChange(len(st.entries))
	return id
}

func (st *sessionTable[T]) remove(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.entries[id]; !ok {
		return
	}
	delete(st.entries, id)
	st.onChange(len(st.entries))
}

func (st *sessionTable[T]) len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.entries)
}

func (st *sessionTable[T]) sweepLocked() {
	now := st.now()
	for id, e := range st.entries {
		if now.Sub(e.lastSeen) > st.ttl {
			delete(st.entries, id)
		}
	}
}

func (st *sessionTable[T]) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, e := range st.entries {
		if oldestID == "" || e.lastSeen.Before(oldest) {
			oldestID, oldest = id, e.lastSeen
		}
	}
	delete(st.entries, oldestID)
}

func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		log.Panicf("failed to generate session id: %v", err)
	}
	return hex.EncodeToString(b)
}
