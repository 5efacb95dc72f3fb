package cache

import (
	"sync"
	"time"
)

// Key identifies one cached resource collection. The key set is fixed
// for the lifetime of a store.
type Key string

const (
	KeyClub   Key = "club"
	KeyTeam   Key = "team"
	KeyLeague Key = "league"
	KeyPlayer Key = "player"
	KeyMatch  Key = "match"
)

// AllKeys lists every resource collection the store tracks.
var AllKeys = []Key{KeyClub, KeyTeam, KeyLeague, KeyPlayer, KeyMatch}

// Entry is the last-known state for one key. A zero FetchedAt means the
// key has never been populated (or has been invalidated).
type Entry struct {
	Payload   any
	FetchedAt time.Time
}

// Store memoizes the last successful fetch per resource collection
// under a single global TTL. Entries are reset, never removed: the key
// set is fixed at construction.
type Store struct {
	mu      sync.RWMutex
	entries map[Key]Entry
	ttl     time.Duration
}

// NewStore builds a store over the fixed key set. A non-positive TTL
// makes every entry immediately stale, which effectively disables the
// cache without changing any caller.
func NewStore(ttl time.Duration) *Store {
	entries := make(map[Key]Entry, len(AllKeys))
	for _, key := range AllKeys {
		entries[key] = Entry{}
	}
	return &Store{
		entries: entries,
		ttl:     ttl,
	}
}

// Get returns the current entry for inspection. It never fetches. The
// second return is false for keys outside the fixed set.
func (s *Store) Get(key Key) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	return e, ok
}

// IsFresh reports whether the entry was populated less than one TTL
// before now.
func (s *Store) IsFresh(key Key, now time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok || e.FetchedAt.IsZero() || s.ttl <= 0 {
		return false
	}
	return now.Sub(e.FetchedAt) < s.ttl
}

// Set overwrites the entry with a freshly fetched payload. Payloads are
// stored whole; there are no partial merges.
func (s *Store) Set(key Key, payload any, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return
	}
	s.entries[key] = Entry{Payload: payload, FetchedAt: now}
}

// Invalidate resets one entry to empty.
func (s *Store) Invalidate(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return
	}
	s.entries[key] = Entry{}
}

// InvalidateAll resets every entry. Called after any mutating server
// operation, since a simulation can touch every resource type at once.
func (s *Store) InvalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.entries {
		s.entries[key] = Entry{}
	}
}

// TTL returns the store's freshness window.
func (s *Store) TTL() time.Duration {
	return s.ttl
}
