// Package store holds the client's in-memory mirror of the remote expense
// collection, plus the pure filtering and balance derivations over it.
package store

import (
	"sync"

	"spendtrack/internal/core"
)

// Store is the ordered in-memory mirror of the last successful fetch. It is
// replaced wholesale, never patched. Replacements carry the fetch sequence
// number assigned by the gateway so that a response completing out of order
// cannot clobber newer data.
type Store struct {
	mu      sync.RWMutex
	records []core.Expense
	seq     uint64
}

func New() *Store {
	return &Store{}
}

// Replace swaps the full record sequence if seq is newer than the last
// applied fetch. It reports whether the replacement was applied.
func (s *Store) Replace(seq uint64, records []core.Expense) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seq != 0 && seq <= s.seq {
		return false
	}
	s.seq = seq
	s.records = append([]core.Expense(nil), records...)
	return true
}

// Snapshot returns a copy of the current records in server order.
func (s *Store) Snapshot() []core.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Expense(nil), s.records...)
}

// Len returns the number of records currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Seq returns the sequence number of the last applied fetch.
func (s *Store) Seq() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seq
}
