// Package history provides bounded in-memory retention for rate snapshots and
// executed transactions.
package history

import (
	"sync"

	"github.com/nvoss/fxpulse/internal/core"
)

// DefaultCapacity bounds snapshot retention to the 100 most recent cycles.
const DefaultCapacity = 100

// SnapshotStore is a capped FIFO store of rate snapshots. The monitoring loop
// is the only writer; readers may inspect retained history concurrently.
type SnapshotStore struct {
	mu        sync.RWMutex
	snapshots []core.RateSnapshot
	capacity  int
}

// NewSnapshotStore creates a store retaining at most capacity snapshots.
// A non-positive capacity falls back to DefaultCapacity.
func NewSnapshotStore(capacity int) *SnapshotStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &SnapshotStore{
		snapshots: make([]core.RateSnapshot, 0, capacity),
		capacity:  capacity,
	}
}

// Append adds a snapshot, evicting the oldest when over capacity.
func (s *SnapshotStore) Append(snap core.RateSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshots = append(s.snapshots, snap)
	if len(s.snapshots) > s.capacity {
		s.snapshots = s.snapshots[len(s.snapshots)-s.capacity:]
	}
}

// Last returns the most recent snapshot, or false when none is retained.
func (s *SnapshotStore) Last() (core.RateSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.snapshots) == 0 {
		return core.RateSnapshot{}, false
	}
	return s.snapshots[len(s.snapshots)-1], true
}

// Len returns the number of retained snapshots.
func (s *SnapshotStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snapshots)
}

// Recent returns up to n retained snapshots, oldest first.
func (s *SnapshotStore) Recent(n int) []core.RateSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || n > len(s.snapshots) {
		n = len(s.snapshots)
	}
	out := make([]core.RateSnapshot, n)
	copy(out, s.snapshots[len(s.snapshots)-n:])
	return out
}

// TransactionLog is a capped FIFO journal of executed transactions.
type TransactionLog struct {
	mu       sync.RWMutex
	entries  []core.Transaction
	capacity int
}

// NewTransactionLog creates a journal retaining at most capacity entries.
func NewTransactionLog(capacity int) *TransactionLog {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &TransactionLog{
		entries:  make([]core.Transaction, 0, capacity),
		capacity: capacity,
	}
}

// Append records a transaction, evicting the oldest when over capacity.
func (l *TransactionLog) Append(tx core.Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, tx)
	if len(l.entries) > l.capacity {
		l.entries = l.entries[len(l.entries)-l.capacity:]
	}
}

// All returns the retained transactions, oldest first.
func (l *TransactionLog) All() []core.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]core.Transaction, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of retained transactions.
func (l *TransactionLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
