package service

import "sync"

// clubLocks serializes mutating operations per club. The accounting core
// assumes a host that grants exclusive access to a club for the duration of
// an operation; this keyed mutex is that host discipline. Locks are created
// on first use and never released: the per-club footprint is one mutex.
type clubLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newClubLocks() *clubLocks {
	return &clubLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire locks the club's mutex and returns the unlock function.
func (l *clubLocks) acquire(clubID string) func() {
	l.mu.Lock()
	m, ok := l.locks[clubID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[clubID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
