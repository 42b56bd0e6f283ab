package usecase

import "sync"

// PropertyLocks hands out one exclusive section per property so a
// manual edit and an in-flight sync cannot interleave writes to the
// same calendar. Different properties proceed fully in parallel.
type PropertyLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewPropertyLocks() *PropertyLocks {
	return &PropertyLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *PropertyLocks) forProperty(propertyID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[propertyID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[propertyID] = lock
	}
	return lock
}

// Acquire blocks until the property's exclusive section is free and
// returns the release func.
func (l *PropertyLocks) Acquire(propertyID string) func() {
	lock := l.forProperty(propertyID)
	lock.Lock()
	return lock.Unlock
}
