package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// showLock is one lock-table entry. refs counts the callers currently
// holding or waiting on it so idle entries can be evicted.
type showLock struct {
	mu   sync.Mutex
	refs int
}

// showLocks linearizes mutating operations per show. Requests against
// different shows proceed independently; there is no global booking lock.
// Entries are dropped as soon as no caller holds or waits on them, so the
// table stays proportional to in-flight requests, not to shows ever seen.
type showLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*showLock

	retries int
	backoff time.Duration
}

func newShowLocks(retries int, backoff time.Duration) *showLocks {
	if retries < 1 {
		retries = 10
	}
	if backoff <= 0 {
		backoff = 5 * time.Millisecond
	}
	return &showLocks{
		locks:   make(map[uuid.UUID]*showLock),
		retries: retries,
		backoff: backoff,
	}
}

func (l *showLocks) enter(showID uuid.UUID) *showLock {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.locks[showID]
	if !ok {
		entry = &showLock{}
		l.locks[showID] = entry
	}
	entry.refs++
	return entry
}

func (l *showLocks) leave(showID uuid.UUID, entry *showLock) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, showID)
	}
}

// Acquire takes the per-show lock with a bounded TryLock loop and
// exponential backoff, so no caller blocks indefinitely. It returns
// ErrContention once the retry budget is exhausted and honors context
// cancellation between attempts.
func (l *showLocks) Acquire(ctx context.Context, showID uuid.UUID) (func(), error) {
	entry := l.enter(showID)

	delay := l.backoff
	for attempt := 0; attempt < l.retries; attempt++ {
		if entry.mu.TryLock() {
			return func() {
				entry.mu.Unlock()
				l.leave(showID, entry)
			}, nil
		}

		select {
		case <-ctx.Done():
			l.leave(showID, entry)
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	l.leave(showID, entry)
	return nil, ErrContention
}

// size reports the number of live lock-table entries.
func (l *showLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
