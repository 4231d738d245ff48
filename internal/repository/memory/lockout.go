package memory

import (
	"context"
	"sync"
	"time"
)

type lockoutEntry struct {
	failures  int64
	expiresAt time.Time
}

// LockoutStore считает неудачные попытки входа в памяти процесса.
// Просроченные счетчики удаляются при чтении и периодической очисткой в RecordFailure
type LockoutStore struct {
	mu        sync.Mutex
	entries   map[string]lockoutEntry
	nextSweep time.Time
	now       func() time.Time
}

// NewLockoutStore создает пустой LockoutStore
func NewLockoutStore() *LockoutStore {
	return &LockoutStore{entries: make(map[string]lockoutEntry), now: time.Now}
}

// RecordFailure увеличивает счетчик; окно отсчитывается от первой неудачи
func (s *LockoutStore) RecordFailure(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !now.Before(s.nextSweep) {
		s.sweepExpired(now)
		s.nextSweep = now.Add(window)
	}

	entry, ok := s.entries[key]
	if !ok || !now.Before(entry.expiresAt) {
		entry = lockoutEntry{expiresAt: now.Add(window)}
	}
	entry.failures++
	s.entries[key] = entry
	return entry.failures, nil
}

// Failures возвращает текущее значение счетчика
func (s *LockoutStore) Failures(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return 0, nil
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.entries, key)
		return 0, nil
	}
	return entry.failures, nil
}

// Clear сбрасывает счетчик
func (s *LockoutStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

// sweepExpired удаляет все счетчики с истекшим окном, вызывается под mu
func (s *LockoutStore) sweepExpired(now time.Time) {
	for key, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, key)
		}
	}
}
