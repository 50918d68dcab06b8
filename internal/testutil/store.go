package testutil

import (
	"context"
	"sync"

	"github.com/mkrupp/homecase-sessiongate/internal/repo/session"
)

// RecordingStore is a session.Store backed by memory that counts calls and
// can be told to fail.
type RecordingStore struct {
	mu sync.Mutex

	inner *session.MemoryStore

	GetErr    error
	SetErr    error
	RemoveErr error

	gets    int
	sets    []string
	removes int
}

var _ session.Store = (*RecordingStore)(nil)

// NewRecordingStore creates an empty RecordingStore.
func NewRecordingStore() *RecordingStore {
	return &RecordingStore{inner: session.NewMemoryStore()}
}

// Seed stores value under key without recording the call.
func (s *RecordingStore) Seed(key, value string) {
	_ = s.inner.Set(context.Background(), key, value)
}

// Get implements session.Store.
func (s *RecordingStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	s.gets++
	err := s.GetErr
	s.mu.Unlock()

	if err != nil {
		return "", false, err
	}

	return s.inner.Get(ctx, key)
}

// Set implements session.Store.
func (s *RecordingStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	err := s.SetErr
	if err == nil {
		s.sets = append(s.sets, value)
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}

	return s.inner.Set(ctx, key, value)
}

// Remove implements session.Store.
func (s *RecordingStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	s.removes++
	err := s.RemoveErr
	s.mu.Unlock()

	if err != nil {
		return err
	}

	return s.inner.Remove(ctx, key)
}

// Close implements session.Store.
func (s *RecordingStore) Close() error {
	return nil
}

// Gets returns the number of Get calls.
func (s *RecordingStore) Gets() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.gets
}

// Sets returns the values successfully written, in order.
func (s *RecordingStore) Sets() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.sets...)
}

// Removes returns the number of Remove calls.
func (s *RecordingStore) Removes() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.removes
}

// Value returns what is stored under key.
func (s *RecordingStore) Value(key string) (string, bool) {
	value, ok, _ := s.inner.Get(context.Background(), key)

	return value, ok
}
