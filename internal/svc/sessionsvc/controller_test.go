package sessionsvc_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkrupp/homecase-sessiongate/internal/domain"
	"github.com/mkrupp/homecase-sessiongate/internal/repo/session"
	"github.com/mkrupp/homecase-sessiongate/internal/svc/sessionsvc"
	"github.com/mkrupp/homecase-sessiongate/internal/testutil"
)

var errStore = errors.New("disk full")

type recorder struct {
	mu     sync.Mutex
	states []domain.SessionState
}

func (r *recorder) observe(state domain.SessionState) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.states = append(r.states, state)
}

func (r *recorder) seen() []domain.SessionState {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]domain.SessionState(nil), r.states...)
}

func TestController_Bootstrap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		seed      *string
		getErr    error
		wantState domain.SessionState
		wantToken domain.SessionToken
	}{
		{
			name:      "stored token authenticates",
			seed:      ptr("tok"),
			wantState: domain.StateAuthenticated,
			wantToken: "tok",
		},
		{
			name:      "no token",
			wantState: domain.StateUnauthenticated,
		},
		{
			name:      "empty stored token",
			seed:      ptr(""),
			wantState: domain.StateUnauthenticated,
		},
		{
			name:      "read failure",
			seed:      ptr("tok"),
			getErr:    errStore,
			wantState: domain.StateUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := testutil.NewRecordingStore()
			if tt.seed != nil {
				store.Seed(session.TokenKey, *tt.seed)
			}
			store.GetErr = tt.getErr

			ctrl := sessionsvc.NewController(store)
			assert.Equal(t, domain.StateUnchecked, ctrl.State())

			rec := &recorder{}
			ctrl.Subscribe(rec.observe)

			state := ctrl.Bootstrap(context.Background())
			assert.Equal(t, tt.wantState, state)
			assert.Equal(t, tt.wantState, ctrl.State())
			assert.Equal(t, tt.wantToken, ctrl.Token())
			assert.Equal(t, []domain.SessionState{domain.StateChecking, tt.wantState}, rec.seen())
		})
	}
}

func TestController_BootstrapIsIdempotent(t *testing.T) {
	t.Parallel()

	store := testutil.NewRecordingStore()
	store.Seed(session.TokenKey, "tok")

	ctrl := sessionsvc.NewController(store)
	first := ctrl.Bootstrap(context.Background())

	// A later store change must not be observed by a repeated bootstrap.
	store.Seed(session.TokenKey, "")

	second := ctrl.Bootstrap(context.Background())

	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.Gets())
}

func TestController_BootstrapConcurrent(t *testing.T) {
	t.Parallel()

	store := testutil.NewRecordingStore()
	ctrl := sessionsvc.NewController(store)

	var wg sync.WaitGroup

	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			assert.Equal(t, domain.StateUnauthenticated, ctrl.Bootstrap(context.Background()))
		}()
	}

	wg.Wait()
	assert.Equal(t, 1, store.Gets())
}

func TestController_BootstrapAfterSignInIsNoop(t *testing.T) {
	t.Parallel()

	store := testutil.NewRecordingStore()
	ctrl := sessionsvc.NewController(store)

	require.NoError(t, ctrl.SignIn(context.Background(), "tok"))

	rec := &recorder{}
	ctrl.Subscribe(rec.observe)

	assert.Equal(t, domain.StateAuthenticated, ctrl.Bootstrap(context.Background()))
	assert.Zero(t, store.Gets())
	assert.Empty(t, rec.seen(), "an authenticated session must never fall back to checking")
}

func TestController_SignIn(t *testing.T) {
	t.Parallel()

	store := testutil.NewRecordingStore()
	ctrl := sessionsvc.NewController(store)
	ctrl.Bootstrap(context.Background())

	rec := &recorder{}
	ctrl.Subscribe(rec.observe)

	require.NoError(t, ctrl.SignIn(context.Background(), "tok-1"))

	assert.Equal(t, domain.StateAuthenticated, ctrl.State())
	assert.Equal(t, domain.SessionToken("tok-1"), ctrl.Token())
	assert.Equal(t, []string{"tok-1"}, store.Sets())
	assert.Equal(t, []domain.SessionState{domain.StateAuthenticated}, rec.seen())

	value, ok := store.Value(session.TokenKey)
	assert.True(t, ok)
	assert.Equal(t, "tok-1", value)
}

func TestController_SignInEmptyToken(t *testing.T) {
	t.Parallel()

	store := testutil.NewRecordingStore()
	ctrl := sessionsvc.NewController(store)
	ctrl.Bootstrap(context.Background())

	err := ctrl.SignIn(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrEmptyToken)
	assert.Equal(t, domain.StateUnauthenticated, ctrl.State())
	assert.Empty(t, store.Sets())
}

func TestController_SignInPersistenceFailure(t *testing.T) {
	t.Parallel()

	store := testutil.NewRecordingStore()
	store.SetErr = errStore

	ctrl := sessionsvc.NewController(store)
	ctrl.Bootstrap(context.Background())

	rec := &recorder{}
	ctrl.Subscribe(rec.observe)

	err := ctrl.SignIn(context.Background(), "tok")
	require.ErrorIs(t, err, domain.ErrPersistence)
	require.ErrorIs(t, err, errStore)

	assert.Equal(t, domain.StateUnauthenticated, ctrl.State())
	assert.Empty(t, ctrl.Token())
	assert.Empty(t, rec.seen())
}

func TestController_SignOut(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		removeErr error
	}{
		{name: "clears store"},
		{name: "store failure does not block", removeErr: errStore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := testutil.NewRecordingStore()
			store.Seed(session.TokenKey, "tok")
			store.RemoveErr = tt.removeErr

			ctrl := sessionsvc.NewController(store)
			require.Equal(t, domain.StateAuthenticated, ctrl.Bootstrap(context.Background()))

			rec := &recorder{}
			ctrl.Subscribe(rec.observe)

			ctrl.SignOut(context.Background())

			assert.Equal(t, domain.StateUnauthenticated, ctrl.State())
			assert.Empty(t, ctrl.Token())
			assert.Equal(t, 1, store.Removes())
			assert.Equal(t, []domain.SessionState{domain.StateUnauthenticated}, rec.seen())

			_, ok := store.Value(session.TokenKey)
			assert.Equal(t, tt.removeErr != nil, ok)
		})
	}
}

func TestController_Unsubscribe(t *testing.T) {
	t.Parallel()

	ctrl := sessionsvc.NewController(testutil.NewRecordingStore())

	rec := &recorder{}
	unsubscribe := ctrl.Subscribe(rec.observe)
	unsubscribe()

	ctrl.Bootstrap(context.Background())
	assert.Empty(t, rec.seen())
}

func ptr[T any](v T) *T {
	return &v
}
