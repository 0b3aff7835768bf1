package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/launchlens/pkg/launchlens"
	"github.com/sells-group/launchlens/pkg/launchlens/mocks"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.yaml")
	fs := NewFileStore(path)

	tok, err := fs.Load()
	require.NoError(t, err)
	assert.Empty(t, tok, "missing file means no credential")

	require.NoError(t, fs.Save("tok-123"))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	tok, err = fs.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", tok)

	require.NoError(t, fs.Clear())
	require.NoError(t, fs.Clear(), "clearing twice is fine")
	tok, err = fs.Load()
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestFileStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte("token: [unterminated"), 0o600))

	_, err := NewFileStore(path).Load()
	assert.Error(t, err)
}

func TestSession_InitAndSignIn(t *testing.T) {
	store := &MemoryStore{Token: "persisted"}
	s := New(store)
	assert.False(t, s.Authenticated())

	require.NoError(t, s.Init())
	assert.Equal(t, "persisted", s.Token())

	require.NoError(t, s.SignIn("fresh"))
	assert.Equal(t, "fresh", s.Token())
	assert.Equal(t, "fresh", store.Token)

	assert.Error(t, s.SignIn(""))
}

func TestSession_TeardownRunsHooksOnce(t *testing.T) {
	store := &MemoryStore{Token: "tok"}
	s := New(store)
	require.NoError(t, s.Init())

	var order []string
	s.OnTeardown(func() { order = append(order, "controller") })
	s.OnTeardown(func() { order = append(order, "history") })

	require.NoError(t, s.Teardown(nil))
	assert.Equal(t, []string{"controller", "history"}, order)
	assert.False(t, s.Authenticated())
	assert.Empty(t, store.Token)

	// Already signed out: store is cleared again but hooks do not rerun.
	require.NoError(t, s.Teardown(nil))
	assert.Len(t, order, 2)
}

func TestSession_HookMayReadSession(t *testing.T) {
	s := New(&MemoryStore{Token: "tok"})
	require.NoError(t, s.Init())

	var seen atomic.Value
	s.OnTeardown(func() { seen.Store(s.Authenticated()) })
	s.Expire()
	assert.Equal(t, false, seen.Load())
}

func TestSession_ExpireOn(t *testing.T) {
	s := New(&MemoryStore{Token: "tok"})
	require.NoError(t, s.Init())

	assert.False(t, s.ExpireOn(errors.New("boom")))
	assert.False(t, s.ExpireOn(&launchlens.APIError{StatusCode: 500}))
	assert.True(t, s.Authenticated())

	assert.True(t, s.ExpireOn(&launchlens.APIError{StatusCode: 401}))
	assert.False(t, s.Authenticated())
}

func TestMonitor_ExpiresOnProbeFailure(t *testing.T) {
	s := New(&MemoryStore{Token: "tok"})
	require.NoError(t, s.Init())
	var tornDown atomic.Bool
	s.OnTeardown(func() { tornDown.Store(true) })

	checker := mocks.NewMockClient(t)
	checker.On("Me", mock.Anything).Return(&launchlens.Profile{Username: "ada"}, nil).Twice()
	checker.On("Me", mock.Anything).Return(nil, &launchlens.APIError{StatusCode: 401}).Once()

	m := NewMonitor(s, checker, 2*time.Millisecond)
	err := m.Run(context.Background())
	require.ErrorIs(t, err, ErrExpired)
	assert.True(t, tornDown.Load())
	assert.False(t, s.Authenticated())
}

func TestMonitor_TransportFailureAlsoExpires(t *testing.T) {
	s := New(&MemoryStore{Token: "tok"})
	require.NoError(t, s.Init())

	checker := mocks.NewMockClient(t)
	checker.On("Me", mock.Anything).Return(nil, &launchlens.TransportError{Err: errors.New("dial tcp: refused")}).Once()

	err := NewMonitor(s, checker, time.Millisecond).Run(context.Background())
	require.ErrorIs(t, err, ErrExpired)
	assert.False(t, s.Authenticated())
}

func TestMonitor_StopsWithContext(t *testing.T) {
	s := New(&MemoryStore{Token: "tok"})
	require.NoError(t, s.Init())

	checker := mocks.NewMockClient(t)
	checker.On("Me", mock.Anything).Return(&launchlens.Profile{Username: "ada"}, nil).Maybe()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := NewMonitor(s, checker, 2*time.Millisecond).Run(ctx)
	require.NoError(t, err)
	assert.True(t, s.Authenticated())
}

func TestMonitor_MissingCredential(t *testing.T) {
	s := New(&MemoryStore{})
	require.NoError(t, s.Init())

	checker := mocks.NewMockClient(t)
	_, err := NewMonitor(s, checker, time.Millisecond).Check(context.Background())
	assert.ErrorIs(t, err, ErrExpired)
	checker.AssertNotCalled(t, "Me", mock.Anything)
}

func TestNewMonitor_DefaultInterval(t *testing.T) {
	m := NewMonitor(New(&MemoryStore{}), nil, 0)
	assert.Equal(t, DefaultProbeInterval, m.interval)
}
