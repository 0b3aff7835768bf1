// Package session holds the process-wide credential and tears down
// dependent workflow state when the credential stops being valid.
package session

import (
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/launchlens/pkg/launchlens"
)

// ErrExpired is reported when the credential is missing or rejected.
var ErrExpired = eris.New("session: expired")

// Session is the single source of the bearer credential. It implements
// launchlens.TokenSource so clients read the credential through it instead
// of from storage.
type Session struct {
	store Store

	mu    sync.Mutex
	token string
	hooks []func()
}

// New returns a session backed by store. Call Init before use.
func New(store Store) *Session {
	return &Session{store: store}
}

// Init reads the persisted credential.
func (s *Session) Init() error {
	token, err := s.store.Load()
	if err != nil {
		return eris.Wrap(err, "session: init")
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// Token implements launchlens.TokenSource.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Authenticated reports whether a credential is held.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// SignIn stores a freshly issued credential.
func (s *Session) SignIn(token string) error {
	if token == "" {
		return eris.New("session: empty token")
	}
	if err := s.store.Save(token); err != nil {
		return eris.Wrap(err, "session: sign in")
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// OnTeardown registers fn to run whenever an authenticated session ends.
// Hooks run in registration order, outside the session lock.
func (s *Session) OnTeardown(fn func()) {
	s.mu.Lock()
	s.hooks = append(s.hooks, fn)
	s.mu.Unlock()
}

// Teardown clears the credential everywhere and runs the teardown hooks if a
// credential was held. It is used for both logout and expiry.
func (s *Session) Teardown(reason error) error {
	s.mu.Lock()
	wasAuthenticated := s.token != ""
	s.token = ""
	hooks := append([]func(){}, s.hooks...)
	s.mu.Unlock()

	storeErr := s.store.Clear()

	if wasAuthenticated {
		zap.L().Info("session torn down", zap.Error(reason))
		for _, fn := range hooks {
			fn()
		}
	}

	if storeErr != nil {
		return eris.Wrap(storeErr, "session: teardown")
	}
	return nil
}

// Expire tears the session down because the credential is no longer valid.
func (s *Session) Expire() {
	if err := s.Teardown(ErrExpired); err != nil {
		zap.L().Warn("session: clear credential after expiry", zap.Error(err))
	}
}

// ExpireOn expires the session when err shows the credential was rejected,
// and reports whether it did. Any component that sees a 401 routes it here
// so expiry is handled the same way everywhere.
func (s *Session) ExpireOn(err error) bool {
	if !launchlens.IsUnauthorized(err) {
		return false
	}
	s.Expire()
	return true
}
