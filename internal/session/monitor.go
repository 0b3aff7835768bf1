package session

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/launchlens/pkg/launchlens"
)

// DefaultProbeInterval is how often the credential is re-checked.
const DefaultProbeInterval = 3 * time.Second

// Checker validates the held credential. launchlens.Client satisfies it.
type Checker interface {
	Me(ctx context.Context) (*launchlens.Profile, error)
}

// Monitor periodically probes the credential and tears the session down on
// the first failure. It runs independently of any analysis in flight.
type Monitor struct {
	session  *Session
	checker  Checker
	interval time.Duration
}

// NewMonitor returns a liveness monitor. A non-positive interval uses
// DefaultProbeInterval.
func NewMonitor(s *Session, checker Checker, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	return &Monitor{session: s, checker: checker, interval: interval}
}

// Check runs one probe. Any error, of any kind, means the credential is not
// usable.
func (m *Monitor) Check(ctx context.Context) (*launchlens.Profile, error) {
	if !m.session.Authenticated() {
		return nil, ErrExpired
	}
	probeCtx, cancel := context.WithTimeout(ctx, m.interval)
	defer cancel()

	p, err := m.checker.Me(probeCtx)
	if err != nil {
		return nil, eris.Wrap(ErrExpired, err.Error())
	}
	return p, nil
}

// Run probes every interval until ctx is done (returns nil) or a probe fails
// (tears the session down and returns ErrExpired).
func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := m.Check(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				zap.L().Warn("session liveness probe failed", zap.Error(err))
				m.session.Expire()
				return ErrExpired
			}
		}
	}
}
