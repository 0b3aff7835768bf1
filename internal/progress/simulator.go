// Package progress simulates completion feedback for a single long-running
// remote call that reports no progress of its own.
package progress

import (
	"fmt"
	"sync"
	"time"
)

// Config controls the simulated feedback.
type Config struct {
	// BudgetSeconds is where the countdown starts.
	BudgetSeconds int
	// Cap is the highest percentage the fake progress reaches on its own.
	Cap int
	// ProgressInterval is the period of the +1% step.
	ProgressInterval time.Duration
	// CountdownInterval is the period of the -1s step.
	CountdownInterval time.Duration
}

// DefaultConfig returns the 150 s budget, 95% cap, 200 ms / 1 s ticks.
func DefaultConfig() Config {
	return Config{
		BudgetSeconds:     150,
		Cap:               95,
		ProgressInterval:  200 * time.Millisecond,
		CountdownInterval: time.Second,
	}
}

// State is a point-in-time view of the simulated feedback.
type State struct {
	Percent   int
	Remaining int
	Running   bool
}

// Initial returns the state shown before any request starts.
func Initial(cfg Config) State {
	return State{Percent: 0, Remaining: cfg.BudgetSeconds}
}

// Simulator runs the fake progress and countdown generators. Both start in
// Start and stop together in Stop; neither value ever moves after Stop.
type Simulator struct {
	cfg    Config
	onTick func()

	mu        sync.Mutex
	percent   int
	remaining int
	stopped   bool

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// Start launches both generators. onTick, if non-nil, is called from a
// generator goroutine after every step that changed a value. A tick already
// in flight when Stop is called may still invoke onTick, but it will observe
// the stopped values.
func Start(cfg Config, onTick func()) *Simulator {
	s := &Simulator{
		cfg:       cfg,
		onTick:    onTick,
		remaining: cfg.BudgetSeconds,
		done:      make(chan struct{}),
	}
	s.wg.Add(2)
	go s.run(cfg.ProgressInterval, s.stepProgress)
	go s.run(cfg.CountdownInterval, s.stepCountdown)
	return s
}

// run drives one generator until Stop or until step reports it is finished.
func (s *Simulator) run(interval time.Duration, step func() (changed, finished bool)) {
	defer s.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			changed, finished := step()
			if changed && s.onTick != nil {
				s.onTick()
			}
			if finished {
				return
			}
		}
	}
}

func (s *Simulator) stepProgress() (changed, finished bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return false, true
	}
	next := advanceProgress(s.percent, s.cfg.Cap)
	changed = next != s.percent
	s.percent = next
	return changed, false
}

func (s *Simulator) stepCountdown() (changed, finished bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return false, true
	}
	next := advanceCountdown(s.remaining)
	changed = next != s.remaining
	s.remaining = next
	// The countdown does not restart once it reaches zero.
	return changed, next == 0
}

// Stop cancels both generators. It is safe to call any number of times and
// does not block, so callers may hold their own locks.
func (s *Simulator) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.stopped = true
		s.mu.Unlock()
		close(s.done)
	})
}

// Wait blocks until both generator goroutines have exited.
func (s *Simulator) Wait() {
	s.wg.Wait()
}

// Complete stops the generators and forces progress to 100%.
func (s *Simulator) Complete() {
	s.Stop()
	s.mu.Lock()
	s.percent = 100
	s.mu.Unlock()
}

// State returns the current values.
func (s *Simulator) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{Percent: s.percent, Remaining: s.remaining, Running: !s.stopped}
}

// advanceProgress adds one percent, clamped at limit.
func advanceProgress(percent, limit int) int {
	if percent >= limit {
		return limit
	}
	return percent + 1
}

// advanceCountdown removes one second, floored at zero.
func advanceCountdown(remaining int) int {
	if remaining <= 1 {
		return 0
	}
	return remaining - 1
}

// FormatCountdown renders seconds as M:SS.
func FormatCountdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
