package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/launchlens/internal/progress"
	"github.com/sells-group/launchlens/internal/report"
	"github.com/sells-group/launchlens/pkg/launchlens"
)

// Analyzer issues the remote analysis. launchlens.Client satisfies it.
type Analyzer interface {
	Analyze(ctx context.Context, req launchlens.AnalyzeRequest) ([]byte, error)
}

// Expirer turns a rejected credential into a session teardown.
// session.Session satisfies it.
type Expirer interface {
	ExpireOn(err error) bool
}

// Snapshot is a copy of the controller's state for rendering.
type Snapshot struct {
	// Seq increases with every change. Listeners may receive snapshots out
	// of order and should drop any with a lower Seq than one already seen.
	Seq          uint64
	State        State
	Request      Request
	Report       *report.Report
	Page         int
	Expanded     map[string]bool
	Progress     progress.State
	Err          string
	SubmissionID string
}

// City returns the city on the current page. ok is false without a report.
func (s Snapshot) City() (report.City, bool) {
	if s.Report.Len() == 0 {
		return report.City{}, false
	}
	return s.Report.CityAt(s.Page), true
}

// Option configures a Controller.
type Option func(*Controller)

// WithSimulator sets the progress feedback configuration.
func WithSimulator(cfg progress.Config) Option {
	return func(c *Controller) {
		c.simCfg = cfg
	}
}

// WithNames sets how region codes become the names the service expects.
func WithNames(n Namer) Option {
	return func(c *Controller) {
		if n != nil {
			c.names = n
		}
	}
}

// WithExpirer routes rejected-credential failures to the session.
func WithExpirer(e Expirer) Option {
	return func(c *Controller) {
		c.expirer = e
	}
}

// OnSuccess registers fn to run after a fresh report is committed, for
// example to mark the history list stale.
func OnSuccess(fn func()) Option {
	return func(c *Controller) {
		c.onSuccess = append(c.onSuccess, fn)
	}
}

// Controller owns the analysis form, the simulated progress of the pending
// submission, and the committed report with its pager.
//
// Every submission, history restore, and teardown starts a new generation.
// A network response is committed only if its generation is still current,
// so a late response can never overwrite newer state.
type Controller struct {
	analyzer  Analyzer
	names     Namer
	expirer   Expirer
	simCfg    progress.Config
	onSuccess []func()

	mu           sync.Mutex
	gen          uint64
	seq          uint64
	state        State
	req          Request
	rep          *report.Report
	pager        *report.Pager
	errMsg       string
	sim          *progress.Simulator
	frozen       progress.State
	submissionID string
	settled      chan struct{}
	listeners    []func(Snapshot)
}

// NewController returns an idle controller with an empty country request.
func NewController(analyzer Analyzer, opts ...Option) *Controller {
	c := &Controller{
		analyzer: analyzer,
		names:    codeNames{},
		simCfg:   progress.DefaultConfig(),
		req:      NewRequest(),
		pager:    report.NewPager(0),
		settled:  closedChan(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.frozen = progress.Initial(c.simCfg)
	return c
}

// Subscribe registers fn to receive a snapshot after every change. fn runs
// on whichever goroutine made the change and must not block for long.
func (c *Controller) Subscribe(fn func(Snapshot)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	p := c.frozen
	if c.sim != nil {
		p = c.sim.State()
	}
	return Snapshot{
		Seq:          c.seq,
		State:        c.state,
		Request:      c.req,
		Report:       c.rep,
		Page:         c.pager.Index(),
		Expanded:     c.pager.Expansion(),
		Progress:     p,
		Err:          c.errMsg,
		SubmissionID: c.submissionID,
	}
}

// publish sends a fresh snapshot to every listener, outside the lock.
func (c *Controller) publish() {
	c.mu.Lock()
	c.seq++
	snap := c.snapshotLocked()
	listeners := append([]func(Snapshot){}, c.listeners...)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

// SetIdea sets the business idea.
func (c *Controller) SetIdea(idea string) {
	c.update(func(r Request) Request {
		r.Idea = idea
		return r
	})
}

// SetReportType switches between country and state reports. Switching to a
// country report clears the state.
func (c *Controller) SetReportType(t string) {
	c.update(func(r Request) Request { return r.withReportType(t) })
}

// SetCountry selects a country by code. Changing the country clears the
// state.
func (c *Controller) SetCountry(code string) {
	c.update(func(r Request) Request { return r.withCountry(code) })
}

// SetState selects a state by code.
func (c *Controller) SetState(code string) {
	c.update(func(r Request) Request {
		r.State = code
		return r.normalized()
	})
}

// SetRequest replaces the whole form.
func (c *Controller) SetRequest(req Request) {
	c.update(func(Request) Request { return req.normalized() })
}

func (c *Controller) update(fn func(Request) Request) {
	c.mu.Lock()
	c.req = fn(c.req)
	c.mu.Unlock()
	c.publish()
}

// Submit validates the form and starts the analysis without waiting for
// it. It returns ErrInFlight while a submission is pending and a
// *ValidationError for an incomplete form; neither reaches the network.
// Use Await to wait for the outcome.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.state.InFlight() {
		c.mu.Unlock()
		return ErrInFlight
	}
	if err := c.req.Validate(); err != nil {
		c.mu.Unlock()
		return err
	}

	c.gen++
	gen := c.gen
	id := uuid.NewString()
	payload := c.req.payload(c.names)

	c.state = Submitting
	c.submissionID = id
	c.errMsg = ""
	c.rep = nil
	c.pager.Reset(0)
	c.settled = make(chan struct{})
	c.sim = progress.Start(c.simCfg, c.publish)
	c.mu.Unlock()

	zap.L().Info("analysis submitted",
		zap.String("submission_id", id),
		zap.String("idea", payload.Idea),
		zap.String("report_type", payload.ReportType),
		zap.String("country", payload.Country),
	)
	c.publish()

	go c.run(ctx, gen, id, payload)
	return nil
}

func (c *Controller) run(ctx context.Context, gen uint64, id string, payload launchlens.AnalyzeRequest) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.state = AwaitingResult
	c.mu.Unlock()
	c.publish()

	body, err := c.analyzer.Analyze(ctx, payload)
	if err != nil && c.expireOn(err) {
		// Teardown hooks normally reset the controller already, which makes
		// the resolve below a no-op.
		zap.L().Info("analysis rejected: session expired", zap.String("submission_id", id))
	}

	rep, msg := interpret(body, err)
	c.resolve(gen, id, rep, msg, err)
}

// interpret turns the service response into a report or a user message.
func interpret(body []byte, err error) (*report.Report, string) {
	if err != nil {
		return nil, failureMessage(err)
	}

	if msg, ok := payloadError(body); ok {
		return nil, msg
	}

	rep, perr := report.Parse(body)
	if perr != nil {
		return nil, MsgMalformedReport
	}
	return rep, ""
}

// payloadError reports whether a success body carries an "error" field. A
// string is shown as is; an object falls back to its message or detail.
func payloadError(body []byte) (string, bool) {
	var payload struct {
		Error any `json:"error"`
	}
	if json.Unmarshal(body, &payload) != nil || payload.Error == nil {
		return "", false
	}
	switch v := payload.Error.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return "", false
		}
		return v, true
	case bool:
		if !v {
			return "", false
		}
	case float64:
		if v == 0 {
			return "", false
		}
	case map[string]any:
		for _, key := range []string{"message", "detail"} {
			if s, ok := v[key].(string); ok && strings.TrimSpace(s) != "" {
				return s, true
			}
		}
	}
	return MsgAnalyzeFailed, true
}

// failureMessage prefers a message from the response body. A readable body
// without one gets MsgAnalyzeFailed; anything else is a network error.
func failureMessage(err error) string {
	if msg := launchlens.RemoteMessage(err); msg != "" {
		return msg
	}
	var apiErr *launchlens.APIError
	if errors.As(err, &apiErr) && json.Valid([]byte(apiErr.Body)) {
		return MsgAnalyzeFailed
	}
	return MsgNetworkError
}

// resolve stops the timers, forces progress to 100 and then publishes the
// terminal state, unless the submission was superseded.
func (c *Controller) resolve(gen uint64, id string, rep *report.Report, msg string, cause error) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		zap.L().Debug("analysis response ignored: superseded", zap.String("submission_id", id))
		return
	}

	c.sim.Complete()
	c.frozen = c.sim.State()
	c.sim = nil

	succeeded := msg == ""
	if succeeded {
		c.state = Succeeded
		c.rep = rep
		c.pager.Reset(rep.Len())
	} else {
		c.state = Failed
		c.errMsg = msg
	}
	close(c.settled)
	notify := append([]func(){}, c.onSuccess...)
	c.mu.Unlock()

	if succeeded {
		zap.L().Info("analysis succeeded", zap.String("submission_id", id), zap.Int("cities", rep.Len()))
	} else {
		zap.L().Info("analysis failed", zap.String("submission_id", id), zap.String("message", msg), zap.Error(cause))
	}
	c.publish()

	if succeeded {
		for _, fn := range notify {
			fn()
		}
	}
}

// Await blocks until the current submission settles or ctx is done, and
// returns the state at that point.
func (c *Controller) Await(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	settled := c.settled
	c.mu.Unlock()

	select {
	case <-settled:
		return c.Snapshot(), nil
	case <-ctx.Done():
		return c.Snapshot(), ctx.Err()
	}
}

// Next shows the next city. It reports false on the last page.
func (c *Controller) Next() bool {
	return c.navigate((*report.Pager).Next)
}

// Previous shows the previous city. It reports false on the first page.
func (c *Controller) Previous() bool {
	return c.navigate((*report.Pager).Previous)
}

func (c *Controller) navigate(step func(*report.Pager) bool) bool {
	c.mu.Lock()
	moved := step(c.pager)
	c.mu.Unlock()
	if moved {
		c.publish()
	}
	return moved
}

// ToggleSection expands or collapses a detail section and returns whether
// it is now expanded.
func (c *Controller) ToggleSection(title string) bool {
	c.mu.Lock()
	open := c.pager.Toggle(title)
	c.mu.Unlock()
	c.publish()
	return open
}

// stopLocked cancels any pending submission and invalidates its response.
func (c *Controller) stopLocked() {
	c.gen++
	if c.sim != nil {
		c.sim.Stop()
		c.sim = nil
	}
	select {
	case <-c.settled:
	default:
		close(c.settled)
	}
}

// preempt clears the result and any pending submission ahead of a history
// restore, keeping the form. It returns the restore's generation.
func (c *Controller) preempt() uint64 {
	c.mu.Lock()
	c.stopLocked()
	gen := c.gen
	c.state = Idle
	c.rep = nil
	c.errMsg = ""
	c.submissionID = ""
	c.pager.Reset(0)
	c.frozen = progress.Initial(c.simCfg)
	c.mu.Unlock()
	c.publish()
	return gen
}

// restore commits a history record if gen is still current.
func (c *Controller) restore(gen uint64, req Request, rep *report.Report) bool {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return false
	}
	c.req = req.normalized()
	c.rep = rep
	c.pager.Reset(rep.Len())
	c.mu.Unlock()
	c.publish()
	return true
}

// fail surfaces msg if gen is still current. The form is left as it was.
func (c *Controller) fail(gen uint64, msg string) bool {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return false
	}
	c.errMsg = msg
	c.mu.Unlock()
	c.publish()
	return true
}

// expireOn reports whether err expired the session.
func (c *Controller) expireOn(err error) bool {
	return c.expirer != nil && c.expirer.ExpireOn(err)
}

// Teardown cancels the timers, ignores any pending response, and returns
// every field to its initial value. It is registered as a session teardown
// hook so logout and expiry discard in-progress work.
func (c *Controller) Teardown() {
	c.mu.Lock()
	c.stopLocked()
	c.state = Idle
	c.req = NewRequest()
	c.rep = nil
	c.errMsg = ""
	c.submissionID = ""
	c.pager.Reset(0)
	c.frozen = progress.Initial(c.simCfg)
	c.mu.Unlock()
	c.publish()
}

func closedChan() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
