// Package workflow drives an analysis from submission to a committed report
// and restores earlier analyses from history.
package workflow

// State is the lifecycle stage of the current submission.
type State int

// Submission lifecycle: Idle -> Submitting -> AwaitingResult -> Succeeded or
// Failed. A terminal state accepts a new submission; history restores and
// teardown return to Idle.
const (
	Idle State = iota
	Submitting
	AwaitingResult
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case AwaitingResult:
		return "awaiting_result"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// InFlight reports whether a submission is outstanding.
func (s State) InFlight() bool {
	return s == Submitting || s == AwaitingResult
}

// User-visible failure messages.
const (
	MsgNetworkError    = "Something went wrong. Please try again."
	MsgAnalyzeFailed   = "Failed to analyze"
	MsgMalformedReport = "The analysis returned an unreadable report. Please try again."
	MsgHistoryFailed   = "Failed to load history data"
	MsgHistoryError    = "Error loading history data"
)
