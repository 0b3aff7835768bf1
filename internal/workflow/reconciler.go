package workflow

import (
	"context"
	"errors"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/launchlens/internal/lookup"
	"github.com/sells-group/launchlens/internal/report"
	"github.com/sells-group/launchlens/pkg/launchlens"
)

// ErrSuperseded is returned when a newer submission, restore, or teardown
// took over before a history record arrived.
var ErrSuperseded = eris.New("workflow: superseded")

// RecordFetcher loads a stored analysis. launchlens.Client satisfies it.
type RecordFetcher interface {
	HistoryRecord(ctx context.Context, id launchlens.ID) (*launchlens.HistoryRecord, error)
}

// StateOptions holds the state choices offered for the selected country.
// lookup.Directory satisfies it.
type StateOptions interface {
	SetStates(countryCode string, states []lookup.Region)
	LoadStates(ctx context.Context, countryCode string) []lookup.Region
}

// Reconciler replaces the live workflow with a stored analysis.
type Reconciler struct {
	ctrl    *Controller
	fetcher RecordFetcher
	states  StateOptions
}

// NewReconciler returns a reconciler that restores into ctrl.
func NewReconciler(ctrl *Controller, fetcher RecordFetcher, states StateOptions) *Reconciler {
	return &Reconciler{ctrl: ctrl, fetcher: fetcher, states: states}
}

// Select restores history entry id. Any pending submission is abandoned
// first and its response will be ignored.
//
// On success the form takes the stored idea, report type, country and
// state, and the state options are replaced for the restored country. The
// report is restored only when the record carries one; otherwise it stays
// empty until the form is resubmitted.
//
// On failure the form is left untouched and an error message is shown.
func (r *Reconciler) Select(ctx context.Context, id launchlens.ID) error {
	gen := r.ctrl.preempt()

	rec, err := r.fetcher.HistoryRecord(ctx, id)
	if err != nil {
		if r.ctrl.expireOn(err) {
			return eris.Wrap(err, "workflow: select history")
		}
		msg := MsgHistoryFailed
		var tErr *launchlens.TransportError
		if errors.As(err, &tErr) {
			msg = MsgHistoryError
		}
		r.ctrl.fail(gen, msg)
		zap.L().Warn("history restore failed", zap.String("history_id", string(id)), zap.Error(err))
		return eris.Wrap(err, "workflow: select history")
	}

	var rep *report.Report
	if rec.HasResult() {
		rep, err = report.Parse(rec.Raw)
		if err != nil {
			zap.L().Warn("history record carries an unreadable report",
				zap.String("history_id", string(id)), zap.Error(err))
			rep = nil
		}
	}

	req := Request{
		Idea:       rec.Idea,
		ReportType: rec.ReportType,
		Country:    rec.CountryCode,
		State:      rec.StateCode,
	}
	if !r.ctrl.restore(gen, req, rep) {
		return ErrSuperseded
	}

	switch {
	case len(rec.AvailableStates) > 0:
		r.states.SetStates(rec.CountryCode, lookup.FromAPI(rec.AvailableStates))
	case rec.CountryCode != "":
		r.states.LoadStates(ctx, rec.CountryCode)
	}

	zap.L().Info("history restored",
		zap.String("history_id", string(id)),
		zap.Bool("with_report", rep != nil),
	)
	return nil
}
