package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/launchlens/internal/export"
	"github.com/sells-group/launchlens/internal/progress"
	"github.com/sells-group/launchlens/internal/session"
	"github.com/sells-group/launchlens/internal/tui"
	"github.com/sells-group/launchlens/internal/workflow"
	"github.com/sells-group/launchlens/pkg/launchlens"
)

// outputOptions control how a finished analysis is shown and saved.
type outputOptions struct {
	Export string
	XLSX   bool
	Plain  bool
}

var (
	analyzeReq  workflow.Request
	analyzeOpts outputOptions
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a business idea for a country or state",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		if err := a.requireSession(); err != nil {
			return err
		}

		req := analyzeReq
		req.Country = strings.ToUpper(strings.TrimSpace(req.Country))
		req.State = strings.ToUpper(strings.TrimSpace(req.State))
		if err := req.Validate(); err != nil {
			return err
		}
		if err := a.warm(ctx, statesFor(req), false); err != nil {
			return err
		}
		a.ctrl.SetRequest(req)
		return runAnalysis(ctx, a, analyzeOpts, cmd.OutOrStdout())
	},
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeReq.Idea, "idea", "", "business idea to analyze (required)")
	f.StringVar(&analyzeReq.Country, "country", "", "country code, e.g. IN (required)")
	f.StringVar(&analyzeReq.ReportType, "report-type", launchlens.ReportTypeCountry, "report scope: country or state")
	f.StringVar(&analyzeReq.State, "state", "", "state code; required for --report-type state")
	addOutputFlags(analyzeCmd, &analyzeOpts)
	_ = analyzeCmd.MarkFlagRequired("idea")
	_ = analyzeCmd.MarkFlagRequired("country")

	rootCmd.AddCommand(analyzeCmd)
}

func addOutputFlags(cmd *cobra.Command, opts *outputOptions) {
	cmd.Flags().StringVar(&opts.Export, "export", "", "save a PDF report: summary or detailed")
	cmd.Flags().BoolVar(&opts.XLSX, "xlsx", false, "also save the city scores as an XLSX workbook")
	cmd.Flags().BoolVar(&opts.Plain, "plain", false, "print progress lines instead of the interactive view")
}

func statesFor(req workflow.Request) string {
	if req.ReportType == launchlens.ReportTypeState {
		return req.Country
	}
	return ""
}

// runAnalysis submits the controller's current form and waits for the
// outcome while the session monitor runs. A rejected credential ends the
// command with session.ErrExpired.
func runAnalysis(ctx context.Context, a *app, opts outputOptions, out io.Writer) error {
	if _, err := opts.mode(); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	monitorCtx, stopMonitor := context.WithCancel(gctx)
	defer stopMonitor()

	g.Go(func() error {
		return session.NewMonitor(a.sess, a.client, a.cfg.Session.ProbeInterval()).Run(monitorCtx)
	})

	var snap workflow.Snapshot
	g.Go(func() error {
		defer stopMonitor()
		s, err := analyze(gctx, a, opts.Plain, out)
		snap = s
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}
	if !a.sess.Authenticated() {
		return session.ErrExpired
	}

	switch snap.State {
	case workflow.Failed:
		return eris.New(snap.Err)
	case workflow.Succeeded:
	default:
		// Interrupted before the result arrived.
		return nil
	}

	if opts.Plain {
		fmt.Fprintln(out, tui.Body(snap, 100))
	}
	return saveOutputs(a, opts, snap, out)
}

func analyze(ctx context.Context, a *app, plain bool, out io.Writer) (workflow.Snapshot, error) {
	if err := a.ctrl.Submit(ctx); err != nil {
		return workflow.Snapshot{}, err
	}

	if !plain {
		title := "LaunchLens: " + a.ctrl.Snapshot().Request.Idea
		if err := tui.Run(ctx, a.ctrl, title); err != nil {
			return workflow.Snapshot{}, err
		}
		snap := a.ctrl.Snapshot()
		if snap.State.InFlight() {
			// Quit before the result arrived; ignore whatever comes back.
			a.ctrl.Teardown()
		}
		return a.ctrl.Snapshot(), nil
	}

	p := newProgressPrinter(out)
	a.ctrl.Subscribe(p.print)
	snap, err := a.ctrl.Await(ctx)
	if err != nil {
		// Interrupted; stop the timers and drop the late response.
		a.ctrl.Teardown()
	}
	return snap, nil
}

// progressPrinter writes a line each time the simulated progress crosses
// another tenth.
type progressPrinter struct {
	out io.Writer

	mu   sync.Mutex
	last int
}

func newProgressPrinter(out io.Writer) *progressPrinter {
	return &progressPrinter{out: out, last: -1}
}

func (p *progressPrinter) print(s workflow.Snapshot) {
	if !s.State.InFlight() {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	step := s.Progress.Percent / 10
	if step <= p.last {
		return
	}
	p.last = step
	fmt.Fprintf(p.out, "%3d%%  about %s left\n", s.Progress.Percent, progress.FormatCountdown(s.Progress.Remaining))
}

// mode returns the PDF export mode. The workbook uses detailed mode when
// no PDF was requested.
func (o outputOptions) mode() (export.Mode, error) {
	if o.Export == "" {
		return export.ModeDetailed, nil
	}
	return export.ParseMode(o.Export)
}

func saveOutputs(a *app, opts outputOptions, snap workflow.Snapshot, out io.Writer) error {
	if opts.Export == "" && !opts.XLSX {
		return nil
	}
	mode, err := opts.mode()
	if err != nil {
		return err
	}
	exp := export.NewExporter(a.cfg.Export.Dir)
	idea := snap.Request.Idea

	if opts.Export != "" {
		path, err := exp.SavePDF(mode, idea, snap.Report)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved %s\n", path)
	}
	if opts.XLSX {
		path, err := exp.SaveWorkbook(mode, idea, snap.Report)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved %s\n", path)
	}
	return nil
}
