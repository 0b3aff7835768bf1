package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/sells-group/launchlens/internal/history"
	"github.com/sells-group/launchlens/internal/session"
	"github.com/sells-group/launchlens/internal/tui"
	"github.com/sells-group/launchlens/internal/workflow"
	"github.com/sells-group/launchlens/pkg/launchlens"
)

var (
	selectSubmit bool
	selectOpts   outputOptions
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List and restore previous analyses",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List previous analyses grouped by date",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		if err := a.requireSession(); err != nil {
			return err
		}
		return runHistoryList(cmd.Context(), a, time.Now(), cmd.OutOrStdout())
	},
}

var historySelectCmd = &cobra.Command{
	Use:   "select <id>",
	Short: "Restore a previous analysis and optionally resubmit it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		if err := a.requireSession(); err != nil {
			return err
		}
		return runHistorySelect(cmd.Context(), a, launchlens.ID(args[0]), selectSubmit, selectOpts, cmd.OutOrStdout())
	},
}

func init() {
	historySelectCmd.Flags().BoolVar(&selectSubmit, "submit", false, "resubmit the restored request")
	addOutputFlags(historySelectCmd, &selectOpts)

	historyCmd.AddCommand(historyListCmd, historySelectCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(ctx context.Context, a *app, now time.Time, out io.Writer) error {
	entries, err := a.history.Open(ctx)
	if err != nil {
		if a.sess.ExpireOn(err) {
			return session.ErrExpired
		}
		fmt.Fprintln(out, workflow.MsgHistoryFailed)
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No previous analyses")
		return nil
	}

	groups := history.Group(entries, now)
	for _, b := range history.Buckets {
		if len(groups[b]) == 0 {
			continue
		}
		fmt.Fprintln(out, b)
		for _, e := range groups[b] {
			fmt.Fprintf(out, "  [%s] %s  (%s)\n", e.ID, history.Title(e), history.FormatDate(e.CreatedAt.Time))
		}
	}
	return nil
}

func runHistorySelect(ctx context.Context, a *app, id launchlens.ID, submit bool, opts outputOptions, out io.Writer) error {
	if err := a.warm(ctx, "", false); err != nil {
		return err
	}
	if err := a.rec.Select(ctx, id); err != nil {
		if !a.sess.Authenticated() {
			return session.ErrExpired
		}
		if msg := a.ctrl.Snapshot().Err; msg != "" {
			fmt.Fprintln(out, msg)
		}
		return err
	}

	snap := a.ctrl.Snapshot()
	req := snap.Request
	fmt.Fprintf(out, "Restored: %s (%s, %s", req.Idea, req.ReportType, a.dir.CountryName(req.Country))
	if req.State != "" {
		fmt.Fprintf(out, ", %s", a.dir.StateName(req.State))
	}
	fmt.Fprintln(out, ")")

	if !submit {
		if snap.Report != nil {
			fmt.Fprintln(out, tui.Body(snap, 100))
			return saveOutputs(a, opts, snap, out)
		}
		return nil
	}
	return runAnalysis(ctx, a, opts, out)
}
