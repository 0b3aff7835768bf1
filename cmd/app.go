package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/launchlens/internal/config"
	"github.com/sells-group/launchlens/internal/history"
	"github.com/sells-group/launchlens/internal/lookup"
	"github.com/sells-group/launchlens/internal/session"
	"github.com/sells-group/launchlens/internal/workflow"
	"github.com/sells-group/launchlens/pkg/launchlens"
)

var errNotSignedIn = eris.New("not signed in: run `launchlens session login`")

// app wires the session, client and workflow components for one command.
type app struct {
	cfg     *config.Config
	sess    *session.Session
	client  launchlens.Client
	dir     *lookup.Directory
	history *history.List
	ctrl    *workflow.Controller
	rec     *workflow.Reconciler
}

func newApp(cfg *config.Config) (*app, error) {
	sess := session.New(session.NewFileStore(cfg.Session.Path))
	if err := sess.Init(); err != nil {
		return nil, err
	}

	client := launchlens.NewClient(sess,
		launchlens.WithBaseURL(cfg.API.BaseURL),
		launchlens.WithTimeout(cfg.API.Timeout()),
		launchlens.WithRateLimit(cfg.API.RatePerSec),
		launchlens.WithRetry(cfg.API.Retry()),
	)
	dir := lookup.NewDirectory(client)
	list := history.NewList(client)
	ctrl := workflow.NewController(client,
		workflow.WithSimulator(cfg.Analysis.Simulator()),
		workflow.WithNames(dir),
		workflow.WithExpirer(sess),
		workflow.OnSuccess(list.MarkStale),
	)

	// Dependent state goes away with the credential.
	sess.OnTeardown(ctrl.Teardown)
	sess.OnTeardown(list.Clear)

	return &app{
		cfg:     cfg,
		sess:    sess,
		client:  client,
		dir:     dir,
		history: list,
		ctrl:    ctrl,
		rec:     workflow.NewReconciler(ctrl, client, dir),
	}, nil
}

func (a *app) requireSession() error {
	if !a.sess.Authenticated() {
		return errNotSignedIn
	}
	return nil
}

// warm loads the lookup data a command needs concurrently. Lookup failures
// fall back inside the directory; a history failure only logs.
func (a *app) warm(ctx context.Context, countryCode string, withHistory bool) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.dir.LoadCountries(gctx)
		return nil
	})
	if countryCode != "" {
		g.Go(func() error {
			a.dir.LoadStates(gctx, countryCode)
			return nil
		})
	}
	if withHistory {
		g.Go(func() error {
			if _, err := a.history.Open(gctx); err != nil {
				if a.sess.ExpireOn(err) {
					return session.ErrExpired
				}
				zap.L().Debug("history prefetch failed", zap.Error(err))
			}
			return nil
		})
	}

	return g.Wait()
}
