package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/launchlens/internal/session"
)

var (
	loginUsername string
	loginPassword string
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Sign in, sign out and check the stored credential",
}

var sessionLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		return runLogin(cmd.Context(), a, loginUsername, loginPassword, cmd.OutOrStdout())
	},
}

var sessionLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		return runLogout(a, cmd.OutOrStdout())
	},
}

var sessionStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the stored access token is still accepted",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		return runStatus(cmd.Context(), a, cmd.OutOrStdout())
	},
}

func init() {
	sessionLoginCmd.Flags().StringVar(&loginUsername, "username", "", "account username (required)")
	sessionLoginCmd.Flags().StringVar(&loginPassword, "password", "", "account password (required)")
	_ = sessionLoginCmd.MarkFlagRequired("username")
	_ = sessionLoginCmd.MarkFlagRequired("password")

	sessionCmd.AddCommand(sessionLoginCmd, sessionLogoutCmd, sessionStatusCmd)
	rootCmd.AddCommand(sessionCmd)
}

func runLogin(ctx context.Context, a *app, username, password string, out io.Writer) error {
	tok, err := a.client.Login(ctx, username, password)
	if err != nil {
		return eris.Wrap(err, "login")
	}
	if err := a.sess.SignIn(tok.AccessToken); err != nil {
		return err
	}
	fmt.Fprintf(out, "Signed in as %s\n", username)
	return nil
}

func runLogout(a *app, out io.Writer) error {
	if err := a.sess.Teardown(nil); err != nil {
		return err
	}
	fmt.Fprintln(out, "Signed out")
	return nil
}

func runStatus(ctx context.Context, a *app, out io.Writer) error {
	if !a.sess.Authenticated() {
		fmt.Fprintln(out, "Not signed in")
		return nil
	}
	profile, err := session.NewMonitor(a.sess, a.client, a.cfg.Session.ProbeInterval()).Check(ctx)
	if err != nil {
		a.sess.Expire()
		fmt.Fprintln(out, "Session expired; sign in again")
		return err
	}
	fmt.Fprintf(out, "Signed in as %s\n", profile.Username)
	return nil
}
