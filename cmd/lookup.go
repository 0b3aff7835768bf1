package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/launchlens/internal/lookup"
)

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List the countries an analysis can target",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		return runCountries(cmd.Context(), a, cmd.OutOrStdout())
	},
}

var statesCmd = &cobra.Command{
	Use:   "states <country-code>",
	Short: "List the states of a country",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		return runStates(cmd.Context(), a, args[0], cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(countriesCmd, statesCmd)
}

func runCountries(ctx context.Context, a *app, out io.Writer) error {
	printRegions(out, a.dir.LoadCountries(ctx))
	return nil
}

func runStates(ctx context.Context, a *app, country string, out io.Writer) error {
	states := a.dir.LoadStates(ctx, strings.ToUpper(strings.TrimSpace(country)))
	if len(states) == 0 {
		fmt.Fprintln(out, "No states found")
		return nil
	}
	printRegions(out, states)
	return nil
}

func printRegions(out io.Writer, regions []lookup.Region) {
	for _, r := range regions {
		fmt.Fprintf(out, "%-6s %s\n", r.Code, r.Name)
	}
}
