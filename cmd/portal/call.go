package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"customer-portal/internal/audit"
	"customer-portal/internal/config"
	"customer-portal/internal/database"
	"customer-portal/internal/logger"
	"customer-portal/internal/operations"
)

var callParams []string

var callCmd = &cobra.Command{
	Use:   "call <operation>",
	Short: "Run one backend operation and print the normalized result",
	Long: `Runs a catalog operation against the configured backend and prints the
normalized result as JSON. Sessions are not involved.

Example:
  portal call orders --param customerId=42`,
	Args: cobra.ExactArgs(1),
	RunE: runCall,
}

var operationsCmd = &cobra.Command{
	Use:   "operations",
	Short: "List the operations in the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		catalog, err := loadCatalog(cfg.Backend)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tFUNCTION\tSERVICE\tDESCRIPTION")
		for _, name := range catalog.Names() {
			d, _ := catalog.Lookup(name)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Name, d.Function, d.Service, d.Description)
		}
		return w.Flush()
	},
}

func init() {
	callCmd.Flags().StringArrayVar(&callParams, "param", nil, "request parameter as key=value (repeatable)")
	callsCmd.Flags().IntVarP(&callsLimit, "limit", "n", 20, "number of calls to show")
}

func runCall(cmd *cobra.Command, args []string) error {
	params, err := parseParams(callParams)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logPtr, err := logger.New(cfg.App.Env, cfg.App.LogLevel, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to initialise logger: %w", err)
	}
	catalog, err := loadCatalog(cfg.Backend)
	if err != nil {
		return err
	}

	exec := operations.NewExecutor(catalog, newSOAPClient(cfg.Backend), *logPtr)
	res, err := exec.Execute(cmd.Context(), args[0], params)
	if err != nil {
		return fmt.Errorf("%s (%s): %w", args[0], operations.OutcomeOf(err), err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func parseParams(pairs []string) (map[string]string, error) {
	params := make(map[string]string, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --param %q, expected key=value", p)
		}
		params[key] = value
	}
	return params, nil
}

var callsLimit int

var callsCmd = &cobra.Command{
	Use:   "calls",
	Short: "Show the most recent backend calls from the audit log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		logPtr, err := logger.New(cfg.App.Env, cfg.App.LogLevel, os.Stderr)
		if err != nil {
			return fmt.Errorf("failed to initialise logger: %w", err)
		}
		db, err := database.Connect(cfg.Database, *logPtr)
		if err != nil {
			return err
		}
		defer database.Close(db) //nolint:errcheck

		records, err := audit.NewRecorder(db, nil, "", *logPtr).Recent(cmd.Context(), callsLimit)
		if err != nil {
			return fmt.Errorf("failed to read call records: %w", err)
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tOPERATION\tCUSTOMER\tOUTCOME\tSTATUS\tDURATION")
		for _, r := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%dms\n",
				r.CreatedAt.Local().Format(time.DateTime), r.Operation, r.CustomerID, r.Outcome, r.HTTPStatus, r.DurationMS)
		}
		return w.Flush()
	},
}
