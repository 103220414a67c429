// Command proforma is a thin calling layer over the underwriting
// engines: it loads a YAML scenario, runs a projection with return
// metrics, and optionally the full sensitivity matrix. The engine itself
// performs no I/O; everything here is presentation.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aristath/proforma/internal/config"
	"github.com/aristath/proforma/internal/modules/sensitivity"
	"github.com/aristath/proforma/internal/modules/underwriting"
	"github.com/aristath/proforma/internal/scenario"
	"github.com/aristath/proforma/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.PrettyLogs,
	})

	root := &cobra.Command{
		Use:           "proforma",
		Short:         "Commercial real estate underwriting engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(runCmd(log), sensitivityCmd(log, cfg.SensitivityWorkers))

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

func runCmd(log zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Project cash flows and compute return metrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assumptions, err := scenario.Load(args[0])
			if err != nil {
				return err
			}

			svc := underwriting.New(log)
			proj, result, err := svc.Analyze(assumptions)
			if err != nil {
				return err
			}

			return printJSON(map[string]any{
				"projection": proj,
				"metrics":    result,
			})
		},
	}
}

func sensitivityCmd(log zerolog.Logger, defaultWorkers int) *cobra.Command {
	workers := defaultWorkers
	cmd := &cobra.Command{
		Use:   "sensitivity <scenario.yaml>",
		Short: "Run the assumption perturbation matrix and rank criticality",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assumptions, err := scenario.Load(args[0])
			if err != nil {
				return err
			}

			// Ctrl-C aborts between scenario runs; partial results are
			// still printed.
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			engine := sensitivity.NewEngine(underwriting.New(log), workers, log)
			batch, err := engine.Run(ctx, assumptions)
			if err != nil {
				return err
			}
			return printJSON(batch)
		},
	}
	cmd.Flags().IntVar(&workers, "workers", defaultWorkers, "bound on concurrent scenario runs (0 = one per core)")
	return cmd
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
