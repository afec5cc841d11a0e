package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"su2kit/adapters/archive"
	"su2kit/adapters/xlsx"
	"su2kit/app"
	"su2kit/internal/config"
	"su2kit/internal/rng"
	"su2kit/ports"
)

type rootOptions struct {
	cfg     *config.Config
	seed    int64
	workers int
}

func (o *rootOptions) service() *app.AnalysisService {
	return app.NewAnalysisService(rng.New(o.seed), o.workers)
}

func main() {
	// Site-wide defaults may live in a .env file next to the batch scripts.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	opts := &rootOptions{cfg: cfg}

	rootCmd := &cobra.Command{
		Use:   "su2kit",
		Short: "Bootstrap spectroscopy and scale setting for SU(2) lattice ensembles",
	}
	rootCmd.PersistentFlags().Int64Var(&opts.seed, "seed", cfg.Seed,
		"base seed for the bootstrap draws (0 seeds from the clock)")
	rootCmd.PersistentFlags().IntVar(&opts.workers, "workers", cfg.Workers,
		"maximum concurrent trials (0 means one per CPU)")

	rootCmd.AddCommand(
		newComputeEffectiveMassCmd(opts),
		newFitEffectiveMassCmd(opts),
		newBootstrapFitsCmd(opts),
		newBootstrapFitsWFCmd(opts),
		newBootstrapFitsRatioCmd(opts),
		newCalculateW0Cmd(opts),
		newHistogramCmd(),
		newBootstrapErrorCmd(opts),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// archiveRun persists a completed run when SU2KIT_ARCHIVE_DSN is configured.
// Results have already been written to stdout by the time this runs, so an
// archive failure loses nothing on screen.
func archiveRun(ctx context.Context, opts *rootOptions, command, channel, params string, aggregates []ports.AggregateRow, samples []float64) error {
	if opts.cfg.ArchiveDSN == "" {
		return nil
	}
	a, err := archive.Open(ctx, opts.cfg.ArchiveDSN)
	if err != nil {
		return err
	}
	defer a.Close()

	run := ports.RunRecord{
		ID:        uuid.New(),
		Command:   command,
		Channel:   channel,
		Params:    params,
		Seed:      opts.seed,
		CreatedAt: time.Now().UTC(),
	}
	if err := a.SaveRun(ctx, run); err != nil {
		return err
	}
	if len(aggregates) > 0 {
		if err := a.SaveAggregates(ctx, run.ID, aggregates); err != nil {
			return err
		}
	}
	if len(samples) > 0 {
		if err := a.SaveSamples(ctx, run.ID, samples); err != nil {
			return err
		}
	}
	return nil
}

// exportXLSX mirrors a result table to a spreadsheet when requested.
func exportXLSX(path string, header []string, rows [][]interface{}) error {
	if path == "" {
		return nil
	}
	return xlsx.ExportTable(path, header, rows)
}
