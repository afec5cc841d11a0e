package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"su2kit/adapters/hmc"
	"su2kit/domain/stats"
)

func newHistogramCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "histogram [samples-csv] [nbins]",
		Short: "Bin a persisted bootstrap population into a histogram",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			nBins, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("nbins must be an integer: %q", args[1])
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			samples, err := hmc.ReadSamples(f)
			if err != nil {
				return err
			}

			sort.Float64s(samples)
			bins, err := stats.Bin(samples, nBins)
			if err != nil {
				return err
			}
			return hmc.WriteHistogram(os.Stdout, bins)
		},
	}
	return cmd
}

func newBootstrapErrorCmd(opts *rootOptions) *cobra.Command {
	var nBoot int
	cmd := &cobra.Command{
		Use:   "bootstrap-error [samples-csv]",
		Short: "Estimate the error on the error of a persisted population",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			samples, err := hmc.ReadSamples(f)
			if err != nil {
				return err
			}

			pop, err := opts.service().SecondaryBootstrapError(cmd.Context(), samples, nBoot)
			if err != nil {
				return err
			}
			return hmc.WriteSamples(os.Stdout, pop.Samples)
		},
	}
	cmd.Flags().IntVarP(&nBoot, "n-boot", "n", opts.cfg.NBoot, "number of secondary bootstrap trials")
	return cmd
}
