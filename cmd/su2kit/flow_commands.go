package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"su2kit/adapters/hmc"
	"su2kit/app"
	"su2kit/domain/series"
)

// wfFlags are the flags shared by the Wilson-flow commands.
type wfFlags struct {
	file           string
	thermalisation int
	wRef           float64
}

func (w *wfFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&w.file, "wf-file", "", "Wilson-flow measurement file")
	cmd.Flags().IntVar(&w.thermalisation, "wf-thermalisation", 0, "flow configurations to discard")
	cmd.Flags().Float64Var(&w.wRef, "w-ref", 1.0, "reference value defining the w0 crossing")
	_ = cmd.MarkFlagRequired("wf-file")
}

func (w *wfFlags) loadFlow() (*series.FlowSeries, error) {
	flow, err := hmc.LoadFlow(w.file)
	if err != nil {
		return nil, err
	}
	return flow.Thermalise(w.thermalisation)
}

func newBootstrapFitsWFCmd(opts *rootOptions) *cobra.Command {
	var (
		boot bootFlags
		ch   channelFlags
		wf   wfFlags
	)
	cmd := &cobra.Command{
		Use:   "bootstrap-fits-wf [correlator-file]",
		Short: "Bootstrap w0-scaled masses with one draw shared across correlator and flow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			channel, globalT, err := ch.loadChannel(args[0])
			if err != nil {
				return err
			}
			flow, err := wf.loadFlow()
			if err != nil {
				return err
			}

			pop, err := opts.service().BootstrapMassesWithScale(cmd.Context(), app.BootstrapMassesWithScaleRequest{
				Channel:    channel,
				Flow:       flow,
				Observable: series.ObservableT2ESym,
				GlobalT:    globalT,
				TauMin:     ch.tMin,
				TauMax:     ch.tMax,
				NBoot:      boot.nBoot,
				BlockWidth: boot.binWidth,
				Precision:  ch.precision,
				WRef:       wf.wRef,
			})
			if err != nil {
				return err
			}
			if err := hmc.WriteSamples(os.Stdout, pop.Samples); err != nil {
				return err
			}
			params := fmt.Sprintf("tau=[%d,%d] nboot=%d binwidth=%d wref=%g",
				ch.tMin, ch.tMax, boot.nBoot, boot.binWidth, wf.wRef)
			return archiveRun(cmd.Context(), opts, "bootstrap-fits-wf", ch.channel, params, nil, pop.Samples)
		},
	}
	boot.register(cmd, opts.cfg.NBoot, opts.cfg.BlockWidth)
	ch.register(cmd)
	wf.register(cmd)
	return cmd
}

func newCalculateW0Cmd(opts *rootOptions) *cobra.Command {
	var (
		boot bootFlags
		wf   wfFlags
	)
	cmd := &cobra.Command{
		Use:   "calculate-w0",
		Short: "Bootstrap the w0 reference scale from Wilson-flow measurements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flow, err := wf.loadFlow()
			if err != nil {
				return err
			}

			pop, err := opts.service().BootstrapW0(cmd.Context(), app.BootstrapW0Request{
				Flow:       flow,
				Observable: series.ObservableT2ESym,
				NBoot:      boot.nBoot,
				BlockWidth: boot.binWidth,
				WRef:       wf.wRef,
			})
			if err != nil {
				return err
			}
			if err := hmc.WriteSamples(os.Stdout, pop.Samples); err != nil {
				return err
			}
			params := fmt.Sprintf("nboot=%d binwidth=%d wref=%g", boot.nBoot, boot.binWidth, wf.wRef)
			return archiveRun(cmd.Context(), opts, "calculate-w0", "", params, nil, pop.Samples)
		},
	}
	boot.register(cmd, opts.cfg.NBoot, opts.cfg.BlockWidth)
	wf.register(cmd)
	return cmd
}
