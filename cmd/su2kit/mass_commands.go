package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"su2kit/adapters/hmc"
	"su2kit/app"
	"su2kit/domain/series"
	"su2kit/ports"
)

// bootFlags are the flags shared by every bootstrap command.
type bootFlags struct {
	nBoot    int
	binWidth int
}

func (b *bootFlags) register(cmd *cobra.Command, defaultNBoot, defaultBinWidth int) {
	cmd.Flags().IntVarP(&b.nBoot, "n-boot", "n", defaultNBoot, "number of bootstrap trials")
	cmd.Flags().IntVarP(&b.binWidth, "binwidth", "b", defaultBinWidth, "bootstrap block width in configurations")
}

// channelFlags are the flags shared by the single-channel mass commands.
type channelFlags struct {
	channel        string
	thermalisation int
	precision      float64
	tMin           int
	tMax           int
}

func (c *channelFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&c.channel, "channel", "c", "", "correlator channel to analyse")
	cmd.Flags().IntVarP(&c.thermalisation, "thermalisation", "t", 0, "configurations to discard before analysis")
	cmd.Flags().Float64VarP(&c.precision, "solver-precision", "s", 1e-15, "residual bound for the mass solver")
	cmd.Flags().IntVar(&c.tMin, "t-min", 0, "smallest time separation")
	cmd.Flags().IntVar(&c.tMax, "t-max", 0, "largest time separation")
	_ = cmd.MarkFlagRequired("channel")
	_ = cmd.MarkFlagRequired("t-min")
	_ = cmd.MarkFlagRequired("t-max")
}

// loadChannel loads, folds, and thermalises one channel plus the period.
func (c *channelFlags) loadChannel(path string) (*series.Series, int, error) {
	channel, err := hmc.LoadChannelFolded(path, c.channel)
	if err != nil {
		return nil, 0, err
	}
	channel, err = channel.Thermalise(c.thermalisation)
	if err != nil {
		return nil, 0, err
	}
	globalT, err := hmc.LoadGlobalT(path)
	if err != nil {
		return nil, 0, err
	}
	return channel, globalT, nil
}

func newComputeEffectiveMassCmd(opts *rootOptions) *cobra.Command {
	var (
		boot     bootFlags
		ch       channelFlags
		xlsxPath string
	)
	cmd := &cobra.Command{
		Use:   "compute-effective-mass [correlator-file]",
		Short: "Bootstrap the effective mass independently at each time separation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			channel, globalT, err := ch.loadChannel(args[0])
			if err != nil {
				return err
			}

			points, err := opts.service().EffectiveMassScan(cmd.Context(), app.EffectiveMassScanRequest{
				Channel:    channel,
				GlobalT:    globalT,
				TauMin:     ch.tMin,
				TauMax:     ch.tMax,
				NBoot:      boot.nBoot,
				BlockWidth: boot.binWidth,
				Precision:  ch.precision,
			})
			if err != nil {
				return err
			}
			if err := hmc.WriteMassPoints(os.Stdout, points); err != nil {
				return err
			}

			rows := make([][]interface{}, len(points))
			aggregates := make([]ports.AggregateRow, len(points))
			for i, p := range points {
				rows[i] = []interface{}{p.Tau, p.Mass, p.Error, p.FailurePercent}
				aggregates[i] = ports.AggregateRow{Tau: p.Tau, Value: p.Mass, Error: p.Error, FailurePercent: p.FailurePercent}
			}
			if err := exportXLSX(xlsxPath, hmc.MassHeader, rows); err != nil {
				return err
			}
			params := fmt.Sprintf("tau=[%d,%d] nboot=%d binwidth=%d precision=%g",
				ch.tMin, ch.tMax, boot.nBoot, boot.binWidth, ch.precision)
			return archiveRun(cmd.Context(), opts, "compute-effective-mass", ch.channel, params, aggregates, nil)
		},
	}
	boot.register(cmd, opts.cfg.NBoot, opts.cfg.BlockWidth)
	ch.register(cmd)
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also export the table to this .xlsx file")
	return cmd
}

func newFitEffectiveMassCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fit-effective-mass [scan-csv] [t1] [t2]",
		Short: "Fit a constant to an effective-mass table over a plateau window",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			t1, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("t1 must be an integer: %q", args[1])
			}
			t2, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("t2 must be an integer: %q", args[2])
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			points, err := hmc.ReadMassPoints(f)
			if err != nil {
				return err
			}

			taus := make([]int, len(points))
			masses := make([]float64, len(points))
			errs := make([]float64, len(points))
			for i, p := range points {
				taus[i] = p.Tau
				masses[i] = p.Mass
				errs[i] = p.Error
			}
			mass, fitErr, err := opts.service().FitPlateau(taus, masses, errs, t1, t2)
			if err != nil {
				return err
			}
			return hmc.WriteFit(os.Stdout, mass, fitErr)
		},
	}
	return cmd
}

func newBootstrapFitsCmd(opts *rootOptions) *cobra.Command {
	var (
		boot bootFlags
		ch   channelFlags
	)
	cmd := &cobra.Command{
		Use:   "bootstrap-fits [correlator-file]",
		Short: "Produce the raw bootstrap population of window-averaged masses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			channel, globalT, err := ch.loadChannel(args[0])
			if err != nil {
				return err
			}

			pop, err := opts.service().BootstrapMasses(cmd.Context(), app.BootstrapMassesRequest{
				Channel:    channel,
				GlobalT:    globalT,
				TauMin:     ch.tMin,
				TauMax:     ch.tMax,
				NBoot:      boot.nBoot,
				BlockWidth: boot.binWidth,
				Precision:  ch.precision,
			})
			if err != nil {
				return err
			}
			if err := hmc.WriteSamples(os.Stdout, pop.Samples); err != nil {
				return err
			}
			params := fmt.Sprintf("tau=[%d,%d] nboot=%d binwidth=%d", ch.tMin, ch.tMax, boot.nBoot, boot.binWidth)
			return archiveRun(cmd.Context(), opts, "bootstrap-fits", ch.channel, params, nil, pop.Samples)
		},
	}
	boot.register(cmd, opts.cfg.NBoot, opts.cfg.BlockWidth)
	ch.register(cmd)
	return cmd
}

func newBootstrapFitsRatioCmd(opts *rootOptions) *cobra.Command {
	var (
		boot           bootFlags
		thermalisation int
		precision      float64
		numChannel     string
		denChannel     string
		numTMin        int
		numTMax        int
		denTMin        int
		denTMax        int
	)
	cmd := &cobra.Command{
		Use:   "bootstrap-fits-ratio [correlator-file]",
		Short: "Bootstrap the ratio of two effective masses on shared draws",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			load := func(name string) (*series.Series, error) {
				ch, err := hmc.LoadChannelFolded(args[0], name)
				if err != nil {
					return nil, err
				}
				return ch.Thermalise(thermalisation)
			}
			numerator, err := load(numChannel)
			if err != nil {
				return err
			}
			denominator, err := load(denChannel)
			if err != nil {
				return err
			}
			globalT, err := hmc.LoadGlobalT(args[0])
			if err != nil {
				return err
			}

			pop, err := opts.service().BootstrapMassRatio(cmd.Context(), app.BootstrapMassRatioRequest{
				Numerator:   app.ChannelWindow{Channel: numerator, TauMin: numTMin, TauMax: numTMax},
				Denominator: app.ChannelWindow{Channel: denominator, TauMin: denTMin, TauMax: denTMax},
				GlobalT:     globalT,
				NBoot:       boot.nBoot,
				BlockWidth:  boot.binWidth,
				Precision:   precision,
			})
			if err != nil {
				return err
			}
			if err := hmc.WriteSamples(os.Stdout, pop.Samples); err != nil {
				return err
			}
			channelPair := numChannel + "/" + denChannel
			params := fmt.Sprintf("num=[%d,%d] den=[%d,%d] nboot=%d binwidth=%d",
				numTMin, numTMax, denTMin, denTMax, boot.nBoot, boot.binWidth)
			return archiveRun(cmd.Context(), opts, "bootstrap-fits-ratio", channelPair, params, nil, pop.Samples)
		},
	}
	boot.register(cmd, opts.cfg.NBoot, opts.cfg.BlockWidth)
	cmd.Flags().IntVarP(&thermalisation, "thermalisation", "t", 0, "configurations to discard before analysis")
	cmd.Flags().Float64VarP(&precision, "solver-precision", "s", 1e-15, "residual bound for the mass solver")
	cmd.Flags().StringVar(&numChannel, "numerator-channel", "", "channel for the numerator mass")
	cmd.Flags().StringVar(&denChannel, "denominator-channel", "", "channel for the denominator mass")
	cmd.Flags().IntVar(&numTMin, "numerator-t-min", 0, "numerator window lower edge")
	cmd.Flags().IntVar(&numTMax, "numerator-t-max", 0, "numerator window upper edge")
	cmd.Flags().IntVar(&denTMin, "denominator-t-min", 0, "denominator window lower edge")
	cmd.Flags().IntVar(&denTMax, "denominator-t-max", 0, "denominator window upper edge")
	for _, name := range []string{
		"numerator-channel", "denominator-channel",
		"numerator-t-min", "numerator-t-max", "denominator-t-min", "denominator-t-max",
	} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
