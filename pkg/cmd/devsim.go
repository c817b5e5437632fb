package cmd

import (
	"time"

	"github.com/edgehub-io/cli/pkg/devsim"
	"github.com/edgehub-io/cli/pkg/helper"
	"github.com/edgehub-io/cli/pkg/log"
	"github.com/spf13/cobra"
)

func NewDevSimCmd() *cobra.Command {
	opts := devsim.Options{}
	var seed uint64

	cmd := &cobra.Command{
		Use:   "devsim",
		Short: "Serve a simulated local device",
		Long: `devsim serves the local-device supervisor API with synthesized log
lines, so logs and relay can be tried without a device on the network:

  edgehub devsim --addr 127.0.0.1:48484 &
  edgehub logs 127.0.0.1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Seed = seed
			sim := devsim.New(opts)
			if err := sim.Start(); err != nil {
				return err
			}
			log.Info().Str("addr", sim.Address()).Msg("simulated device running, press Ctrl+C to stop")
			return helper.Wait(cmd.Context(), func() {
				if err := sim.Stop(); err != nil {
					log.Error().Err(err).Msg("failed to stop simulated device")
				}
			})
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "127.0.0.1:48484", "Listen address")
	cmd.Flags().DurationVar(&opts.Interval, "interval", 500*time.Millisecond, "Delay between synthesized log lines")
	cmd.Flags().StringArrayVar(&opts.Services, "service", nil, "Service name to attribute lines to, can be repeated")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for reproducible output, 0 picks a random one")
	cmd.Flags().StringVar(&opts.ReplayFile, "replay", "", "NDJSON file of recorded log lines to replay in a loop")
	return cmd
}
