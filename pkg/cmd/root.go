package cmd

import (
	"github.com/edgehub-io/cli/pkg/cfg"
	"github.com/edgehub-io/cli/pkg/log"
	"github.com/spf13/cobra"
)

// Version is the build version, overridden at release time via ldflags.
var Version = "1.3.0"

func NewRootCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:           "edgehub",
		Short:         "Manage devices and their logs from the command line",
		Long:          "edgehub talks to the device cloud and to devices on the local network. It can list devices, stream or fetch their logs, and relay log streams to local tooling.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.Configure(cfg.ConfigDir(), verbose)
			return cfg.Init()
		},
	}
	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose output")

	cmd.AddCommand(
		NewLogsCmd(),
		NewDevicesCmd(),
		NewLoginCmd(),
		NewLogoutCmd(),
		NewWhoamiCmd(),
		NewRelayCmd(),
		NewDevSimCmd(),
		NewManifestCmd(),
		NewVersionCmd(),
		NewUpdateCmd(),
	)
	return cmd
}
