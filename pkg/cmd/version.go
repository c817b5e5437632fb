package cmd

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"
)

func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := semver.NewVersion(Version)
			if err != nil {
				return fmt.Errorf("invalid build version %q: %w", Version, err)
			}
			cmd.Printf("edgehub v%s\n", v)
			return nil
		},
	}
}
