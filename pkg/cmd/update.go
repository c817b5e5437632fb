package cmd

import (
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// updateRepo is the GitHub repository releases are published from.
const updateRepo = "edgehub-io/cli"

func NewUpdateCmd() *cobra.Command {
	var checkOnly bool
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update the CLI to the latest release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := semver.NewVersion(Version)
			if err != nil {
				return fmt.Errorf("invalid build version %q: %w", Version, err)
			}

			ctx := cmd.Context()
			latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(updateRepo))
			if err != nil {
				return fmt.Errorf("detect latest release: %w", err)
			}
			if !found || latest.LessOrEqual(current.String()) {
				cmd.Printf("edgehub v%s is up to date\n", current)
				return nil
			}

			cmd.Printf("new release v%s available\n", latest.Version())
			if checkOnly {
				return nil
			}

			exe, err := os.Executable()
			if err != nil {
				return fmt.Errorf("locate executable: %w", err)
			}
			if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
				return fmt.Errorf("update to v%s: %w", latest.Version(), err)
			}
			cmd.Printf("updated to v%s\n", latest.Version())
			return nil
		},
	}
	cmd.Flags().BoolVar(&checkOnly, "check", false, "only check whether a newer release exists")
	return cmd
}
