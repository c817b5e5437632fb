package cmd

import (
	"github.com/edgehub-io/cli/pkg/manifest"
	"github.com/spf13/cobra"
)

func NewManifestCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:    "manifest",
		Short:  "Inspect the generated command manifest",
		Hidden: true,
	}
	cmd.PersistentFlags().StringVar(&file, "file", "", "Manifest path, defaults to ./"+manifest.FileName)

	list := &cobra.Command{
		Use:   "list",
		Short: "List the commands declared in the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Load(file)
			if err != nil {
				return err
			}
			for _, name := range m.CommandNames() {
				cmd.Println(name)
			}
			return nil
		},
	}

	check := &cobra.Command{
		Use:   "check",
		Short: "Validate the manifest against its schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := manifest.Validate(file); err != nil {
				return err
			}
			cmd.Println("manifest is valid")
			return nil
		},
	}

	cmd.AddCommand(list, check)
	return cmd
}
