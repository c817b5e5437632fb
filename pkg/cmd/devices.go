package cmd

import (
	"time"

	"github.com/edgehub-io/cli/pkg/cmdhelp"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func NewDevicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "devices",
		Short:   "Manage cloud-registered devices",
		Aliases: []string{"device"},
	}
	cmd.AddCommand(
		newDevicesListCmd(),
		newDevicesGetCmd(),
	)
	return cmd
}

func newDevicesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List devices visible to the current user",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			devices, err := client.Devices(cmd.Context())
			if err != nil {
				return err
			}
			if len(devices) == 0 {
				cmd.Println("no devices found")
				return nil
			}

			data := pterm.TableData{{"UUID", "NAME", "TYPE", "STATUS", "LAST SEEN"}}
			for _, d := range devices {
				status := "offline"
				if d.Online {
					status = "online"
				}
				lastSeen := ""
				if !d.LastSeen.IsZero() {
					lastSeen = d.LastSeen.Format(time.RFC3339)
				}
				data = append(data, []string{d.UUID, d.Name, d.Type, status, lastSeen})
			}
			return pterm.DefaultTable.WithHasHeader().WithWriter(cmd.OutOrStdout()).WithData(data).Render()
		},
	}
}

func newDevicesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get " + cmdhelp.FormatArgs([]cmdhelp.Arg{{Name: "uuid", Required: true}}),
		Short:   "Fetch a single device",
		Aliases: []string{"show"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			device, err := client.Device(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			cmd.Printf("device: %s\n", device.UUID)
			cmd.Printf("  name:   %s\n", device.Name)
			cmd.Printf("  type:   %s\n", device.Type)
			cmd.Printf("  online: %t\n", device.Online)
			if !device.LastSeen.IsZero() {
				cmd.Printf("  seen:   %s\n", device.LastSeen.Format(time.RFC3339))
			}
			for _, svc := range device.Services {
				cmd.Printf("  service %d: %s\n", svc.ID, svc.Name)
			}
			return nil
		},
	}
}
