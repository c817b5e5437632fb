package cmd

import (
	"context"
	"fmt"

	"github.com/edgehub-io/cli/pkg/api"
	"github.com/edgehub-io/cli/pkg/cmdhelp"
	"github.com/edgehub-io/cli/pkg/device"
	"github.com/edgehub-io/cli/pkg/display"
	"github.com/edgehub-io/cli/pkg/log"
	"github.com/edgehub-io/cli/pkg/logmsg"
	"github.com/spf13/cobra"
)

// defaultTailCount is how many buffered records the cloud replays before a
// subscription goes live.
const defaultTailCount = 100

func NewLogsCmd() *cobra.Command {
	var tail bool
	var services []string
	var system bool

	cmd := &cobra.Command{
		Use:   "logs " + cmdhelp.FormatArgs([]cmdhelp.Arg{{Name: "uuidOrDevice", Required: true}}),
		Short: "Show device logs",
		Long: `Show logs for a device.

The target is either a cloud device UUID or the address of a device on the
local network (an IP address or a .local hostname). Local devices are
always streamed continuously; for cloud devices --tail switches from a
one-shot history fetch to a live stream.`,
		Example: `  edgehub logs 00d859d5366947a1816451a2bb811e18
  edgehub logs 00d859d5366947a1816451a2bb811e18 --tail --service web
  edgehub logs 192.168.1.42 --system`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]
			printer := display.NewPrinter(display.Options{
				Services: services,
				System:   system,
				Writer:   cmd.OutOrStdout(),
			})
			return withSignalContext(cmd.Context(), func(ctx context.Context) error {
				if device.IsLocal(target) {
					return runLocalLogs(ctx, target, printer)
				}
				return runCloudLogs(ctx, target, tail, printer)
			})
		},
	}

	cmd.Flags().BoolVarP(&tail, "tail", "t", false, "continuously stream new log lines")
	cmd.Flags().StringArrayVarP(&services, "service", "s", nil, "only show logs for this service, can be repeated")
	cmd.Flags().BoolVarP(&system, "system", "S", false, "only show system logs")
	return cmd
}

// runLocalLogs follows the supervisor stream of a local-network device.
// Local devices only expose a continuous stream, so --tail is implied.
func runLocalLogs(ctx context.Context, target string, printer *display.Printer) error {
	client := device.NewClient(target)
	if err := client.Ping(ctx); err != nil {
		return fmt.Errorf("cannot access device %s: %w", target, err)
	}
	log.Debug().Str("device", target).Msg("following local device logs")
	return client.FollowLogs(ctx, printer.Print)
}

func runCloudLogs(ctx context.Context, deviceUUID string, tail bool, printer *display.Printer) error {
	if err := ensureDeviceUUID(deviceUUID); err != nil {
		return err
	}
	if !tail {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resolver := deviceResolver(ctx, client, deviceUUID)
		messages, err := client.History(ctx, deviceUUID)
		if err != nil {
			return err
		}
		for _, msg := range messages {
			if err := printer.Print(logmsg.Resolve(msg, resolver)); err != nil {
				return err
			}
		}
		return nil
	}

	client, err := newStreamingAPIClient()
	if err != nil {
		return err
	}
	resolver := deviceResolver(ctx, client, deviceUUID)
	log.Debug().Str("device", deviceUUID).Msg("subscribing to cloud log stream")
	return client.Subscribe(ctx, deviceUUID, defaultTailCount, func(msg logmsg.LogMessage) error {
		return printer.Print(logmsg.Resolve(msg, resolver))
	})
}

// deviceResolver builds a service-name resolver from the device's service
// list. When the lookup fails every record falls back to "Unknown service"
// rather than failing the whole command.
func deviceResolver(ctx context.Context, client *api.Client, deviceUUID string) logmsg.ServiceResolver {
	dev, err := client.Device(ctx, deviceUUID)
	if err != nil {
		log.Warn().Err(err).Str("device", deviceUUID).Msg("could not resolve device services")
		return nil
	}
	return dev.ServiceName
}
