package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/edgehub-io/cli/pkg/cmdhelp"
	"github.com/edgehub-io/cli/pkg/device"
	"github.com/edgehub-io/cli/pkg/log"
	"github.com/edgehub-io/cli/pkg/logmsg"
	"github.com/edgehub-io/cli/pkg/natsutil"
	"github.com/edgehub-io/cli/pkg/relay"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
)

func NewRelayCmd() *cobra.Command {
	var natsURL string
	var subjectPrefix string
	var statsInterval time.Duration

	cmd := &cobra.Command{
		Use:   "relay " + cmdhelp.FormatArgs([]cmdhelp.Arg{{Name: "uuidOrDevice", Required: true}}),
		Short: "Republish a device's log stream onto NATS",
		Long: `Relay streams a device's logs onto NATS subjects so other local tooling
can consume them. System records are published on logs.<device>, service
records on logs.<device>.<service>. The relay runs until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]
			return withSignalContext(cmd.Context(), func(ctx context.Context) error {
				source, err := logSource(ctx, target)
				if err != nil {
					return err
				}
				nc, err := natsutil.Connect(natsURL)
				if err != nil {
					return err
				}
				defer func() {
					if drainErr := nc.Drain(); drainErr != nil {
						log.Error().Err(drainErr).Msg("failed to drain nats connection")
					}
				}()

				r := relay.New(nc, relay.Options{
					SubjectPrefix: subjectPrefix,
					StatsInterval: statsInterval,
				})
				log.Info().Str("device", target).Str("nats", natsURL).Msg("relay running, press Ctrl+C to stop")
				return r.Run(ctx, target, source)
			})
		},
	}

	cmd.Flags().StringVar(&natsURL, "nats-url", nats.DefaultURL, "NATS server to publish to")
	cmd.Flags().StringVar(&subjectPrefix, "subject", relay.DefaultSubjectPrefix, "Base subject to publish under")
	cmd.Flags().DurationVar(&statsInterval, "stats-interval", 30*time.Second, "How often to log publish counters, 0 disables")
	return cmd
}

// logSource picks the log stream for a target the same way the logs
// command does: supervisor stream for local devices, cloud subscription
// for UUIDs.
func logSource(ctx context.Context, target string) (relay.Source, error) {
	if device.IsLocal(target) {
		client := device.NewClient(target)
		if err := client.Ping(ctx); err != nil {
			return nil, fmt.Errorf("cannot access device %s: %w", target, err)
		}
		return client.FollowLogs, nil
	}

	if err := ensureDeviceUUID(target); err != nil {
		return nil, err
	}
	client, err := newStreamingAPIClient()
	if err != nil {
		return nil, err
	}
	resolver := deviceResolver(ctx, client, target)
	return func(ctx context.Context, fn func(logmsg.LogMessage) error) error {
		return client.Subscribe(ctx, target, defaultTailCount, func(msg logmsg.LogMessage) error {
			return fn(logmsg.Resolve(msg, resolver))
		})
	}, nil
}
