package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/edgehub-io/cli/pkg/api"
	"github.com/edgehub-io/cli/pkg/cfg"
)

// withSignalContext runs fn under a context canceled by SIGINT/SIGTERM.
// Cancellation is a normal way to leave a tail, not a command failure.
func withSignalContext(parent context.Context, fn func(context.Context) error) error {
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()
	err := fn(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// ensureDeviceUUID rejects targets that are neither local addresses nor
// cloud device UUIDs before any request goes out.
func ensureDeviceUUID(target string) error {
	if !api.IsDeviceUUID(target) {
		return fmt.Errorf("%s is not a device address or UUID", target)
	}
	return nil
}

// newAPIClient builds a cloud client from the stored credentials. It fails
// with cfg.ErrNotLoggedIn when no token is configured.
func newAPIClient(opt ...api.Option) (*api.Client, error) {
	token, err := cfg.RequireAuthToken()
	if err != nil {
		return nil, err
	}
	return api.New(cfg.APIURL(), token, opt...), nil
}

// newStreamingAPIClient builds a cloud client without a request timeout,
// suitable for long-lived log subscriptions.
func newStreamingAPIClient() (*api.Client, error) {
	return newAPIClient(api.WithHTTPClient(&http.Client{}))
}
