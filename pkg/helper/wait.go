package helper

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Wait blocks until the context is done or an interrupt/terminate signal
// arrives. The optional cleanup runs before returning.
func Wait(ctx context.Context, cleanup func()) error {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sig)
	if cleanup != nil {
		defer cleanup()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-sig:
		return nil
	}
}
