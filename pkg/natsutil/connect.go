package natsutil

import (
	"fmt"

	"github.com/nats-io/nats.go"
)

// Connect establishes a NATS connection with the CLI's client name set.
func Connect(server string, opt ...nats.Option) (*nats.Conn, error) {
	opt = append([]nats.Option{nats.Name("edgehub-cli")}, opt...)
	nc, err := nats.Connect(server, opt...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return nc, nil
}
