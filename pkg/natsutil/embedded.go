package natsutil

import (
	"errors"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

// EmbeddedServer is an in-process NATS server, used by tests and by the
// relay command when no external broker is configured.
type EmbeddedServer struct {
	srv *server.Server
	nc  *nats.Conn
}

// NewEmbeddedServer starts an in-process server and connects to it.
func NewEmbeddedServer() (*EmbeddedServer, error) {
	srv, err := server.NewServer(&server.Options{
		DontListen: true,
	})
	if err != nil {
		return nil, err
	}
	srv.Start()
	if !srv.ReadyForConnections(5 * time.Second) {
		srv.Shutdown()
		return nil, errors.New("nats server not ready in time")
	}
	nc, err := nats.Connect(srv.ClientURL(), nats.InProcessServer(srv))
	if err != nil {
		srv.Shutdown()
		return nil, err
	}
	return &EmbeddedServer{srv: srv, nc: nc}, nil
}

func (e *EmbeddedServer) Close() {
	if e.nc != nil && !e.nc.IsClosed() {
		e.nc.Close()
	}
	e.srv.Shutdown()
}

func (e *EmbeddedServer) NatsConn() *nats.Conn {
	return e.nc
}

func (e *EmbeddedServer) ClientURL() string {
	return e.srv.ClientURL()
}
