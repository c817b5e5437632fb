// Package devsim serves a simulated local device so the logs and relay
// commands can be exercised without hardware on the network.
package devsim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/edgehub-io/cli/pkg/helper"
	"github.com/edgehub-io/cli/pkg/log"
	"github.com/edgehub-io/cli/pkg/logmsg"
	"github.com/go-chi/chi/v5"
)

// Options configures the simulated device.
type Options struct {
	// Addr is the listen address, e.g. "127.0.0.1:48484".
	Addr string
	// Interval is the delay between synthesized log lines.
	Interval time.Duration
	// Services are the service names lines are attributed to. When empty
	// a generated set is used.
	Services []string
	// Seed makes the synthesized output reproducible when non-zero.
	Seed uint64
	// ReplayFile, when set, names an NDJSON file of recorded log lines
	// that are replayed in a loop instead of synthesized output.
	ReplayFile string
}

// Server is a fake device supervisor speaking the local-device API:
// GET /ping and the continuous NDJSON stream at GET /v2/local/logs.
type Server struct {
	opts     Options
	gen      *Generator
	server   *http.Server
	listener net.Listener
}

func New(opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = "127.0.0.1:48484"
	}
	if opts.Interval <= 0 {
		opts.Interval = 500 * time.Millisecond
	}
	s := &Server{
		opts: opts,
		gen:  NewGenerator(opts.Services, opts.Seed),
	}
	r := chi.NewRouter()
	r.Get("/ping", s.handlePing)
	r.Get("/v2/local/logs", s.handleLogs)
	s.server = &http.Server{Handler: r}
	return s
}

// Start begins listening. It returns once the listener is bound.
func (s *Server) Start() error {
	if s.opts.ReplayFile != "" {
		messages, err := helper.ReadNDJSONFile[logmsg.LogMessage](s.opts.ReplayFile)
		if err != nil {
			return fmt.Errorf("load replay file: %w", err)
		}
		if len(messages) == 0 {
			return fmt.Errorf("replay file %s has no records", s.opts.ReplayFile)
		}
		s.gen = NewReplayGenerator(messages)
	}
	listener, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return err
	}
	s.listener = listener
	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("devsim server error")
		}
	}()
	log.Info().Str("addr", s.Address()).Msg("simulated device listening")
	return nil
}

// Address returns the bound listen address.
func (s *Server) Address() string {
	if s.listener == nil {
		return s.opts.Addr
	}
	return s.listener.Addr().String()
}

// Stop shuts the server down, interrupting open log streams.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(w)
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if err := enc.Encode(s.gen.Next()); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
