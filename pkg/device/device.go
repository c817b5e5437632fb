// Package device talks directly to the supervisor of a device reachable on
// the local network, bypassing the cloud API.
package device

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/edgehub-io/cli/pkg/helper"
	"github.com/edgehub-io/cli/pkg/logmsg"
)

// SupervisorPort is the port the on-device supervisor API listens on.
const SupervisorPort = 48484

var localHostname = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*\.local$`)

// IsLocal reports whether target names a local-network device: an IP
// address or an mDNS-style .local hostname, optionally with a port.
func IsLocal(target string) bool {
	host := target
	if h, _, err := net.SplitHostPort(target); err == nil {
		host = h
	}
	host = strings.Trim(host, "[]")
	if net.ParseIP(host) != nil {
		return true
	}
	return localHostname.MatchString(host)
}

// Client is an HTTP client for a single device's supervisor API.
type Client struct {
	baseURL string
	httpc   *http.Client
	stream  *http.Client
}

// NewClient builds a client for the device at the given address. The
// address may carry an explicit port, otherwise SupervisorPort is used.
func NewClient(address string) *Client {
	if _, _, err := net.SplitHostPort(address); err != nil {
		if ip := net.ParseIP(address); ip != nil && ip.To4() == nil {
			address = "[" + address + "]"
		}
		address = fmt.Sprintf("%s:%d", address, SupervisorPort)
	}
	return &Client{
		baseURL: "http://" + address,
		httpc:   &http.Client{Timeout: 5 * time.Second},
		stream:  &http.Client{},
	}
}

// Ping checks that the device supervisor is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ping", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("ping device: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ping device: unexpected status %s", resp.Status)
	}
	return nil
}

// FollowLogs opens the supervisor's continuous NDJSON log stream and feeds
// every record to fn. Local devices only expose a follow stream, there is
// no bounded history mode. FollowLogs returns on stream or callback error,
// or when the context is canceled.
func (c *Client) FollowLogs(ctx context.Context, fn func(logmsg.LogMessage) error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/local/logs", nil)
	if err != nil {
		return err
	}
	resp, err := c.stream.Do(req)
	if err != nil {
		return fmt.Errorf("open log stream: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("open log stream: unexpected status %s", resp.Status)
	}

	err = helper.ScanNDJSON(resp.Body, func(line []byte) error {
		msg, perr := logmsg.Parse(line)
		if perr != nil {
			return fmt.Errorf("decode log line: %w", perr)
		}
		return fn(msg)
	})
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
