package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/edgehub-io/cli/pkg/helper"
	"github.com/edgehub-io/cli/pkg/logmsg"
)

// ErrStreamClosed is returned when a live log subscription ends without
// being canceled. A healthy subscription never terminates on its own, so
// the tail path treats a server-side close as a failure.
var ErrStreamClosed = errors.New("api: log stream closed by server")

// History fetches the bounded log history for a device, oldest first, in
// the order returned by the API.
func (c *Client) History(ctx context.Context, deviceUUID string) ([]logmsg.LogMessage, error) {
	var messages []logmsg.LogMessage
	if err := c.get(ctx, "/v1/devices/"+deviceUUID+"/logs", nil, &messages); err != nil {
		return nil, fmt.Errorf("fetch log history: %w", err)
	}
	return messages, nil
}

// Subscribe opens a live NDJSON log stream for a device and feeds every
// record to fn. count asks the server to replay that many buffered records
// before going live. Subscribe only returns on a stream error, a callback
// error, or context cancellation; it never returns nil.
func (c *Client) Subscribe(ctx context.Context, deviceUUID string, count int, fn func(logmsg.LogMessage) error) error {
	query := url.Values{}
	if count > 0 {
		query.Set("count", strconv.Itoa(count))
	}
	resp, err := c.open(ctx, "/v1/devices/"+deviceUUID+"/logs/stream", query)
	if err != nil {
		return fmt.Errorf("subscribe to logs: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	err = helper.ScanNDJSON(resp.Body, func(line []byte) error {
		msg, perr := logmsg.Parse(line)
		if perr != nil {
			return fmt.Errorf("decode log line: %w", perr)
		}
		return fn(msg)
	})
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return ErrStreamClosed
}
