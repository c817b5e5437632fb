package cmd_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/edgehub-io/cli/pkg/api"
	"github.com/edgehub-io/cli/pkg/cmd"
	"github.com/edgehub-io/cli/pkg/devsim"
	"github.com/edgehub-io/cli/pkg/logmsg"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUUID = "00d859d5366947a1816451a2bb811e18"

// isolate keeps each test away from the user's real config and points the
// CLI at the given API endpoint.
func isolate(t *testing.T, apiURL, token string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("EDGEHUB_API_URL", apiURL)
	t.Setenv("EDGEHUB_AUTH_TOKEN", token)
}

func runCmd(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	root := cmd.NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

func newCloudServer(t *testing.T) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/v1/devices/{uuid}", func(w http.ResponseWriter, req *http.Request) {
		_ = json.NewEncoder(w).Encode(api.Device{
			UUID:     chi.URLParam(req, "uuid"),
			Services: []api.Service{{ID: 1, Name: "web"}},
		})
	})
	r.Get("/v1/devices/{uuid}/logs", func(w http.ResponseWriter, req *http.Request) {
		_ = json.NewEncoder(w).Encode([]logmsg.LogMessage{
			{Timestamp: 1, Message: "alpha", IsSystem: true},
			{Timestamp: 2, Message: "bravo", ServiceID: 1},
			{Timestamp: 3, Message: "charlie", ServiceID: 7},
		})
	})
	r.Get("/v1/devices/{uuid}/logs/stream", func(w http.ResponseWriter, req *http.Request) {
		flusher := w.(http.Flusher)
		enc := json.NewEncoder(w)
		_ = enc.Encode(logmsg.LogMessage{Timestamp: 1, Message: "live", ServiceID: 1})
		flusher.Flush()
		// server drops the stream after one record
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestLogsRequiresTarget(t *testing.T) {
	isolate(t, "http://127.0.0.1:0", "")
	_, err := runCmd(t, context.Background(), "logs")
	assert.Error(t, err)
}

func TestLogsCloudRequiresLogin(t *testing.T) {
	srv := newCloudServer(t)
	isolate(t, srv.URL, "")
	_, err := runCmd(t, context.Background(), "logs", testUUID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestLogsRejectsBogusTarget(t *testing.T) {
	// validation happens before login or any request, so no server and no
	// token are needed
	isolate(t, "http://127.0.0.1:0", "")
	_, err := runCmd(t, context.Background(), "logs", "example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a device address or UUID")
}

func TestRelayRejectsBogusTarget(t *testing.T) {
	isolate(t, "http://127.0.0.1:0", "")
	_, err := runCmd(t, context.Background(), "relay", "example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a device address or UUID")
}

func TestLogsCloudHistory(t *testing.T) {
	srv := newCloudServer(t)
	isolate(t, srv.URL, "token")

	out, err := runCmd(t, context.Background(), "logs", testUUID)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "alpha")
	assert.Contains(t, lines[1], "bravo")
	assert.Contains(t, lines[1], "[web]")
	assert.Contains(t, lines[2], "charlie")
	assert.Contains(t, lines[2], "[Unknown service]")
}

func TestLogsCloudHistoryServiceFilter(t *testing.T) {
	srv := newCloudServer(t)
	isolate(t, srv.URL, "token")

	out, err := runCmd(t, context.Background(), "logs", testUUID, "--service", "web")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "bravo")
}

func TestLogsCloudTailFailsWhenStreamDrops(t *testing.T) {
	srv := newCloudServer(t)
	isolate(t, srv.URL, "token")

	out, err := runCmd(t, context.Background(), "logs", testUUID, "--tail")
	assert.ErrorIs(t, err, api.ErrStreamClosed)
	assert.Contains(t, out, "live")
}

func TestLogsLocalPathIgnoresTailFlag(t *testing.T) {
	sim := devsim.New(devsim.Options{
		Addr:     "127.0.0.1:0",
		Interval: 10 * time.Millisecond,
		Services: []string{"web"},
		Seed:     1,
	})
	require.NoError(t, sim.Start())
	t.Cleanup(func() {
		_ = sim.Stop()
	})
	// no token on purpose: the local path must not require login
	isolate(t, "http://127.0.0.1:0", "")

	// even without --tail the local path streams until canceled
	ctx, cancel := context.WithCancel(context.Background())
	type result struct {
		out string
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, err := runCmd(t, ctx, "logs", sim.Address())
		done <- result{out, err}
	}()

	time.Sleep(300 * time.Millisecond)
	cancel()

	select {
	case res := <-done:
		require.NoError(t, res.err)
		assert.NotEmpty(t, res.out)
	case <-time.After(3 * time.Second):
		t.Fatal("local logs did not stop on cancel")
	}
}

func TestLogsLocalUnreachable(t *testing.T) {
	isolate(t, "http://127.0.0.1:0", "")
	_, err := runCmd(t, context.Background(), "logs", "127.0.0.1:1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot access device")
}
