package device_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/edgehub-io/cli/pkg/device"
	"github.com/edgehub-io/cli/pkg/logmsg"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLocal(t *testing.T) {
	cases := []struct {
		target string
		want   bool
	}{
		{"192.168.1.42", true},
		{"192.168.1.42:48484", true},
		{"10.0.0.1", true},
		{"fe80::1", true},
		{"[fe80::1]:48484", true},
		{"mydevice.local", true},
		{"my-device.local", true},
		{"00d859d5366947a1816451a2bb811e18", false},
		{"123e4567-e89b-12d3-a456-426614174000", false},
		{"example.com", false},
		{"device.local.example.com", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, device.IsLocal(tc.target), "target %q", tc.target)
	}
}

func newSupervisor(t *testing.T) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/ping", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})
	r.Get("/v2/local/logs", func(w http.ResponseWriter, req *http.Request) {
		flusher := w.(http.Flusher)
		enc := json.NewEncoder(w)
		for i := range 3 {
			_ = enc.Encode(logmsg.LogMessage{Timestamp: int64(i), Message: "line", ServiceName: "web"})
			flusher.Flush()
		}
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func addrOf(srv *httptest.Server) string {
	return strings.TrimPrefix(srv.URL, "http://")
}

func TestPing(t *testing.T) {
	srv := newSupervisor(t)
	client := device.NewClient(addrOf(srv))
	require.NoError(t, client.Ping(context.Background()))
}

func TestPingUnreachable(t *testing.T) {
	// port 1 is almost certainly closed
	client := device.NewClient("127.0.0.1:1")
	assert.Error(t, client.Ping(context.Background()))
}

func TestFollowLogs(t *testing.T) {
	srv := newSupervisor(t)
	client := device.NewClient(addrOf(srv))

	var messages []logmsg.LogMessage
	err := client.FollowLogs(context.Background(), func(msg logmsg.LogMessage) error {
		messages = append(messages, msg)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "web", messages[0].ServiceName)
}

func TestFollowLogsCancel(t *testing.T) {
	srv := newSupervisor(t)
	client := device.NewClient(addrOf(srv))

	ctx, cancel := context.WithCancel(context.Background())
	err := client.FollowLogs(ctx, func(msg logmsg.LogMessage) error {
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
