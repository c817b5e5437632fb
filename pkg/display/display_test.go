package display_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/edgehub-io/cli/pkg/display"
	"github.com/edgehub-io/cli/pkg/logmsg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var records = []logmsg.LogMessage{
	{Timestamp: 1700000000000, Message: "supervisor started", IsSystem: true},
	{Timestamp: 1700000001000, Message: "listening on :80", ServiceName: "web"},
	{Timestamp: 1700000002000, Message: "connected", ServiceName: "db"},
}

func render(t *testing.T, opts display.Options) []string {
	t.Helper()
	var buf bytes.Buffer
	opts.Writer = &buf
	opts.NoColor = true
	p := display.NewPrinter(opts)
	for _, msg := range records {
		require.NoError(t, p.Print(msg))
	}
	out := strings.TrimRight(buf.String(), "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func TestPrintUnfiltered(t *testing.T) {
	lines := render(t, display.Options{})
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "supervisor started")
	assert.Contains(t, lines[1], "[web]")
	assert.Contains(t, lines[2], "[db]")
}

func TestPrintSystemOnly(t *testing.T) {
	lines := render(t, display.Options{System: true})
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "supervisor started")
}

func TestPrintServiceFilter(t *testing.T) {
	lines := render(t, display.Options{Services: []string{"web"}})
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "listening on :80")
}

func TestPrintSystemAndServiceUnion(t *testing.T) {
	lines := render(t, display.Options{System: true, Services: []string{"db"}})
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "supervisor started")
	assert.Contains(t, lines[1], "[db]")
}
