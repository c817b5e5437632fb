package logmsg_test

import (
	"testing"
	"time"

	"github.com/edgehub-io/cli/pkg/logmsg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	line := []byte(`{"timestamp":1700000000000,"message":"booted","isSystem":true}`)
	msg, err := logmsg.Parse(line)
	require.NoError(t, err)
	assert.True(t, msg.IsSystem)
	assert.Equal(t, "booted", msg.Message)
	assert.Equal(t, time.UnixMilli(1700000000000), msg.Time())
}

func TestResolve(t *testing.T) {
	resolver := func(id int) string {
		if id == 42 {
			return "webserver"
		}
		return ""
	}

	msg := logmsg.Resolve(logmsg.LogMessage{ServiceID: 42}, resolver)
	assert.Equal(t, "webserver", msg.ServiceName)

	msg = logmsg.Resolve(logmsg.LogMessage{ServiceID: 7}, resolver)
	assert.Equal(t, logmsg.UnknownService, msg.ServiceName)

	msg = logmsg.Resolve(logmsg.LogMessage{ServiceID: 7}, nil)
	assert.Equal(t, logmsg.UnknownService, msg.ServiceName)

	// system records keep their (empty) attribution
	msg = logmsg.Resolve(logmsg.LogMessage{IsSystem: true}, resolver)
	assert.Empty(t, msg.ServiceName)

	// already resolved records pass through
	msg = logmsg.Resolve(logmsg.LogMessage{ServiceID: 42, ServiceName: "db"}, resolver)
	assert.Equal(t, "db", msg.ServiceName)
}
