package logmsg

import (
	"encoding/json"
	"time"
)

// LogMessage is a single device log record. Timestamps are milliseconds
// since the epoch, as emitted by both the cloud stream and the device
// supervisor. System records carry no service attribution; service records
// carry a numeric service ID (cloud) or a resolved name (local supervisor).
type LogMessage struct {
	Timestamp   int64  `json:"timestamp"`
	Message     string `json:"message"`
	IsSystem    bool   `json:"isSystem"`
	ServiceID   int    `json:"serviceId,omitempty"`
	ServiceName string `json:"serviceName,omitempty"`
}

// Time returns the record timestamp as wall-clock time.
func (m LogMessage) Time() time.Time {
	return time.UnixMilli(m.Timestamp)
}

// Parse decodes a single NDJSON log line.
func Parse(line []byte) (LogMessage, error) {
	var msg LogMessage
	err := json.Unmarshal(line, &msg)
	return msg, err
}

// ServiceResolver maps a numeric service ID to a display name.
type ServiceResolver func(serviceID int) string

// UnknownService is the fallback name when a service ID cannot be resolved.
const UnknownService = "Unknown service"

// Resolve fills in the service name on cloud records that only carry the
// numeric ID. Records that already have a name, and system records, pass
// through unchanged.
func Resolve(msg LogMessage, resolver ServiceResolver) LogMessage {
	if msg.IsSystem || msg.ServiceName != "" || msg.ServiceID == 0 {
		return msg
	}
	if resolver == nil {
		msg.ServiceName = UnknownService
		return msg
	}
	name := resolver(msg.ServiceID)
	if name == "" {
		name = UnknownService
	}
	msg.ServiceName = name
	return msg
}
