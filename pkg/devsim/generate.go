package devsim

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/edgehub-io/cli/pkg/logmsg"
	"github.com/ettle/strcase"
	"github.com/sasha-s/go-deadlock"
)

var systemTemplates = []string{
	"Supervisor starting",
	"Applying target state",
	"Target state applied",
	"Device state reported",
}

// Generator synthesizes plausible device log records. It is safe for
// concurrent use; the server shares one generator across open streams.
type Generator struct {
	mu       deadlock.Mutex
	faker    *gofakeit.Faker
	services []string
	replay   []logmsg.LogMessage
	seq      int
}

// NewGenerator builds a generator for the given service names. When none
// are given a small generated set is used.
func NewGenerator(services []string, seed uint64) *Generator {
	faker := gofakeit.New(seed)
	if len(services) == 0 {
		n := faker.IntRange(2, 4)
		services = make([]string, 0, n)
		for range n {
			services = append(services, strcase.ToKebab(faker.ProductName()))
		}
	}
	return &Generator{faker: faker, services: services}
}

// NewReplayGenerator cycles through recorded log lines instead of
// synthesizing them. Timestamps are refreshed on each emit.
func NewReplayGenerator(messages []logmsg.LogMessage) *Generator {
	services := make([]string, 0, len(messages))
	seen := map[string]bool{}
	for _, msg := range messages {
		if msg.ServiceName != "" && !seen[msg.ServiceName] {
			seen[msg.ServiceName] = true
			services = append(services, msg.ServiceName)
		}
	}
	return &Generator{replay: messages, services: services}
}

// Services returns the service names lines are attributed to.
func (g *Generator) Services() []string {
	return g.services
}

// Next produces one log record. In replay mode records cycle in file
// order; otherwise roughly one line in five is a system record and the
// rest are attributed to a random service.
func (g *Generator) Next() logmsg.LogMessage {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.replay) > 0 {
		msg := g.replay[g.seq%len(g.replay)]
		g.seq++
		msg.Timestamp = time.Now().UnixMilli()
		return msg
	}

	g.seq++
	msg := logmsg.LogMessage{
		Timestamp: time.Now().UnixMilli(),
	}
	if g.seq%5 == 0 {
		msg.IsSystem = true
		msg.Message = g.faker.RandomString(systemTemplates)
		return msg
	}
	idx := g.faker.IntRange(0, len(g.services)-1)
	msg.ServiceName = g.services[idx]
	msg.ServiceID = idx + 1
	msg.Message = fmt.Sprintf("%s (pid %d)", g.faker.HackerPhrase(), g.faker.IntRange(100, 9999))
	return msg
}
