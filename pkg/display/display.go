package display

import (
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"slices"
	"time"

	"github.com/edgehub-io/cli/pkg/logmsg"
	"github.com/fatih/color"
)

// Options controls filtering and rendering of log lines.
type Options struct {
	// Services restricts output to records attributed to these service names.
	Services []string
	// System selects system records. Combined with Services the output is
	// the union of both selections.
	System bool
	// Writer receives the rendered lines, defaults to stdout.
	Writer io.Writer
	// NoColor disables ANSI coloring of service tags.
	NoColor bool
}

// Printer renders log records line by line, one record per line.
type Printer struct {
	opts    Options
	palette []*color.Color
}

func NewPrinter(opts Options) *Printer {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	p := &Printer{opts: opts}
	if !opts.NoColor {
		p.palette = []*color.Color{
			color.New(color.FgGreen),
			color.New(color.FgYellow),
			color.New(color.FgBlue),
			color.New(color.FgMagenta),
			color.New(color.FgCyan),
			color.New(color.FgRed),
		}
	}
	return p
}

// Print renders a single record if it passes the configured filters.
func (p *Printer) Print(msg logmsg.LogMessage) error {
	if !p.matches(msg) {
		return nil
	}
	stamp := msg.Time().Format(time.TimeOnly)
	if msg.IsSystem || msg.ServiceName == "" {
		_, err := fmt.Fprintf(p.opts.Writer, "%s %s\n", stamp, msg.Message)
		return err
	}
	_, err := fmt.Fprintf(p.opts.Writer, "%s %s %s\n", stamp, p.tag(msg.ServiceName), msg.Message)
	return err
}

func (p *Printer) matches(msg logmsg.LogMessage) bool {
	if len(p.opts.Services) == 0 && !p.opts.System {
		return true
	}
	if msg.IsSystem {
		return p.opts.System
	}
	if len(p.opts.Services) == 0 {
		return false
	}
	return slices.Contains(p.opts.Services, msg.ServiceName)
}

func (p *Printer) tag(service string) string {
	label := "[" + service + "]"
	if len(p.palette) == 0 {
		return label
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(service))
	return p.palette[h.Sum32()%uint32(len(p.palette))].Sprint(label)
}
