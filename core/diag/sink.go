package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Sink receives warnings as they are produced.
type Sink interface {
	Warn(w Warning)
}

// Nop discards every warning.
type Nop struct{}

func (Nop) Warn(Warning) {}

// Collector keeps warnings in memory in the order they were reported.
type Collector struct {
	items []Warning
}

func (c *Collector) Warn(w Warning) {
	c.items = append(c.items, w)
}

// Warnings returns the collected warnings. The slice must not be modified.
func (c *Collector) Warnings() []Warning {
	return c.items
}

func (c *Collector) Len() int {
	return len(c.items)
}

// Replay forwards every collected warning to s.
func (c *Collector) Replay(s Sink) {
	for _, w := range c.items {
		s.Warn(w)
	}
}

// Tee fans a warning out to several sinks.
type Tee []Sink

func (t Tee) Warn(w Warning) {
	for _, s := range t {
		if s != nil {
			s.Warn(w)
		}
	}
}

// WriterSink writes one line per warning to an io.Writer.
type WriterSink struct {
	w      io.Writer
	prefix string
	paint  *color.Color
}

// NewWriterSink creates a WriterSink. When colored is true the warning
// marker is painted yellow regardless of whether w is a terminal; callers
// decide that.
func NewWriterSink(w io.Writer, colored bool) *WriterSink {
	paint := color.New(color.FgYellow, color.Bold)
	if colored {
		paint.EnableColor()
	} else {
		paint.DisableColor()
	}
	return &WriterSink{w: w, paint: paint}
}

// WithPrefix returns a copy of s that prefixes every message, e.g. with
// the path of the document being translated.
func (s *WriterSink) WithPrefix(prefix string) *WriterSink {
	cp := *s
	cp.prefix = prefix
	return &cp
}

func (s *WriterSink) Warn(w Warning) {
	msg := w.Message
	if s.prefix != "" {
		msg = s.prefix + ": " + msg
	}
	// Write errors on the diagnostic stream are not actionable.
	_, _ = fmt.Fprintf(s.w, "%s %s\n", s.paint.Sprint("[[WARN]]"), msg)
}
