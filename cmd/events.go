// Package cmd — events command.
// Dumps the event stream the translator would see, one event per line.
package cmd

import (
	"context"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/gaurav-prasanna/bbpipe/core/event"
	"github.com/gaurav-prasanna/bbpipe/core/extract"
	"github.com/gaurav-prasanna/bbpipe/core/fetch"
	"github.com/gaurav-prasanna/bbpipe/core/normalize"
	"github.com/gaurav-prasanna/bbpipe/core/parse"
	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events [file|url|-]",
	Short: "Print the parsed event stream of a document",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEvents,
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	addInputFlags(eventsCmd.Flags())
}

func runEvents(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}
	format, err := parseFormat(flagFrom)
	if err != nil {
		return err
	}

	p := &pipeline{
		fetcher:    fetch.New(),
		extractor:  extract.New(),
		normalizer: normalize.New(normalize.Options{Tables: flagMarkdown.Tables, Strikethrough: flagMarkdown.Strikethrough}),
		format:     format,
	}

	source := "-"
	if len(args) == 1 {
		source = args[0]
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	doc, err := p.load(ctx, source)
	if err != nil {
		return err
	}

	return dumpEvents(os.Stdout, parse.New(flagMarkdown).Parse([]byte(doc.markdown)))
}

var dumpOptions = litter.Options{
	Compact:           true,
	StripPackageNames: true,
	HidePrivateFields: true,
	Separator:         " ",
}

// dumpEvents writes one line per event, indented by nesting depth.
func dumpEvents(w io.Writer, events iter.Seq[event.Event]) error {
	depth := 0
	for ev := range events {
		if ev.Kind == event.KindEnd && depth > 0 {
			depth--
		}

		var payload string
		switch ev.Kind {
		case event.KindStart, event.KindEnd:
			payload = ev.Tag.Kind.String() + " " + dumpOptions.Sdump(ev.Tag)
		case event.KindText, event.KindInlineCode, event.KindRawInline, event.KindFootnoteReference:
			payload = dumpOptions.Sdump(ev.Text)
		case event.KindTaskListMarker:
			payload = dumpOptions.Sdump(ev.Checked)
		}

		line := ev.Kind.String()
		if payload != "" {
			line += " " + payload
		}
		if _, err := fmt.Fprintf(w, "%*s%s\n", depth*2, "", line); err != nil {
			return err
		}

		if ev.Kind == event.KindStart {
			depth++
		}
	}
	return nil
}
