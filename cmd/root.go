// Package cmd implements the CLI commands for bbpipe using Cobra.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gaurav-prasanna/bbpipe/core/translate"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Persistent flag variables.
var (
	flagConfig  string
	flagColor   string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "bbpipe",
	Short: "bbpipe — translate Markdown into forum BBCode",
	Long: `bbpipe translates CommonMark Markdown (or HTML pages, via Markdown) into
the BBCode dialect of a forum engine: XenForo or ProBoards.

Usage:
  bbpipe convert <file|url|-> --dialect xenforo [flags]
  bbpipe events <file|url|->
  bbpipe dialects`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch flagColor {
		case "auto", "on", "off":
		default:
			return fmt.Errorf("invalid --color %q (want auto, on or off)", flagColor)
		}
		initLogger(flagVerbose)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: nearest .bbpipe.toml)")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto", "colorize warnings (auto|on|off)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var terr *translate.Error
		if errors.As(err, &terr) {
			fmt.Fprintf(os.Stderr, "error [%s]: %v\n", terr.Code, terr.Err)
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// initLogger installs the default slog logger. Diagnostics about the run
// (inputs skipped, config loaded) go here; translation warnings do not.
func initLogger(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	})
	slog.SetDefault(slog.New(handler))
}

// useColor resolves --color for the given stream.
func useColor(f *os.File) bool {
	switch flagColor {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
