// Package cmd — configuration file.
// An optional .bbpipe.toml supplies defaults for convert and events flags.
// Flags set on the command line always win.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gaurav-prasanna/bbpipe/core/dialect"
	"github.com/spf13/pflag"
)

const configFileName = ".bbpipe.toml"

type fileConfig struct {
	Dialect          string         `toml:"dialect"`
	EncodingWarnings bool           `toml:"encoding_warnings"`
	From             string         `toml:"from"`
	OutputDir        string         `toml:"output_dir"`
	Jobs             int            `toml:"jobs"`
	Markdown         markdownConfig `toml:"markdown"`
}

type markdownConfig struct {
	Tables           bool `toml:"tables"`
	Footnotes        bool `toml:"footnotes"`
	Strikethrough    bool `toml:"strikethrough"`
	TaskLists        bool `toml:"tasklists"`
	SmartPunctuation bool `toml:"smart_punctuation"`
}

// config is a decoded config file together with the keys it defines.
type config struct {
	Path string
	File fileConfig
	meta toml.MetaData
}

// configKeys maps config keys to the flags they provide defaults for.
var configKeys = []struct {
	key   []string
	flag  string
	value func(fileConfig) string
}{
	{[]string{"dialect"}, "dialect", func(c fileConfig) string { return c.Dialect }},
	{[]string{"encoding_warnings"}, "encoding-warnings", func(c fileConfig) string { return strconv.FormatBool(c.EncodingWarnings) }},
	{[]string{"from"}, "from", func(c fileConfig) string { return c.From }},
	{[]string{"output_dir"}, "output_dir", func(c fileConfig) string { return c.OutputDir }},
	{[]string{"jobs"}, "jobs", func(c fileConfig) string { return strconv.Itoa(c.Jobs) }},
	{[]string{"markdown", "tables"}, "tables", func(c fileConfig) string { return strconv.FormatBool(c.Markdown.Tables) }},
	{[]string{"markdown", "footnotes"}, "footnotes", func(c fileConfig) string { return strconv.FormatBool(c.Markdown.Footnotes) }},
	{[]string{"markdown", "strikethrough"}, "strikethrough", func(c fileConfig) string { return strconv.FormatBool(c.Markdown.Strikethrough) }},
	{[]string{"markdown", "tasklists"}, "tasklists", func(c fileConfig) string { return strconv.FormatBool(c.Markdown.TaskLists) }},
	{[]string{"markdown", "smart_punctuation"}, "smart-punctuation", func(c fileConfig) string { return strconv.FormatBool(c.Markdown.SmartPunctuation) }},
}

// findConfig walks up from startDir looking for .bbpipe.toml.
func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadConfig reads the file at explicit, or the nearest .bbpipe.toml above
// startDir when explicit is empty. A missing implicit file yields an empty
// config.
func loadConfig(explicit, startDir string) (*config, error) {
	path := explicit
	if path == "" {
		found, ok, err := findConfig(startDir)
		if err != nil {
			return nil, err
		}
		if !ok {
			return &config{}, nil
		}
		path = found
	}

	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("dialect") {
		if _, err := dialect.Parse(cfg.Dialect); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	if meta.IsDefined("jobs") && cfg.Jobs < 1 {
		return nil, fmt.Errorf("%s: jobs must be at least 1", path)
	}

	slog.Debug("loaded config", "path", path)
	return &config{Path: path, File: cfg, meta: meta}, nil
}

// applyTo sets every flag the config defines and the command line did not.
// Flags absent from flags are ignored.
func (c *config) applyTo(flags *pflag.FlagSet) error {
	if c.Path == "" {
		return nil
	}
	for _, k := range configKeys {
		if !c.meta.IsDefined(k.key...) {
			continue
		}
		if flags.Lookup(k.flag) == nil || flags.Changed(k.flag) {
			continue
		}
		if err := flags.Set(k.flag, k.value(c.File)); err != nil {
			return fmt.Errorf("%s: %s: %w", c.Path, strings.Join(k.key, "."), err)
		}
	}
	return nil
}
