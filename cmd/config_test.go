package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/bbpipe/core/dialect"
	"github.com/spf13/pflag"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, configFileName)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeConfig(t, root, `dialect = "xenforo"`)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, ok, err := findConfig(nested)
	if err != nil || !ok {
		t.Fatalf("findConfig = %q, %v, %v", got, ok, err)
	}
	if got != want {
		t.Fatalf("findConfig = %q, want %q", got, want)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown key", "dialect = \"xenforo\"\ncolour = true", "unknown keys: colour"},
		{"bad dialect", `dialect = "phpbb"`, "unknown dialect"},
		{"bad jobs", `jobs = 0`, "jobs must be at least 1"},
		{"bad toml", `dialect = `, "failed to parse TOML"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tc.body)
			_, err := loadConfig(path, "")
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("loadConfig error = %v, want it to contain %q", err, tc.want)
			}
		})
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"), ""); err == nil {
		t.Fatalf("expected error for a missing explicit config")
	}
}

func TestConfigAppliesUnsetFlags(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
dialect = "proboards"
jobs = 3

[markdown]
tables = true
footnotes = true
`)
	cfg, err := loadConfig(path, "")
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	var (
		d         dialect.Dialect
		tables    bool
		footnotes bool
		jobs      int
	)
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Var(&d, "dialect", "")
	flags.BoolVar(&tables, "tables", false, "")
	flags.BoolVar(&footnotes, "footnotes", false, "")
	flags.IntVar(&jobs, "jobs", 1, "")
	if err := flags.Parse([]string{"--tables=false"}); err != nil {
		t.Fatal(err)
	}

	if err := cfg.applyTo(flags); err != nil {
		t.Fatalf("applyTo failed: %v", err)
	}
	if d != dialect.ProBoards {
		t.Errorf("dialect = %v, want proboards", d)
	}
	if tables {
		t.Errorf("config overrode --tables=false")
	}
	if !footnotes {
		t.Errorf("footnotes not taken from config")
	}
	if jobs != 3 {
		t.Errorf("jobs = %d, want 3", jobs)
	}
	if !flags.Changed("dialect") {
		t.Errorf("dialect from config should count as set")
	}
}

func TestEmptyConfigAppliesNothing(t *testing.T) {
	var tables bool
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.BoolVar(&tables, "tables", false, "")

	if err := (&config{}).applyTo(flags); err != nil {
		t.Fatalf("applyTo failed: %v", err)
	}
	if flags.Changed("tables") {
		t.Fatalf("empty config changed a flag")
	}
}
