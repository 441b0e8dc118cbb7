// Package output handles file naming and writing for bbpipe outputs.
// Single documents go to stdout or a named file. In --all mode, output
// paths mirror the input's path below the output directory.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Write writes data followed by a single newline to w.
func Write(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteFile writes data and a trailing newline to path, creating parent
// directories as needed.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	buf := make([]byte, 0, len(data)+1)
	buf = append(buf, data...)
	buf = append(buf, '\n')
	if err := os.WriteFile(path, buf, 0644); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	return nil
}

// Writer writes rendered output below a directory.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	// Ensure the output directory exists.
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Path returns where WriteMirrored puts rel. rel is a slash-separated
// path without extension, relative to the output directory.
// Example: guides/intro + .bbcode → <dir>/guides/intro.bbcode
func (w *Writer) Path(rel string, ext string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(rel, "/")))
	if clean == "." || clean == "" {
		clean = "index"
	}
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("output path %q escapes %s", rel, w.OutputDir)
	}
	return filepath.Join(w.OutputDir, clean+ext), nil
}

// WriteMirrored writes output for --all mode at Path(rel, ext).
func (w *Writer) WriteMirrored(rel string, data []byte, ext string) (string, error) {
	fullPath, err := w.Path(rel, ext)
	if err != nil {
		return "", err
	}
	if err := WriteFile(fullPath, data); err != nil {
		return "", err
	}
	return fullPath, nil
}

// SameFile reports whether a and b name the same file. Files that do not
// exist yet are compared by absolute path.
func SameFile(a, b string) bool {
	ai, aerr := os.Stat(a)
	bi, berr := os.Stat(b)
	if aerr == nil && berr == nil {
		return os.SameFile(ai, bi)
	}
	absA, err := filepath.Abs(a)
	if err != nil {
		return false
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false
	}
	return absA == absB
}
