// Package dialect holds the per-forum markup tables.
//
// Every dialect-specific decision lives in the tables of this package. The
// translator and the raw markup handler look snippets up by (Construct,
// Dialect) and never branch on a dialect themselves, so adding a forum means
// adding one column to each table below.
package dialect

import (
	"fmt"
	"strings"
)

// Dialect is a target BBCode flavour.
type Dialect uint8

const (
	XenForo Dialect = iota
	ProBoards

	dialectCount
)

var dialectNames = [dialectCount]string{
	XenForo:   "xenforo",
	ProBoards: "proboards",
}

func (d Dialect) String() string {
	if d < dialectCount {
		return dialectNames[d]
	}
	return "unknown"
}

// Valid reports whether d is one of the enumerated dialects.
func (d Dialect) Valid() bool {
	return d < dialectCount
}

// All returns every supported dialect in declaration order.
func All() []Dialect {
	out := make([]Dialect, 0, dialectCount)
	for d := Dialect(0); d < dialectCount; d++ {
		out = append(out, d)
	}
	return out
}

// Names returns the CLI names of all dialects.
func Names() []string {
	return append([]string(nil), dialectNames[:]...)
}

// Parse maps a case-insensitive CLI name to a Dialect.
func Parse(name string) (Dialect, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for d, n := range dialectNames {
		if n == want {
			return Dialect(d), nil
		}
	}
	return 0, fmt.Errorf("unknown dialect %q (want one of: %s)", name, strings.Join(Names(), ", "))
}

// Set implements pflag.Value so a Dialect can be bound to a flag directly.
func (d *Dialect) Set(name string) error {
	parsed, err := Parse(name)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Type implements pflag.Value.
func (d *Dialect) Type() string {
	return "dialect"
}

// MarshalText renders the dialect by name in JSON reports and config files.
func (d Dialect) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Dialect) UnmarshalText(text []byte) error {
	return d.Set(string(text))
}
