// Package encoding checks translated output against the character range a
// forum can store.
package encoding

import (
	"github.com/gaurav-prasanna/bbpipe/core/diag"
	"github.com/gaurav-prasanna/bbpipe/core/dialect"
)

// Validate returns one warning per character of output that d cannot
// represent. Dialects without a code-unit limit never produce warnings.
func Validate(output string, d dialect.Dialect) []diag.Warning {
	limit := dialect.CodeUnitLimit(d)
	if limit == 0 {
		return nil
	}
	var warnings []diag.Warning
	for _, c := range output {
		if c >= limit {
			warnings = append(warnings, diag.Warnf(diag.EncodingRangeViolation,
				"non-UCS-2 character in output: '%c' (U+%x)", c, c))
		}
	}
	return warnings
}
