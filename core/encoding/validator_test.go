package encoding

import (
	"testing"

	"github.com/gaurav-prasanna/bbpipe/core/diag"
	"github.com/gaurav-prasanna/bbpipe/core/dialect"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		dialect dialect.Dialect
		output  string
		want    []string
	}{
		{"ascii", dialect.XenForo, "[b]ok[/b]", nil},
		{"last allowed character", dialect.XenForo, "\ufffd", nil},
		{"first rejected character", dialect.XenForo, "\ufffe", []string{"non-UCS-2 character in output: '\ufffe' (U+fffe)"}},
		{"one warning per character", dialect.XenForo, "😀 and 𝄞", []string{
			"non-UCS-2 character in output: '😀' (U+1f600)",
			"non-UCS-2 character in output: '𝄞' (U+1d11e)",
		}},
		{"no limit", dialect.ProBoards, "😀", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Validate(tc.output, tc.dialect)
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i, w := range got {
				if w.Code != diag.EncodingRangeViolation || w.Message != tc.want[i] {
					t.Fatalf("warning %d = %+v, want %q", i, w, tc.want[i])
				}
			}
		})
	}
}
