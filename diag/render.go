package diag

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// JSONDiagnostic is the machine rendering of a Diagnostic: JSON with
// line/column/endLine/endColumn, per spec.md §4.6.
type JSONDiagnostic struct {
	Code       string `json:"code"`
	Severity   string `json:"severity"`
	File       string `json:"file"`
	Line       int    `json:"line"`
	Column     int    `json:"column"`
	EndLine    int    `json:"endLine"`
	EndColumn  int    `json:"endColumn"`
	Message    string `json:"message"`
	Expected   string `json:"expected,omitempty"`
	Actual     string `json:"actual,omitempty"`
	Hint       string `json:"hint,omitempty"`
}

// JSON renders a single Diagnostic to its machine form.
func (d Diagnostic) JSON() JSONDiagnostic {
	out := JSONDiagnostic{
		Code:      string(d.Code),
		Severity:  d.Severity.String(),
		File:      d.Primary.File,
		Line:      d.Primary.Start.Line,
		Column:    d.Primary.Start.Column,
		EndLine:   d.Primary.End.Line,
		EndColumn: d.Primary.End.Column,
		Message:   d.Message,
		Hint:      d.Hint,
	}
	if d.Types != nil {
		out.Expected = d.Types.Expected
		out.Actual = d.Types.Actual
	}
	return out
}

// JSON renders every diagnostic in the bag, in emission order.
func (b *Bag) JSON() ([]byte, error) {
	docs := make([]JSONDiagnostic, len(b.items))
	for i, d := range b.items {
		docs[i] = d.JSON()
	}
	return json.MarshalIndent(docs, "", "  ")
}

// Human renders one Diagnostic as a source excerpt with a caret span, an
// educational rendering (message, excerpt, hint) driven from the shared
// Diagnostic shape.
func (d Diagnostic) Human(source string) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s: %s[%s]: %s\n", d.Primary, d.Severity, d.Code, d.Message)

	lines := strings.Split(source, "\n")
	lineNo := d.Primary.Start.Line
	if lineNo >= 1 && lineNo <= len(lines) {
		text := lines[lineNo-1]
		fmt.Fprintf(&buf, "  %4d | %s\n", lineNo, text)
		col := d.Primary.Start.Column
		if col < 1 {
			col = 1
		}
		width := d.Primary.End.Column - d.Primary.Start.Column
		if width < 1 {
			width = 1
		}
		fmt.Fprintf(&buf, "       | %s%s\n", strings.Repeat(" ", col-1), strings.Repeat("^", width))
	}
	if d.Types != nil {
		fmt.Fprintf(&buf, "       expected: %s\n       actual:   %s\n", d.Types.Expected, d.Types.Actual)
	}
	if d.Hint != "" {
		fmt.Fprintf(&buf, "       hint: %s\n", d.Hint)
	}
	return buf.String()
}

// Human renders every diagnostic in the bag against source, in emission
// order (spec.md §7: diagnostic emission order is source-order).
func (b *Bag) Human(source string) string {
	var buf bytes.Buffer
	for _, d := range b.items {
		buf.WriteString(d.Human(source))
	}
	return buf.String()
}
