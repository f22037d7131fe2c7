// Package span implements the source-location service shared by every
// compiler phase: lexer, parser, desugarer and type checker all stamp the
// nodes they produce with a Span, and later phases never recompute one from
// scratch — they either copy a Span forward or union two existing Spans.
package span

import "fmt"

// Position is a single point in source text.
type Position struct {
	Line   int // 1-based
	Column int // 1-based
	Offset int // 0-based byte offset
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Less reports whether p comes strictly before q in the same file.
func (p Position) Less(q Position) bool {
	return p.Offset < q.Offset
}

// Span is a half-open source range: [Start, End), inclusive start, exclusive
// end, within File. A zero Span (File == "") is never emitted by a phase —
// every node constructor in lexer/ast/core/types takes an explicit Span.
type Span struct {
	File  string
	Start Position
	End   Position
}

func (s Span) String() string {
	if s.File == "" {
		return fmt.Sprintf("%s-%s", s.Start, s.End)
	}
	return fmt.Sprintf("%s:%s-%s", s.File, s.Start, s.End)
}

// IsZero reports whether s was never assigned a real location.
func (s Span) IsZero() bool {
	return s.File == "" && s.Start == Position{} && s.End == Position{}
}

// Union returns the smallest Span covering both a and b. Used by the
// desugarer to compute a synthetic node's span from the surface subtree it
// was derived from (spec.md §3, "synthetic nodes inherit the span of the
// causing source node").
func Union(a, b Span) Span {
	if a.IsZero() {
		return b
	}
	if b.IsZero() {
		return a
	}
	out := a
	if b.Start.Less(a.Start) {
		out.Start = b.Start
	}
	if a.End.Less(b.End) {
		out.End = b.End
	}
	return out
}

// Contains reports whether outer fully contains inner (same file, inner's
// start is not before outer's start, inner's end is not after outer's end).
// Used by tests that assert desugar location preservation (spec.md §8.4).
func Contains(outer, inner Span) bool {
	if outer.File != inner.File {
		return false
	}
	return !inner.Start.Less(outer.Start) && !outer.End.Less(inner.End)
}
