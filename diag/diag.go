// Package diag implements the single diagnostic channel every compiler phase
// reports through (spec.md §4.6): lexer, parser, desugarer and type checker
// all emit diag.Diagnostic values into a shared diag.Bag rather than
// returning bare errors, so a caller sees one ordered, budgeted list
// regardless of which phase produced it.
package diag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/vibefun-lang/vibefun/span"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
	Note
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		return "unknown"
	}
}

// Code ranges, spec.md §4.6: VF1xxx lexer, VF2xxx parser, VF3xxx desugarer,
// VF4xxx type checker (VF49xx reserved for warnings), VF5xxx module-level
// (reported by the caller; defined here for ABI reasons only).
type Code string

const (
	// Lexer
	CodeLexUnterminatedString  Code = "VF1001"
	CodeLexUnterminatedComment Code = "VF1002"
	CodeLexBadNumber           Code = "VF1003"
	CodeLexBadEscape           Code = "VF1004"
	CodeLexUnknownChar         Code = "VF1005"

	// Parser
	CodeParseUnexpectedToken Code = "VF2001"
	CodeParseMissingSemi     Code = "VF2002"
	CodeParseMismatchedBrack Code = "VF2003"
	CodeParseBadDecl         Code = "VF2004"

	// Desugarer
	CodeDesugarOrPatternBindings Code = "VF3001"
	CodeDesugarBadSpread         Code = "VF3002"

	// Type checker (errors)
	CodeTypeMismatch       Code = "VF4001"
	CodeUndefinedVar       Code = "VF4002"
	CodeOccursCheck        Code = "VF4003"
	CodeArity              Code = "VF4006"
	CodeValueRestriction   Code = "VF4011"
	CodeExpectedFunction   Code = "VF4013"
	CodeUndefinedType      Code = "VF4014"
	CodeUndefinedCtor      Code = "VF4016"
	CodeMissingField       Code = "VF4019"
	CodeExpectedVariant    Code = "VF4020"

	// Type checker (warnings, VF49xx)
	CodeNonExhaustive Code = "VF4900"
	CodeUnreachable   Code = "VF4901"
	CodeUnusedBinding Code = "VF4902"

	// Module-level (emitted by the caller on this core's behalf)
	CodeCyclicImport      Code = "VF5900"
	CodeCyclicExport      Code = "VF5901"
	CodeMalformedManifest Code = "VF5902"
)

// TypePair carries the expected/actual pair for a mismatch diagnostic.
type TypePair struct {
	Expected string
	Actual   string
}

// Diagnostic is one compiler message.
type Diagnostic struct {
	Code     Code
	Severity Severity
	Primary  span.Span
	Secondary []span.Span
	Message  string
	Types    *TypePair
	Hint     string
}

func (d Diagnostic) Error() string {
	if d.Hint != "" {
		return fmt.Sprintf("%s: %s: %s (%s)", d.Primary, d.Code, d.Message, d.Hint)
	}
	return fmt.Sprintf("%s: %s: %s", d.Primary, d.Code, d.Message)
}

// New builds an error-severity Diagnostic.
func New(code Code, at span.Span, message string) Diagnostic {
	return Diagnostic{Code: code, Severity: Error, Primary: at, Message: message}
}

// Warn builds a warning-severity Diagnostic.
func Warn(code Code, at span.Span, message string) Diagnostic {
	return Diagnostic{Code: code, Severity: Warning, Primary: at, Message: message}
}

// WithHint attaches an actionable hint and returns the Diagnostic
// (builder-style chaining).
func (d Diagnostic) WithHint(hint string) Diagnostic {
	d.Hint = hint
	return d
}

// WithTypes attaches the expected/actual pair for a mismatch.
func (d Diagnostic) WithTypes(expected, actual string) Diagnostic {
	d.Types = &TypePair{Expected: expected, Actual: actual}
	return d
}

// WithSecondary appends a secondary span (e.g. the other occurrence in a
// redefinition error).
func (d Diagnostic) WithSecondary(s span.Span) Diagnostic {
	d.Secondary = append(d.Secondary, s)
	return d
}

// SuggestName ranks candidates against name by edit distance (via
// fuzzysearch) and, if a close match exists, returns a "did you mean X?"
// hint string; otherwise "". Candidates that contain name as a
// case-insensitive subsequence are ranked first; failing those, the
// candidate with the smallest case-insensitive Levenshtein distance, at
// most half of len(name), is suggested. Used for VF4002/VF4014/VF4016.
func SuggestName(name string, candidates []string) string {
	best := fuzzy.RankFindNormalizedFold(name, candidates)
	if len(best) > 0 {
		sort.Sort(best)
		return fmt.Sprintf("did you mean %q?", best[0].Target)
	}
	target, dist := "", len(name)/2+1
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(strings.ToLower(name), strings.ToLower(c)); d < dist {
			target, dist = c, d
		}
	}
	if target == "" {
		return ""
	}
	return fmt.Sprintf("did you mean %q?", target)
}

// Bag accumulates diagnostics from one pipeline invocation, enforcing the
// error budget (spec.md §7, default 10) while never capping warnings.
type Bag struct {
	items  []Diagnostic
	budget int
	errors int
}

// DefaultBudget is the default cap on error-severity diagnostics per file.
const DefaultBudget = 10

// NewBag creates a Bag with the default budget.
func NewBag() *Bag {
	return &Bag{budget: DefaultBudget}
}

// NewBagWithBudget creates a Bag with an explicit error budget; budget <= 0
// means unlimited.
func NewBagWithBudget(budget int) *Bag {
	return &Bag{budget: budget}
}

// Add appends a diagnostic, in source order relative to prior adds, and
// reports whether the caller should keep reporting errors for this file
// (false once the error budget is exhausted — warnings are always
// accepted).
func (b *Bag) Add(d Diagnostic) bool {
	if d.Severity == Error {
		if b.budget > 0 && b.errors >= b.budget {
			return false
		}
		b.errors++
	}
	b.items = append(b.items, d)
	return true
}

// Full reports whether the error budget has been reached.
func (b *Bag) Full() bool {
	return b.budget > 0 && b.errors >= b.budget
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (b *Bag) HasErrors() bool {
	return b.errors > 0
}

// Items returns all diagnostics in emission (source) order.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// HasCode reports whether any diagnostic with the given code was recorded.
func (b *Bag) HasCode(code Code) bool {
	for _, d := range b.items {
		if d.Code == code {
			return true
		}
	}
	return false
}

// Merge appends another bag's items in order, respecting this bag's budget.
func (b *Bag) Merge(other *Bag) {
	for _, d := range other.items {
		b.Add(d)
	}
}

// JSON and Human renderings of a Bag/Diagnostic (spec.md §4.6's machine and
// human forms) live in render.go.
