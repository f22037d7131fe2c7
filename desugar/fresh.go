package desugar

import "strconv"

// freshGen is the monotone counter spec.md §4.3 requires ("supplied by a
// monotone counter; names use a prefix that cannot collide with user
// identifiers, plus the counter"). It is run-local: a new Desugarer gets
// its own, matching §5's "fresh-name id generation is likewise per-run".
type freshGen struct {
	n int
}

// name returns a fresh identifier "$prefix<n>". User identifiers can never
// start with '$' (lexer.go's identifier rule starts on a letter, '_' or
// a non-ASCII character, never on '$'),
// so collision is impossible regardless of counter value.
func (g *freshGen) name(prefix string) string {
	g.n++
	return "$" + prefix + strconv.Itoa(g.n)
}
