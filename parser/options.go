package parser

import "github.com/vibefun-lang/vibefun/diag"

// Config holds parser configuration, built from functional Options, the
// same Config/Option pattern lexer.Config uses.
type Config struct {
	Budget int // error budget passed to diag.NewBagWithBudget; 0 means diag.DefaultBudget
}

// Option configures a Parser.
type Option func(*Config)

// WithBudget overrides the diagnostic error budget (spec.md §7, default 10).
func WithBudget(n int) Option {
	return func(c *Config) { c.Budget = n }
}

func newConfig(opts ...Option) Config {
	cfg := Config{Budget: diag.DefaultBudget}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}
