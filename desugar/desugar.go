// Package desugar lowers the Surface AST into the Core AST by pure
// structural rewriting (spec.md §4.3): a bottom-up, node-per-kind
// transform, each case returning a translated node and reporting failure
// through the shared diagnostic channel instead of a bare error.
package desugar

import (
	"github.com/vibefun-lang/vibefun/ast"
	"github.com/vibefun-lang/vibefun/core"
	"github.com/vibefun-lang/vibefun/diag"
	"github.com/vibefun-lang/vibefun/span"
)

// Config mirrors the parser's functional-options shape (parser/options.go).
type Config struct {
	Budget int
}

type Option func(*Config)

func WithBudget(n int) Option {
	return func(c *Config) { c.Budget = n }
}

func newConfig(opts ...Option) Config {
	c := Config{Budget: diag.DefaultBudget}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// Desugarer carries the diagnostic bag and fresh-name counter for one run.
type Desugarer struct {
	bag   *diag.Bag
	fresh freshGen
}

// Desugar lowers one Surface Module to a Core Module (spec.md §6.1's
// desugar(surface_module, fresh_gen) -> (CoreModule, Diagnostics)).
func Desugar(mod *ast.Module, opts ...Option) (*core.Module, *diag.Bag) {
	cfg := newConfig(opts...)
	d := &Desugarer{bag: diag.NewBagWithBudget(cfg.Budget)}
	out := &core.Module{Sp: mod.Sp}
	for _, decl := range mod.Decls {
		out.Decls = append(out.Decls, d.decls(decl)...)
	}
	return out, d.bag
}

// decls desugars one Surface declaration into zero or more Core
// declarations; groups (LetRecGroup, TypeDeclGroup, ExternalBlock) expand
// to one Core declaration per member (core.go's Decl doc comment).
func (d *Desugarer) decls(decl ast.Decl) []core.Decl {
	switch n := decl.(type) {
	case *ast.LetDecl:
		return []core.Decl{&core.LetDecl{
			Pat:     d.pattern(n.Pat),
			Value:   d.expr(n.Value),
			Mutable: n.Mutable,
			Sp:      n.Sp,
		}}
	case *ast.LetRecGroup:
		var out []core.Decl
		for _, b := range n.Bindings {
			out = append(out, &core.LetDecl{
				Pat:       &core.PVar{Name: b.Name, Sp: b.Sp},
				Value:     d.expr(b.Value),
				Recursive: true,
				Sp:        b.Sp,
			})
		}
		return out
	case *ast.TypeDecl:
		return []core.Decl{d.typeDecl(n)}
	case *ast.TypeDeclGroup:
		var out []core.Decl
		for i := range n.Decls {
			out = append(out, d.typeDecl(&n.Decls[i]))
		}
		return out
	case *ast.ExternalDecl:
		return []core.Decl{&core.ExternalDecl{Name: n.Name, Type: n.Type, JSExpr: n.JSExpr, Sp: n.Sp}}
	case *ast.ExternalTypeDecl:
		// An opaque FFI type has no constructors or alias body; the
		// checker registers it by name/arity alone.
		return []core.Decl{&core.TypeDecl{Name: n.Name, Params: n.Params, Kind: core.TypeDefAlias, Sp: n.Sp}}
	case *ast.ExternalBlock:
		var out []core.Decl
		for _, sub := range n.Decls {
			out = append(out, d.decls(sub)...)
		}
		return out
	case *ast.ImportDecl:
		return []core.Decl{&core.ImportDecl{Path: n.Path, Items: n.Items, Sp: n.Sp}}
	case *ast.ExportDecl:
		return []core.Decl{&core.ExportDecl{Names: n.Names, Sp: n.Sp}}
	case *ast.ErrorDecl:
		return nil
	default:
		d.bag.Add(diag.New(diag.CodeDesugarBadSpread, decl.Span(), "unrecognized declaration"))
		return nil
	}
}

func (d *Desugarer) typeDecl(n *ast.TypeDecl) core.Decl {
	return &core.TypeDecl{
		Name:   n.Name,
		Params: n.Params,
		Kind:   n.Kind,
		Alias:  n.Alias,
		Fields: n.Fields,
		Cases:  n.Cases,
		Sp:     n.Sp,
	}
}
