package types

// Env is the persistent type environment (spec.md §4.4.3): a mapping from
// names to Schemes in the value namespace, and from names to TypeCtors in
// the type namespace, kept separate because a name can denote a value
// binding and a type name simultaneously (e.g. a record type `Point` and
// a value `Point` are unrelated lookups). Extension never mutates an
// existing Env — WithValue/WithType return a new Env whose parent is the
// receiver — so a single frozen Env can be shared across concurrent
// type-check runs of independent modules (spec.md §5: "no locking
// required, because shared data is immutable").
type Env struct {
	parent *Env
	name   string
	value  Scheme
	hasVal bool
	tname  string
	tctor  *TypeCtor
	hasT   bool
}

// NewEnv returns the empty environment (the Prelude is built by chaining
// WithValue/WithType onto it — see infer's initial-environment setup).
func NewEnv() *Env {
	return nil
}

// WithValue extends the value namespace, returning a new Env. A binding
// shadows any same-named binding in the parent, per lexical scoping.
func (e *Env) WithValue(name string, s Scheme) *Env {
	return &Env{parent: e, name: name, value: s, hasVal: true}
}

// WithType extends the type namespace.
func (e *Env) WithType(name string, ctor *TypeCtor) *Env {
	return &Env{parent: e, tname: name, tctor: ctor, hasT: true}
}

// LookupValue searches the value namespace, innermost binding first.
func (e *Env) LookupValue(name string) (Scheme, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if cur.hasVal && cur.name == name {
			return cur.value, true
		}
	}
	return Scheme{}, false
}

// LookupType searches the type namespace, innermost binding first.
func (e *Env) LookupType(name string) (*TypeCtor, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if cur.hasT && cur.tname == name {
			return cur.tctor, true
		}
	}
	return nil, false
}

// ValueNames lists every bound value name, innermost-first, for
// diag.SuggestName's "did you mean" ranking on VF4002.
func (e *Env) ValueNames() []string {
	var out []string
	seen := make(map[string]bool)
	for cur := e; cur != nil; cur = cur.parent {
		if cur.hasVal && !seen[cur.name] {
			seen[cur.name] = true
			out = append(out, cur.name)
		}
	}
	return out
}

// TypeNames lists every bound type name, for VF4014's suggestion.
func (e *Env) TypeNames() []string {
	var out []string
	seen := make(map[string]bool)
	for cur := e; cur != nil; cur = cur.parent {
		if cur.hasT && !seen[cur.tname] {
			seen[cur.tname] = true
			out = append(out, cur.tname)
		}
	}
	return out
}
