package types

import "fmt"

// MismatchError reports two pruned types that cannot be unified
// (spec.md §4.4.1 rule 12). The caller attaches the offending AST span.
type MismatchError struct {
	Expected, Actual Type
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, got %s", String(e.Expected), String(e.Actual))
}

// OccursError reports a Var that occurs in the type it would be bound to
// (spec.md §4.4.1 rule 2), which would otherwise build an infinite type.
type OccursError struct {
	Var *Var
	In  Type
}

func (e *OccursError) Error() string {
	return fmt.Sprintf("occurs check failed: t%d occurs in %s", e.Var.ID, String(e.In))
}

// Unify implements spec.md §4.4.1's twelve-rule algorithm on two (possibly
// unpruned) types. On success, Var nodes reachable from t1/t2 may have
// been mutated to forward to their unification partner; on failure, no
// further mutation happens past the point of failure (bindings already
// made earlier in the same call are not rolled back, matching a standard
// union-find unifier — a caller that needs transactional unification must
// snapshot and restore Var.Instance itself).
func Unify(t1, t2 Type) error {
	t1, t2 = Prune(t1), Prune(t2)

	if _, isErr := t1.(Error); isErr {
		return nil
	}
	if _, isErr := t2.(Error); isErr {
		return nil
	}

	if v1, ok := t1.(*Var); ok {
		if v2, ok := t2.(*Var); ok && v1 == v2 {
			return nil
		}
		return bindVar(v1, t2)
	}
	if v2, ok := t2.(*Var); ok {
		return bindVar(v2, t1)
	}

	switch a := t1.(type) {
	case Const:
		b, ok := t2.(Const)
		if !ok || a.Name != b.Name {
			return &MismatchError{t1, t2}
		}
		return nil

	case Fun:
		b, ok := t2.(Fun)
		if !ok {
			return &MismatchError{t1, t2}
		}
		if err := Unify(a.Param, b.Param); err != nil {
			return err
		}
		return Unify(a.Result, b.Result)

	case App:
		b, ok := t2.(App)
		if !ok || a.Ctor != b.Ctor || len(a.Args) != len(b.Args) {
			return &MismatchError{t1, t2}
		}
		for i := range a.Args {
			if err := Unify(a.Args[i], b.Args[i]); err != nil {
				return err
			}
		}
		return nil

	case Tuple:
		b, ok := t2.(Tuple)
		if !ok || len(a.Elements) != len(b.Elements) {
			return &MismatchError{t1, t2}
		}
		for i := range a.Elements {
			if err := Unify(a.Elements[i], b.Elements[i]); err != nil {
				return err
			}
		}
		return nil

	case *Record:
		b, ok := t2.(*Record)
		if !ok {
			return &MismatchError{t1, t2}
		}
		return unifyRecords(a, b)

	case Variant:
		b, ok := t2.(Variant)
		if !ok || a.Name != b.Name || len(a.Args) != len(b.Args) {
			return &MismatchError{t1, t2}
		}
		for i := range a.Args {
			if err := Unify(a.Args[i], b.Args[i]); err != nil {
				return err
			}
		}
		return nil

	case Ref:
		b, ok := t2.(Ref)
		if !ok {
			return &MismatchError{t1, t2}
		}
		return Unify(a.Inner, b.Inner)

	default:
		return &MismatchError{t1, t2}
	}
}

// unifyRecords unifies fields common to both sides; between two closed
// records, extra fields on either side are ignored (width subtyping). If
// either side is Open, any field the other side has but this side lacks
// is learned by mutating the open side's Fields map in place (spec.md
// §4.4.1 rule 8, §4.4.4's RecordAccess note on open records acquiring
// fields from later unifications). A field an open side demands that a
// closed side lacks is a mismatch.
func unifyRecords(a, b *Record) error {
	for name, at := range a.Fields {
		if bt, ok := b.Fields[name]; ok {
			if err := Unify(at, bt); err != nil {
				return err
			}
		} else if b.Open {
			b.Fields[name] = at
		} else if a.Open {
			return &MismatchError{a, b}
		}
	}
	for name, bt := range b.Fields {
		if _, ok := a.Fields[name]; !ok {
			if a.Open {
				a.Fields[name] = bt
			} else if b.Open {
				return &MismatchError{a, b}
			}
		}
	}
	return nil
}

// bindVar implements rules 2/3: occurs-check, level-update of every
// variable reachable in t, then forward v to t.
func bindVar(v *Var, t Type) error {
	if occurs(v, t) {
		return &OccursError{Var: v, In: t}
	}
	lowerLevels(t, v.Level)
	v.Instance = t
	return nil
}

func occurs(v *Var, t Type) bool {
	switch n := Prune(t).(type) {
	case *Var:
		return n == v
	case App:
		for _, a := range n.Args {
			if occurs(v, a) {
				return true
			}
		}
		return false
	case Fun:
		return occurs(v, n.Param) || occurs(v, n.Result)
	case *Record:
		for _, ft := range n.Fields {
			if occurs(v, ft) {
				return true
			}
		}
		return false
	case Variant:
		for _, a := range n.Args {
			if occurs(v, a) {
				return true
			}
		}
		return false
	case Tuple:
		for _, e := range n.Elements {
			if occurs(v, e) {
				return true
			}
		}
		return false
	case Ref:
		return occurs(v, n.Inner)
	case Union:
		for _, a := range n.Alts {
			if occurs(v, a) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// lowerLevels pushes every Var reachable in t down to min(level, v.Level)
// (spec.md §4.4.1 rule 2's "level-update"): once v (at v.Level) is bound
// to t, every variable inside t must not outlive v's scope, or
// generalization could wrongly quantify a variable still reachable from
// an enclosing, already-generalized binding.
func lowerLevels(t Type, level int) {
	switch n := Prune(t).(type) {
	case *Var:
		if n.Level > level {
			n.Level = level
		}
	case App:
		for _, a := range n.Args {
			lowerLevels(a, level)
		}
	case Fun:
		lowerLevels(n.Param, level)
		lowerLevels(n.Result, level)
	case *Record:
		for _, ft := range n.Fields {
			lowerLevels(ft, level)
		}
	case Variant:
		for _, a := range n.Args {
			lowerLevels(a, level)
		}
	case Tuple:
		for _, e := range n.Elements {
			lowerLevels(e, level)
		}
	case Ref:
		lowerLevels(n.Inner, level)
	case Union:
		for _, a := range n.Alts {
			lowerLevels(a, level)
		}
	}
}
