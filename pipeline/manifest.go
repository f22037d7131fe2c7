package pipeline

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/vibefun-lang/vibefun/diag"
	"github.com/vibefun-lang/vibefun/infer"
	"github.com/vibefun-lang/vibefun/span"
	"github.com/vibefun-lang/vibefun/types"
)

// ManifestError reports a malformed module-interface lookup (a decoded
// Manifest referencing a wireType shape ApplyManifest cannot reconstruct)
// as a Go error, for callers that propagate errors rather than a diag.Bag.
// Unwrap exposes the underlying diag.Diagnostic so a caller that does
// collect diagnostics can still recover one via errors.As.
type ManifestError struct {
	Diag diag.Diagnostic
}

func (e *ManifestError) Error() string { return e.Diag.Error() }
func (e *ManifestError) Unwrap() error { return e.Diag }

func malformedManifest(format string, args ...any) *ManifestError {
	return &ManifestError{Diag: diag.New(diag.CodeMalformedManifest, span.Span{}, fmt.Sprintf(format, args...))}
}

// Manifest is one file's export surface for the module-boundary interface
// (spec.md §6.4): every exported value's generalized scheme and every
// exported type's constructor, in a form a multi-file driver can persist
// and replay into an importer's environment without re-type-checking the
// file that produced it.
type Manifest struct {
	Values []ManifestValue
	Types  []ManifestType
}

// ManifestValue is one exported binding. Quantified counts how many
// quantified type variables Body references; wireType's "qvar" nodes
// index into that count (0..Quantified-1) rather than carrying the
// producing run's raw Var id, which would be meaningless once decoded
// into a different run's Context.
type ManifestValue struct {
	Name       string
	Quantified int
	Body       wireType
}

// ManifestType is one exported type declaration.
type ManifestType struct {
	Name   string
	Params []string
	Kind   types.TypeDefKind
	Alias  wireType
	Fields map[string]wireType
	Cases  []wireVariantCase
}

type wireVariantCase struct {
	Name       string
	FieldTypes []wireType
}

// wireType is types.Type flattened into a tagged union CBOR can encode
// directly (types.Type is a Go interface; cbor, like encoding/json,
// cannot marshal an interface value without knowing which concrete type
// it holds).
type wireType struct {
	Kind     string
	Name     string
	ID       int64
	Args     []wireType
	Param    *wireType
	Result   *wireType
	Fields   map[string]wireType
	Elements []wireType
	Inner    *wireType
}

func toWire(t types.Type, qvars map[int64]int) wireType {
	switch n := types.Prune(t).(type) {
	case *types.Var:
		idx, ok := qvars[n.ID]
		if !ok {
			idx = len(qvars)
			qvars[n.ID] = idx
		}
		return wireType{Kind: "qvar", ID: int64(idx)}

	case types.Const:
		return wireType{Kind: "const", Name: n.Name}

	case types.App:
		args := make([]wireType, len(n.Args))
		for i, a := range n.Args {
			args[i] = toWire(a, qvars)
		}
		return wireType{Kind: "app", Name: n.Ctor, Args: args}

	case types.Fun:
		p := toWire(n.Param, qvars)
		r := toWire(n.Result, qvars)
		return wireType{Kind: "fun", Param: &p, Result: &r}

	case *types.Record:
		fields := make(map[string]wireType, len(n.Fields))
		for k, v := range n.Fields {
			fields[k] = toWire(v, qvars)
		}
		return wireType{Kind: "record", Fields: fields}

	case types.Variant:
		args := make([]wireType, len(n.Args))
		for i, a := range n.Args {
			args[i] = toWire(a, qvars)
		}
		return wireType{Kind: "variant", Name: n.Name, Args: args}

	case types.Tuple:
		elems := make([]wireType, len(n.Elements))
		for i, e := range n.Elements {
			elems[i] = toWire(e, qvars)
		}
		return wireType{Kind: "tuple", Elements: elems}

	case types.Ref:
		inner := toWire(n.Inner, qvars)
		return wireType{Kind: "ref", Inner: &inner}

	case types.Union:
		alts := make([]wireType, len(n.Alts))
		for i, a := range n.Alts {
			alts[i] = toWire(a, qvars)
		}
		return wireType{Kind: "union", Args: alts}

	default:
		return wireType{Kind: "error"}
	}
}

func fromWire(w wireType, qvars []*types.Var) types.Type {
	switch w.Kind {
	case "qvar":
		return qvars[w.ID]
	case "const":
		return types.Const{Name: w.Name}
	case "app":
		args := make([]types.Type, len(w.Args))
		for i, a := range w.Args {
			args[i] = fromWire(a, qvars)
		}
		return types.App{Ctor: w.Name, Args: args}
	case "fun":
		return types.Fun{Param: fromWire(*w.Param, qvars), Result: fromWire(*w.Result, qvars)}
	case "record":
		fields := make(map[string]types.Type, len(w.Fields))
		for k, v := range w.Fields {
			fields[k] = fromWire(v, qvars)
		}
		return &types.Record{Fields: fields}
	case "variant":
		args := make([]types.Type, len(w.Args))
		for i, a := range w.Args {
			args[i] = fromWire(a, qvars)
		}
		return types.Variant{Name: w.Name, Args: args}
	case "tuple":
		elems := make([]types.Type, len(w.Elements))
		for i, e := range w.Elements {
			elems[i] = fromWire(e, qvars)
		}
		return types.Tuple{Elements: elems}
	case "ref":
		return types.Ref{Inner: fromWire(*w.Inner, qvars)}
	case "union":
		alts := make([]types.Type, len(w.Args))
		for i, a := range w.Args {
			alts[i] = fromWire(a, qvars)
		}
		return types.Union{Alts: alts}
	default:
		return types.Error{}
	}
}

// BuildManifest collects valueNames' schemes and typeNames' constructors
// from env into a Manifest (spec.md §6.4's export surface); names not
// found in env are silently skipped, since an export list naming an
// undeclared binding is already a diagnostic raised elsewhere.
func BuildManifest(env *types.Env, valueNames, typeNames []string) Manifest {
	var m Manifest
	for _, name := range valueNames {
		scheme, ok := env.LookupValue(name)
		if !ok {
			continue
		}
		qvars := make(map[int64]int, len(scheme.Quantified))
		for _, id := range scheme.Quantified {
			if _, seen := qvars[id]; !seen {
				qvars[id] = len(qvars)
			}
		}
		body := toWire(scheme.Body, qvars)
		m.Values = append(m.Values, ManifestValue{Name: name, Quantified: len(qvars), Body: body})
	}

	for _, name := range typeNames {
		ctor, ok := env.LookupType(name)
		if !ok {
			continue
		}
		mt := ManifestType{Name: ctor.Name, Params: ctor.Params, Kind: ctor.Kind}
		switch ctor.Kind {
		case types.TypeDefAlias:
			mt.Alias = toWire(ctor.Alias, map[int64]int{})
		case types.TypeDefRecord:
			mt.Fields = make(map[string]wireType, len(ctor.Fields))
			for k, v := range ctor.Fields {
				mt.Fields[k] = toWire(v, map[int64]int{})
			}
		case types.TypeDefVariant:
			mt.Cases = make([]wireVariantCase, len(ctor.Cases))
			for i, c := range ctor.Cases {
				fts := make([]wireType, len(c.FieldTypes))
				for j, ft := range c.FieldTypes {
					fts[j] = toWire(ft, map[int64]int{})
				}
				mt.Cases[i] = wireVariantCase{Name: c.Name, FieldTypes: fts}
			}
		}
		m.Types = append(m.Types, mt)
	}
	return m
}

// validateWire checks that w and everything reachable from it uses a known
// Kind and carries the fields that Kind requires, and that every "qvar"
// index falls within [0, quantified). fromWire trusts this has already run
// and dereferences Param/Result/Inner unconditionally.
func validateWire(w wireType, quantified int) error {
	switch w.Kind {
	case "qvar":
		if w.ID < 0 || int(w.ID) >= quantified {
			return malformedManifest("qvar index %d out of range [0, %d)", w.ID, quantified)
		}
	case "const":
		// Name alone suffices.
	case "app":
		for _, a := range w.Args {
			if err := validateWire(a, quantified); err != nil {
				return err
			}
		}
	case "fun":
		if w.Param == nil || w.Result == nil {
			return malformedManifest("fun wireType missing param or result")
		}
		if err := validateWire(*w.Param, quantified); err != nil {
			return err
		}
		if err := validateWire(*w.Result, quantified); err != nil {
			return err
		}
	case "record":
		for _, f := range w.Fields {
			if err := validateWire(f, quantified); err != nil {
				return err
			}
		}
	case "variant":
		for _, a := range w.Args {
			if err := validateWire(a, quantified); err != nil {
				return err
			}
		}
	case "tuple":
		for _, e := range w.Elements {
			if err := validateWire(e, quantified); err != nil {
				return err
			}
		}
	case "ref":
		if w.Inner == nil {
			return malformedManifest("ref wireType missing inner")
		}
		if err := validateWire(*w.Inner, quantified); err != nil {
			return err
		}
	case "union":
		for _, a := range w.Args {
			if err := validateWire(a, quantified); err != nil {
				return err
			}
		}
	case "error":
		// the placeholder kind toWire emits for a type it couldn't encode.
	default:
		return malformedManifest("unknown wireType kind %q", w.Kind)
	}
	return nil
}

func validateManifest(m Manifest) error {
	for _, mv := range m.Values {
		if err := validateWire(mv.Body, mv.Quantified); err != nil {
			return fmt.Errorf("value %q: %w", mv.Name, err)
		}
	}
	for _, mt := range m.Types {
		switch mt.Kind {
		case types.TypeDefAlias:
			if err := validateWire(mt.Alias, 0); err != nil {
				return fmt.Errorf("type %q alias: %w", mt.Name, err)
			}
		case types.TypeDefRecord:
			for name, f := range mt.Fields {
				if err := validateWire(f, 0); err != nil {
					return fmt.Errorf("type %q field %q: %w", mt.Name, name, err)
				}
			}
		case types.TypeDefVariant:
			for _, c := range mt.Cases {
				for _, ft := range c.FieldTypes {
					if err := validateWire(ft, 0); err != nil {
						return fmt.Errorf("type %q case %q: %w", mt.Name, c.Name, err)
					}
				}
			}
		}
	}
	return nil
}

// ApplyManifest binds every value and type in m into env, minting fresh
// quantified vars from ctx for each ManifestValue so the imported scheme
// instantiates independently at every use site in the importing file,
// exactly as if it had been declared locally. It returns a *ManifestError
// (unwrappable to a diag.Diagnostic) if m was decoded from data this
// package never produced and contains a wireType shape fromWire cannot
// reconstruct.
func ApplyManifest(env *types.Env, ctx *infer.Context, m Manifest) (*types.Env, error) {
	if err := validateManifest(m); err != nil {
		return nil, err
	}
	for _, mt := range m.Types {
		ctor := &types.TypeCtor{Name: mt.Name, Params: mt.Params, Kind: mt.Kind}
		switch mt.Kind {
		case types.TypeDefAlias:
			ctor.Alias = fromWire(mt.Alias, nil)
		case types.TypeDefRecord:
			ctor.Fields = make(map[string]types.Type, len(mt.Fields))
			for k, v := range mt.Fields {
				ctor.Fields[k] = fromWire(v, nil)
			}
		case types.TypeDefVariant:
			ctor.Cases = make([]types.VariantCase, len(mt.Cases))
			for i, c := range mt.Cases {
				fts := make([]types.Type, len(c.FieldTypes))
				for j, ft := range c.FieldTypes {
					fts[j] = fromWire(ft, nil)
				}
				ctor.Cases[i] = types.VariantCase{Name: c.Name, FieldTypes: fts}
			}
		}
		env = env.WithType(mt.Name, ctor)
	}

	for _, mv := range m.Values {
		qvars := make([]*types.Var, mv.Quantified)
		ids := make([]int64, mv.Quantified)
		for i := range qvars {
			v := ctx.FreshVarAt(0)
			qvars[i] = v
			ids[i] = v.ID
		}
		body := fromWire(mv.Body, qvars)
		env = env.WithValue(mv.Name, types.Scheme{Quantified: ids, Body: body})
	}
	return env, nil
}

// EncodeManifest serializes m as CBOR (spec.md §6.4's domain dependency,
// github.com/fxamacker/cbor/v2): compact, self-describing, and cheap
// enough to decode that a multi-file driver can cache one per source
// file and skip re-type-checking unchanged dependencies.
func EncodeManifest(m Manifest) ([]byte, error) {
	return cbor.Marshal(m)
}

// DecodeManifest is EncodeManifest's inverse.
func DecodeManifest(data []byte) (Manifest, error) {
	var m Manifest
	err := cbor.Unmarshal(data, &m)
	return m, err
}
