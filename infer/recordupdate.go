package infer

import (
	"github.com/vibefun-lang/vibefun/core"
	"github.com/vibefun-lang/vibefun/diag"
	"github.com/vibefun-lang/vibefun/types"
)

// inferRecordUpdate implements spec.md §4.4.4's RecordUpdate rule,
// generalised to core.RecordUpdate's Bases list (DESIGN.md "merged-spread
// RecordUpdate handling", Open Question #1): each base is unified against
// the accumulated record type one at a time, left to right, then each
// field override is checked against that field's type in the
// accumulated record (which must already contain it — an override can
// refine a field's type but not invent a field the bases never had).
func (ic *inferCtx) inferRecordUpdate(n *core.RecordUpdate) types.Type {
	acc := &types.Record{Fields: map[string]types.Type{}, Open: true}
	for _, base := range n.Bases {
		bt := ic.infer(base)
		ic.unifyAt(bt, acc, base.Span(), diag.CodeTypeMismatch)
		if br, ok := types.Prune(bt).(*types.Record); ok {
			for name, ft := range br.Fields {
				if _, exists := acc.Fields[name]; !exists {
					acc.Fields[name] = ft
				}
			}
		}
	}
	for _, f := range n.Fields {
		existing, ok := acc.Fields[f.Name]
		if !ok {
			ic.bag.Add(diag.New(diag.CodeMissingField, n.Sp, "record has no field "+f.Name))
			ic.infer(f.Value)
			continue
		}
		ic.check(f.Value, existing)
	}
	return ic.record(n, acc)
}
