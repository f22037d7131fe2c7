package exhaustive

import "github.com/vibefun-lang/vibefun/types"

// specialize keeps only the rows whose first pattern could match ctor
// (a wildcard row matches any constructor), replacing that first column
// with ctor's arity-many sub-columns (Maranget's S(c, P) operation).
func specialize(matrix [][]pat, ctorName string, arity int) [][]pat {
	var out [][]pat
	for _, r := range matrix {
		head := r[0]
		switch {
		case head.wildcard:
			out = append(out, append(wildcards(arity), r[1:]...))
		case head.ctor == ctorName && len(head.args) == arity:
			row := append(append([]pat{}, head.args...), r[1:]...)
			out = append(out, row)
		}
	}
	return out
}

// defaultMatrix keeps only the wildcard rows, dropping the first column
// entirely (Maranget's D(P) operation).
func defaultMatrix(matrix [][]pat) [][]pat {
	var out [][]pat
	for _, r := range matrix {
		if r[0].wildcard {
			out = append(out, r[1:])
		}
	}
	return out
}

// headCtors collects the distinct constructor names appearing as a row's
// first pattern (wildcard rows contribute nothing).
func headCtors(matrix [][]pat) map[string]bool {
	out := make(map[string]bool)
	for _, r := range matrix {
		if !r[0].wildcard {
			out[r[0].ctor] = true
		}
	}
	return out
}

func sigArgTypes(colType types.Type, ctorName string, env *types.Env) []types.Type {
	sig, _ := signature(colType, env)
	for _, c := range sig {
		if c.name == ctorName {
			return c.argTypes
		}
	}
	return nil
}

// usefulness decides whether query row q is useful with respect to
// matrix (i.e. there is a value matched by q that no row of matrix
// matches), following Maranget's U_rec algorithm. colTypes holds the
// scrutinee type for each remaining column, used to look up a column's
// constructor signature when q's head is a wildcard. On success it also
// returns a witness vector: one concrete value (per remaining column)
// that q matches but matrix does not.
func usefulness(matrix [][]pat, colTypes []types.Type, q []pat, env *types.Env) (bool, []pat) {
	if len(q) == 0 {
		if len(matrix) == 0 {
			return true, nil
		}
		return false, nil
	}

	head := q[0]

	if !head.wildcard {
		arity := len(head.args)
		spec := specialize(matrix, head.ctor, arity)
		newQ := append(append([]pat{}, head.args...), q[1:]...)
		argTypes := sigArgTypes(colTypes[0], head.ctor, env)
		if argTypes == nil {
			argTypes = wildcardTypes(arity)
		}
		newColTypes := append(append([]types.Type{}, argTypes...), colTypes[1:]...)

		ok, witness := usefulness(spec, newColTypes, newQ, env)
		if !ok {
			return false, nil
		}
		full := append([]pat{ctorPat(head.ctor, witness[:arity])}, witness[arity:]...)
		return true, full
	}

	sig, complete := signature(colTypes[0], env)
	present := headCtors(matrix)
	allPresent := complete && len(sig) > 0
	for _, c := range sig {
		if !present[c.name] {
			allPresent = false
			break
		}
	}

	if allPresent {
		for _, c := range sig {
			spec := specialize(matrix, c.name, len(c.argTypes))
			newQ := append(wildcards(len(c.argTypes)), q[1:]...)
			newColTypes := append(append([]types.Type{}, c.argTypes...), colTypes[1:]...)
			ok, witness := usefulness(spec, newColTypes, newQ, env)
			if ok {
				full := append([]pat{ctorPat(c.name, witness[:len(c.argTypes)])}, witness[len(c.argTypes):]...)
				return true, full
			}
		}
		return false, nil
	}

	def := defaultMatrix(matrix)
	ok, witness := usefulness(def, colTypes[1:], q[1:], env)
	if !ok {
		return false, nil
	}

	var headWitness pat
	if complete {
		for _, c := range sig {
			if !present[c.name] {
				headWitness = ctorPat(c.name, wildcards(len(c.argTypes)))
				break
			}
		}
	} else {
		headWitness = wildcardPat()
	}
	return true, append([]pat{headWitness}, witness...)
}

func wildcardTypes(n int) []types.Type {
	out := make([]types.Type, n)
	for i := range out {
		out[i] = types.Unit
	}
	return out
}
