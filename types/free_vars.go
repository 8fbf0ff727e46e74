package types

import (
	"cmp"
	"slices"

	"github.com/hashicorp/go-set/v3"
	sortedset "github.com/xtgo/set"
)

// funcVisitor adapts a callback into a Visitor
type funcVisitor struct {
	in    Interner
	onVar func(bv BoundVar, outer DebruijnIndex) ControlFlow
	onTy  func(t Ty, outer DebruijnIndex) ControlFlow
}

func (v funcVisitor) Interner() Interner { return v.in }

func (v funcVisitor) VisitFreeVar(bv BoundVar, outer DebruijnIndex) ControlFlow {
	if v.onVar == nil {
		return Continue
	}
	return v.onVar(bv, outer)
}

func (v funcVisitor) VisitTy(t Ty, outer DebruijnIndex) ControlFlow {
	if v.onTy == nil {
		return Continue
	}
	return v.onTy(t, outer)
}

// HasFreeVars reports whether value refers to any binder outside of itself
func HasFreeVars(in Interner, value Visitable) bool {
	return HasVarsAtOrAbove(in, value, Innermost)
}

// HasVarsAtOrAbove reports whether value refers to a binder at depth k or
// more, counted from outside value
func HasVarsAtOrAbove(in Interner, value Visitable, k DebruijnIndex) bool {
	v := funcVisitor{in: in, onVar: func(bv BoundVar, _ DebruijnIndex) ControlFlow {
		if bv.Debruijn >= k {
			return Break
		}
		return Continue
	}}
	return Visit(v, value, Innermost) == Break
}

// HasInferenceVars reports whether value mentions an InferTy
func HasInferenceVars(in Interner, value Visitable) bool {
	v := funcVisitor{in: in, onTy: func(t Ty, _ DebruijnIndex) ControlFlow {
		if _, ok := t.(InferTy); ok {
			return Break
		}
		return Continue
	}}
	return Visit(v, value, Innermost) == Break
}

// FreeVars collects the free variables of value, relative to the outside of value
func FreeVars(in Interner, value Visitable) *set.Set[BoundVar] {
	found := set.New[BoundVar](0)
	v := funcVisitor{in: in, onVar: func(bv BoundVar, _ DebruijnIndex) ControlFlow {
		found.Insert(bv)
		return Continue
	}}
	Visit(v, value, Innermost)
	return found
}

// SortedFreeVars is FreeVars as a slice ordered by binder, then position
func SortedFreeVars(in Interner, value Visitable) []BoundVar {
	var found boundVars
	v := funcVisitor{in: in, onVar: func(bv BoundVar, _ DebruijnIndex) ControlFlow {
		found = append(found, bv)
		return Continue
	}}
	Visit(v, value, Innermost)
	slices.SortFunc(found, compareBoundVar)
	return found[:sortedset.Uniq(found)]
}

func compareBoundVar(a, b BoundVar) int {
	if c := cmp.Compare(a.Debruijn, b.Debruijn); c != 0 {
		return c
	}
	return cmp.Compare(a.Index, b.Index)
}

// boundVars implements sort.Interface for xtgo/set
type boundVars []BoundVar

func (b boundVars) Len() int           { return len(b) }
func (b boundVars) Less(i, j int) bool { return compareBoundVar(b[i], b[j]) < 0 }
func (b boundVars) Swap(i, j int)      { b[i], b[j] = b[j], b[i] }
