package types

import "fmt"

// DebruijnIndex counts binders outward from a bound variable reference:
// 0 is the innermost binder currently open, k the k-th enclosing one.
type DebruijnIndex uint32

const Innermost DebruijnIndex = 0

func (d DebruijnIndex) ShiftedIn() DebruijnIndex { return d + 1 }

// ShiftedInFrom adjusts d for being placed under outer more binders
func (d DebruijnIndex) ShiftedInFrom(outer DebruijnIndex) DebruijnIndex { return d + outer }

func (d DebruijnIndex) ShiftedOut() (DebruijnIndex, bool) { return d.ShiftedOutTo(1) }

// ShiftedOutTo is the inverse of ShiftedInFrom. It fails when d refers to
// one of the outer binders that are being removed.
func (d DebruijnIndex) ShiftedOutTo(outer DebruijnIndex) (DebruijnIndex, bool) {
	if d < outer {
		return 0, false
	}
	return d - outer, true
}

// Within reports whether d is bound by one of the outer innermost binders
func (d DebruijnIndex) Within(outer DebruijnIndex) bool { return d < outer }

// BoundVar identifies a generic parameter by the binder that introduced it
// and its position within that binder.
type BoundVar struct {
	Debruijn DebruijnIndex
	Index    int
}

func NewBoundVar(debruijn DebruijnIndex, index int) BoundVar {
	return BoundVar{Debruijn: debruijn, Index: index}
}

func (bv BoundVar) ShiftedIn() BoundVar {
	return BoundVar{Debruijn: bv.Debruijn.ShiftedIn(), Index: bv.Index}
}

func (bv BoundVar) ShiftedInFrom(outer DebruijnIndex) BoundVar {
	return BoundVar{Debruijn: bv.Debruijn.ShiftedInFrom(outer), Index: bv.Index}
}

func (bv BoundVar) ShiftedOut() (BoundVar, bool) { return bv.ShiftedOutTo(1) }

func (bv BoundVar) ShiftedOutTo(outer DebruijnIndex) (BoundVar, bool) {
	d, ok := bv.Debruijn.ShiftedOutTo(outer)
	if !ok {
		return BoundVar{}, false
	}
	return BoundVar{Debruijn: d, Index: bv.Index}, true
}

// IndexIfInnermost returns the position of bv if it is bound by the innermost binder
func (bv BoundVar) IndexIfInnermost() (int, bool) {
	if bv.Debruijn != Innermost {
		return 0, false
	}
	return bv.Index, true
}

func (bv BoundVar) BoundWithin(outer DebruijnIndex) bool { return bv.Debruijn.Within(outer) }

func (bv BoundVar) String() string {
	return fmt.Sprintf("^%d.%d", bv.Debruijn, bv.Index)
}
