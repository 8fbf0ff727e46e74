package types

import (
	"errors"
	"fmt"
)

// ErrEscapingBoundVar is returned when shifting out a term that refers to
// one of the binders being removed
var ErrEscapingBoundVar = errors.New("bound variable escapes its binder")

// shifter moves every free variable of a term amount binders outward (or
// inward, when amount is negative). Variables bound inside the term are
// never seen, since the traversal only reports free ones.
type shifter struct {
	in     Interner
	amount int
}

var _ FallibleFolder = shifter{}

func (s shifter) Interner() Interner { return s.in }

func (s shifter) shift(bv BoundVar, outer DebruijnIndex) (BoundVar, error) {
	d := int(bv.Debruijn) + s.amount
	if d < 0 {
		return BoundVar{}, fmt.Errorf("shifting %s by %d: %w", bv, s.amount, ErrEscapingBoundVar)
	}
	return NewBoundVar(DebruijnIndex(d), bv.Index).ShiftedInFrom(outer), nil
}

func (s shifter) TryFoldFreeVarTy(bv BoundVar, outer DebruijnIndex) (Ty, error) {
	shifted, err := s.shift(bv, outer)
	if err != nil {
		return nil, err
	}
	return BoundTy{Var: shifted}, nil
}

func (s shifter) TryFoldFreeVarLifetime(bv BoundVar, outer DebruijnIndex) (Lifetime, error) {
	shifted, err := s.shift(bv, outer)
	if err != nil {
		return nil, err
	}
	return BoundLifetime{Var: shifted}, nil
}

func (s shifter) TryFoldFreeVarConst(ty Ty, bv BoundVar, outer DebruijnIndex) (Const, error) {
	shifted, err := s.shift(bv, outer)
	if err != nil {
		return nil, err
	}
	return BoundConst{Ty: ty, Var: shifted}, nil
}

// Shift adds amount to the De Bruijn index of every variable of value that
// is not bound inside value. A negative amount fails with ErrEscapingBoundVar
// if some variable would refer to a binder that no longer exists.
func Shift[T Foldable[T]](in Interner, value T, amount int) (T, error) {
	if amount == 0 {
		return value, nil
	}
	return TryFold[T](shifter{in: in, amount: amount}, value, Innermost)
}

// ShiftIn prepares value to be placed under n more binders
func ShiftIn[T Foldable[T]](in Interner, value T, n DebruijnIndex) T {
	shifted, err := Shift(in, value, int(n))
	if err != nil {
		panic(fmt.Sprintf("shifting in cannot fail: %v", err))
	}
	return shifted
}

// ShiftOut takes value out of its n innermost binders
func ShiftOut[T Foldable[T]](in Interner, value T, n DebruijnIndex) (T, error) {
	return Shift(in, value, -int(n))
}

// substFolder replaces the variables of the innermost binder outside the
// folded term with the entries of args
type substFolder struct {
	in   Interner
	args []GenericArg
	// removeBinder shifts out variables that refer past the substituted
	// binder, for when the binder itself goes away
	removeBinder bool
}

var _ Folder = (*substFolder)(nil)

func (s *substFolder) Interner() Interner { return s.in }

// entry returns the replacement for bv if it belongs to the substituted
// binder, already shifted in to the insertion point
func (s *substFolder) entry(bv BoundVar, outer DebruijnIndex) (GenericArg, bool) {
	index, ok := bv.IndexIfInnermost()
	if !ok {
		return GenericArg{}, false
	}
	if index >= len(s.args) {
		panic(fmt.Sprintf("substitution of length %d has no entry for %s", len(s.args), bv))
	}
	return ShiftIn(s.in, s.args[index], outer), true
}

// passThrough handles variables of binders outside the substituted one
func (s *substFolder) passThrough(bv BoundVar, outer DebruijnIndex) BoundVar {
	if s.removeBinder {
		bv, _ = bv.ShiftedOut()
	}
	return bv.ShiftedInFrom(outer)
}

func (s *substFolder) FoldFreeVarTy(bv BoundVar, outer DebruijnIndex) Ty {
	arg, ok := s.entry(bv, outer)
	if !ok {
		return BoundTy{Var: s.passThrough(bv, outer)}
	}
	ty, ok := arg.Ty()
	if !ok {
		panic(fmt.Sprintf("mismatched kinds in substitution: %s is a %s, expected a type", bv, arg.Kind()))
	}
	return ty
}

func (s *substFolder) FoldFreeVarLifetime(bv BoundVar, outer DebruijnIndex) Lifetime {
	arg, ok := s.entry(bv, outer)
	if !ok {
		return BoundLifetime{Var: s.passThrough(bv, outer)}
	}
	lt, ok := arg.Lifetime()
	if !ok {
		panic(fmt.Sprintf("mismatched kinds in substitution: %s is a %s, expected a lifetime", bv, arg.Kind()))
	}
	return lt
}

func (s *substFolder) FoldFreeVarConst(ty Ty, bv BoundVar, outer DebruijnIndex) Const {
	arg, ok := s.entry(bv, outer)
	if !ok {
		return BoundConst{Ty: ty, Var: s.passThrough(bv, outer)}
	}
	c, ok := arg.Const()
	if !ok {
		panic(fmt.Sprintf("mismatched kinds in substitution: %s is a %s, expected a const", bv, arg.Kind()))
	}
	return c
}
