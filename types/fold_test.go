package types_test

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/cottand/subst/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRejected = errors.New("rejected")

// rejectingFolder fails on the free type variable at position reject
type rejectingFolder struct {
	in     types.Interner
	reject int
	seen   []types.BoundVar
}

func (f *rejectingFolder) Interner() types.Interner { return f.in }

func (f *rejectingFolder) TryFoldFreeVarTy(bv types.BoundVar, outer types.DebruijnIndex) (types.Ty, error) {
	f.seen = append(f.seen, bv)
	if bv.Index == f.reject {
		return nil, fmt.Errorf("variable %s: %w", bv, errRejected)
	}
	return types.Scalar{Name: fmt.Sprintf("T%d", bv.Index)}, nil
}

func (f *rejectingFolder) TryFoldFreeVarLifetime(bv types.BoundVar, outer types.DebruijnIndex) (types.Lifetime, error) {
	return types.StaticLifetime{}, nil
}

func (f *rejectingFolder) TryFoldFreeVarConst(ty types.Ty, bv types.BoundVar, outer types.DebruijnIndex) (types.Const, error) {
	return types.ConcreteConst{Ty: ty, Value: "0"}, nil
}

func TestTryFoldStopsAtFirstError(t *testing.T) {
	in := newTable()
	value := adt(in, "Triple", bound(0, 0), bound(0, 1), bound(0, 2))

	f := &rejectingFolder{in: in, reject: 1}
	folded, err := types.TryFold[types.Ty](f, value, types.Innermost)
	assert.ErrorIs(t, err, errRejected)
	assert.Nil(t, folded)
	assert.Equal(t, []types.BoundVar{types.NewBoundVar(0, 0), types.NewBoundVar(0, 1)}, f.seen)

	f = &rejectingFolder{in: in, reject: -1}
	folded, err = types.TryFold[types.Ty](f, value, types.Innermost)
	assert.NoError(t, err)
	assert.Equal(t, "Triple<T0, T1, T2>", folded.Debug(in))
}

func TestTryFoldReportsFreeVarsShiftedOut(t *testing.T) {
	in := newTable()
	// ^0.0 belongs to the fn, ^1.1 is free and reaches the folder as ^0.1
	value := fn(in, 1, bound(0, 0), bound(1, 1))

	f := &rejectingFolder{in: in, reject: -1}
	folded, err := types.TryFold[types.Ty](f, value, types.Innermost)
	assert.NoError(t, err)
	assert.Equal(t, []types.BoundVar{types.NewBoundVar(0, 1)}, f.seen)
	assert.Equal(t, "for<1> fn(^0.0) -> T1", folded.Debug(in))
}

func TestShift(t *testing.T) {
	in := newTable()
	value := adt(in, "Pair", bound(0, 0), fn(in, 1, bound(0, 0), bound(1, 1)))

	shifted, err := types.Shift[types.Ty](in, value, 2)
	assert.NoError(t, err)
	assert.Equal(t, "Pair<^2.0, for<1> fn(^0.0) -> ^3.1>", shifted.Debug(in))

	back, err := types.ShiftOut(in, shifted, 2)
	assert.NoError(t, err)
	assert.Zero(t, types.CompareTy(in, value, back))

	_, err = types.ShiftOut(in, shifted, 3)
	assert.ErrorIs(t, err, types.ErrEscapingBoundVar)

	assert.Equal(t, "^1.0", types.ShiftIn[types.Ty](in, bound(0, 0), 1).Debug(in))

	same, err := types.Shift[types.Ty](in, value, 0)
	assert.NoError(t, err)
	assert.Equal(t, types.Ty(value), same)
}

func TestShiftConstAndLifetime(t *testing.T) {
	in := newTable()
	arg := types.ConstArg(types.BoundConst{Ty: u8, Var: types.NewBoundVar(0, 3)})
	shifted := types.ShiftIn(in, arg, 1)
	c, ok := shifted.Const()
	assert.True(t, ok)
	assert.Equal(t, types.Const(types.BoundConst{Ty: u8, Var: types.NewBoundVar(1, 3)}), c)

	lt, err := types.ShiftOut[types.Lifetime](in, boundLt(2, 0), 1)
	assert.NoError(t, err)
	assert.Equal(t, "'^1.0", lt.Debug(in))
}

// innerVars lists, in traversal order, the type variables bound inside the
// visited term together with the depth they were found at
type innerVars struct {
	in    types.Interner
	found []string
}

func (v *innerVars) Interner() types.Interner { return v.in }

func (v *innerVars) VisitFreeVar(types.BoundVar, types.DebruijnIndex) types.ControlFlow {
	return types.Continue
}

func (v *innerVars) VisitTy(t types.Ty, outer types.DebruijnIndex) types.ControlFlow {
	if b, ok := t.(types.BoundTy); ok && b.Var.BoundWithin(outer) {
		v.found = append(v.found, fmt.Sprintf("%s@%d", b.Var, outer))
	}
	return types.Continue
}

func collectInnerVars(in types.Interner, value types.Visitable) []string {
	v := &innerVars{in: in}
	types.Visit(v, value, types.Innermost)
	return v.found
}

// genTy builds a random type at depth binders below the point where the
// substitution is applied. Variables may refer to the binders in between,
// to the substituted binder, or to the binder just outside it.
func genTy(r *rand.Rand, in types.Interner, depth types.DebruijnIndex, size int) types.Ty {
	if size <= 0 || r.IntN(4) == 0 {
		if r.IntN(4) == 0 {
			return u8
		}
		return bound(types.DebruijnIndex(r.IntN(int(depth)+2)), r.IntN(3))
	}
	switch r.IntN(3) {
	case 0:
		return adt(in, "Pair", genTy(r, in, depth, size-1), genTy(r, in, depth, size-1))
	case 1:
		return types.Ref{Lifetime: static, Ty: genTy(r, in, depth, size-1)}
	}
	return fn(in, 1, genTy(r, in, depth+1, size-1), genTy(r, in, depth+1, size-1))
}

func withoutInnermost(vars []types.BoundVar) []types.BoundVar {
	return slices.DeleteFunc(vars, func(bv types.BoundVar) bool { return bv.Debruijn == types.Innermost })
}

func checkCaptureAvoidance[T types.Term[T]](t *testing.T, in types.Interner, s types.Substitution, value T) {
	t.Helper()
	result := types.Apply(in, s, value)
	assert.Equal(t, collectInnerVars(in, value), collectInnerVars(in, result), value.Debug(in))
	assert.ElementsMatch(t, withoutInnermost(types.SortedFreeVars(in, value)), types.SortedFreeVars(in, result), value.Debug(in))
}

func TestApplyIsCaptureAvoiding(t *testing.T) {
	in := newTable()
	r := rand.New(rand.NewPCG(1, 2))
	s := subst(in, i32, adt(in, "Vec", u8), boolTy)
	one := []types.VariableKind{types.TypeVariable()}

	for range 200 {
		switch r.IntN(3) {
		case 0:
			checkCaptureAvoidance(t, in, s, genTy(r, in, 0, 6))
		case 1:
			checkCaptureAvoidance(t, in, s, types.NewBinders(one, genTy(r, in, 1, 6)))
		default:
			inner := types.NewBinders(one, genTy(r, in, 2, 6))
			checkCaptureAvoidance(t, in, s, types.NewBinders(one, inner))
		}
	}
}

func TestVisitOrderAndEarlyExit(t *testing.T) {
	in := newTable()
	value := adt(in, "Pair", bound(0, 1), types.Ref{Lifetime: boundLt(0, 0), Ty: bound(0, 2)})

	var order []types.BoundVar
	v := &recordingVisitor{in: in, onVar: func(bv types.BoundVar) types.ControlFlow {
		order = append(order, bv)
		return types.Continue
	}}
	assert.Equal(t, types.Continue, types.Visit(v, value, types.Innermost))
	assert.Equal(t, []types.BoundVar{types.NewBoundVar(0, 1), types.NewBoundVar(0, 0), types.NewBoundVar(0, 2)}, order)

	calls := 0
	v = &recordingVisitor{in: in, onVar: func(types.BoundVar) types.ControlFlow {
		calls++
		return types.Break
	}}
	assert.Equal(t, types.Break, types.Visit(v, value, types.Innermost))
	assert.Equal(t, 1, calls)
}

type recordingVisitor struct {
	in    types.Interner
	onVar func(types.BoundVar) types.ControlFlow
}

func (v *recordingVisitor) Interner() types.Interner { return v.in }

func (v *recordingVisitor) VisitFreeVar(bv types.BoundVar, _ types.DebruijnIndex) types.ControlFlow {
	return v.onVar(bv)
}

func TestVisitDeepTerm(t *testing.T) {
	in := newTable()
	var deep types.Ty = bound(0, 0)
	for range 100_000 {
		deep = types.Ref{Lifetime: static, Ty: deep}
	}
	assert.True(t, types.HasFreeVars(in, deep))
	assert.Len(t, types.SortedFreeVars(in, deep), 1)
}

func TestFoldDeepTerm(t *testing.T) {
	in := newTable()
	const depth = 100_000
	var deep types.Ty = bound(0, 0)
	for range depth {
		deep = types.Ref{Lifetime: static, Ty: deep}
	}

	// unwrap returns the innermost type of a chain of Refs and the chain length
	unwrap := func(t types.Ty) (types.Ty, int) {
		n := 0
		for {
			ref, ok := t.(types.Ref)
			if !ok {
				return t, n
			}
			t, n = ref.Ty, n+1
		}
	}

	applied := types.Apply[types.Ty](in, subst(in, i32), deep)
	leaf, n := unwrap(applied)
	assert.Equal(t, depth, n)
	assert.Equal(t, types.Ty(i32), leaf)
	assert.False(t, types.HasFreeVars(in, applied))

	shifted, err := types.Shift[types.Ty](in, deep, 1)
	require.NoError(t, err)
	leaf, n = unwrap(shifted)
	assert.Equal(t, depth, n)
	assert.Equal(t, types.Ty(bound(1, 0)), leaf)
}

func TestFreeVarQueries(t *testing.T) {
	in := newTable()
	value := adt(in, "Quad", bound(1, 0), bound(0, 2), fn(in, 1, bound(0, 0), bound(1, 1)), bound(0, 2))

	assert.Equal(t,
		[]types.BoundVar{types.NewBoundVar(0, 1), types.NewBoundVar(0, 2), types.NewBoundVar(1, 0)},
		types.SortedFreeVars(in, value))

	free := types.FreeVars(in, value)
	assert.Equal(t, 3, free.Size())
	assert.True(t, free.Contains(types.NewBoundVar(0, 1)))
	assert.False(t, free.Contains(types.NewBoundVar(0, 0)), "bound by the fn")

	assert.True(t, types.HasFreeVars(in, value))
	assert.True(t, types.HasVarsAtOrAbove(in, value, 1))
	assert.False(t, types.HasVarsAtOrAbove(in, value, 2))
	assert.False(t, types.HasFreeVars(in, fn(in, 1, bound(0, 0), i32)))
	assert.Empty(t, types.SortedFreeVars(in, i32))

	assert.False(t, types.HasInferenceVars(in, value))
	assert.True(t, types.HasInferenceVars(in, adt(in, "Vec", fn(in, 0, types.InferTy{ID: 3}))))
}
