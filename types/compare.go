package types

import (
	"cmp"
	"fmt"
	"slices"
)

// CompareArgs orders sequences of generic arguments lexicographically.
// Interner implementations use it to implement CompareArgs.
func CompareArgs(in Interner, a, b []GenericArg) int {
	return slices.CompareFunc(a, b, func(x, y GenericArg) int {
		return CompareGenericArg(in, x, y)
	})
}

// CompareGenericArg is a total structural order over generic arguments:
// by kind first, then by variant, then by contents
func CompareGenericArg(in Interner, a, b GenericArg) int {
	if c := cmp.Compare(a.kind, b.kind); c != 0 {
		return c
	}
	switch a.kind {
	case KindType:
		return CompareTy(in, a.ty, b.ty)
	case KindLifetime:
		return compareLifetime(a.lifetime, b.lifetime)
	case KindConst:
		return compareConst(in, a.constant, b.constant)
	}
	return 0
}

func tyTag(t Ty) int {
	switch t.(type) {
	case nil:
		return 0
	case BoundTy:
		return 1
	case Scalar:
		return 2
	case Adt:
		return 3
	case Ref:
		return 4
	case FnPtr:
		return 5
	case Projection:
		return 6
	case InferTy:
		return 7
	}
	panic(fmt.Sprintf("unexpected type %T", t))
}

func CompareTy(in Interner, a, b Ty) int {
	if c := cmp.Compare(tyTag(a), tyTag(b)); c != 0 {
		return c
	}
	switch a := a.(type) {
	case BoundTy:
		return compareBoundVar(a.Var, b.(BoundTy).Var)
	case Scalar:
		return cmp.Compare(a.Name, b.(Scalar).Name)
	case Adt:
		b := b.(Adt)
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return a.Args.Compare(in, b.Args)
	case Ref:
		b := b.(Ref)
		if c := compareBool(a.Mutable, b.Mutable); c != 0 {
			return c
		}
		if c := compareLifetime(a.Lifetime, b.Lifetime); c != 0 {
			return c
		}
		return CompareTy(in, a.Ty, b.Ty)
	case FnPtr:
		b := b.(FnPtr)
		if c := cmp.Compare(a.NumBinders, b.NumBinders); c != 0 {
			return c
		}
		return a.Sig.Compare(in, b.Sig)
	case Projection:
		b := b.(Projection)
		if c := cmp.Compare(a.Trait, b.Trait); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Assoc, b.Assoc); c != 0 {
			return c
		}
		return a.Args.Compare(in, b.Args)
	case InferTy:
		return cmp.Compare(a.ID, b.(InferTy).ID)
	}
	// both nil
	return 0
}

func lifetimeTag(l Lifetime) int {
	switch l.(type) {
	case BoundLifetime:
		return 0
	case StaticLifetime:
		return 1
	case NamedLifetime:
		return 2
	}
	panic(fmt.Sprintf("unexpected lifetime %T", l))
}

func compareLifetime(a, b Lifetime) int {
	if c := cmp.Compare(lifetimeTag(a), lifetimeTag(b)); c != 0 {
		return c
	}
	switch a := a.(type) {
	case BoundLifetime:
		return compareBoundVar(a.Var, b.(BoundLifetime).Var)
	case NamedLifetime:
		return cmp.Compare(a.Name, b.(NamedLifetime).Name)
	}
	return 0
}

func compareConst(in Interner, a, b Const) int {
	switch a := a.(type) {
	case BoundConst:
		b, ok := b.(BoundConst)
		if !ok {
			return -1
		}
		if c := compareBoundVar(a.Var, b.Var); c != 0 {
			return c
		}
		return CompareTy(in, a.Ty, b.Ty)
	case ConcreteConst:
		b, ok := b.(ConcreteConst)
		if !ok {
			return 1
		}
		if c := cmp.Compare(a.Value, b.Value); c != 0 {
			return c
		}
		return CompareTy(in, a.Ty, b.Ty)
	}
	panic(fmt.Sprintf("unexpected const %T", a))
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	}
	return -1
}
