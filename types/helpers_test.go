package types_test

import (
	"slices"

	"github.com/cottand/subst/intern"
	"github.com/cottand/subst/types"
)

func newTable() *intern.Table {
	return intern.NewTable(intern.TableOpts{})
}

var (
	i32    = types.Scalar{Name: "i32"}
	u8     = types.Scalar{Name: "u8"}
	boolTy = types.Scalar{Name: "bool"}
	str    = types.Scalar{Name: "String"}
	static = types.StaticLifetime{}
)

func bound(d types.DebruijnIndex, i int) types.BoundTy {
	return types.BoundTy{Var: types.NewBoundVar(d, i)}
}

func boundLt(d types.DebruijnIndex, i int) types.BoundLifetime {
	return types.BoundLifetime{Var: types.NewBoundVar(d, i)}
}

func subst(in types.Interner, args ...types.GenericArgLike) types.Substitution {
	return types.FromIter(in, slices.Values(args))
}

func adt(in types.Interner, name string, args ...types.GenericArgLike) types.Adt {
	return types.Adt{Name: name, Args: subst(in, args...)}
}

// fn builds a function pointer with its own binders, whose last entry is the return type
func fn(in types.Interner, binders int, sig ...types.GenericArgLike) types.FnPtr {
	return types.FnPtr{NumBinders: binders, Sig: subst(in, sig...)}
}

func debug(in types.Interner, t types.Ty) string { return t.Debug(in) }
