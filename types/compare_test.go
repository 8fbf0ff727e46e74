package types_test

import (
	"testing"

	"github.com/cottand/subst/intern"
	"github.com/cottand/subst/types"
	"github.com/stretchr/testify/assert"
)

func TestCompareTy(t *testing.T) {
	in := newTable()
	ordered := []types.Ty{
		bound(0, 0),
		bound(0, 1),
		bound(1, 0),
		boolTy,
		i32,
		adt(in, "Vec", i32),
		adt(in, "Vec", u8),
		types.Ref{Lifetime: static, Ty: i32},
		types.Ref{Lifetime: types.NamedLifetime{Name: "a"}, Ty: i32},
		types.Ref{Mutable: true, Lifetime: static, Ty: i32},
		fn(in, 0, i32),
		fn(in, 1, i32),
		types.Projection{Trait: "Iterator", Assoc: "Item", Args: subst(in, i32)},
		types.InferTy{ID: 0},
		types.InferTy{ID: 1},
	}
	for i, a := range ordered {
		for j, b := range ordered {
			expected := 0
			switch {
			case i < j:
				expected = -1
			case i > j:
				expected = 1
			}
			assert.Equal(t, expected, types.CompareTy(in, a, b), "%s vs %s", a.Debug(in), b.Debug(in))
		}
	}
}

func TestHashIsStructural(t *testing.T) {
	table := newTable()
	arena := intern.NewArena("test")

	build := func(in types.Interner) types.Ty {
		return fn(in, 1, types.Ref{Lifetime: boundLt(0, 0), Ty: adt(in, "Vec", bound(1, 0))}, adt(in, "Option", i32))
	}
	// arena handles differ from table handles, but the hashes do not
	assert.Equal(t, types.HashTy(table, build(table)), types.HashTy(arena, build(arena)))
	assert.Equal(t,
		types.HashGenericArg(table, types.TyArg(build(table))),
		types.HashGenericArg(arena, types.TyArg(build(arena))))

	assert.NotEqual(t, types.HashTy(table, adt(table, "Vec", i32)), types.HashTy(table, adt(table, "Vec", u8)))
	assert.NotEqual(t, types.HashTy(table, bound(0, 1)), types.HashTy(table, bound(1, 0)))
}

func TestGenericArgEqual(t *testing.T) {
	in := newTable()
	a := types.TyArg(adt(in, "Vec", i32))
	assert.True(t, a.Equal(in, types.TyArg(adt(in, "Vec", i32))))
	assert.False(t, a.Equal(in, types.LifetimeArg(static)))
	assert.Equal(t, -1, types.CompareGenericArg(in, a, types.LifetimeArg(static)), "types sort before lifetimes")
}
