package types_test

import (
	"testing"

	"github.com/cottand/subst/types"
	"github.com/stretchr/testify/assert"
)

var typeAndLifetime = []types.VariableKind{types.TypeVariable(), types.LifetimeVariable()}

func TestBindersSubstitute(t *testing.T) {
	in := newTable()
	b := types.NewBinders(typeAndLifetime, types.Ty(types.Ref{Lifetime: boundLt(0, 1), Ty: adt(in, "Vec", bound(0, 0))}))

	assert.Equal(t, "for<type, lifetime> &'^0.1 Vec<^0.0>", b.Debug(in))
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, "&'static Vec<i32>", b.Substitute(in, subst(in, i32, static)).Debug(in))
}

func TestBindersSubstituteRemovesTheBinder(t *testing.T) {
	in := newTable()
	tests := []struct {
		name     string
		value    types.Ty
		args     types.Substitution
		expected string
	}{
		{
			name:     "outer variables move in by one binder",
			value:    adt(in, "Pair", bound(0, 0), bound(1, 2)),
			args:     subst(in, i32),
			expected: "Pair<i32, ^0.2>",
		},
		{
			name:     "inside a fn binder",
			value:    fn(in, 1, bound(1, 0), bound(2, 1), bound(0, 0)),
			args:     subst(in, adt(in, "Vec", bound(0, 4))),
			expected: "for<1> fn(Vec<^1.4>, ^1.1) -> ^0.0",
		},
		{
			name:     "closed value",
			value:    adt(in, "Vec", str),
			args:     subst(in, i32),
			expected: "Vec<String>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := types.NewBinders([]types.VariableKind{types.TypeVariable()}, tt.value)
			assert.Equal(t, tt.expected, b.Substitute(in, tt.args).Debug(in))
		})
	}
}

func TestBindersSubstituteChecksArgs(t *testing.T) {
	in := newTable()
	b := types.NewBinders(typeAndLifetime, types.Ty(bound(0, 0)))

	assert.Panics(t, func() { b.Substitute(in, subst(in, i32)) }, "too few")
	assert.Panics(t, func() { b.Substitute(in, subst(in, i32, static, str)) }, "too many")
	assert.Panics(t, func() { b.Substitute(in, subst(in, static, i32)) }, "swapped kinds")
	assert.NotPanics(t, func() { b.SubstituteArgs(in, subst(in, i32, static).AsSlice(in)) })
}

func TestNestedBinders(t *testing.T) {
	in := newTable()
	// for<type> for<type> Pair<^0.0, ^1.0>
	inner := types.NewBinders([]types.VariableKind{types.TypeVariable()}, types.Ty(adt(in, "Pair", bound(0, 0), bound(1, 0))))
	outer := types.NewBinders([]types.VariableKind{types.TypeVariable()}, inner)

	assert.Equal(t, "for<type> for<type> Pair<^0.0, ^1.0>", outer.Debug(in))
	assert.False(t, types.HasFreeVars(in, outer))
	assert.True(t, types.HasFreeVars(in, inner))

	instantiated := outer.Substitute(in, subst(in, i32))
	assert.Equal(t, "for<type> Pair<^0.0, i32>", instantiated.Debug(in))
	assert.Equal(t, "Pair<u8, i32>", instantiated.Substitute(in, subst(in, u8)).Debug(in))
}

func TestEmptyBinders(t *testing.T) {
	in := newTable()
	b := types.EmptyBinders[types.Ty](in, adt(in, "Vec", i32))
	assert.Zero(t, b.Len())
	assert.Equal(t, "Vec<i32>", b.Substitute(in, types.Empty()).Debug(in))

	assert.Panics(t, func() { types.EmptyBinders[types.Ty](in, bound(0, 0)) })
}

func TestMapBinders(t *testing.T) {
	in := newTable()
	b := types.NewBinders(typeAndLifetime, types.Ty(bound(0, 0)))
	mapped := types.MapBinders(b, func(ty types.Ty) types.Ty {
		return types.Ref{Lifetime: boundLt(0, 1), Ty: ty}
	})

	assert.Equal(t, b.Kinds(), mapped.Kinds())
	assert.Equal(t, "&'^0.1 ^0.0", mapped.Skip().Debug(in))
	assert.True(t, mapped.IdentitySubstitution(in).IsIdentity(in))
}
