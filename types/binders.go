package types

import (
	"fmt"
	"slices"
	"strings"
)

// Binders quantifies value over a list of generic parameters (for<...> value).
// Inside value, the parameters are the variables ^0.i; variables of binders
// further out have their Debruijn index raised by one.
type Binders[T Term[T]] struct {
	kinds []VariableKind
	value T
}

func NewBinders[T Term[T]](kinds []VariableKind, value T) Binders[T] {
	return Binders[T]{kinds: slices.Clone(kinds), value: value}
}

// EmptyBinders wraps value, which must not have free variables, in a binder of no parameters
func EmptyBinders[T Term[T]](in Interner, value T) Binders[T] {
	if HasFreeVars(in, value) {
		panic(fmt.Sprintf("value %s has free variables", value.Debug(in)))
	}
	return Binders[T]{value: value}
}

// MapBinders transforms the bound value, keeping the same parameters
func MapBinders[T Term[T], U Term[U]](b Binders[T], f func(T) U) Binders[U] {
	return Binders[U]{kinds: b.kinds, value: f(b.value)}
}

func (b Binders[T]) Kinds() []VariableKind { return slices.Clone(b.kinds) }
func (b Binders[T]) Len() int              { return len(b.kinds) }

// Skip returns the bound value as is: its parameters become free variables
func (b Binders[T]) Skip() T { return b.value }

func (b Binders[T]) IdentitySubstitution(in Interner) Substitution {
	return IdentitySubstitution(in, b.kinds)
}

// Substitute instantiates the parameters of b with s and removes the binder.
//
// s must have exactly one entry per parameter, of the matching kind;
// anything else is a bug in the caller and panics.
func (b Binders[T]) Substitute(in Interner, s Substitution) T {
	return b.SubstituteArgs(in, s.AsSlice(in))
}

func (b Binders[T]) SubstituteArgs(in Interner, args []GenericArg) T {
	if len(args) != len(b.kinds) {
		logger.Error("substitution arity mismatch", "binders", len(b.kinds), "args", len(args))
		panic(fmt.Sprintf("substituting %d arguments into a binder of %d parameters", len(args), len(b.kinds)))
	}
	for i, kind := range b.kinds {
		if !kind.Matches(args[i]) {
			panic(fmt.Sprintf("argument %d is a %s, but parameter %d is a %s", i, args[i].Kind(), i, kind.Param))
		}
	}
	if len(args) == 0 && !HasFreeVars(in, b.value) {
		return b.value
	}
	return Fold[T](&substFolder{in: in, args: args, removeBinder: true}, b.value, Innermost)
}

func (b Binders[T]) TryFoldWith(f FallibleFolder, outer DebruijnIndex) (Binders[T], error) {
	value, err := b.value.TryFoldWith(f, outer.ShiftedIn())
	if err != nil {
		return Binders[T]{}, err
	}
	return Binders[T]{kinds: b.kinds, value: value}, nil
}

func (b Binders[T]) walk(w *walker, outer DebruijnIndex) {
	w.push(b.value, outer.ShiftedIn())
}

// Debug renders b as for<type, lifetime> value
func (b Binders[T]) Debug(in Interner) string {
	sb := &strings.Builder{}
	sb.WriteString("for<")
	for i, kind := range b.kinds {
		if i != 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(kind.Debug(in))
	}
	sb.WriteString("> ")
	sb.WriteString(b.value.Debug(in))
	return sb.String()
}
