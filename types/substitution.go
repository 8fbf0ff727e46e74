package types

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"github.com/cottand/subst/internal/log"
	"github.com/cottand/subst/util"
)

var logger = log.DefaultLogger.With("section", "types")

// Substitution assigns a GenericArg to each parameter of a generic
// declaration: entry i instantiates parameter i. It is a handle into an
// Interner, so it is cheap to copy and is never modified in place.
//
// The zero Substitution is the empty one.
type Substitution struct {
	id ArgsID
}

var (
	_ Term[Substitution] = Substitution{}
	_ fmt.Stringer       = Substitution{}
)

func Empty() Substitution { return Substitution{} }

func From1(in Interner, arg GenericArgLike) Substitution {
	return FromSlice(in, arg.ToGenericArg())
}

func FromSlice(in Interner, args ...GenericArg) Substitution {
	if len(args) == 0 {
		return Empty()
	}
	return Substitution{id: in.InternArgs(args)}
}

// FromIter builds a Substitution from args, in order
func FromIter[A GenericArgLike](in Interner, args iter.Seq[A]) Substitution {
	var collected []GenericArg
	for arg := range args {
		collected = append(collected, arg.ToGenericArg())
	}
	return FromSlice(in, collected...)
}

// FromFallible builds a Substitution from args, in order. It stops at the
// first error, which it returns; nothing is interned in that case.
func FromFallible[A GenericArgLike](in Interner, args iter.Seq2[A, error]) (Substitution, error) {
	var collected []GenericArg
	for arg, err := range args {
		if err != nil {
			return Substitution{}, err
		}
		collected = append(collected, arg.ToGenericArg())
	}
	return FromSlice(in, collected...), nil
}

// IdentitySubstitution maps each slot of kinds to the variable bound at that
// slot by the innermost binder
func IdentitySubstitution(in Interner, kinds []VariableKind) Substitution {
	args := make([]GenericArg, len(kinds))
	for i, kind := range kinds {
		args[i] = kind.ToBoundVariable(NewBoundVar(Innermost, i))
	}
	return FromSlice(in, args...)
}

// ID is the interned handle of s
func (s Substitution) ID() ArgsID { return s.id }

func (s Substitution) AsSlice(in Interner) []GenericArg {
	if s.id == EmptyArgs {
		return nil
	}
	return in.ArgsData(s.id)
}

// At returns the entry at position i. i must be smaller than s.Len(in).
func (s Substitution) At(in Interner, i int) GenericArg { return s.AsSlice(in)[i] }

func (s Substitution) Len(in Interner) int { return len(s.AsSlice(in)) }

func (s Substitution) IsEmpty() bool { return s.id == EmptyArgs }

func (s Substitution) Iter(in Interner) iter.Seq2[int, GenericArg] {
	return func(yield func(int, GenericArg) bool) {
		for i, arg := range s.AsSlice(in) {
			if !yield(i, arg) {
				return
			}
		}
	}
}

// IsIdentity reports whether every entry i is the variable ^0.i of the
// matching kind, in which case applying s changes nothing.
func (s Substitution) IsIdentity(in Interner) bool {
	for i, arg := range s.AsSlice(in) {
		want := NewBoundVar(Innermost, i)
		var got BoundVar
		switch arg.kind {
		case KindType:
			bt, ok := arg.ty.(BoundTy)
			if !ok {
				return false
			}
			got = bt.Var
		case KindLifetime:
			bl, ok := arg.lifetime.(BoundLifetime)
			if !ok {
				return false
			}
			got = bl.Var
		case KindConst:
			bc, ok := arg.constant.(BoundConst)
			if !ok {
				return false
			}
			got = bc.Var
		}
		if got != want {
			return false
		}
	}
	return true
}

// TypeParameters yields the Type entries of s in positional order
func (s Substitution) TypeParameters(in Interner) iter.Seq[Ty] {
	return util.FilterMapIter(s.AsSlice(in), GenericArg.Ty)
}

func (s Substitution) TryFoldWith(f FallibleFolder, outer DebruijnIndex) (Substitution, error) {
	if s.IsEmpty() {
		return s, nil
	}
	in := f.Interner()
	folded, changed, err := foldArgs(f, s.AsSlice(in), outer)
	if err != nil {
		return Substitution{}, err
	}
	if !changed {
		return s, nil
	}
	return FromSlice(in, folded...), nil
}

func (s Substitution) walk(w *walker, outer DebruijnIndex) {
	for _, arg := range s.AsSlice(w.in) {
		w.push(arg, outer)
	}
}

func (s Substitution) Equal(in Interner, other Substitution) bool {
	return s.Compare(in, other) == 0
}

func (s Substitution) Compare(in Interner, other Substitution) int {
	if s.id == other.id {
		return 0
	}
	return in.CompareArgs(s.id, other.id)
}

func (s Substitution) Hash(in Interner) uint64 { return in.HashArgs(s.id) }

// Debug renders s as [?0 := A, ?1 := B]
func (s Substitution) Debug(in Interner) string {
	sb := &strings.Builder{}
	sb.WriteString("[")
	for i, arg := range s.AsSlice(in) {
		if i != 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(sb, "?%d := %s", i, arg.Debug(in))
	}
	sb.WriteString("]")
	return sb.String()
}

// RenderAngleBrackets renders s as <A, B>, or as the empty string when s is empty
func (s Substitution) RenderAngleBrackets(in Interner) string {
	return angleBrackets(in, s.AsSlice(in))
}

func angleBrackets(in Interner, args []GenericArg) string {
	if len(args) == 0 {
		return ""
	}
	sb := &strings.Builder{}
	sb.WriteString("<")
	for i, arg := range args {
		if i != 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.Debug(in))
	}
	sb.WriteString(">")
	return sb.String()
}

// String does not have access to the Interner, so it only shows the handle
func (s Substitution) String() string { return fmt.Sprintf("Substitution#%d", s.id) }

// Apply substitutes s into value: every variable bound at the point value
// sits in (Debruijn 0 from the outside of value) is replaced by the entry of
// s at its position, shifted in by however many binders the traversal has
// entered inside value. Variables bound inside value, and variables that
// refer to binders further out, are left as they are.
//
// Entries are looked up positionally, so s must be at least as long as the
// parameter list value refers to; a missing entry panics.
func Apply[T Term[T]](in Interner, s Substitution, value T) T {
	if s.IsIdentity(in) || !HasFreeVars(in, value) {
		return value
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		logger.Debug("applying substitution", "subst", s.Debug(in), "value", value.Debug(in))
	}
	return Fold[T](&substFolder{in: in, args: s.AsSlice(in)}, value, Innermost)
}
