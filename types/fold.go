package types

import "fmt"

// Foldable is implemented by every term that a folder can rewrite.
// TryFoldWith returns a term of the same shape, where outer is the number
// of binders the traversal has entered so far.
type Foldable[T any] interface {
	TryFoldWith(f FallibleFolder, outer DebruijnIndex) (T, error)
}

// Term is a foldable and visitable piece of the term grammar
type Term[T any] interface {
	Foldable[T]
	Visitable
	Debug(in Interner) string
}

// FallibleFolder rewrites the free variables of a term.
//
// The callbacks receive variables that are free at the point of the
// traversal, already shifted out to outer: a variable with Debruijn 0 refers to the
// innermost binder enclosing the whole folded term. Variables bound inside
// the term never reach the folder. The first error aborts the traversal.
type FallibleFolder interface {
	Interner() Interner
	TryFoldFreeVarTy(bv BoundVar, outer DebruijnIndex) (Ty, error)
	TryFoldFreeVarLifetime(bv BoundVar, outer DebruijnIndex) (Lifetime, error)
	TryFoldFreeVarConst(ty Ty, bv BoundVar, outer DebruijnIndex) (Const, error)
}

// Folder is a FallibleFolder that cannot fail
type Folder interface {
	Interner() Interner
	FoldFreeVarTy(bv BoundVar, outer DebruijnIndex) Ty
	FoldFreeVarLifetime(bv BoundVar, outer DebruijnIndex) Lifetime
	FoldFreeVarConst(ty Ty, bv BoundVar, outer DebruijnIndex) Const
}

// TryFold folds value with f, starting at outer binders
func TryFold[T Foldable[T]](f FallibleFolder, value T, outer DebruijnIndex) (T, error) {
	return value.TryFoldWith(f, outer)
}

// Fold is TryFold for folders that cannot fail
func Fold[T Foldable[T]](f Folder, value T, outer DebruijnIndex) T {
	folded, err := value.TryFoldWith(infallible{f}, outer)
	if err != nil {
		panic(fmt.Sprintf("infallible folder %T failed: %v", f, err))
	}
	return folded
}

// infallible adapts a Folder so that it runs through the fallible traversal,
// so there is a single traversal to maintain
type infallible struct {
	Folder
}

var _ FallibleFolder = infallible{}

func (f infallible) TryFoldFreeVarTy(bv BoundVar, outer DebruijnIndex) (Ty, error) {
	return f.FoldFreeVarTy(bv, outer), nil
}

func (f infallible) TryFoldFreeVarLifetime(bv BoundVar, outer DebruijnIndex) (Lifetime, error) {
	return f.FoldFreeVarLifetime(bv, outer), nil
}

func (f infallible) TryFoldFreeVarConst(ty Ty, bv BoundVar, outer DebruijnIndex) (Const, error) {
	return f.FoldFreeVarConst(ty, bv, outer), nil
}

// foldArgs folds every entry of args, and only allocates a new slice
// once an entry actually changes
func foldArgs(f FallibleFolder, args []GenericArg, outer DebruijnIndex) ([]GenericArg, bool, error) {
	var folded []GenericArg
	for i, arg := range args {
		newArg, err := arg.TryFoldWith(f, outer)
		if err != nil {
			return nil, false, err
		}
		if folded == nil {
			if newArg == arg {
				continue
			}
			folded = make([]GenericArg, len(args))
			copy(folded, args[:i])
		}
		folded[i] = newArg
	}
	if folded == nil {
		return args, false, nil
	}
	return folded, true, nil
}
