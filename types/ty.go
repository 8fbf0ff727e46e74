package types

import (
	"strconv"
	"strings"
)

// Ty is a type term. The grammar is closed: the variants are the types of
// this file, and traversals switch over them exhaustively.
type Ty interface {
	GenericArgLike
	Visitable
	TryFoldWith(f FallibleFolder, outer DebruijnIndex) (Ty, error)
	Debug(in Interner) string
	isTy()
}

var (
	_ Ty = BoundTy{}
	_ Ty = Scalar{}
	_ Ty = Adt{}
	_ Ty = Ref{}
	_ Ty = FnPtr{}
	_ Ty = Projection{}
	_ Ty = InferTy{}

	_ Term[Ty] = Ty(nil)
)

// BoundTy is a reference to a type parameter of an enclosing binder
type BoundTy struct {
	Var BoundVar
}

// Scalar is a concrete type without parameters, like i32 or bool
type Scalar struct {
	Name string
}

// Adt is a named type constructor applied to its generic arguments, like Vec<T>
type Adt struct {
	Name string
	Args Substitution
}

// Ref is a reference &'a T or &'a mut T
type Ref struct {
	Mutable  bool
	Lifetime Lifetime
	Ty       Ty
}

// FnPtr is a function pointer type quantified over its own NumBinders
// parameters (for<'a> fn(&'a T) -> &'a T). Sig holds the parameter types
// followed by the return type, under that binder.
type FnPtr struct {
	NumBinders int
	Sig        Substitution
}

// Projection is an associated type of a trait applied to Args, where Args[0]
// is the self type: <T as Iterator>::Item
type Projection struct {
	Trait string
	Assoc string
	Args  Substitution
}

// InferTy is an inference variable of the solver. Folding leaves it untouched.
type InferTy struct {
	ID uint32
}

func (BoundTy) isTy()    {}
func (Scalar) isTy()     {}
func (Adt) isTy()        {}
func (Ref) isTy()        {}
func (FnPtr) isTy()      {}
func (Projection) isTy() {}
func (InferTy) isTy()    {}

func (t BoundTy) ToGenericArg() GenericArg    { return TyArg(t) }
func (t Scalar) ToGenericArg() GenericArg     { return TyArg(t) }
func (t Adt) ToGenericArg() GenericArg        { return TyArg(t) }
func (t Ref) ToGenericArg() GenericArg        { return TyArg(t) }
func (t FnPtr) ToGenericArg() GenericArg      { return TyArg(t) }
func (t Projection) ToGenericArg() GenericArg { return TyArg(t) }
func (t InferTy) ToGenericArg() GenericArg    { return TyArg(t) }

func (t BoundTy) TryFoldWith(f FallibleFolder, outer DebruijnIndex) (Ty, error) {
	free, ok := t.Var.ShiftedOutTo(outer)
	if !ok {
		// bound inside the term being folded
		return t, nil
	}
	return f.TryFoldFreeVarTy(free, outer)
}

func (t Scalar) TryFoldWith(FallibleFolder, DebruijnIndex) (Ty, error)  { return t, nil }
func (t InferTy) TryFoldWith(FallibleFolder, DebruijnIndex) (Ty, error) { return t, nil }

func (t Adt) TryFoldWith(f FallibleFolder, outer DebruijnIndex) (Ty, error) {
	args, err := t.Args.TryFoldWith(f, outer)
	if err != nil {
		return nil, err
	}
	return Adt{Name: t.Name, Args: args}, nil
}

func (t Ref) TryFoldWith(f FallibleFolder, outer DebruijnIndex) (Ty, error) {
	lt, err := t.Lifetime.TryFoldWith(f, outer)
	if err != nil {
		return nil, err
	}
	inner, err := t.Ty.TryFoldWith(f, outer)
	if err != nil {
		return nil, err
	}
	return Ref{Mutable: t.Mutable, Lifetime: lt, Ty: inner}, nil
}

func (t FnPtr) TryFoldWith(f FallibleFolder, outer DebruijnIndex) (Ty, error) {
	sig, err := t.Sig.TryFoldWith(f, outer.ShiftedIn())
	if err != nil {
		return nil, err
	}
	return FnPtr{NumBinders: t.NumBinders, Sig: sig}, nil
}

func (t Projection) TryFoldWith(f FallibleFolder, outer DebruijnIndex) (Ty, error) {
	args, err := t.Args.TryFoldWith(f, outer)
	if err != nil {
		return nil, err
	}
	return Projection{Trait: t.Trait, Assoc: t.Assoc, Args: args}, nil
}

func (t BoundTy) walk(w *walker, outer DebruijnIndex) { w.boundVar(t.Var, outer) }
func (t Scalar) walk(*walker, DebruijnIndex)          {}
func (t InferTy) walk(*walker, DebruijnIndex)         {}
func (t Adt) walk(w *walker, outer DebruijnIndex)     { w.push(t.Args, outer) }
func (t FnPtr) walk(w *walker, outer DebruijnIndex)   { w.push(t.Sig, outer.ShiftedIn()) }

func (t Projection) walk(w *walker, outer DebruijnIndex) { w.push(t.Args, outer) }

func (t Ref) walk(w *walker, outer DebruijnIndex) {
	w.push(t.Lifetime, outer)
	w.push(t.Ty, outer)
}

func (t BoundTy) Debug(Interner) string { return t.Var.String() }
func (t Scalar) Debug(Interner) string  { return t.Name }
func (t InferTy) Debug(Interner) string { return "?" + strconv.FormatUint(uint64(t.ID), 10) }

func (t Adt) Debug(in Interner) string {
	return t.Name + t.Args.RenderAngleBrackets(in)
}

func (t Ref) Debug(in Interner) string {
	sb := &strings.Builder{}
	sb.WriteString("&")
	sb.WriteString(t.Lifetime.Debug(in))
	sb.WriteString(" ")
	if t.Mutable {
		sb.WriteString("mut ")
	}
	sb.WriteString(t.Ty.Debug(in))
	return sb.String()
}

func (t FnPtr) Debug(in Interner) string {
	sb := &strings.Builder{}
	if t.NumBinders > 0 {
		sb.WriteString("for<")
		sb.WriteString(strconv.Itoa(t.NumBinders))
		sb.WriteString("> ")
	}
	sb.WriteString("fn(")
	sig := t.Sig.AsSlice(in)
	if len(sig) == 0 {
		sb.WriteString(")")
		return sb.String()
	}
	for i, param := range sig[:len(sig)-1] {
		if i != 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(param.Debug(in))
	}
	sb.WriteString(") -> ")
	sb.WriteString(sig[len(sig)-1].Debug(in))
	return sb.String()
}

func (t Projection) Debug(in Interner) string {
	return "(" + t.Trait + "::" + t.Assoc + ")" + t.Args.RenderAngleBrackets(in)
}

// Params returns the parameter types of the signature, in order
func (t FnPtr) Params(in Interner) []GenericArg {
	sig := t.Sig.AsSlice(in)
	if len(sig) == 0 {
		return nil
	}
	return sig[:len(sig)-1]
}

// Return returns the return type of the signature, under the binder of t
func (t FnPtr) Return(in Interner) (Ty, bool) {
	sig := t.Sig.AsSlice(in)
	if len(sig) == 0 {
		return nil, false
	}
	return sig[len(sig)-1].Ty()
}
