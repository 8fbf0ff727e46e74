package types

import "fmt"

// ParamKind is the kind of a generic parameter
type ParamKind uint8

const (
	KindType ParamKind = iota
	KindLifetime
	KindConst
)

func (k ParamKind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindLifetime:
		return "lifetime"
	case KindConst:
		return "const"
	}
	return fmt.Sprintf("ParamKind(%d)", uint8(k))
}

// GenericArg is the concrete instantiation of one generic parameter:
// exactly one of a Ty, a Lifetime or a Const, selected by Kind.
//
// GenericArg values are comparable with == as long as the Substitution
// handles nested in them come from the same deduplicating Interner.
// Use Equal otherwise.
type GenericArg struct {
	kind     ParamKind
	ty       Ty
	lifetime Lifetime
	constant Const
}

// GenericArgLike is anything that can be coerced into a GenericArg,
// which is every Ty, Lifetime and Const as well as GenericArg itself.
type GenericArgLike interface {
	ToGenericArg() GenericArg
}

var (
	_ GenericArgLike   = GenericArg{}
	_ Term[GenericArg] = GenericArg{}
)

func TyArg(t Ty) GenericArg             { return GenericArg{kind: KindType, ty: t} }
func LifetimeArg(l Lifetime) GenericArg { return GenericArg{kind: KindLifetime, lifetime: l} }
func ConstArg(c Const) GenericArg       { return GenericArg{kind: KindConst, constant: c} }

func (a GenericArg) ToGenericArg() GenericArg { return a }
func (a GenericArg) Kind() ParamKind          { return a.kind }

func (a GenericArg) Ty() (Ty, bool)             { return a.ty, a.kind == KindType }
func (a GenericArg) Lifetime() (Lifetime, bool) { return a.lifetime, a.kind == KindLifetime }
func (a GenericArg) Const() (Const, bool)       { return a.constant, a.kind == KindConst }

func (a GenericArg) TryFoldWith(f FallibleFolder, outer DebruijnIndex) (GenericArg, error) {
	switch a.kind {
	case KindType:
		t, err := a.ty.TryFoldWith(f, outer)
		if err != nil {
			return GenericArg{}, err
		}
		return TyArg(t), nil
	case KindLifetime:
		l, err := a.lifetime.TryFoldWith(f, outer)
		if err != nil {
			return GenericArg{}, err
		}
		return LifetimeArg(l), nil
	case KindConst:
		c, err := a.constant.TryFoldWith(f, outer)
		if err != nil {
			return GenericArg{}, err
		}
		return ConstArg(c), nil
	}
	panic("unexpected generic arg kind " + a.kind.String())
}

func (a GenericArg) walk(w *walker, outer DebruijnIndex) {
	switch a.kind {
	case KindType:
		w.push(a.ty, outer)
	case KindLifetime:
		w.push(a.lifetime, outer)
	case KindConst:
		w.push(a.constant, outer)
	}
}

func (a GenericArg) Debug(in Interner) string {
	switch a.kind {
	case KindType:
		return a.ty.Debug(in)
	case KindLifetime:
		return a.lifetime.Debug(in)
	case KindConst:
		return a.constant.Debug(in)
	}
	return "<invalid generic arg>"
}

// Equal compares a and other structurally, going through in for nested substitutions
func (a GenericArg) Equal(in Interner, other GenericArg) bool {
	return CompareGenericArg(in, a, other) == 0
}

// VariableKind is the kind of a single slot of a binder
type VariableKind struct {
	Param ParamKind
	// ConstTy is the type of a KindConst slot, nil otherwise
	ConstTy Ty
}

func TypeVariable() VariableKind       { return VariableKind{Param: KindType} }
func LifetimeVariable() VariableKind   { return VariableKind{Param: KindLifetime} }
func ConstVariable(ty Ty) VariableKind { return VariableKind{Param: KindConst, ConstTy: ty} }

func (k VariableKind) Matches(a GenericArg) bool { return k.Param == a.kind }

// ToBoundVariable builds the generic argument that refers to bv as a variable of kind k
func (k VariableKind) ToBoundVariable(bv BoundVar) GenericArg {
	switch k.Param {
	case KindType:
		return TyArg(BoundTy{Var: bv})
	case KindLifetime:
		return LifetimeArg(BoundLifetime{Var: bv})
	case KindConst:
		return ConstArg(BoundConst{Ty: k.ConstTy, Var: bv})
	}
	panic("unexpected variable kind " + k.Param.String())
}

func (k VariableKind) Debug(in Interner) string {
	if k.Param == KindConst && k.ConstTy != nil {
		return "const " + k.ConstTy.Debug(in)
	}
	return k.Param.String()
}
