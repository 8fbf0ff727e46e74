package types

type Const interface {
	GenericArgLike
	Visitable
	TryFoldWith(f FallibleFolder, outer DebruijnIndex) (Const, error)
	Debug(in Interner) string
	isConst()
}

var (
	_ Const = BoundConst{}
	_ Const = ConcreteConst{}
)

// BoundConst is a reference to a const parameter of type Ty
type BoundConst struct {
	Ty  Ty
	Var BoundVar
}

// ConcreteConst is an evaluated constant, kept in its rendered form
type ConcreteConst struct {
	Ty    Ty
	Value string
}

func (BoundConst) isConst()    {}
func (ConcreteConst) isConst() {}

func (c BoundConst) ToGenericArg() GenericArg    { return ConstArg(c) }
func (c ConcreteConst) ToGenericArg() GenericArg { return ConstArg(c) }

func (c BoundConst) TryFoldWith(f FallibleFolder, outer DebruijnIndex) (Const, error) {
	ty, err := foldConstTy(f, c.Ty, outer)
	if err != nil {
		return nil, err
	}
	free, ok := c.Var.ShiftedOutTo(outer)
	if !ok {
		return BoundConst{Ty: ty, Var: c.Var}, nil
	}
	return f.TryFoldFreeVarConst(ty, free, outer)
}

func (c ConcreteConst) TryFoldWith(f FallibleFolder, outer DebruijnIndex) (Const, error) {
	ty, err := foldConstTy(f, c.Ty, outer)
	if err != nil {
		return nil, err
	}
	return ConcreteConst{Ty: ty, Value: c.Value}, nil
}

func foldConstTy(f FallibleFolder, ty Ty, outer DebruijnIndex) (Ty, error) {
	if ty == nil {
		return nil, nil
	}
	return ty.TryFoldWith(f, outer)
}

func (c BoundConst) walk(w *walker, outer DebruijnIndex) {
	if c.Ty != nil {
		w.push(c.Ty, outer)
	}
	w.boundVar(c.Var, outer)
}

func (c ConcreteConst) walk(w *walker, outer DebruijnIndex) {
	if c.Ty != nil {
		w.push(c.Ty, outer)
	}
}

func (c BoundConst) Debug(Interner) string    { return c.Var.String() }
func (c ConcreteConst) Debug(Interner) string { return c.Value }
