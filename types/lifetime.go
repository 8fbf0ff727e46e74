package types

type Lifetime interface {
	GenericArgLike
	Visitable
	TryFoldWith(f FallibleFolder, outer DebruijnIndex) (Lifetime, error)
	Debug(in Interner) string
	isLifetime()
}

var (
	_ Lifetime = BoundLifetime{}
	_ Lifetime = StaticLifetime{}
	_ Lifetime = NamedLifetime{}
)

type BoundLifetime struct {
	Var BoundVar
}

type StaticLifetime struct{}

// NamedLifetime is a free lifetime coming from the environment, like 'a
type NamedLifetime struct {
	Name string
}

func (BoundLifetime) isLifetime()  {}
func (StaticLifetime) isLifetime() {}
func (NamedLifetime) isLifetime()  {}

func (l BoundLifetime) ToGenericArg() GenericArg  { return LifetimeArg(l) }
func (l StaticLifetime) ToGenericArg() GenericArg { return LifetimeArg(l) }
func (l NamedLifetime) ToGenericArg() GenericArg  { return LifetimeArg(l) }

func (l BoundLifetime) TryFoldWith(f FallibleFolder, outer DebruijnIndex) (Lifetime, error) {
	free, ok := l.Var.ShiftedOutTo(outer)
	if !ok {
		return l, nil
	}
	return f.TryFoldFreeVarLifetime(free, outer)
}

func (l StaticLifetime) TryFoldWith(FallibleFolder, DebruijnIndex) (Lifetime, error) { return l, nil }
func (l NamedLifetime) TryFoldWith(FallibleFolder, DebruijnIndex) (Lifetime, error)  { return l, nil }

func (l BoundLifetime) walk(w *walker, outer DebruijnIndex) { w.boundVar(l.Var, outer) }
func (l StaticLifetime) walk(*walker, DebruijnIndex)        {}
func (l NamedLifetime) walk(*walker, DebruijnIndex)         {}

func (l BoundLifetime) Debug(Interner) string  { return "'" + l.Var.String() }
func (l StaticLifetime) Debug(Interner) string { return "'static" }
func (l NamedLifetime) Debug(Interner) string  { return "'" + l.Name }
