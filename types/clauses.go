package types

// TraitRef states that Args[0] implements Trait with the remaining Args as
// the trait's own parameters
type TraitRef struct {
	Trait string
	Args  Substitution
}

var (
	_ Term[TraitRef]    = TraitRef{}
	_ Term[WhereClause] = WhereClause(nil)

	_ WhereClause = Implemented{}
	_ WhereClause = AliasEq{}
	_ WhereClause = LifetimeOutlives{}
)

func (t TraitRef) SelfTy(in Interner) (Ty, bool) {
	if t.Args.IsEmpty() {
		return nil, false
	}
	return t.Args.At(in, 0).Ty()
}

func (t TraitRef) TryFoldWith(f FallibleFolder, outer DebruijnIndex) (TraitRef, error) {
	args, err := t.Args.TryFoldWith(f, outer)
	if err != nil {
		return TraitRef{}, err
	}
	return TraitRef{Trait: t.Trait, Args: args}, nil
}

func (t TraitRef) walk(w *walker, outer DebruijnIndex) { w.push(t.Args, outer) }

// Debug renders t as `Self: Trait<Params>`
func (t TraitRef) Debug(in Interner) string {
	args := t.Args.AsSlice(in)
	if len(args) == 0 {
		return t.Trait
	}
	return args[0].Debug(in) + ": " + t.Trait + angleBrackets(in, args[1:])
}

// WhereClause is a fact or goal of the solver, usually quantified with Binders
type WhereClause interface {
	Visitable
	TryFoldWith(f FallibleFolder, outer DebruijnIndex) (WhereClause, error)
	Debug(in Interner) string
	isWhereClause()
}

type Implemented struct {
	TraitRef TraitRef
}

// AliasEq states that the projection Alias normalizes to Ty
type AliasEq struct {
	Alias Projection
	Ty    Ty
}

// LifetimeOutlives states 'A: 'B
type LifetimeOutlives struct {
	A, B Lifetime
}

func (Implemented) isWhereClause()      {}
func (AliasEq) isWhereClause()          {}
func (LifetimeOutlives) isWhereClause() {}

func (c Implemented) TryFoldWith(f FallibleFolder, outer DebruijnIndex) (WhereClause, error) {
	ref, err := c.TraitRef.TryFoldWith(f, outer)
	if err != nil {
		return nil, err
	}
	return Implemented{TraitRef: ref}, nil
}

func (c AliasEq) TryFoldWith(f FallibleFolder, outer DebruijnIndex) (WhereClause, error) {
	alias, err := c.Alias.TryFoldWith(f, outer)
	if err != nil {
		return nil, err
	}
	ty, err := c.Ty.TryFoldWith(f, outer)
	if err != nil {
		return nil, err
	}
	return AliasEq{Alias: alias.(Projection), Ty: ty}, nil
}

func (c LifetimeOutlives) TryFoldWith(f FallibleFolder, outer DebruijnIndex) (WhereClause, error) {
	a, err := c.A.TryFoldWith(f, outer)
	if err != nil {
		return nil, err
	}
	b, err := c.B.TryFoldWith(f, outer)
	if err != nil {
		return nil, err
	}
	return LifetimeOutlives{A: a, B: b}, nil
}

func (c Implemented) walk(w *walker, outer DebruijnIndex) { w.push(c.TraitRef, outer) }

func (c AliasEq) walk(w *walker, outer DebruijnIndex) {
	w.push(c.Alias, outer)
	w.push(c.Ty, outer)
}

func (c LifetimeOutlives) walk(w *walker, outer DebruijnIndex) {
	w.push(c.A, outer)
	w.push(c.B, outer)
}

func (c Implemented) Debug(in Interner) string { return "Implemented(" + c.TraitRef.Debug(in) + ")" }
func (c AliasEq) Debug(in Interner) string {
	return "AliasEq(" + c.Alias.Debug(in) + " = " + c.Ty.Debug(in) + ")"
}
func (c LifetimeOutlives) Debug(in Interner) string {
	return "Outlives(" + c.A.Debug(in) + ": " + c.B.Debug(in) + ")"
}
