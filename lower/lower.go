package lower

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/cottand/subst/failed"
	"github.com/cottand/subst/internal/log"
	"github.com/cottand/subst/types"
)

var logger = log.DefaultLogger.With("section", "lower")

// Lowered is a Fixture turned into terms of a single Interner
type Lowered struct {
	Kinds []types.VariableKind
	// exactly one of Clause and Ty is set
	Clause types.WhereClause
	Ty     types.Ty
	Subst  types.Substitution
}

type lowerer struct {
	in types.Interner
}

// Lower converts f into terms interned in in. It does not check that the
// substitution fits the binders; see Lowered.Check.
func (f *Fixture) Lower(in types.Interner) (*Lowered, error) {
	l := lowerer{in: in}
	kinds, err := l.binders(f.Binders, f.Value.pos)
	if err != nil {
		return nil, err
	}
	lowered := &Lowered{Kinds: kinds}
	if f.Value.isClause() {
		lowered.Clause, err = l.clause(f.Value)
	} else {
		lowered.Ty, err = l.ty(f.Value)
	}
	if err != nil {
		return nil, err
	}
	lowered.Subst, err = l.substitution(f.Subst)
	if err != nil {
		return nil, err
	}
	return lowered, nil
}

// Check reports arity or kind mismatches between the binders and either the
// substitution or the variables the value uses, which Substitute would
// otherwise panic on
func (l *Lowered) Check(in types.Interner, f *Fixture) error {
	if err := l.checkValue(in, f.Value.pos); err != nil {
		return err
	}
	args := l.Subst.AsSlice(in)
	if len(args) != len(l.Kinds) {
		return failed.New(failed.NewArityMismatch{Position: f.Value.pos, Params: len(l.Kinds), Args: len(args)})
	}
	for i, kind := range l.Kinds {
		if !kind.Matches(args[i]) {
			return failed.New(failed.NewKindMismatch{
				Position: f.Subst[i].pos,
				Index:    i,
				Expected: kind.Param.String(),
				Found:    args[i].Kind().String(),
			})
		}
	}
	return nil
}

func (l *Lowered) checkValue(in types.Interner, pos failed.Position) error {
	c := varChecker{in: in, kinds: l.Kinds, pos: pos}
	var err error
	if l.Clause != nil {
		_, err = types.TryFold(c, l.Clause, types.Innermost)
	} else {
		_, err = types.TryFold(c, l.Ty, types.Innermost)
	}
	return err
}

// varChecker folds a value without changing it, and fails on the first
// variable of the fixture's binder that is out of range or of the wrong kind
type varChecker struct {
	in    types.Interner
	kinds []types.VariableKind
	pos   failed.Position
}

var _ types.FallibleFolder = varChecker{}

func (c varChecker) Interner() types.Interner { return c.in }

func (c varChecker) check(bv types.BoundVar, used types.ParamKind) error {
	index, ok := bv.IndexIfInnermost()
	if !ok {
		return nil
	}
	if index >= len(c.kinds) {
		return failed.New(failed.NewUnboundVar{Position: c.pos, Var: bv.String(), Params: len(c.kinds)})
	}
	if expected := c.kinds[index].Param; expected != used {
		return failed.New(failed.NewVarKindMismatch{
			Position: c.pos,
			Var:      bv.String(),
			Index:    index,
			Expected: expected.String(),
			Found:    used.String(),
		})
	}
	return nil
}

func (c varChecker) TryFoldFreeVarTy(bv types.BoundVar, outer types.DebruijnIndex) (types.Ty, error) {
	return types.BoundTy{Var: bv.ShiftedInFrom(outer)}, c.check(bv, types.KindType)
}

func (c varChecker) TryFoldFreeVarLifetime(bv types.BoundVar, outer types.DebruijnIndex) (types.Lifetime, error) {
	return types.BoundLifetime{Var: bv.ShiftedInFrom(outer)}, c.check(bv, types.KindLifetime)
}

func (c varChecker) TryFoldFreeVarConst(ty types.Ty, bv types.BoundVar, outer types.DebruijnIndex) (types.Const, error) {
	return types.BoundConst{Ty: ty, Var: bv.ShiftedInFrom(outer)}, c.check(bv, types.KindConst)
}

// Render shows the quantified value, the substitution and the instantiated value
func (l *Lowered) Render(in types.Interner) (value, subst, result string) {
	if l.Clause != nil {
		b := types.NewBinders(l.Kinds, l.Clause)
		return b.Debug(in), l.Subst.Debug(in), b.Substitute(in, l.Subst).Debug(in)
	}
	b := types.NewBinders(l.Kinds, l.Ty)
	return b.Debug(in), l.Subst.Debug(in), b.Substitute(in, l.Subst).Debug(in)
}

// Value returns the lowered value as a visitable term
func (l *Lowered) Value() types.Visitable {
	if l.Clause != nil {
		return l.Clause
	}
	return l.Ty
}

func (l lowerer) binders(kinds []string, pos failed.Position) ([]types.VariableKind, error) {
	lowered := make([]types.VariableKind, 0, len(kinds))
	for _, kind := range kinds {
		switch fields := strings.Fields(kind); {
		case kind == "type":
			lowered = append(lowered, types.TypeVariable())
		case kind == "lifetime":
			lowered = append(lowered, types.LifetimeVariable())
		case len(fields) == 2 && fields[0] == "const":
			lowered = append(lowered, types.ConstVariable(types.Scalar{Name: fields[1]}))
		default:
			return nil, failed.New(failed.NewUnknownBinderKind{Position: pos, Kind: kind})
		}
	}
	return lowered, nil
}

func (n Node) isClause() bool {
	return n.Implemented != nil || n.AliasEq != nil || n.Outlives != nil
}

// variant returns the key that selects what n is
func (n Node) variant() (string, error) {
	var set []string
	check := func(key string, isSet bool) {
		if isSet {
			set = append(set, key)
		}
	}
	check("ty", n.Ty != "")
	check("adt", n.Adt != "")
	check("bound", n.Bound != "")
	check("ref", n.Ref != nil)
	check("lifetime", n.Lifetime != "" && n.Ref == nil)
	check("fn", n.Fn != nil)
	check("projection", n.Projection != nil)
	check("infer", n.Infer != nil)
	check("const", n.Const != "")
	check("implemented", n.Implemented != nil)
	check("alias_eq", n.AliasEq != nil)
	check("outlives", n.Outlives != nil)
	switch len(set) {
	case 0:
		return "", failed.New(failed.NewUnknownNode{Position: n.pos})
	case 1:
		return set[0], nil
	}
	return "", failed.New(failed.NewAmbiguousNode{Position: n.pos, Keys: set})
}

func (l lowerer) arg(n Node) (types.GenericArg, error) {
	variant, err := n.variant()
	if err != nil {
		return types.GenericArg{}, err
	}
	switch variant {
	case "lifetime":
		lt, err := l.lifetime(n.Lifetime, n.pos)
		if err != nil {
			return types.GenericArg{}, err
		}
		return types.LifetimeArg(lt), nil
	case "const":
		c, err := l.constant(n)
		if err != nil {
			return types.GenericArg{}, err
		}
		return types.ConstArg(c), nil
	}
	t, err := l.ty(n)
	if err != nil {
		return types.GenericArg{}, err
	}
	return types.TyArg(t), nil
}

// args lowers nodes lazily, so that the first failure stops the lowering
func (l lowerer) args(nodes []Node) iter.Seq2[types.GenericArg, error] {
	return func(yield func(types.GenericArg, error) bool) {
		for _, n := range nodes {
			if !yield(l.arg(n)) {
				return
			}
		}
	}
}

func (l lowerer) substitution(nodes []Node) (types.Substitution, error) {
	return types.FromFallible(l.in, l.args(nodes))
}

func (l lowerer) ty(n Node) (types.Ty, error) {
	variant, err := n.variant()
	if err != nil {
		return nil, err
	}
	switch variant {
	case "ty":
		return types.Scalar{Name: n.Ty}, nil
	case "adt":
		args, err := l.substitution(n.Args)
		if err != nil {
			return nil, err
		}
		return types.Adt{Name: n.Adt, Args: args}, nil
	case "bound":
		bv, err := boundVar(n.Bound, n.pos)
		if err != nil {
			return nil, err
		}
		return types.BoundTy{Var: bv}, nil
	case "ref":
		if n.Lifetime == "" {
			return nil, failed.New(failed.NewMissingField{Position: n.pos, Node: "ref", Field: "lifetime"})
		}
		lt, err := l.lifetime(n.Lifetime, n.pos)
		if err != nil {
			return nil, err
		}
		pointee, err := l.ty(*n.Ref)
		if err != nil {
			return nil, err
		}
		return types.Ref{Mutable: n.Mut, Lifetime: lt, Ty: pointee}, nil
	case "fn":
		if n.Fn.Ret == nil {
			return nil, failed.New(failed.NewMissingField{Position: n.pos, Node: "fn", Field: "ret"})
		}
		sig, err := l.substitution(append(slices.Clone(n.Fn.Params), *n.Fn.Ret))
		if err != nil {
			return nil, err
		}
		return types.FnPtr{NumBinders: n.Fn.Binders, Sig: sig}, nil
	case "projection":
		return l.projection(*n.Projection, n.pos)
	case "infer":
		return types.InferTy{ID: *n.Infer}, nil
	}
	return nil, failed.New(failed.NewUnknownNode{Position: n.pos, Keys: []string{variant + " (expected a type)"}})
}

func (l lowerer) projection(p ProjectionNode, pos failed.Position) (types.Projection, error) {
	if p.Trait == "" || p.Assoc == "" {
		return types.Projection{}, failed.New(failed.NewMissingField{Position: pos, Node: "projection", Field: "trait and assoc"})
	}
	args, err := l.substitution(p.Args)
	if err != nil {
		return types.Projection{}, err
	}
	return types.Projection{Trait: p.Trait, Assoc: p.Assoc, Args: args}, nil
}

func (l lowerer) lifetime(text string, pos failed.Position) (types.Lifetime, error) {
	text = strings.TrimPrefix(text, "'")
	switch {
	case text == "static":
		return types.StaticLifetime{}, nil
	case strings.HasPrefix(text, "^"):
		bv, err := boundVar(text, pos)
		if err != nil {
			return nil, err
		}
		return types.BoundLifetime{Var: bv}, nil
	}
	return types.NamedLifetime{Name: text}, nil
}

func (l lowerer) constant(n Node) (types.Const, error) {
	var ty types.Ty
	if n.Of != "" {
		ty = types.Scalar{Name: n.Of}
	}
	if strings.HasPrefix(n.Const, "^") {
		bv, err := boundVar(n.Const, n.pos)
		if err != nil {
			return nil, err
		}
		return types.BoundConst{Ty: ty, Var: bv}, nil
	}
	return types.ConcreteConst{Ty: ty, Value: n.Const}, nil
}

func (l lowerer) clause(n Node) (types.WhereClause, error) {
	variant, err := n.variant()
	if err != nil {
		return nil, err
	}
	switch variant {
	case "implemented":
		args, err := l.substitution(n.Implemented.Args)
		if err != nil {
			return nil, err
		}
		return types.Implemented{TraitRef: types.TraitRef{Trait: n.Implemented.Trait, Args: args}}, nil
	case "alias_eq":
		alias, err := l.projection(n.AliasEq.Projection, n.pos)
		if err != nil {
			return nil, err
		}
		ty, err := l.ty(n.AliasEq.Ty)
		if err != nil {
			return nil, err
		}
		return types.AliasEq{Alias: alias, Ty: ty}, nil
	case "outlives":
		if len(n.Outlives) != 2 {
			return nil, failed.New(failed.NewMissingField{Position: n.pos, Node: "outlives", Field: "two lifetimes"})
		}
		a, err := l.lifetime(n.Outlives[0], n.pos)
		if err != nil {
			return nil, err
		}
		b, err := l.lifetime(n.Outlives[1], n.pos)
		if err != nil {
			return nil, err
		}
		return types.LifetimeOutlives{A: a, B: b}, nil
	}
	return nil, failed.New(failed.NewUnknownNode{Position: n.pos, Keys: []string{variant + " (expected a where clause)"}})
}

func boundVar(text string, pos failed.Position) (types.BoundVar, error) {
	var debruijn uint32
	var index int
	var rest string
	n, _ := fmt.Sscanf(text, "^%d.%d%s", &debruijn, &index, &rest)
	if n != 2 || index < 0 {
		logger.Debug("malformed bound variable", "text", text, "at", pos)
		return types.BoundVar{}, failed.New(failed.NewMalformedBoundVar{Position: pos, Text: text})
	}
	return types.NewBoundVar(types.DebruijnIndex(debruijn), index), nil
}
