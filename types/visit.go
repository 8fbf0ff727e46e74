package types

import (
	"github.com/cottand/subst/util"
)

type ControlFlow uint8

const (
	Continue ControlFlow = iota
	Break
)

// Visitable is implemented by every term of the grammar.
// The traversal itself lives in Visit; terms only list their children.
type Visitable interface {
	// walk pushes the children of the term onto w, in order, together with
	// the binder depth they sit at
	walk(w *walker, outer DebruijnIndex)
}

// Visitor inspects a term without rewriting it
type Visitor interface {
	Interner() Interner
	// VisitFreeVar receives the free variables of the visited term, shifted
	// out to outer like for FallibleFolder
	VisitFreeVar(bv BoundVar, outer DebruijnIndex) ControlFlow
}

// TyVisitor is a Visitor that also wants to see every type, before its
// children are visited
type TyVisitor interface {
	Visitor
	VisitTy(t Ty, outer DebruijnIndex) ControlFlow
}

type frame struct {
	node    Visitable
	outer   DebruijnIndex
	// bound is set for frames that report a variable rather than a node
	bound   BoundVar
	isBound bool
}

type walker struct {
	in      Interner
	stack   util.Stack[frame]
	pending []frame
}

func (w *walker) push(node Visitable, outer DebruijnIndex) {
	w.pending = append(w.pending, frame{node: node, outer: outer})
}

func (w *walker) boundVar(bv BoundVar, outer DebruijnIndex) {
	w.pending = append(w.pending, frame{bound: bv, outer: outer, isBound: true})
}

// flush moves the children collected by the last walk onto the stack in
// reverse, so that they are popped left to right
func (w *walker) flush() {
	for next := range util.Reverse(w.pending) {
		w.stack.Push(next)
	}
	w.pending = w.pending[:0]
}

// Visit walks value depth-first, left to right, starting at outer binders,
// and stops as soon as v returns Break.
//
// The traversal runs over an explicit work stack, so arbitrarily deep terms
// do not grow the goroutine stack.
func Visit(v Visitor, value Visitable, outer DebruijnIndex) ControlFlow {
	w := &walker{in: v.Interner()}
	tyVisitor, _ := v.(TyVisitor)
	w.push(value, outer)
	w.flush()
	for {
		next, ok := w.stack.Pop()
		if !ok {
			return Continue
		}
		if next.isBound {
			free, ok := next.bound.ShiftedOutTo(next.outer)
			if ok && v.VisitFreeVar(free, next.outer) == Break {
				return Break
			}
			continue
		}
		if t, isTy := next.node.(Ty); isTy && tyVisitor != nil {
			if tyVisitor.VisitTy(t, next.outer) == Break {
				return Break
			}
		}
		next.node.walk(w, next.outer)
		w.flush()
	}
}
