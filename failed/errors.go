// Package failed holds the errors produced while lowering solver output
// into generic arguments
package failed

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
)

// DebugErrorPrinting makes errors created from then on include the frame
// that created them when printed
var DebugErrorPrinting = false

type ErrCode int

const (
	None ErrCode = iota
	UnknownNode
	AmbiguousNode
	MalformedBoundVar
	UnknownBinderKind
	KindMismatch
	ArityMismatch
	MissingField
	UnboundVar
)

// Position is a line and column in a fixture, starting at 1.
// The zero Position means unknown.
type Position struct {
	Line, Column int
}

func (p Position) Pos() Position { return p }

func (p Position) String() string {
	if p.Line == 0 {
		return "?"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Positioner interface {
	Pos() Position
}

type Error interface {
	error
	Code() ErrCode
	Positioner

	withStack([]byte) Error
	getStack() []byte
}

func FormatWithCode(e Error) string {
	if DebugErrorPrinting && e.getStack() != nil {
		stack := strings.Split(string(e.getStack()), "\n")
		frame := ""
		if len(stack) > 6 {
			frame = strings.TrimSpace(stack[6]) + ":"
		}
		return fmt.Sprintf("%s(E%03d) %s: %s", frame, e.Code(), e.Pos(), e.Error())
	}
	return fmt.Sprintf("(E%03d) %s: %s", e.Code(), e.Pos(), e.Error())
}

func New[E Error](err E) Error {
	if !DebugErrorPrinting {
		return err
	}
	return err.withStack(debug.Stack())
}

func LogValue(e Error) slog.Value {
	return slog.GroupValue(
		slog.Int("code", int(e.Code())),
		slog.String("at", e.Pos().String()),
		slog.String("msg", e.Error()),
	)
}

type NewUnknownNode struct {
	Position
	Keys  []string
	stack []byte
}

func (e NewUnknownNode) Error() string {
	if len(e.Keys) == 0 {
		return "empty node"
	}
	return fmt.Sprintf("unknown node with keys %s", strings.Join(e.Keys, ", "))
}
func (e NewUnknownNode) Code() ErrCode    { return UnknownNode }
func (e NewUnknownNode) getStack() []byte { return e.stack }
func (e NewUnknownNode) withStack(stack []byte) Error {
	e.stack = stack
	return e
}

type NewAmbiguousNode struct {
	Position
	Keys  []string
	stack []byte
}

func (e NewAmbiguousNode) Error() string {
	return fmt.Sprintf("node sets more than one of %s", strings.Join(e.Keys, ", "))
}
func (e NewAmbiguousNode) Code() ErrCode    { return AmbiguousNode }
func (e NewAmbiguousNode) getStack() []byte { return e.stack }
func (e NewAmbiguousNode) withStack(stack []byte) Error {
	e.stack = stack
	return e
}

type NewMalformedBoundVar struct {
	Position
	Text  string
	stack []byte
}

func (e NewMalformedBoundVar) Error() string {
	return fmt.Sprintf("bound variable '%s' is not of the form ^debruijn.index", e.Text)
}
func (e NewMalformedBoundVar) Code() ErrCode    { return MalformedBoundVar }
func (e NewMalformedBoundVar) getStack() []byte { return e.stack }
func (e NewMalformedBoundVar) withStack(stack []byte) Error {
	e.stack = stack
	return e
}

type NewUnknownBinderKind struct {
	Position
	Kind  string
	stack []byte
}

func (e NewUnknownBinderKind) Error() string {
	return fmt.Sprintf("unknown binder kind '%s' (expected type, lifetime or const <type>)", e.Kind)
}
func (e NewUnknownBinderKind) Code() ErrCode    { return UnknownBinderKind }
func (e NewUnknownBinderKind) getStack() []byte { return e.stack }
func (e NewUnknownBinderKind) withStack(stack []byte) Error {
	e.stack = stack
	return e
}

type NewKindMismatch struct {
	Position
	Index    int
	Expected string
	Found    string
	stack    []byte
}

func (e NewKindMismatch) Error() string {
	return fmt.Sprintf("argument %d is a %s, but parameter %d is a %s", e.Index, e.Found, e.Index, e.Expected)
}
func (e NewKindMismatch) Code() ErrCode    { return KindMismatch }
func (e NewKindMismatch) getStack() []byte { return e.stack }
func (e NewKindMismatch) withStack(stack []byte) Error {
	e.stack = stack
	return e
}

type NewArityMismatch struct {
	Position
	Params int
	Args   int
	stack  []byte
}

func (e NewArityMismatch) Error() string {
	return fmt.Sprintf("binder has %d parameters but the substitution has %d arguments", e.Params, e.Args)
}
func (e NewArityMismatch) Code() ErrCode    { return ArityMismatch }
func (e NewArityMismatch) getStack() []byte { return e.stack }
func (e NewArityMismatch) withStack(stack []byte) Error {
	e.stack = stack
	return e
}

type NewMissingField struct {
	Position
	Node  string
	Field string
	stack []byte
}

func (e NewMissingField) Error() string {
	return fmt.Sprintf("%s node is missing '%s'", e.Node, e.Field)
}
func (e NewMissingField) Code() ErrCode    { return MissingField }
func (e NewMissingField) getStack() []byte { return e.stack }
func (e NewMissingField) withStack(stack []byte) Error {
	e.stack = stack
	return e
}

// NewVarKindMismatch is a variable of the value used as a different kind
// than the binder parameter it refers to
type NewVarKindMismatch struct {
	Position
	Var      string
	Index    int
	Expected string
	Found    string
	stack    []byte
}

func (e NewVarKindMismatch) Error() string {
	return fmt.Sprintf("%s is used as a %s, but parameter %d is a %s", e.Var, e.Found, e.Index, e.Expected)
}
func (e NewVarKindMismatch) Code() ErrCode    { return KindMismatch }
func (e NewVarKindMismatch) getStack() []byte { return e.stack }
func (e NewVarKindMismatch) withStack(stack []byte) Error {
	e.stack = stack
	return e
}

type NewUnboundVar struct {
	Position
	Var    string
	Params int
	stack  []byte
}

func (e NewUnboundVar) Error() string {
	return fmt.Sprintf("%s refers to a parameter the binder does not have (it has %d)", e.Var, e.Params)
}
func (e NewUnboundVar) Code() ErrCode    { return UnboundVar }
func (e NewUnboundVar) getStack() []byte { return e.stack }
func (e NewUnboundVar) withStack(stack []byte) Error {
	e.stack = stack
	return e
}
