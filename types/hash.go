package types

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// hasher feeds the structure of terms into an xxhash digest.
// Nested substitutions contribute the hash their Interner reports for them.
type hasher struct {
	in  Interner
	d   *xxhash.Digest
	buf [8]byte
}

func newHasher(in Interner) *hasher {
	return &hasher{in: in, d: xxhash.New()}
}

func (h *hasher) writeUint64(v uint64) {
	binary.LittleEndian.PutUint64(h.buf[:], v)
	_, _ = h.d.Write(h.buf[:])
}

func (h *hasher) writeString(s string) {
	h.writeUint64(uint64(len(s)))
	_, _ = h.d.WriteString(s)
}

func (h *hasher) boundVar(bv BoundVar) {
	h.writeUint64(uint64(bv.Debruijn))
	h.writeUint64(uint64(bv.Index))
}

func (h *hasher) subst(s Substitution) {
	h.writeUint64(h.in.HashArgs(s.id))
}

func (h *hasher) args(args []GenericArg) {
	h.writeUint64(uint64(len(args)))
	for _, arg := range args {
		h.arg(arg)
	}
}

func (h *hasher) arg(a GenericArg) {
	h.writeUint64(uint64(a.kind))
	switch a.kind {
	case KindType:
		h.ty(a.ty)
	case KindLifetime:
		h.lifetime(a.lifetime)
	case KindConst:
		h.constant(a.constant)
	}
}

func (h *hasher) ty(t Ty) {
	h.writeUint64(uint64(tyTag(t)))
	switch t := t.(type) {
	case nil:
	case BoundTy:
		h.boundVar(t.Var)
	case Scalar:
		h.writeString(t.Name)
	case Adt:
		h.writeString(t.Name)
		h.subst(t.Args)
	case Ref:
		if t.Mutable {
			h.writeUint64(1)
		} else {
			h.writeUint64(0)
		}
		h.lifetime(t.Lifetime)
		h.ty(t.Ty)
	case FnPtr:
		h.writeUint64(uint64(t.NumBinders))
		h.subst(t.Sig)
	case Projection:
		h.writeString(t.Trait)
		h.writeString(t.Assoc)
		h.subst(t.Args)
	case InferTy:
		h.writeUint64(uint64(t.ID))
	default:
		panic(fmt.Sprintf("unexpected type %T", t))
	}
}

func (h *hasher) lifetime(l Lifetime) {
	h.writeUint64(uint64(lifetimeTag(l)))
	switch l := l.(type) {
	case BoundLifetime:
		h.boundVar(l.Var)
	case NamedLifetime:
		h.writeString(l.Name)
	}
}

func (h *hasher) constant(c Const) {
	switch c := c.(type) {
	case BoundConst:
		h.writeUint64(0)
		h.boundVar(c.Var)
		h.ty(c.Ty)
	case ConcreteConst:
		h.writeUint64(1)
		h.writeString(c.Value)
		h.ty(c.Ty)
	default:
		panic(fmt.Sprintf("unexpected const %T", c))
	}
}

// HashArgs hashes a sequence of generic arguments structurally.
// Interner implementations use it to implement HashArgs.
func HashArgs(in Interner, args []GenericArg) uint64 {
	h := newHasher(in)
	h.args(args)
	return h.d.Sum64()
}

func HashGenericArg(in Interner, a GenericArg) uint64 {
	h := newHasher(in)
	h.arg(a)
	return h.d.Sum64()
}

func HashTy(in Interner, t Ty) uint64 {
	h := newHasher(in)
	h.ty(t)
	return h.d.Sum64()
}
