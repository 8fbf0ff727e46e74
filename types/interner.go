package types

// ArgsID is a handle to a sequence of GenericArg owned by an Interner.
// The zero ArgsID is the empty sequence for every Interner.
type ArgsID uint32

const EmptyArgs ArgsID = 0

// Interner owns the storage of interned GenericArg sequences and decides how
// they are compared. Everything in this package holds ArgsID handles only, so
// the same substitution and folding logic works over any backing store.
//
// Implementations that deduplicate structurally-equal sequences make handle
// equality coincide with structural equality; CompareArgs and HashArgs must
// be structural either way.
type Interner interface {
	// InternArgs stores args (the caller may reuse the slice afterwards)
	InternArgs(args []GenericArg) ArgsID
	// ArgsData returns the sequence behind id. It must not be modified.
	// An id that was not produced by this Interner is a caller bug.
	ArgsData(id ArgsID) []GenericArg
	CompareArgs(a, b ArgsID) int
	HashArgs(id ArgsID) uint64
}
