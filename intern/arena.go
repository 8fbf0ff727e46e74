package intern

import (
	"fmt"
	"slices"

	"github.com/benbjohnson/immutable"
	"github.com/cottand/subst/types"
)

// Arena is a deduplicating Interner scoped to a single solver session.
// Its storage is persistent, so Fork can hand out a speculative child
// session in constant time: handles of the parent stay valid in the child,
// and whatever the child interns is invisible to the parent.
//
// An Arena is not safe for concurrent use.
type Arena struct {
	name    string
	entries *immutable.List[entry]
	index   *immutable.Map[uint64, []types.ArgsID]
}

var _ types.Interner = (*Arena)(nil)

func NewArena(name string) *Arena {
	a := &Arena{
		name:  name,
		index: immutable.NewMap[uint64, []types.ArgsID](nil),
	}
	a.entries = immutable.NewList(entry{hash: types.HashArgs(a, nil)})
	return a
}

// Fork returns a child session that starts out with everything interned in a
func (a *Arena) Fork(name string) *Arena {
	logger.Debug("forking arena", "parent", a.name, "child", name, "sequences", a.Len())
	return &Arena{
		name:    name,
		entries: a.entries,
		index:   a.index,
	}
}

func (a *Arena) Name() string { return a.name }

func (a *Arena) InternArgs(args []types.GenericArg) types.ArgsID {
	if len(args) == 0 {
		return types.EmptyArgs
	}
	hash := types.HashArgs(a, args)
	bucket, _ := a.index.Get(hash)
	for _, id := range bucket {
		if slices.Equal(a.entries.Get(int(id)).args, args) {
			return id
		}
	}
	id := types.ArgsID(a.entries.Len())
	a.entries = a.entries.Append(entry{args: slices.Clone(args), hash: hash})
	// bucket may share its backing array with another fork, so never append in place
	a.index = a.index.Set(hash, append(slices.Clip(bucket), id))
	return id
}

func (a *Arena) get(id types.ArgsID) entry {
	if int(id) >= a.entries.Len() {
		panic(fmt.Sprintf("handle %d was not interned by arena %q", id, a.name))
	}
	return a.entries.Get(int(id))
}

func (a *Arena) ArgsData(id types.ArgsID) []types.GenericArg { return a.get(id).args }

func (a *Arena) CompareArgs(x, y types.ArgsID) int {
	if x == y {
		return 0
	}
	return types.CompareArgs(a, a.ArgsData(x), a.ArgsData(y))
}

func (a *Arena) HashArgs(id types.ArgsID) uint64 { return a.get(id).hash }

// Len is the number of distinct non-empty sequences in a
func (a *Arena) Len() int { return a.entries.Len() - 1 }
