// Package intern implements the storage behind types.Interner
package intern

import (
	"fmt"
	"slices"
	"sync"

	"github.com/cottand/subst/internal/log"
	"github.com/cottand/subst/types"
	"github.com/prometheus/client_golang/prometheus"
)

var logger = log.DefaultLogger.With("section", "intern")

type entry struct {
	args []types.GenericArg
	hash uint64
}

// Table is a hash-consing Interner meant to be shared by a whole process:
// structurally-equal sequences always get the same handle, so handle
// equality is structural equality. It is safe for concurrent use.
type Table struct {
	mu      sync.RWMutex
	entries []entry
	// index maps a structural hash to the handles that have it
	index   map[uint64][]types.ArgsID
	metrics *tableMetrics
}

var _ types.Interner = (*Table)(nil)

type TableOpts struct {
	// Name distinguishes the metrics of several tables registered on the same registry
	Name       string
	Registerer prometheus.Registerer
}

func NewTable(opts TableOpts) *Table {
	if opts.Name == "" {
		opts.Name = "default"
	}
	t := &Table{
		index:   make(map[uint64][]types.ArgsID),
		metrics: newTableMetrics(opts.Registerer, opts.Name),
	}
	// handle 0 is the empty sequence
	t.entries = append(t.entries, entry{hash: types.HashArgs(t, nil)})
	logger.Debug("created interning table", "name", opts.Name)
	return t
}

func (t *Table) InternArgs(args []types.GenericArg) types.ArgsID {
	if len(args) == 0 {
		return types.EmptyArgs
	}
	// hashing reads nested handles through t, so it happens before taking the write lock
	hash := types.HashArgs(t, args)

	if id, ok := t.lookup(hash, args); ok {
		t.metrics.hits.Inc()
		return id
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	// another goroutine may have interned args in the meantime
	if id, ok := t.lookupLocked(hash, args); ok {
		t.metrics.hits.Inc()
		return id
	}
	id := types.ArgsID(len(t.entries))
	t.entries = append(t.entries, entry{args: slices.Clone(args), hash: hash})
	t.index[hash] = append(t.index[hash], id)
	t.metrics.misses.Inc()
	t.metrics.sequences.Inc()
	return id
}

func (t *Table) lookup(hash uint64, args []types.GenericArg) (types.ArgsID, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lookupLocked(hash, args)
}

// lookupLocked compares candidates with ==, which is exact here: nested
// handles were themselves interned by t, so they are canonical
func (t *Table) lookupLocked(hash uint64, args []types.GenericArg) (types.ArgsID, bool) {
	for _, id := range t.index[hash] {
		if slices.Equal(t.entries[id].args, args) {
			return id, true
		}
	}
	return 0, false
}

func (t *Table) get(id types.ArgsID) entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if int(id) >= len(t.entries) {
		panic(fmt.Sprintf("handle %d was not interned by this table", id))
	}
	return t.entries[id]
}

func (t *Table) ArgsData(id types.ArgsID) []types.GenericArg {
	return t.get(id).args
}

func (t *Table) CompareArgs(a, b types.ArgsID) int {
	if a == b {
		return 0
	}
	return types.CompareArgs(t, t.ArgsData(a), t.ArgsData(b))
}

func (t *Table) HashArgs(id types.ArgsID) uint64 {
	return t.get(id).hash
}

// Len is the number of distinct non-empty sequences in t
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries) - 1
}
