// Package memo caches the result of applying substitutions to types, for
// callers that specialize the same quantified types over and over
package memo

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/cottand/subst/internal/log"
	"github.com/cottand/subst/types"
	"github.com/dgraph-io/ristretto/v2"
	"github.com/pkg/errors"
)

var logger = log.DefaultLogger.With("section", "memo")

type cached struct {
	subst  types.Substitution
	input  types.Ty
	output types.Ty
}

// Applier memoizes types.Apply over types.Ty. Entries are keyed on a hash
// of the substitution and of the type, and checked structurally on every
// hit, so hash collisions only cost a miss.
//
// Applier is safe for concurrent use if its Interner is.
type Applier struct {
	in    types.Interner
	cache *ristretto.Cache[uint64, cached]
}

type Opts struct {
	// MaxEntries bounds the number of cached results
	MaxEntries int64
	// Metrics enables hit and miss counting
	Metrics bool
}

func NewApplier(in types.Interner, opts Opts) (*Applier, error) {
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = 1 << 14
	}
	cache, err := ristretto.NewCache(&ristretto.Config[uint64, cached]{
		NumCounters:        opts.MaxEntries * 10,
		MaxCost:            opts.MaxEntries,
		BufferItems:        64,
		IgnoreInternalCost: true,
		Metrics:            opts.Metrics,
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not create substitution cache")
	}
	return &Applier{in: in, cache: cache}, nil
}

func key(in types.Interner, s types.Substitution, t types.Ty) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], s.Hash(in))
	binary.LittleEndian.PutUint64(buf[8:], types.HashTy(in, t))
	return xxhash.Sum64(buf[:])
}

func (a *Applier) Apply(s types.Substitution, t types.Ty) types.Ty {
	k := key(a.in, s, t)
	if hit, ok := a.cache.Get(k); ok {
		if hit.subst.Equal(a.in, s) && types.CompareTy(a.in, hit.input, t) == 0 {
			return hit.output
		}
		logger.Debug("substitution cache collision", "key", k)
	}
	out := types.Apply(a.in, s, t)
	a.cache.Set(k, cached{subst: s, input: t, output: out}, 1)
	return out
}

// Hits is the number of lookups served from the cache, or 0 without Opts.Metrics
func (a *Applier) Hits() uint64 { return a.cache.Metrics.Hits() }

func (a *Applier) Misses() uint64 { return a.cache.Metrics.Misses() }

// Wait blocks until pending cache writes are visible to Apply
func (a *Applier) Wait() { a.cache.Wait() }

func (a *Applier) Close() { a.cache.Close() }
