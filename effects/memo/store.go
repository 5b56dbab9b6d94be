package memo

import (
	"github.com/on-the-ground/cacher_ive_go/pure"

	ristretto "github.com/dgraph-io/ristretto/v2"
)

type inMemoryStore[A comparable, R any] struct {
	table *pure.Table[A, R]
}

// NewInMemoryStore keeps between maxSize and 2*maxSize recent results.
func NewInMemoryStore[A comparable, R any](maxSize uint32) TableStore[A, R] {
	return inMemoryStore[A, R]{table: pure.NewTable[A, R](maxSize)}
}

func (s inMemoryStore[A, R]) Load(arg A) (R, bool) {
	return s.table.Load(arg)
}

func (s inMemoryStore[A, R]) Store(arg A, val R) {
	s.table.Store(arg, val)
}

type key interface {
	ristretto.Key
	comparable
}

// RistrettoStore is a TableStore with cost-bounded admission and eviction.
// Every result costs 1, so maxCost is the number of results it may hold.
type RistrettoStore[A key, R any] struct {
	cache *ristretto.Cache[A, R]
}

func NewRistrettoStore[A key, R any](maxCost int64) (*RistrettoStore[A, R], error) {
	// Cost counts results, not bytes.
	cache, err := ristretto.NewCache(&ristretto.Config[A, R]{
		NumCounters:        max(maxCost*10, 100),
		MaxCost:            maxCost,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	return &RistrettoStore[A, R]{cache: cache}, nil
}

func (r *RistrettoStore[A, R]) Load(arg A) (R, bool) {
	return r.cache.Get(arg)
}

// Store may be refused by the admission policy; a refused result is simply
// computed again on its next request.
func (r *RistrettoStore[A, R]) Store(arg A, val R) {
	r.cache.Set(arg, val, 1)
	r.cache.Wait()
}

func (r *RistrettoStore[A, R]) Close() {
	r.cache.Close()
}
