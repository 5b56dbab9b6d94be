package pure

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ComparableOrStringer documents what Tableize accepts as an argument: a
// comparable value, or a fmt.Stringer whose String() identifies it.
type ComparableOrStringer any

// stringerKey keeps hashed Stringer keys apart from raw uint64 arguments.
type stringerKey uint64

// TableKey derives the table key for an argument.
// Non-comparable arguments without a String method panic once they are used as a key.
func TableKey(i ComparableOrStringer) any {
	if stringer, ok := i.(fmt.Stringer); ok {
		return stringerKey(xxhash.Sum64String(stringer.String()))
	}
	return i
}

func TableizeI1O1[I1 ComparableOrStringer, O1 any](
	pureFn func(I1) O1,
	maxTableSize uint32,
) func(I1) O1 {
	memo := NewTable[any, O1](maxTableSize)
	return func(i1 I1) O1 {
		key := TableKey(i1)
		v, ok := memo.Load(key)
		if !ok {
			v = pureFn(i1)
			memo.Store(key, v)
		}
		return v
	}
}

type result[O1 any, O2 any] struct {
	O1 O1
	O2 O2
}

func TableizeI1O2[I1 ComparableOrStringer, O1, O2 any](
	pureFn func(I1) (O1, O2),
	maxTableSize uint32,
) func(I1) (O1, O2) {
	memo := NewTable[any, result[O1, O2]](maxTableSize)
	return func(i1 I1) (O1, O2) {
		key := TableKey(i1)
		res, ok := memo.Load(key)
		if !ok {
			v1, v2 := pureFn(i1)
			res = result[O1, O2]{O1: v1, O2: v2}
			memo.Store(key, res)
		}
		return res.O1, res.O2
	}
}
