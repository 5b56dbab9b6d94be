package memo_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/on-the-ground/cacher_ive_go/effects/log"
	"github.com/on-the-ground/cacher_ive_go/effects/memo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableEffect_OneCalculationPerArgument(t *testing.T) {
	ctx := context.Background()
	ctx, endOfLogHandler := log.WithTestEffectHandler(ctx)
	defer endOfLogHandler()

	var (
		mu    sync.Mutex
		calls = make(map[int]int)
	)
	ctx, endOfTable := memo.WithTableEffectHandler(ctx, "square", 8, 4,
		memo.NewInMemoryStore[int, int](64),
		func(_ context.Context, x int) (int, error) {
			mu.Lock()
			calls[x]++
			mu.Unlock()
			return x * x, nil
		},
	)
	defer endOfTable()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			arg := i % 10
			v, err := memo.TableEffect[int, int](ctx, "square", arg)
			assert.NoError(t, err)
			assert.Equal(t, arg*arg, v)
		}(i)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, calls, 10)
	for arg, n := range calls {
		assert.Equal(t, 1, n, "arg %d computed %d times", arg, n)
	}
}

func TestTableEffect_FailuresAreRetried(t *testing.T) {
	ctx := context.Background()
	errFlaky := errors.New("flaky")

	var attempts atomic.Int32
	ctx, endOfTable := memo.WithTableEffectHandler(ctx, "flaky", 1, 1,
		memo.NewInMemoryStore[string, string](4),
		func(_ context.Context, s string) (string, error) {
			if attempts.Add(1) == 1 {
				return "", errFlaky
			}
			return "ok:" + s, nil
		},
	)
	defer endOfTable()

	_, err := memo.TableEffect[string, string](ctx, "flaky", "k")
	assert.ErrorIs(t, err, errFlaky)

	v, err := memo.TableEffect[string, string](ctx, "flaky", "k")
	require.NoError(t, err)
	assert.Equal(t, "ok:k", v)

	v, err = memo.TableEffect[string, string](ctx, "flaky", "k")
	require.NoError(t, err)
	assert.Equal(t, "ok:k", v)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestTableEffect_RistrettoStore(t *testing.T) {
	ctx := context.Background()

	store, err := memo.NewRistrettoStore[string, string](128)
	require.NoError(t, err)
	defer store.Close()

	ctx, endOfTable := memo.WithTableEffectHandler(ctx, "greet", 4, 2,
		store,
		func(_ context.Context, name string) (string, error) {
			return fmt.Sprintf("hello, %s", name), nil
		},
	)
	defer endOfTable()

	for _, name := range []string{"ada", "grace", "ada"} {
		v, err := memo.TableEffect[string, string](ctx, "greet", name)
		require.NoError(t, err)
		assert.Equal(t, "hello, "+name, v)
	}
}

func TestRistrettoStore_LoadAfterStore(t *testing.T) {
	store, err := memo.NewRistrettoStore[uint64, int](16)
	require.NoError(t, err)
	defer store.Close()

	_, ok := store.Load(7)
	assert.False(t, ok)

	store.Store(7, 49)
	v, ok := store.Load(7)
	require.True(t, ok)
	assert.Equal(t, 49, v)
}
