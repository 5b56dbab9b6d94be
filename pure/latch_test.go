package pure_test

import (
	"strconv"
	"testing"

	"github.com/on-the-ground/cacher_ive_go/pure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatchI1O1(t *testing.T) {
	count := 0
	fn := pure.LatchI1O1(func(i int) string {
		count++
		return strconv.Itoa(i)
	})

	assert.Equal(t, "7", fn(7))
	assert.Equal(t, "7", fn(8))
	assert.Equal(t, 1, count)
}

func TestLatchI1O2(t *testing.T) {
	count := 0
	fn := pure.LatchI1O2(func(s string) (int, error) {
		count++
		return strconv.Atoi(s)
	})

	_, err := fn("not a number")
	require.Error(t, err)

	v, err := fn("12")
	require.NoError(t, err)
	assert.Equal(t, 12, v)

	v, err = fn("not a number")
	require.NoError(t, err)
	assert.Equal(t, 12, v)
	assert.Equal(t, 2, count)
}

// The latch and the table answer the same first call and part ways after it.
func TestLatchVersusTableize(t *testing.T) {
	double := func(i int) int { return i * 2 }
	latched := pure.LatchI1O1(double)
	tabled := pure.TableizeI1O1(double, 4)

	assert.Equal(t, tabled(3), latched(3))
	assert.Equal(t, 10, tabled(5))
	assert.Equal(t, 6, latched(5))
}
