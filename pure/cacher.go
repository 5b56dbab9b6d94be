package pure

// State is the lifecycle of a single-slot cache.
type State uint8

const (
	// Empty means the calculation has not produced a result yet.
	Empty State = iota
	// Populated is terminal: the slot holds the first result for good.
	Populated
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Populated:
		return "populated"
	default:
		return "unknown"
	}
}

// Cacher wraps a calculation and remembers the first result it returns.
//
// Only one slot exists. Once it is filled, Value ignores its argument and
// returns the stored result without calling the calculation again, even when
// the argument differs from the one that filled it.
//
// A Cacher must not be shared between goroutines.
type Cacher[A, R any] struct {
	calculation func(A) R
	value       R
	state       State
}

// NewCacher returns an empty Cacher owning calculation.
func NewCacher[A, R any](calculation func(A) R) *Cacher[A, R] {
	return &Cacher[A, R]{calculation: calculation}
}

// Value returns the cached result, running the calculation with arg only if
// the slot is still empty. If the calculation panics the slot stays empty.
func (c *Cacher[A, R]) Value(arg A) R {
	if c.state == Populated {
		return c.value
	}
	v := c.calculation(arg)
	c.value, c.state = v, Populated
	return v
}

func (c *Cacher[A, R]) State() State {
	return c.state
}

// FallibleCacher is Cacher for calculations that can fail.
//
// A failed calculation is not cached: its error goes back to the caller
// untouched and the next Value call runs the calculation again.
type FallibleCacher[A, R any] struct {
	calculation func(A) (R, error)
	value       R
	state       State
}

func NewFallibleCacher[A, R any](calculation func(A) (R, error)) *FallibleCacher[A, R] {
	return &FallibleCacher[A, R]{calculation: calculation}
}

func (c *FallibleCacher[A, R]) Value(arg A) (R, error) {
	if c.state == Populated {
		return c.value, nil
	}
	v, err := c.calculation(arg)
	if err != nil {
		var zero R
		return zero, err
	}
	c.value, c.state = v, Populated
	return v, nil
}

func (c *FallibleCacher[A, R]) State() State {
	return c.state
}
