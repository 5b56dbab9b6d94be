// Package pure holds caches for pure computations.
//
// Two shapes live here:
//
//   - Cacher and FallibleCacher are single-slot latches. The first successful
//     call stores its result and every later call returns it, whatever
//     argument it is given. The calculation runs at most once per instance.
//     This is the whole contract: the slot is never keyed by argument,
//     never invalidated and never replaced.
//   - TableizeI1O1 and TableizeI1O2 are real memo tables. Results are keyed by
//     argument value and kept in a bounded two-generation Table.
//
// Pick the latch when the argument is known to be fixed for the lifetime of
// the cache (the "expensive result of this request" case). Pick the table when
// the argument varies and the function is referentially transparent.
//
// Neither Cacher nor FallibleCacher is safe for concurrent use. Confine them
// to one goroutine, or reach them through effects/memo, which does exactly that.
//
// WARNING: Do not tableize impure functions (e.g., those depending on time, I/O, etc).
package pure
