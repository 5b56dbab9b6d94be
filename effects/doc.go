// Package effects is the handler layer the caches and logging sit on.
//
// A handler is registered in a context with `WithXxxEffectHandler(ctx, ...)`,
// which returns the derived context and a teardown. Code below that context
// reaches the handler through `PerformResumableEffect`,
// `AwaitResumableEffect` or `FireAndForgetEffect`, keyed by an effect enum.
//
// Handlers run on their own goroutines:
//   - a resumable handler serves payloads on one goroutine, which is what
//     lets effects/memo share a non-thread-safe pure.Cacher;
//   - a partitionable resumable handler hashes each payload's PartitionKey()
//     onto one of several workers, keeping per-key order;
//   - a fire-and-forget handler (effects/log) consumes payloads without
//     answering.
//
// Performing an effect with no handler in scope is a programming error and
// panics with ErrNoEffectHandler.
//
// Example:
//
//	func handler(ctx context.Context) error {
//	    ctx, end := memo.WithEffectHandler(ctx, "plan", 1, computePlan)
//	    defer end()
//
//	    plan, err := memo.Effect[int, Plan](ctx, "plan", 10)
//	    ...
//	}
package effects
