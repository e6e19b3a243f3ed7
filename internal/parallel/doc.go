// Package parallel provides the spawn/join primitive used by divide-and-conquer
// arithmetic.
//
// A Limiter bounds the number of live spawned tasks process-wide with a
// weighted semaphore. A Group spawns a work function on its own goroutine only
// when the limiter grants a slot without waiting; otherwise the function runs
// inline in the caller. Recursive algorithms therefore never block on a slot
// held by one of their own ancestors.
package parallel
