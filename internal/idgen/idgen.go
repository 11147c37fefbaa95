// Package idgen provides the process-wide expression-id allocator. A
// single atomic counter suffices per spec.md §9: ids only need to be
// unique under concurrent analyzer runs, not ordered across them.
package idgen

import "sync/atomic"

var counter int64

// Next returns a fresh, process-unique expression id. Safe for concurrent
// use by multiple analyzer instances running in the same process.
func Next() int64 {
	return atomic.AddInt64(&counter, 1)
}

// Reset rewinds the counter. Exposed only for tests that need deterministic
// ids across runs; production code never calls it.
func Reset() {
	atomic.StoreInt64(&counter, 0)
}
