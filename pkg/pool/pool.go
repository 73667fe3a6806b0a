// Package pool provides object pooling for per-call scratch tables.
// Values handed out are always reset, so no state leaks between callers.
package pool

import (
	"sync"
)

// CounterPool pools map[string]int tallies (guesser ratings and counts)
var CounterPool = sync.Pool{
	New: func() interface{} {
		return make(map[string]int, 4)
	},
}

// StringSlicePool pools []string
var StringSlicePool = sync.Pool{
	New: func() interface{} {
		return make([]string, 0, 8)
	},
}

// GetCounter gets an empty tally from pool
func GetCounter() map[string]int {
	m := CounterPool.Get().(map[string]int)
	for k := range m {
		delete(m, k)
	}
	return m
}

// PutCounter returns a tally to pool
func PutCounter(m map[string]int) {
	CounterPool.Put(m)
}

// GetStrings gets an empty string slice from pool
func GetStrings() []string {
	s := StringSlicePool.Get().([]string)
	return s[:0]
}

// PutStrings returns a string slice to pool
func PutStrings(s []string) {
	StringSlicePool.Put(s[:0])
}
