// Released under an MIT license. See LICENSE.

// Package heap accounts for every allocation made by the runtime's
// containers and values. Exceeding the configured limit is fatal.
package heap

import (
	"os"

	"github.com/tliron/commonlog"
)

// DefaultLimit is used when neither the configuration nor the process
// resource limits say otherwise.
const DefaultLimit = 64 << 20

//nolint:gochecknoglobals
var (
	bytes int64
	items int64
	limit int64 = DefaultLimit

	exit = os.Exit
	log  = commonlog.GetLogger("mal.heap")
)

// Alloc records an allocation of size bytes.
func Alloc(size uintptr) {
	items++
	bytes += int64(size)

	if bytes > limit {
		log.Criticalf("out of memory: %d items, %d kB in use, limit %d kB",
			items, bytes>>10, limit>>10)
		exit(1)
	}
}

// Free records the release of an allocation of size bytes.
func Free(size uintptr) {
	items--
	bytes -= int64(size)

	if items < 0 || bytes < 0 {
		panic("heap accounting underflow")
	}
}

// Bytes returns the number of bytes currently allocated.
func Bytes() int64 {
	return bytes
}

// Items returns the number of allocations currently live.
func Items() int64 {
	return items
}

// Limit returns the current limit in bytes.
func Limit() int64 {
	return limit
}

// SetLimit sets the limit in bytes. A non-positive n selects the default,
// capped by the process data limit where one exists.
func SetLimit(n int64) {
	if n <= 0 {
		n = DefaultLimit
	}

	if sys, ok := systemLimit(); ok && sys < n {
		n = sys
	}

	limit = n
}
