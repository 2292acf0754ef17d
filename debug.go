//go:build debug

package mempool

import "fmt"

// assertf panics when an internal invariant does not hold. Build with
// -tags debug to enable it.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Errorf("mempool: assertion failed: "+format, args...))
	}
}
