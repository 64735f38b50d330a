package testkit

import (
	"sync"
	"testing"
)

var serialGate sync.Mutex

// Swap installs replacement into a package-level seam for the duration of
// the test and hands back the displaced value so stubs can delegate to it.
// Restoration is registered via t.Cleanup
func Swap[T any](t *testing.T, seam *T, replacement T) T {
	t.Helper()
	prev := *seam
	*seam = replacement
	t.Cleanup(func() { *seam = prev })
	return prev
}

// Serial holds a process-wide lock until the test finishes. Tests that
// mutate shared seams call this first so parallel runs cannot interleave
func Serial(t *testing.T) {
	t.Helper()
	serialGate.Lock()
	t.Cleanup(serialGate.Unlock)
}
