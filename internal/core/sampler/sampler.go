// Package sampler slices an input into the byte windows the mess engine
// scores, so large payloads are judged on spread probes instead of a full
// scan
package sampler

import "iter"

// Span is one sampled window, expressed against the input's start
type Span struct {
	Off int
	Len int
}

// End returns the exclusive end offset
func (s Span) End() int { return s.Off + s.Len }

// Spans yields up to steps windows of chunkSize bytes over an input of n
// bytes. Inputs no larger than one chunk yield a single whole-input window.
// Otherwise windows spread evenly: the first starts at 0, the last ends at
// n, and crowded configurations collapse duplicate offsets instead of
// re-yielding the same window. The sequence is restartable and allocation
// free
func Spans(n, steps, chunkSize int) iter.Seq[Span] {
	return func(yield func(Span) bool) {
		if n <= 0 {
			yield(Span{})
			return
		}
		if n <= chunkSize || steps <= 1 {
			yield(Span{Off: 0, Len: min(n, chunkSize)})
			return
		}

		span := n - chunkSize // last valid start offset
		prev := -1
		for i := 0; i < steps; i++ {
			off := i * span / (steps - 1)
			if off == prev {
				continue
			}
			prev = off
			if !yield(Span{Off: off, Len: chunkSize}) {
				return
			}
		}
	}
}
