package sampler

import (
	"testing"
)

func collect(t *testing.T, n, steps, chunkSize int) []Span {
	t.Helper()
	var out []Span
	for s := range Spans(n, steps, chunkSize) {
		out = append(out, s)
	}
	return out
}

func TestSpans_SmallInputSingleWindow(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want Span
	}{
		{name: "under one chunk", n: 40, want: Span{Off: 0, Len: 40}},
		{name: "exactly one chunk", n: 512, want: Span{Off: 0, Len: 512}},
		{name: "empty", n: 0, want: Span{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(t, tt.n, 5, 512)
			if len(got) != 1 || got[0] != tt.want {
				t.Fatalf("spans = %v, want [%v]", got, tt.want)
			}
		})
	}
}

func TestSpans_EvenSpread(t *testing.T) {
	const n, steps, chunk = 10000, 5, 512
	got := collect(t, n, steps, chunk)

	if len(got) != steps {
		t.Fatalf("got %d spans, want %d", len(got), steps)
	}
	if got[0].Off != 0 {
		t.Fatalf("first span must start at 0, got %d", got[0].Off)
	}
	if last := got[len(got)-1]; last.End() != n {
		t.Fatalf("last span must end at n: end=%d", last.End())
	}
	for i, s := range got {
		if s.Len != chunk {
			t.Fatalf("span %d len = %d", i, s.Len)
		}
		if s.Off < 0 || s.End() > n {
			t.Fatalf("span %d out of bounds: %+v", i, s)
		}
		if i > 0 && s.Off <= got[i-1].Off {
			t.Fatalf("offsets must increase: %v", got)
		}
	}

	// spread is even within integer rounding
	stride := got[1].Off - got[0].Off
	for i := 1; i < len(got); i++ {
		d := got[i].Off - got[i-1].Off
		if d < stride-1 || d > stride+1 {
			t.Fatalf("uneven stride at %d: %v", i, got)
		}
	}
}

func TestSpans_CrowdedWindowsCollapse(t *testing.T) {
	// only two distinct start offsets exist for n = chunk+1
	got := collect(t, 513, 5, 512)
	if len(got) != 2 {
		t.Fatalf("spans = %v, want 2 distinct windows", got)
	}
	if got[0].Off != 0 || got[1].Off != 1 {
		t.Fatalf("spans = %v", got)
	}
}

func TestSpans_SingleStep(t *testing.T) {
	got := collect(t, 10000, 1, 512)
	if len(got) != 1 || got[0] != (Span{Off: 0, Len: 512}) {
		t.Fatalf("spans = %v", got)
	}
}

func TestSpans_EarlyBreakAndRestart(t *testing.T) {
	seq := Spans(10000, 5, 512)

	var first []Span
	for s := range seq {
		first = append(first, s)
		if len(first) == 2 {
			break
		}
	}
	if len(first) != 2 {
		t.Fatalf("break did not stop the sequence")
	}

	// the sequence restarts from the top
	var again []Span
	for s := range seq {
		again = append(again, s)
	}
	if len(again) != 5 || again[0] != first[0] {
		t.Fatalf("sequence must be restartable: %v", again)
	}
}
