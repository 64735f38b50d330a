package testkit

import (
	"bytes"
	"testing"
)

func TestMustPanic(t *testing.T) {
	t.Parallel()

	MustPanic(t, func() {
		panic("boom")
	})
}

func TestMustNotPanic(t *testing.T) {
	t.Parallel()

	MustNotPanic(t, func() {
		// no panic
	})
}

func TestMustContain(t *testing.T) {
	t.Parallel()

	haystack := "alpha beta gamma"
	MustContain(t, haystack, "beta")
}

func TestBytes(t *testing.T) {
	t.Parallel()

	got := Bytes(t, "ef bb bf 41")
	want := []byte{0xEF, 0xBB, 0xBF, 0x41}
	if !bytes.Equal(got, want) {
		t.Fatalf("Bytes = % x, want % x", got, want)
	}

	// whitespace shapes should not matter
	got = Bytes(t, "fffe\n00 41")
	want = []byte{0xFF, 0xFE, 0x00, 0x41}
	if !bytes.Equal(got, want) {
		t.Fatalf("Bytes = % x, want % x", got, want)
	}

	if len(Bytes(t, "")) != 0 {
		t.Fatalf("empty dump should decode to no bytes")
	}
}
