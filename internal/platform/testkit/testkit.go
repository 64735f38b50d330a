// Package testkit holds small assertion and fixture helpers shared by the
// package tests
package testkit

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// MustPanic fails the test unless fn panics
func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic, got none")
		}
	}()
	fn()
}

// MustNotPanic fails the test if fn panics, reporting the panic value
func MustNotPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	fn()
}

// MustContain fails unless haystack contains needle. The haystack lands in
// a temp file because captured log output is too long for a test message
func MustContain(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		return
	}
	dump := filepath.Join(t.TempDir(), "output.txt")
	_ = os.WriteFile(dump, []byte(haystack), 0o600)
	t.Fatalf("expected output to contain %q\n\nfull output written to %s", needle, dump)
}

// Bytes decodes a spaced hex dump ("ef bb bf 41") into raw bytes.
// Byte-stream fixtures read better in hex than as Go escape soup
func Bytes(t *testing.T, dump string) []byte {
	t.Helper()
	compact := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\n' || r == '\t' {
			return -1
		}
		return r
	}, dump)
	b, err := hex.DecodeString(compact)
	if err != nil {
		t.Fatalf("bad hex dump %q: %v", dump, err)
	}
	return b
}
