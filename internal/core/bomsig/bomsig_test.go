package bomsig

import (
	"bytes"
	"testing"

	kit "charsniff/internal/platform/testkit"
)

func TestDetect_Table(t *testing.T) {
	tests := []struct {
		name  string
		input string // hex
		enc   string
		found bool
	}{
		{name: "utf-8 bom", input: "ef bb bf 68 69", enc: "utf-8", found: true},
		{name: "utf-16le bom", input: "ff fe 68 00", enc: "utf-16le", found: true},
		{name: "utf-16be bom", input: "fe ff 00 68", enc: "utf-16be", found: true},
		{name: "utf-32le wins over utf-16le", input: "ff fe 00 00 68 00 00 00", enc: "utf-32le", found: true},
		{name: "utf-32be bom", input: "00 00 fe ff 00 00 00 68", enc: "utf-32be", found: true},
		{name: "gb18030 signature", input: "84 31 95 33 c4 e3", enc: "gb18030", found: true},
		{name: "no signature", input: "68 65 6c 6c 6f", found: false},
		{name: "empty", input: "", found: false},
		{name: "truncated mark", input: "ef bb", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig, ok := Detect(kit.Bytes(t, tt.input))
			if ok != tt.found {
				t.Fatalf("Detect found=%v, want %v", ok, tt.found)
			}
			if ok && sig.Encoding != tt.enc {
				t.Fatalf("Detect = %q, want %q", sig.Encoding, tt.enc)
			}
		})
	}
}

func TestStrip(t *testing.T) {
	in := kit.Bytes(t, "ff fe 68 00 69 00")
	sig, ok := Detect(in)
	if !ok {
		t.Fatalf("expected utf-16le signature")
	}
	got := sig.Strip(in)
	if !bytes.Equal(got, kit.Bytes(t, "68 00 69 00")) {
		t.Fatalf("Strip = % x", got)
	}

	// foreign input passes through untouched
	other := []byte("plain")
	if !bytes.Equal(sig.Strip(other), other) {
		t.Fatalf("Strip must not slice input without its mark")
	}
}

func TestMarkOrdering(t *testing.T) {
	// every mark that extends another must be listed first
	for i, a := range table {
		for j, b := range table {
			if i > j && bytes.HasPrefix(a.Mark, b.Mark) {
				t.Fatalf("longer mark %s shadowed by earlier %s", a.Encoding, b.Encoding)
			}
		}
	}
}
