package fold

import (
	"testing"
)

// Test table covers each stage and combined pipelines.
func TestString_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "identity ascii",
			in:   "hello world",
			out:  "hello world",
		},
		{
			name: "case fold latin",
			in:   "HeLLo",
			out:  "hello",
		},
		{
			name: "case fold cyrillic",
			in:   "ПрИвЕт",
			out:  "привет",
		},
		{
			name: "remove combining marks",
			in:   "café", // combining acute accent
			out:  "cafe",
		},
		{
			name: "precomposed accent decomposes and strips",
			in:   "café", // café with precomposed é
			out:  "cafe",
		},
		{
			name: "remove zero-widths",
			in:   "a​b‍c",
			out:  "abc",
		},
		{
			name: "nfkd ligature",
			in:   "oﬃce", // ffi ligature
			out:  "office",
		},
		{
			name: "fullwidth compatibility forms",
			in:   "ＡＢＣ", // ＡＢＣ
			out:  "abc",
		},
		{
			name: "empty",
			in:   "",
			out:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := String(tt.in); got != tt.out {
				t.Fatalf("String(%q) = %q, want %q", tt.in, got, tt.out)
			}
		})
	}
}

func TestRune(t *testing.T) {
	cases := []struct {
		in   rune
		want rune
	}{
		{'A', 'a'},
		{'z', 'z'},
		{'É', 'e'},      // É
		{'Ж', 'ж'}, // Ж -> ж
		{'Ω', 'ω'}, // Ω -> ω
		{'İ', 'i'},      // Turkish İ folds to i plus dot mark
		{'́', '́'}, // lone combining mark folds away, kept as-is
	}
	for _, c := range cases {
		if got := Rune(c.in); got != c.want {
			t.Fatalf("Rune(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
