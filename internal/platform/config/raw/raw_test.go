package raw

import (
	"fmt"
	"testing"
)

func TestGet(t *testing.T) {
	t.Setenv("SNIFF_NAME", "  charsniff  ")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("SNIFF_BLANK", "   ")

	env := New()
	if got := env.Get("SNIFF_NAME", "fallback"); got != "charsniff" {
		t.Fatalf("Get should trim the value, got %q", got)
	}
	if got := env.Prefix("LOG_").Get("FORMAT", "console"); got != "json" {
		t.Fatalf("prefixed Get = %q, want json", got)
	}
	if got := env.Get("SNIFF_ABSENT", "fallback"); got != "fallback" {
		t.Fatalf("missing key should fall back, got %q", got)
	}
	if got := env.Get("SNIFF_BLANK", "fallback"); got != "fallback" {
		t.Fatalf("blank value should fall back, got %q", got)
	}
}

func TestGetBool(t *testing.T) {
	env := New().Prefix("LOG_")
	cases := []struct {
		raw  string
		def  bool
		want bool
	}{
		{"1", false, true},
		{"true", false, true},
		{"YES", false, true},
		{"  true  ", false, true},
		{"0", true, false},
		{"false", true, false},
		{"no", true, false},
		{"off", true, false},
		{"", true, true},
		{"", false, false},
	}
	for i, c := range cases {
		key := fmt.Sprintf("B%d", i)
		if c.raw != "" {
			t.Setenv("LOG_"+key, c.raw)
		}
		if got := env.GetBool(key, c.def); got != c.want {
			t.Fatalf("GetBool(%s=%q, def %v) = %v, want %v", key, c.raw, c.def, got, c.want)
		}
	}
}

func TestGetInt(t *testing.T) {
	env := New().Prefix("LOG_")
	cases := []struct {
		raw  string
		def  int
		want int
	}{
		{"42", 0, 42},
		{"  7  ", 1, 7},
		{"007", 0, 7},
		{"12x", 9, 9},
		{"-5", 3, 3},
		{"", 11, 11},
	}
	for i, c := range cases {
		key := fmt.Sprintf("N%d", i)
		if c.raw != "" {
			t.Setenv("LOG_"+key, c.raw)
		}
		if got := env.GetInt(key, c.def); got != c.want {
			t.Fatalf("GetInt(%s=%q) = %d, want %d", key, c.raw, got, c.want)
		}
	}
}

func TestPrefixNesting(t *testing.T) {
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("SNIFF_LEVEL", "debug")
	t.Setenv("SNIFF_LOG_MODE", "console")

	root := New()
	if got := root.Prefix("LOG_").Get("LEVEL", ""); got != "info" {
		t.Fatalf("LOG_LEVEL = %q, want info", got)
	}
	sniff := root.Prefix("SNIFF_")
	if got := sniff.Get("LEVEL", ""); got != "debug" {
		t.Fatalf("SNIFF_LEVEL = %q, want debug", got)
	}
	if got := sniff.Prefix("LOG_").Get("MODE", ""); got != "console" {
		t.Fatalf("SNIFF_LOG_MODE = %q, want console", got)
	}
}
