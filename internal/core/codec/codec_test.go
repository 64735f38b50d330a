package codec

import (
	"testing"
)

func TestLookup_AliasClasses(t *testing.T) {
	tests := []struct {
		name  string
		query []string
		want  string
	}{
		{name: "latin1 class", query: []string{"iso-8859-1", "latin1", "l1", "iso8859-1", "ISO_8859_1", "cp819", "IBM819"}, want: "iso-8859-1"},
		{name: "utf8 spellings", query: []string{"UTF-8", "utf_8", "utf8", "u8", "cp65001"}, want: "utf-8"},
		{name: "utf16 defaults little endian", query: []string{"utf-16", "utf16", "unicode", "UTF_16LE"}, want: "utf-16le"},
		{name: "shift jis family", query: []string{"shift_jis", "sjis", "cp932", "windows-31j", "MS-Kanji"}, want: "shift_jis"},
		{name: "russian dos page", query: []string{"cp866", "ibm866", "866"}, want: "cp866"},
		{name: "thai page", query: []string{"windows-874", "tis-620", "iso-8859-11"}, want: "windows-874"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, q := range tt.query {
				e, ok := Lookup(q)
				if !ok {
					t.Fatalf("Lookup(%q) missed", q)
				}
				if e.Name != tt.want {
					t.Fatalf("Lookup(%q) = %s, want %s", q, e.Name, tt.want)
				}
			}
		})
	}

	if _, ok := Lookup("x-weird"); ok {
		t.Fatalf("unknown name must not resolve")
	}
	if _, ok := Lookup(""); ok {
		t.Fatalf("empty name must not resolve")
	}
}

func TestRegistry_Order(t *testing.T) {
	all := Registry()
	if len(all) < 50 {
		t.Fatalf("registry unexpectedly small: %d", len(all))
	}
	for i, e := range all {
		if e.Priority != i {
			t.Fatalf("%s priority = %d, want %d", e.Name, e.Priority, i)
		}
	}
	if all[0].Name != "ascii" || all[1].Name != "utf-8" {
		t.Fatalf("commonly-correct entries must lead: %s, %s", all[0].Name, all[1].Name)
	}
	seen := make(map[string]bool, len(all))
	for _, e := range all {
		if seen[e.Name] {
			t.Fatalf("duplicate canonical name %s", e.Name)
		}
		seen[e.Name] = true
	}
}

func TestSelect_SizeNarrowing(t *testing.T) {
	small, unknown := Select(50, nil, nil)
	if len(unknown) != 0 {
		t.Fatalf("unexpected unknown names: %v", unknown)
	}
	full, _ := Select(5000, nil, nil)
	if len(full) != len(Registry()) {
		t.Fatalf("large input should trial the full registry, got %d", len(full))
	}
	if len(small) >= len(full) {
		t.Fatalf("small-input subset not narrower: %d vs %d", len(small), len(full))
	}
	for _, e := range small {
		if !e.Small {
			t.Fatalf("%s selected for small input without Small flag", e.Name)
		}
	}

	// boundary: the subset applies strictly below the threshold
	at, _ := Select(smallInputThreshold, nil, nil)
	if len(at) != len(full) {
		t.Fatalf("threshold-sized input should use the full registry")
	}
}

func TestSelect_Isolate(t *testing.T) {
	entries, unknown := Select(5000, []string{"latin1", "utf8", "no-such-charset"}, nil)
	if len(unknown) != 1 || unknown[0] != "no-such-charset" {
		t.Fatalf("unknown = %v", unknown)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	// registry order, not argument order
	if entries[0].Name != "utf-8" || entries[1].Name != "iso-8859-1" {
		t.Fatalf("entries = %s, %s", entries[0].Name, entries[1].Name)
	}

	// members of one alias class collapse to a single candidate
	entries, _ = Select(5000, []string{"latin1", "iso-8859-1", "cp819"}, nil)
	if len(entries) != 1 {
		t.Fatalf("alias class must dedup, got %d entries", len(entries))
	}
}

func TestSelect_Exclude(t *testing.T) {
	entries, _ := Select(5000, nil, []string{"utf-8", "UTF_8"})
	for _, e := range entries {
		if e.Name == "utf-8" {
			t.Fatalf("excluded entry still selected")
		}
	}

	// exclude wins over isolate
	entries, _ = Select(5000, []string{"latin1", "utf8"}, []string{"utf-8"})
	if len(entries) != 1 || entries[0].Name != "iso-8859-1" {
		t.Fatalf("exclude must subtract from isolation, got %v", entries)
	}

	_, unknown := Select(5000, nil, []string{"bogus"})
	if len(unknown) != 1 {
		t.Fatalf("unknown exclude names must be reported, got %v", unknown)
	}
}
