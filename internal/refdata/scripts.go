package refdata

import "unicode"

// scriptTables maps each known script bucket to its unicode ranges.
// Hiragana and Katakana share one bucket: the frequency tables treat
// Japanese kana as a single signature
var scriptTables = map[string][]*unicode.RangeTable{
	"latin":    {unicode.Latin},
	"cyrillic": {unicode.Cyrillic},
	"greek":    {unicode.Greek},
	"hebrew":   {unicode.Hebrew},
	"arabic":   {unicode.Arabic},
	"hangul":   {unicode.Hangul},
	"kana":     {unicode.Hiragana, unicode.Katakana},
	"han":      {unicode.Han},
	"thai":     {unicode.Thai},
}

// scriptOrder fixes iteration order so bucketing is deterministic. Specific
// scripts come before Latin, which swallows stray fullwidth forms otherwise
var scriptOrder = []string{
	"hangul", "kana", "han", "arabic", "hebrew", "thai", "greek", "cyrillic", "latin",
}

// ScriptOf buckets a letter into one of the known script names
func ScriptOf(r rune) (string, bool) {
	for _, name := range scriptOrder {
		for _, tbl := range scriptTables[name] {
			if unicode.In(r, tbl) {
				return name, true
			}
		}
	}
	return "", false
}

// Scripts lists the script buckets observed anywhere in text. The slice
// follows scriptOrder, so equal inputs report equal slices
func Scripts(text string) []string {
	seen := make(map[string]bool, 2)
	for _, r := range text {
		if name, ok := ScriptOf(r); ok {
			seen[name] = true
		}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for _, name := range scriptOrder {
		if seen[name] {
			out = append(out, name)
		}
	}
	return out
}
