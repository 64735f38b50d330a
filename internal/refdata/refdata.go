// Package refdata loads and compiles the language reference data from the
// embedded frequencies.json. It prepares per-language letter rank tables for
// the coherence scorer
package refdata

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"charsniff/internal/core/fold"

	jsoniter "github.com/json-iterator/go"
)

//go:embed frequencies.json
var embedded []byte

// unmarshal is a seam so tests can force parse failures
var unmarshal = jsoniter.Unmarshal

type rawLanguage struct {
	Name    string   `json:"name"`
	Scripts []string `json:"scripts"`
	Letters string   `json:"letters"`
}

type rawPack struct {
	Version   int           `json:"version"`
	Languages []rawLanguage `json:"languages"`
}

// ValidScript reports whether s names a known script bucket
func ValidScript(s string) bool {
	_, ok := scriptTables[s]
	return ok
}

// Language is one compiled reference signature: its most frequent letters in
// descending frequency order, folded the same way observed text is folded
type Language struct {
	Name    string
	Scripts []string
	Letters []rune // folded, deduped, most frequent first

	rank map[rune]int // letter -> position in Letters
}

// Rank returns the frequency position of a folded letter (0 = most frequent)
func (l *Language) Rank(r rune) (int, bool) {
	i, ok := l.rank[r]
	return i, ok
}

// HasScript reports whether the language writes in the given script bucket
func (l *Language) HasScript(s string) bool {
	for _, sc := range l.Scripts {
		if sc == s {
			return true
		}
	}
	return false
}

// Pack represents the compiled reference data, immutable after Load
type Pack struct {
	Version   int
	Languages []Language

	byScript map[string][]int // script -> indexes into Languages
	byName   map[string]int
}

// ByScript returns the languages written in the given script bucket
func (p *Pack) ByScript(script string) []*Language {
	idx := p.byScript[script]
	if len(idx) == 0 {
		return nil
	}
	out := make([]*Language, 0, len(idx))
	for _, i := range idx {
		out = append(out, &p.Languages[i])
	}
	return out
}

// ByName returns the named language, or nil
func (p *Pack) ByName(name string) *Language {
	i, ok := p.byName[name]
	if !ok {
		return nil
	}
	return &p.Languages[i]
}

// Load returns the compiled pack from the embedded frequencies.json
func Load() (*Pack, error) {
	var rp rawPack
	if err := unmarshal(embedded, &rp); err != nil {
		return nil, fmt.Errorf("refdata: parse frequencies.json: %w", err)
	}
	if rp.Version != 1 {
		return nil, fmt.Errorf("refdata: unsupported frequencies.json version %d (want 1)", rp.Version)
	}
	if len(rp.Languages) == 0 {
		return nil, fmt.Errorf("refdata: no languages")
	}

	p := &Pack{
		Version:  rp.Version,
		byScript: make(map[string][]int, len(scriptTables)),
		byName:   make(map[string]int, len(rp.Languages)),
	}

	seenNames := make(map[string]struct{}, len(rp.Languages))
	for _, rl := range rp.Languages {
		name := strings.TrimSpace(rl.Name)
		if name == "" {
			return nil, fmt.Errorf("refdata: language with empty name")
		}
		if _, dup := seenNames[name]; dup {
			return nil, fmt.Errorf("refdata: duplicate language %q", name)
		}
		seenNames[name] = struct{}{}

		if len(rl.Scripts) == 0 {
			return nil, fmt.Errorf("refdata: %s: no scripts", name)
		}
		for _, sc := range rl.Scripts {
			if !ValidScript(sc) {
				return nil, fmt.Errorf("refdata: %s: unknown script %q", name, sc)
			}
		}

		lang, err := compileLanguage(name, rl)
		if err != nil {
			return nil, err
		}
		p.Languages = append(p.Languages, lang)
	}

	// Deterministic iteration for tests/debug
	sort.Slice(p.Languages, func(i, j int) bool {
		return p.Languages[i].Name < p.Languages[j].Name
	})
	for i := range p.Languages {
		p.byName[p.Languages[i].Name] = i
		for _, sc := range p.Languages[i].Scripts {
			p.byScript[sc] = append(p.byScript[sc], i)
		}
	}

	return p, nil
}

// compileLanguage folds the raw letter string and builds the rank table.
// Folding can merge letters (accents strip, Hangul syllables collapse to
// their leading jamo); the first occurrence keeps the rank
func compileLanguage(name string, rl rawLanguage) (Language, error) {
	lang := Language{
		Name:    name,
		Scripts: rl.Scripts,
		rank:    make(map[rune]int, 32),
	}

	seenRaw := make(map[rune]struct{}, 40)
	for _, raw := range rl.Letters {
		if _, dup := seenRaw[raw]; dup {
			return Language{}, fmt.Errorf("refdata: %s: duplicate letter %q", name, raw)
		}
		seenRaw[raw] = struct{}{}

		folded := fold.Rune(raw)
		if _, merged := lang.rank[folded]; merged {
			continue
		}
		lang.rank[folded] = len(lang.Letters)
		lang.Letters = append(lang.Letters, folded)
	}

	if len(lang.Letters) < 10 {
		return Language{}, fmt.Errorf("refdata: %s: only %d distinct letters after folding (want >= 10)", name, len(lang.Letters))
	}
	return lang, nil
}

var (
	defaultOnce sync.Once
	defaultPack *Pack
	defaultErr  error
)

// Default returns the process-wide pack, loading it on first use.
// The pack is immutable and safe for concurrent reads
func Default() (*Pack, error) {
	defaultOnce.Do(func() {
		defaultPack, defaultErr = Load()
	})
	return defaultPack, defaultErr
}
