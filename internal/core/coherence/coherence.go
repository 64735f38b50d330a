// Package coherence ranks plausible natural languages for decoded text.
//
// The judgment is frequency-rank agreement: fold the observed letters the
// same way the reference data was folded at load, take the most frequent
// ones, and compare their popularity order against each language's known
// order. Languages from scripts the text never uses are not considered.
package coherence

import (
	"sort"
	"unicode"

	"charsniff/internal/core/fold"
	"charsniff/internal/refdata"
)

// Match is one language judged compatible with the observed text
type Match struct {
	Language string
	Score    float64
}

const (
	// minLetters is the smallest observed sample worth judging
	minLetters = 16

	// topLetters caps how many observed letters rank against a reference
	topLetters = 32

	// cutoff drops languages whose agreement is no better than bare
	// letter overlap
	cutoff = 0.25
)

type observed struct {
	r rune
	n int
}

// Score ranks the pack's languages against text, best first. Ties sort by
// language name so equal inputs always produce equal output. Too little
// letter material returns nil
func Score(text string, pack *refdata.Pack) []Match {
	counts := make(map[rune]int)
	scripts := make(map[string]bool)
	folded := make(map[rune]rune)
	total := 0

	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		f, ok := folded[r]
		if !ok {
			f = fold.Rune(r)
			folded[r] = f
		}
		script, ok := refdata.ScriptOf(f)
		if !ok {
			continue
		}
		counts[f]++
		scripts[script] = true
		total++
	}
	if total < minLetters {
		return nil
	}

	top := topByCount(counts)

	var out []Match
	for i := range pack.Languages {
		lang := &pack.Languages[i]
		if !sharesScript(lang, scripts) {
			continue
		}
		if s := agreement(top, lang); s >= cutoff {
			out = append(out, Match{Language: lang.Name, Score: s})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Language < out[j].Language
	})
	return out
}

func topByCount(counts map[rune]int) []observed {
	top := make([]observed, 0, len(counts))
	for r, n := range counts {
		top = append(top, observed{r: r, n: n})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].n != top[j].n {
			return top[i].n > top[j].n
		}
		return top[i].r < top[j].r
	})
	if len(top) > topLetters {
		top = top[:topLetters]
	}
	return top
}

func sharesScript(lang *refdata.Language, seen map[string]bool) bool {
	for _, s := range lang.Scripts {
		if seen[s] {
			return true
		}
	}
	return false
}

// agreement weighs the observed letters by frequency rank; each letter
// scores by how close its observed rank sits to its reference rank, and
// letters the language does not use at all score zero
func agreement(top []observed, lang *refdata.Language) float64 {
	var sum, den float64
	for i, o := range top {
		w := float64(topLetters - i)
		den += w
		ref, ok := lang.Rank(o.r)
		if !ok {
			continue
		}
		sum += w * proximity(i, ref)
	}
	if den == 0 {
		return 0
	}
	return sum / den
}

func proximity(a, b int) float64 {
	d := a - b
	if d < 0 {
		d = -d
	}
	switch {
	case d <= 4:
		return 1
	case d <= 9:
		return 0.5
	default:
		return 0.25
	}
}
