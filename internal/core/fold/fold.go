// Package fold provides the deterministic letter folding shared by the
// coherence scorer and the reference data loader
// Pipeline order
// 1 Unicode NFKD decomposition
// 2 Case folding
// 3 Remove combining marks
// 4 Remove format chars ZWJ ZWNJ FEFF etc
package fold

import (
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		// order matters and mirrors the documented pipeline
		return transform.Chain(
			norm.NFKD,
			cases.Fold(),                       // unicode case folding
			runes.Remove(runes.In(unicode.Mn)), // strip combining marks
			runes.Remove(runes.In(unicode.Cf)), // strip format chars
		)
	},
}

// String returns the folded form of s following the pipeline described above
func String(s string) string {
	if s == "" {
		return ""
	}
	tr := chainPool.Get().(transform.Transformer)
	fs, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		// chain stages never fail on valid UTF-8; keep the input on the
		// off chance a malformed string slips through
		return s
	}
	return fs
}

// Rune folds a single letter to its base folded form. Letters that fold to
// multiple runes (ligatures, Turkish dotted I) keep the first; letters that
// fold away entirely (lone marks) come back unchanged
func Rune(r rune) rune {
	for _, fr := range String(string(r)) {
		return fr
	}
	return r
}
