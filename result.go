package charsniff

import (
	"sort"

	"charsniff/internal/core/coherence"
)

// LanguageMatch is one plausible language for a match
type LanguageMatch = coherence.Match

// Match is one accepted encoding for the input
type Match struct {
	// Encoding is the canonical registry name
	Encoding string

	// MessRatio is the blended garbage score: 0 pristine, 1 hopeless
	MessRatio float64

	// BOM is true when the encoding was proven by a byte-order mark
	BOM bool

	// Languages lists plausible languages, best first. Empty when language
	// detection is disabled or the sample was too small to judge
	Languages []LanguageMatch

	// Scripts names the script buckets observed in the sampled decoding,
	// specific scripts before latin. Empty on signature and empty-input
	// matches, which decode nothing
	Scripts []string

	// Aliases is the equivalence set: alternate names for this encoding,
	// plus encodings whose sampled decoding was byte-identical
	Aliases []string

	priority int    // registry order, for tie-breaks
	decoded  string // sampled decode, for equivalence collapsing
}

// Confidence derives from the mess ratio; 1 means pristine
func (m *Match) Confidence() float64 { return 1 - m.MessRatio }

// Language returns the most plausible language, or ""
func (m *Match) Language() string {
	if len(m.Languages) == 0 {
		return ""
	}
	return m.Languages[0].Language
}

func (m *Match) topCoherence() float64 {
	if len(m.Languages) == 0 {
		return 0
	}
	return m.Languages[0].Score
}

// Result is the ordered outcome of one detection call
type Result struct {
	// Matches holds accepted encodings, most plausible first
	Matches []Match
}

// Best returns the top match, or nil when nothing was acceptable
func (r *Result) Best() *Match {
	if r == nil || len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// Empty reports the no-acceptable-encoding terminal state
func (r *Result) Empty() bool { return r == nil || len(r.Matches) == 0 }

// rank orders matches by mess ratio, then best coherence, then registry
// priority, and collapses matches whose sampled decodings are
// byte-identical. Identical decodings tie on ratio and coherence, so the
// ranked-first survivor is also the highest-priority name
func rank(matches []Match) []Match {
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := &matches[i], &matches[j]
		if a.MessRatio != b.MessRatio {
			return a.MessRatio < b.MessRatio
		}
		if ac, bc := a.topCoherence(), b.topCoherence(); ac != bc {
			return ac > bc
		}
		return a.priority < b.priority
	})

	byDecoded := make(map[string]int, len(matches))
	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		if m.decoded != "" {
			if i, dup := byDecoded[m.decoded]; dup {
				out[i].Aliases = append(out[i].Aliases, m.Encoding)
				out[i].Aliases = append(out[i].Aliases, m.Aliases...)
				continue
			}
			byDecoded[m.decoded] = len(out)
		}
		out = append(out, m)
	}
	return out
}
