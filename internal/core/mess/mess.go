// Package mess scores decoded text for signs that it was read with the
// wrong character table.
//
// A battery of weighted rules each watches for one symptom: unprintable
// characters, replacement characters, repeated-rune runs, symbol floods,
// broken whitespace, mixed-script or case-chaotic words, letters hopping
// between unrelated scripts, and code points real prose never carries.
// Every rule reports a 0..1 ratio over what it saw; the engine blends
// them into one amplified mess ratio, also 0..1, where 0 is pristine and
// anything past a caller-chosen threshold means the candidate encoding
// is lying.
//
// Scoring is incremental. Windows of decoded text are fed one at a time
// and the blended ratio is readable after each, so a hopeless candidate
// is abandoned without decoding the rest of the input.
package mess

import (
	"iter"
	"strings"

	"charsniff/internal/core/codec"
	"charsniff/internal/core/sampler"
)

// amplification stretches the blended ratio so that a text tripping a
// minority of the battery still clears rejection thresholds
const amplification = 3.0

type weighted struct {
	w float64
	r rule
}

// Engine accumulates mess evidence across windows of decoded text.
// Not safe for concurrent use; each candidate trial owns its own
type Engine struct {
	battery []weighted
	sumW    float64
	chunks  int
}

// NewEngine builds the full rule battery. Weights reflect how damning
// each symptom is: replacement characters are near-proof of a wrong
// table, symbol density alone proves little
func NewEngine() *Engine {
	e := &Engine{}
	add := func(w float64, r rule) {
		e.battery = append(e.battery, weighted{w: w, r: r})
		e.sumW += w
	}
	add(2.5, &unprintableRule{})
	add(6.0, &replacementRule{})
	add(1.5, &runLengthRule{})
	add(1.0, &symbolRule{})
	add(0.8, &whitespaceRule{})
	add(2.0, &scriptMixRule{})
	add(2.2, &scriptHopRule{})
	add(1.8, &archaicRule{})
	return e
}

// Feed runs one window of decoded text through every rule. Windows are
// assumed non-adjacent, so per-word and per-run state is cut at the edge
func (e *Engine) Feed(text string) {
	for _, b := range e.battery {
		b.r.boundary()
	}
	for _, r := range text {
		for _, b := range e.battery {
			b.r.feed(r)
		}
	}
	e.chunks++
}

// Ratio blends the battery into the current mess ratio, clamped to 0..1.
// Safe to call between windows
func (e *Engine) Ratio() float64 {
	var sum float64
	for _, b := range e.battery {
		sum += b.w * b.r.ratio()
	}
	ratio := sum * amplification / e.sumW
	if ratio > 1 {
		return 1
	}
	return ratio
}

// Chunks reports how many windows have been fed
func (e *Engine) Chunks() int { return e.chunks }

// Report is the outcome of trialing one candidate encoding
type Report struct {
	// Ratio is the blended mess ratio at the point scoring stopped
	Ratio float64
	// Accepted is true when every window decoded and the final ratio
	// stayed at or under the threshold
	Accepted bool
	// Chunks counts the windows scored before stopping
	Chunks int
}

// Perfect reports a flawless trial, one that decoded everything with a
// zero mess ratio
func (r Report) Perfect() bool { return r.Accepted && r.Ratio == 0 }

// Score trials one candidate encoding over the sampled windows of input.
//
// Each window is decoded with the candidate's table and fed to a fresh
// engine. A window that cannot decode damns the candidate outright
// (ratio 1), and so do windows that collectively decode to nothing: an
// acceptance must rest on text actually seen. The trial also aborts as
// soon as the running ratio passes the threshold. On acceptance the
// second return carries the decoded windows joined by newlines, ready
// for language scoring; on rejection it is empty
func Score(entry *codec.Entry, input []byte, spans iter.Seq[sampler.Span], threshold float64) (Report, string) {
	eng := NewEngine()
	var decoded strings.Builder
	for sp := range spans {
		text, ok := entry.DecodeSpan(input[sp.Off:sp.End()], sp.Off, len(input))
		if !ok {
			return Report{Ratio: 1, Chunks: eng.Chunks()}, ""
		}
		eng.Feed(text)
		if decoded.Len() > 0 {
			decoded.WriteByte('\n')
		}
		decoded.WriteString(text)
		if eng.Ratio() > threshold {
			return Report{Ratio: eng.Ratio(), Chunks: eng.Chunks()}, ""
		}
	}
	if decoded.Len() == 0 {
		return Report{Ratio: 1, Chunks: eng.Chunks()}, ""
	}
	ratio := eng.Ratio()
	return Report{Ratio: ratio, Accepted: true, Chunks: eng.Chunks()}, decoded.String()
}
