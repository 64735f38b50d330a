package mess

import (
	"sort"
	"unicode"
	"unicode/utf8"

	"charsniff/internal/core/fold"
	"charsniff/internal/refdata"
)

// rule is one mess heuristic, fed rune by rune across all sampled windows.
// boundary marks a window edge so word- and run-level state never bridges
// two distant parts of the input
type rule interface {
	feed(r rune)
	boundary()
	ratio() float64
}

func safeDiv(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func clamp01(f float64) float64 {
	if f > 1 {
		return 1
	}
	return f
}

// unprintableRule prices control and invisible characters. Tab, LF and CR
// are ordinary text. The ratio is amplified eightfold before clamping:
// real prose carries essentially zero of these, so even a few percent is
// near-proof of a wrong table
type unprintableRule struct {
	total int
	bad   int
}

func (u *unprintableRule) feed(r rune) {
	u.total++
	if r == '\t' || r == '\n' || r == '\r' {
		return
	}
	if unicode.IsControl(r) || unicode.In(r, unicode.Cf, unicode.Zl, unicode.Zp) {
		u.bad++
	}
}
func (u *unprintableRule) boundary()      {}
func (u *unprintableRule) ratio() float64 { return clamp01(8 * safeDiv(u.bad, u.total)) }

// replacementRule prices U+FFFD, what the lenient multi-byte decoders leave
// behind when a sequence cannot belong to the encoding. Amplified fourfold;
// window edges may split a legitimate sequence, so a trace amount stays
// cheap while any real density damns
type replacementRule struct {
	total int
	bad   int
}

func (p *replacementRule) feed(r rune) {
	p.total++
	if r == utf8.RuneError {
		p.bad++
	}
}
func (p *replacementRule) boundary()      {}
func (p *replacementRule) ratio() float64 { return clamp01(4 * safeDiv(p.bad, p.total)) }

// runLengthRule prices long runs of one repeated character. ASCII
// alphanumerics and common separator runs are ordinary (dashes under a
// heading, padding dots); anything else repeating five plus times reads
// like a stuck decode
type runLengthRule struct {
	total   int
	flagged int

	cur    rune
	runLen int
}

const runLengthMin = 5

func runExempt(r rune) bool {
	switch {
	case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	}
	switch r {
	case '-', '=', '_', '*', '.', '#', '~', '+', ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

func (l *runLengthRule) feed(r rune) {
	l.total++
	if r == l.cur {
		l.runLen++
		return
	}
	l.endRun()
	l.cur = r
	l.runLen = 1
}

func (l *runLengthRule) endRun() {
	if l.runLen >= runLengthMin && !runExempt(l.cur) {
		l.flagged += l.runLen
	}
	l.runLen = 0
	l.cur = 0
}

func (l *runLengthRule) boundary() { l.endRun() }

func (l *runLengthRule) ratio() float64 {
	flagged := l.flagged
	if l.runLen >= runLengthMin && !runExempt(l.cur) {
		flagged += l.runLen
	}
	return safeDiv(flagged, l.total)
}

// symbolRule prices symbol and punctuation density beyond what prose
// plausibly carries
type symbolRule struct {
	letters int
	digits  int
	symbols int
	others  int
}

func (s *symbolRule) feed(r rune) {
	switch {
	case unicode.IsLetter(r):
		s.letters++
	case unicode.IsDigit(r) || unicode.IsNumber(r):
		s.digits++
	case unicode.IsSpace(r):
	case unicode.IsPunct(r) || unicode.IsSymbol(r):
		s.symbols++
	default:
		s.others++
	}
}
func (s *symbolRule) boundary() {}

func (s *symbolRule) ratio() float64 {
	nonSpace := s.letters + s.digits + s.symbols + s.others
	if nonSpace < 8 {
		return 0
	}
	frac := float64(s.symbols) / float64(nonSpace)
	excess := (frac - 0.30) / 0.70
	if excess < 0 {
		return 0
	}
	if excess > 1 {
		return 1
	}
	return excess
}

// whitespaceRule prices anomalous whitespace: interior multi-space runs,
// space squeezed before closing punctuation, and no-break-space floods
// (the signature of utf-8 read through a latin single-byte table)
type whitespaceRule struct {
	total  int
	events int

	spaceRun  int
	prevSpace bool
}

func closingPunct(r rune) bool {
	switch r {
	case '.', ',', ';', ':', '!', '?', ')', ']', '}', '»':
		return true
	}
	return false
}

func (w *whitespaceRule) feed(r rune) {
	w.total++
	if r == ' ' {
		w.spaceRun++
		if w.spaceRun > 2 {
			w.events++
		}
		w.prevSpace = true
		return
	}
	if r == '\u00a0' || r == '\u202f' {
		w.events++
	}
	if w.prevSpace && closingPunct(r) {
		w.events++
	}
	w.spaceRun = 0
	w.prevSpace = false
}

func (w *whitespaceRule) boundary() {
	w.spaceRun = 0
	w.prevSpace = false
}
func (w *whitespaceRule) ratio() float64 { return safeDiv(w.events, w.total) }

// scriptMixRule prices single-word anomalies: letters from unrelated
// scripts inside one word, case flipping back and forth the way random
// letter soup does, or accent-saturated latin words. Han combines
// legitimately with kana (Japanese) and hangul (Korean)
type scriptMixRule struct {
	words      int
	suspicious int

	mask      uint16
	caseFlips int
	prevCase  int8
	letters   int
	accented  int
	inWord    bool
}

var scriptBits = map[string]uint16{
	"latin":    1 << 0,
	"cyrillic": 1 << 1,
	"greek":    1 << 2,
	"hebrew":   1 << 3,
	"arabic":   1 << 4,
	"hangul":   1 << 5,
	"kana":     1 << 6,
	"han":      1 << 7,
	"thai":     1 << 8,
}

const (
	bitHangul = 1 << 5
	bitKana   = 1 << 6
	bitHan    = 1 << 7
)

const caseFlipMax = 3

// Cyrillic or Greek bytes pushed through a latin table come out with an
// accent on nearly every letter; real French or German never gets close.
// The bar sits just above 1/3 so "brûlée" (2 of 6) stays legitimate
const (
	accentMinLetters = 3
	accentHeavyRatio = 0.34
)

func suspiciousMask(mask uint16) bool {
	if mask&(mask-1) == 0 {
		return false // zero or one script
	}
	switch mask {
	case bitHan | bitKana, bitHan | bitHangul:
		return false
	}
	return true
}

func (m *scriptMixRule) feed(r rune) {
	if unicode.In(r, unicode.Mn) {
		return // marks ride along with their base letter
	}
	if !unicode.IsLetter(r) {
		m.endWord()
		return
	}
	m.inWord = true
	m.letters++
	if name, ok := refdata.ScriptOf(r); ok {
		m.mask |= scriptBits[name]
		if name == "latin" && r >= 0x80 && fold.Rune(r) != unicode.ToLower(r) {
			m.accented++
		}
	}
	var c int8
	switch {
	case unicode.IsUpper(r):
		c = 2
	case unicode.IsLower(r):
		c = 1
	}
	if c != 0 {
		if m.prevCase != 0 && c != m.prevCase {
			m.caseFlips++
		}
		m.prevCase = c
	}
}

func (m *scriptMixRule) wordSuspicious() bool {
	if suspiciousMask(m.mask) || m.caseFlips >= caseFlipMax {
		return true
	}
	return m.letters >= accentMinLetters &&
		float64(m.accented) >= accentHeavyRatio*float64(m.letters)
}

func (m *scriptMixRule) endWord() {
	if !m.inWord {
		return
	}
	m.words++
	if m.wordSuspicious() {
		m.suspicious++
	}
	m.mask = 0
	m.caseFlips = 0
	m.prevCase = 0
	m.letters = 0
	m.accented = 0
	m.inWord = false
}

func (m *scriptMixRule) boundary() { m.endWord() }

func (m *scriptMixRule) ratio() float64 {
	words, suspicious := m.words, m.suspicious
	if m.inWord {
		words++
		if m.wordSuspicious() {
			suspicious++
		}
	}
	return safeDiv(suspicious, words)
}

// scriptHopRule prices adjacent letters that jump between unrelated
// scripts. Unlike scriptMixRule it resolves every unicode script, so
// letter soup scattered across exotic alphabets costs the same as
// latin-cyrillic shuffling. Spaces and punctuation cut the chain the way
// they cut words; digits, marks and other non-letters neither bridge nor
// break it. Han pairs legitimately with kana and with hangul
type scriptHopRule struct {
	letters int
	hops    int

	prev *scriptTable
}

type scriptTable struct {
	name string
	rt   *unicode.RangeTable
	// Common and Inherited claim no script of their own
	neutral bool
}

// scriptTables is unicode.Scripts in deterministic order
var scriptTables = func() []scriptTable {
	names := make([]string, 0, len(unicode.Scripts))
	for name := range unicode.Scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	tabs := make([]scriptTable, len(names))
	for i, name := range names {
		tabs[i] = scriptTable{
			name:    name,
			rt:      unicode.Scripts[name],
			neutral: name == "Common" || name == "Inherited",
		}
	}
	return tabs
}()

// scriptOf resolves the unicode script of r; scripts partition the
// assigned code points, so at most one table matches
func scriptOf(r rune) *scriptTable {
	for i := range scriptTables {
		if unicode.Is(scriptTables[i].rt, r) {
			return &scriptTables[i]
		}
	}
	return nil
}

// kindredScripts reports script pairs that share words in real text:
// kanji with either kana, and hanja with hangul
func kindredScripts(a, b string) bool {
	if a == b {
		return true
	}
	if b < a {
		a, b = b, a
	}
	switch a {
	case "Han":
		return b == "Hangul" || b == "Hiragana" || b == "Katakana"
	case "Hiragana":
		return b == "Katakana"
	}
	return false
}

func (h *scriptHopRule) feed(r rune) {
	if unicode.IsSpace(r) || unicode.IsPunct(r) {
		h.prev = nil
		return
	}
	if !unicode.IsLetter(r) {
		return
	}
	if h.prev != nil && unicode.Is(h.prev.rt, r) {
		h.letters++ // stayed in the previous script
		return
	}
	t := scriptOf(r)
	if t == nil || t.neutral {
		return
	}
	h.letters++
	if h.prev != nil && !kindredScripts(h.prev.name, t.name) {
		h.hops++
	}
	h.prev = t
}

func (h *scriptHopRule) boundary() { h.prev = nil }

// a hop implicates both of its neighbours
func (h *scriptHopRule) ratio() float64 { return clamp01(2 * safeDiv(h.hops, h.letters)) }

// archaicRule prices characters real prose rarely carries: private use and
// unassigned code points, the specials block, box-drawing noise, rare CJK
// extension ideographs, and stacked combining marks
type archaicRule struct {
	total  int
	bad    int
	prevMn bool
}

func (a *archaicRule) feed(r rune) {
	a.total++
	switch {
	case unicode.In(r, unicode.Co, unicode.Cs):
		a.bad++
	case r >= 0xFFF0 && r <= 0xFFFF && r != utf8.RuneError:
		a.bad++
	case r >= 0x2500 && r < 0x25A0:
		a.bad++
	case r >= 0x3400 && r <= 0x4DBF:
		// extension A: everyday CJK text stays in the unified block,
		// misread byte pairs land here constantly
		a.bad++
	case !unicode.IsGraphic(r) && !unicode.IsControl(r) && !unicode.In(r, unicode.Cf):
		a.bad++ // unassigned
	}
	if unicode.In(r, unicode.Mn) {
		if a.prevMn {
			a.bad++
		}
		a.prevMn = true
	} else {
		a.prevMn = false
	}
}
func (a *archaicRule) boundary()      { a.prevMn = false }
func (a *archaicRule) ratio() float64 { return safeDiv(a.bad, a.total) }
