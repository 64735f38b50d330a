// Package codec holds the encoding registry the detector trials candidates
// from: canonical names, alias classes, per-kind decoders, and the fixed
// priority order used for ranking ties
package codec

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// Kind selects the decode strategy for an entry
type Kind uint8

const (
	KindASCII Kind = iota
	KindUTF8
	KindUTF16
	KindUTF32
	KindSingleByte
	KindMultiByte
)

// smallInputThreshold is the input size in bytes below which the selector
// narrows to the curated subset
const smallInputThreshold = 100

// Entry is one trialable encoding
type Entry struct {
	Name     string   // canonical name
	Aliases  []string // alias class, canonical excluded
	Kind     Kind
	Priority int      // registry position, lower tried first
	Scripts  []string // dominant non-ASCII scripts, empty = universal
	Small    bool     // member of the curated small-input subset

	le  bool              // KindUTF16/KindUTF32 byte order
	cm  *charmap.Charmap  // KindSingleByte
	enc encoding.Encoding // KindMultiByte
}

var latin = []string{"latin"}
var cyrillic = []string{"cyrillic"}

// registry order is the trial and tie-break order: commonly-correct
// encodings first so the early-stop policy pays off
var registry = []Entry{
	{Name: "ascii", Kind: KindASCII, Small: true, Scripts: latin,
		Aliases: []string{"us-ascii", "646", "ansi_x3.4-1968"}},
	{Name: "utf-8", Kind: KindUTF8, Small: true,
		Aliases: []string{"utf8", "u8", "cp65001"}},
	{Name: "utf-16le", Kind: KindUTF16, le: true, Small: true,
		Aliases: []string{"utf-16", "utf16", "u16", "unicode", "ucs-2le"}},
	{Name: "utf-16be", Kind: KindUTF16, Small: true,
		Aliases: []string{"ucs-2be"}},
	{Name: "utf-32le", Kind: KindUTF32, le: true,
		Aliases: []string{"utf-32", "utf32", "u32", "ucs-4le"}},
	{Name: "utf-32be", Kind: KindUTF32,
		Aliases: []string{"ucs-4be"}},

	{Name: "windows-1252", Kind: KindSingleByte, cm: charmap.Windows1252, Small: true, Scripts: latin,
		Aliases: []string{"cp1252"}},
	{Name: "iso-8859-1", Kind: KindSingleByte, cm: charmap.ISO8859_1, Small: true, Scripts: latin,
		Aliases: []string{"latin1", "l1", "cp819", "ibm819"}},
	{Name: "iso-8859-15", Kind: KindSingleByte, cm: charmap.ISO8859_15, Small: true, Scripts: latin,
		Aliases: []string{"latin9", "l9"}},
	{Name: "windows-1250", Kind: KindSingleByte, cm: charmap.Windows1250, Small: true, Scripts: latin,
		Aliases: []string{"cp1250"}},
	{Name: "iso-8859-2", Kind: KindSingleByte, cm: charmap.ISO8859_2, Small: true, Scripts: latin,
		Aliases: []string{"latin2", "l2"}},

	{Name: "windows-1251", Kind: KindSingleByte, cm: charmap.Windows1251, Small: true, Scripts: cyrillic,
		Aliases: []string{"cp1251"}},
	{Name: "koi8-r", Kind: KindSingleByte, cm: charmap.KOI8R, Small: true, Scripts: cyrillic,
		Aliases: []string{"koi8r", "cskoi8r", "cp20866"}},
	{Name: "iso-8859-5", Kind: KindSingleByte, cm: charmap.ISO8859_5, Small: true, Scripts: cyrillic,
		Aliases: []string{"cyrillic"}},
	{Name: "cp866", Kind: KindSingleByte, cm: charmap.CodePage866, Small: true, Scripts: cyrillic,
		Aliases: []string{"ibm866", "866"}},
	{Name: "koi8-u", Kind: KindSingleByte, cm: charmap.KOI8U, Small: true, Scripts: cyrillic,
		Aliases: []string{"koi8u", "cp21866"}},
	{Name: "mac-cyrillic", Kind: KindSingleByte, cm: charmap.MacintoshCyrillic, Small: true, Scripts: cyrillic,
		Aliases: []string{"x-mac-cyrillic", "maccyrillic", "cp10007"}},
	{Name: "cp855", Kind: KindSingleByte, cm: charmap.CodePage855, Scripts: cyrillic,
		Aliases: []string{"ibm855"}},

	{Name: "windows-1253", Kind: KindSingleByte, cm: charmap.Windows1253, Small: true, Scripts: []string{"greek"},
		Aliases: []string{"cp1253"}},
	{Name: "iso-8859-7", Kind: KindSingleByte, cm: charmap.ISO8859_7, Small: true, Scripts: []string{"greek"},
		Aliases: []string{"greek", "greek8", "elot-928"}},
	{Name: "windows-1254", Kind: KindSingleByte, cm: charmap.Windows1254, Small: true, Scripts: latin,
		Aliases: []string{"cp1254"}},
	{Name: "iso-8859-9", Kind: KindSingleByte, cm: charmap.ISO8859_9, Small: true, Scripts: latin,
		Aliases: []string{"latin5", "l5", "turkish"}},
	{Name: "windows-1255", Kind: KindSingleByte, cm: charmap.Windows1255, Small: true, Scripts: []string{"hebrew"},
		Aliases: []string{"cp1255"}},
	{Name: "iso-8859-8", Kind: KindSingleByte, cm: charmap.ISO8859_8, Small: true, Scripts: []string{"hebrew"},
		Aliases: []string{"hebrew"}},
	{Name: "windows-1256", Kind: KindSingleByte, cm: charmap.Windows1256, Small: true, Scripts: []string{"arabic"},
		Aliases: []string{"cp1256"}},
	{Name: "iso-8859-6", Kind: KindSingleByte, cm: charmap.ISO8859_6, Small: true, Scripts: []string{"arabic"},
		Aliases: []string{"arabic"}},
	{Name: "windows-1257", Kind: KindSingleByte, cm: charmap.Windows1257, Small: true, Scripts: latin,
		Aliases: []string{"cp1257"}},
	{Name: "iso-8859-13", Kind: KindSingleByte, cm: charmap.ISO8859_13, Small: true, Scripts: latin,
		Aliases: []string{"latin7", "l7"}},
	{Name: "windows-1258", Kind: KindSingleByte, cm: charmap.Windows1258, Small: true, Scripts: latin,
		Aliases: []string{"cp1258"}},
	{Name: "windows-874", Kind: KindSingleByte, cm: charmap.Windows874, Small: true, Scripts: []string{"thai"},
		Aliases: []string{"cp874", "tis-620", "iso-8859-11"}},

	{Name: "gb18030", Kind: KindMultiByte, enc: simplifiedchinese.GB18030, Small: true, Scripts: []string{"han"},
		Aliases: []string{"gb-18030", "gb18030-2000"}},
	{Name: "gbk", Kind: KindMultiByte, enc: simplifiedchinese.GBK, Small: true, Scripts: []string{"han"},
		Aliases: []string{"cp936", "936", "ms936"}},
	{Name: "big5", Kind: KindMultiByte, enc: traditionalchinese.Big5, Small: true, Scripts: []string{"han"},
		Aliases: []string{"big5-tw", "cp950", "csbig5"}},
	{Name: "euc-jp", Kind: KindMultiByte, enc: japanese.EUCJP, Small: true, Scripts: []string{"kana", "han"},
		Aliases: []string{"eucjp", "ujis", "x-euc-jp"}},
	{Name: "shift_jis", Kind: KindMultiByte, enc: japanese.ShiftJIS, Small: true, Scripts: []string{"kana", "han"},
		Aliases: []string{"sjis", "cp932", "ms932", "windows-31j", "ms-kanji"}},
	{Name: "euc-kr", Kind: KindMultiByte, enc: korean.EUCKR, Small: true, Scripts: []string{"hangul", "han"},
		Aliases: []string{"euckr", "cp949", "uhc", "ks_c_5601-1987", "korean"}},

	{Name: "iso-8859-3", Kind: KindSingleByte, cm: charmap.ISO8859_3, Scripts: latin,
		Aliases: []string{"latin3", "l3"}},
	{Name: "iso-8859-4", Kind: KindSingleByte, cm: charmap.ISO8859_4, Scripts: latin,
		Aliases: []string{"latin4", "l4"}},
	{Name: "iso-8859-10", Kind: KindSingleByte, cm: charmap.ISO8859_10, Scripts: latin,
		Aliases: []string{"latin6", "l6"}},
	{Name: "iso-8859-14", Kind: KindSingleByte, cm: charmap.ISO8859_14, Scripts: latin,
		Aliases: []string{"latin8", "l8", "celtic"}},
	{Name: "iso-8859-16", Kind: KindSingleByte, cm: charmap.ISO8859_16, Scripts: latin,
		Aliases: []string{"latin10", "l10"}},
	{Name: "macintosh", Kind: KindSingleByte, cm: charmap.Macintosh, Small: true, Scripts: latin,
		Aliases: []string{"mac-roman", "macroman", "cp10000"}},
	{Name: "cp437", Kind: KindSingleByte, cm: charmap.CodePage437, Small: true, Scripts: latin,
		Aliases: []string{"ibm437", "437"}},
	{Name: "cp850", Kind: KindSingleByte, cm: charmap.CodePage850, Small: true, Scripts: latin,
		Aliases: []string{"ibm850"}},
	{Name: "cp852", Kind: KindSingleByte, cm: charmap.CodePage852, Scripts: latin,
		Aliases: []string{"ibm852"}},
	{Name: "cp858", Kind: KindSingleByte, cm: charmap.CodePage858, Scripts: latin,
		Aliases: []string{"ibm858"}},
	{Name: "cp860", Kind: KindSingleByte, cm: charmap.CodePage860, Scripts: latin,
		Aliases: []string{"ibm860"}},
	{Name: "cp862", Kind: KindSingleByte, cm: charmap.CodePage862, Scripts: []string{"hebrew"},
		Aliases: []string{"ibm862"}},
	{Name: "cp863", Kind: KindSingleByte, cm: charmap.CodePage863, Scripts: latin,
		Aliases: []string{"ibm863"}},
	{Name: "cp865", Kind: KindSingleByte, cm: charmap.CodePage865, Scripts: latin,
		Aliases: []string{"ibm865"}},
	{Name: "cp037", Kind: KindSingleByte, cm: charmap.CodePage037, Scripts: latin,
		Aliases: []string{"ibm037", "ebcdic-cp-us"}},

	{Name: "iso-2022-jp", Kind: KindMultiByte, enc: japanese.ISO2022JP, Scripts: []string{"kana", "han"},
		Aliases: []string{"csiso2022jp"}},
	{Name: "hz-gb-2312", Kind: KindMultiByte, enc: simplifiedchinese.HZGB2312, Scripts: []string{"han"},
		Aliases: []string{"hz", "hzgb"}},
}

var nameIndex map[string]*Entry

func init() {
	nameIndex = make(map[string]*Entry, len(registry)*4)
	for i := range registry {
		e := &registry[i]
		e.Priority = i
		for _, name := range append([]string{e.Name}, e.Aliases...) {
			key := normalizeName(name)
			if key == "" {
				panic(fmt.Sprintf("codec: empty normalized name on %s", e.Name))
			}
			if prev, dup := nameIndex[key]; dup && prev != e {
				panic(fmt.Sprintf("codec: alias %q claimed by both %s and %s", name, prev.Name, e.Name))
			}
			nameIndex[key] = e
		}
	}
}

// normalizeName lowercases and strips everything but letters and digits, so
// "UTF-8", "utf_8" and "utf8" address the same entry
func normalizeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Lookup resolves a canonical name or any alias to its registry entry
func Lookup(name string) (*Entry, bool) {
	e, ok := nameIndex[normalizeName(name)]
	return e, ok
}

// Registry returns all entries in trial order
func Registry() []*Entry {
	out := make([]*Entry, len(registry))
	for i := range registry {
		out[i] = &registry[i]
	}
	return out
}

// Select picks the candidate entries for an input of n bytes.
// Isolate narrows to exactly the named entries; exclude is always
// subtracted; unresolvable names are reported back, never fatal.
// Without isolation, small inputs use the curated subset
func Select(n int, isolate, exclude []string) (entries []*Entry, unknown []string) {
	excluded := make(map[*Entry]struct{}, len(exclude))
	for _, name := range exclude {
		e, ok := Lookup(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		excluded[e] = struct{}{}
	}

	if len(isolate) > 0 {
		wanted := make(map[*Entry]struct{}, len(isolate))
		for _, name := range isolate {
			e, ok := Lookup(name)
			if !ok {
				unknown = append(unknown, name)
				continue
			}
			wanted[e] = struct{}{}
		}
		for i := range registry {
			e := &registry[i]
			if _, ok := wanted[e]; !ok {
				continue
			}
			if _, skip := excluded[e]; skip {
				continue
			}
			entries = append(entries, e)
		}
		return entries, unknown
	}

	small := n < smallInputThreshold
	for i := range registry {
		e := &registry[i]
		if small && !e.Small {
			continue
		}
		if _, skip := excluded[e]; skip {
			continue
		}
		entries = append(entries, e)
	}
	return entries, unknown
}
