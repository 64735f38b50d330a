package codec

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// DecodeSpan decodes one sampled window of the input. off is the window's
// absolute offset and total the input's full length: sequences split by an
// interior window edge are sampling artifacts and get trimmed, while a
// partial sequence at the input's own start or end is real truncation and
// fails the decode. ok=false means the bytes cannot belong to this
// encoding; an interior window may decode to the empty string with ok=true
func (e *Entry) DecodeSpan(b []byte, off, total int) (string, bool) {
	switch e.Kind {
	case KindASCII:
		return decodeASCII(b)
	case KindUTF8:
		return decodeUTF8(b, off, total)
	case KindUTF16:
		return decodeUTF16(b, off, total, e.le)
	case KindUTF32:
		return decodeUTF32(b, off, total, e.le)
	case KindSingleByte:
		return decodeSingleByte(b, e.cm)
	case KindMultiByte:
		return decodeMultiByte(b, e.enc)
	}
	return "", false
}

func decodeASCII(b []byte) (string, bool) {
	for _, c := range b {
		if c >= 0x80 {
			return "", false
		}
	}
	return string(b), true
}

// decodeUTF8 validates strictly after trimming the partial runes an
// interior window edge may have cut through. At the input's start a
// continuation byte has no rune to belong to, and at the input's end an
// unfinished rune means the data itself is truncated; both fail
func decodeUTF8(b []byte, off, total int) (string, bool) {
	end := off + len(b)
	if off > 0 {
		for i := 0; i < 3 && len(b) > 0 && b[0]&0xC0 == 0x80; i++ {
			b = b[1:]
		}
	}
	if n := trailingPartial(b); n > 0 {
		if end == total {
			return "", false
		}
		b = b[:len(b)-n]
	}
	if !utf8.Valid(b) {
		return "", false
	}
	return string(b), true
}

// trailingPartial returns how many bytes of an unfinished multi-byte rune
// hang off the end of b
func trailingPartial(b []byte) int {
	n := len(b)
	for back := 1; back <= 3 && back <= n; back++ {
		c := b[n-back]
		if c&0xC0 == 0x80 {
			continue // continuation, keep looking for the start byte
		}
		var want int
		switch {
		case c&0x80 == 0x00:
			want = 1
		case c&0xE0 == 0xC0:
			want = 2
		case c&0xF0 == 0xE0:
			want = 3
		case c&0xF8 == 0xF0:
			want = 4
		default:
			return 0 // invalid start byte, leave it for Valid to reject
		}
		if want > back {
			return back
		}
		return 0
	}
	return 0
}

func decodeUTF16(b []byte, off, total int, le bool) (string, bool) {
	end := off + len(b)
	if skip := (2 - off%2) % 2; skip > 0 {
		if len(b) <= skip {
			return "", true
		}
		b = b[skip:]
	}
	if len(b)%2 != 0 {
		if end == total {
			return "", false
		}
		b = b[:len(b)-1]
	}
	units := len(b) / 2

	unit := func(i int) uint16 {
		if le {
			return uint16(b[2*i]) | uint16(b[2*i+1])<<8
		}
		return uint16(b[2*i])<<8 | uint16(b[2*i+1])
	}

	var sb strings.Builder
	sb.Grow(len(b))
	i := 0
	// a low surrogate on an interior window edge is a pair the sampler
	// split; at the input's start it is simply invalid
	if units > 0 && isLowSurrogate(unit(0)) {
		if off == 0 {
			return "", false
		}
		i = 1
	}
	for ; i < units; i++ {
		u := unit(i)
		switch {
		case isHighSurrogate(u):
			if i+1 < units && isLowSurrogate(unit(i+1)) {
				sb.WriteRune(combineSurrogates(u, unit(i+1)))
				i++
				continue
			}
			if i+1 == units {
				if end == total {
					return "", false
				}
				// pair split by the window end
				continue
			}
			return "", false
		case isLowSurrogate(u):
			return "", false
		default:
			sb.WriteRune(rune(u))
		}
	}
	return sb.String(), true
}

func isHighSurrogate(u uint16) bool { return u >= 0xD800 && u < 0xDC00 }
func isLowSurrogate(u uint16) bool  { return u >= 0xDC00 && u < 0xE000 }

func combineSurrogates(hi, lo uint16) rune {
	return 0x10000 + (rune(hi)-0xD800)<<10 + (rune(lo) - 0xDC00)
}

func decodeUTF32(b []byte, off, total int, le bool) (string, bool) {
	end := off + len(b)
	if skip := (4 - off%4) % 4; skip > 0 {
		if len(b) <= skip {
			return "", true
		}
		b = b[skip:]
	}
	if rem := len(b) % 4; rem > 0 {
		if end == total {
			return "", false
		}
		b = b[:len(b)-rem]
	}

	var sb strings.Builder
	sb.Grow(len(b))
	for i := 0; i+4 <= len(b); i += 4 {
		var v uint32
		if le {
			v = uint32(b[i]) | uint32(b[i+1])<<8 | uint32(b[i+2])<<16 | uint32(b[i+3])<<24
		} else {
			v = uint32(b[i])<<24 | uint32(b[i+1])<<16 | uint32(b[i+2])<<8 | uint32(b[i+3])
		}
		if v > 0x10FFFF || (v >= 0xD800 && v < 0xE000) {
			return "", false
		}
		sb.WriteRune(rune(v))
	}
	return sb.String(), true
}

// decodeSingleByte is strict: one unmapped byte rejects the candidate
func decodeSingleByte(b []byte, cm *charmap.Charmap) (string, bool) {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		r := cm.DecodeByte(c)
		if r == utf8.RuneError {
			return "", false
		}
		sb.WriteRune(r)
	}
	return sb.String(), true
}

// decodeMultiByte is lenient: the x/text CJK decoders substitute U+FFFD for
// broken sequences, and the mess engine prices those substitutions
func decodeMultiByte(b []byte, enc encoding.Encoding) (string, bool) {
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", false
	}
	return string(out), true
}
