// Package bomsig recognizes byte-order-mark prefixes that deterministically
// imply an encoding, ahead of any heuristic work
package bomsig

import "bytes"

// Signature is one recognized byte-order mark
type Signature struct {
	Encoding string // canonical codec name
	Mark     []byte
}

// table is checked in order, longest prefix first: the UTF-32 marks must be
// tested before the UTF-16 marks they extend, or FF FE 00 00 reads as
// UTF-16LE followed by a NUL
var table = []Signature{
	{Encoding: "utf-32be", Mark: []byte{0x00, 0x00, 0xFE, 0xFF}},
	{Encoding: "utf-32le", Mark: []byte{0xFF, 0xFE, 0x00, 0x00}},
	{Encoding: "gb18030", Mark: []byte{0x84, 0x31, 0x95, 0x33}},
	{Encoding: "utf-8", Mark: []byte{0xEF, 0xBB, 0xBF}},
	{Encoding: "utf-16be", Mark: []byte{0xFE, 0xFF}},
	{Encoding: "utf-16le", Mark: []byte{0xFF, 0xFE}},
}

// Detect reports the signature prefixing b, if any
func Detect(b []byte) (Signature, bool) {
	for _, sig := range table {
		if bytes.HasPrefix(b, sig.Mark) {
			return sig, true
		}
	}
	return Signature{}, false
}

// Strip returns b without the signature's mark
func (s Signature) Strip(b []byte) []byte {
	if len(s.Mark) == 0 || !bytes.HasPrefix(b, s.Mark) {
		return b
	}
	return b[len(s.Mark):]
}
