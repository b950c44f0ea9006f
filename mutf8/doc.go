// Package mutf8 implements the text encoding used for tag names and
// string payloads.
//
// The default Modified mode is Java's "modified UTF-8": the NUL code point
// is written as the overlong pair C0 80 so that encoded text never contains
// a zero byte, and code points above U+FFFF are split into a UTF-16
// surrogate pair whose halves are each written as a three byte sequence
// (ED A0..AF xx, ED B0..BF xx). PassThrough mode uses plain UTF-8.
//
//	b := mutf8.Encode("\x00😀")  // c0 80 ed a0 bd ed b8 80
//	s := mutf8.Decode(b)         // "\x00😀"
//
// Decode is lenient: malformed input never fails, it yields U+FFFD for the
// offending bytes. For every valid UTF-8 string s, Decode(Encode(s)) == s.
package mutf8
