package mutf8

import (
	"unicode/utf8"
)

// Mode selects how host strings map to wire bytes.
type Mode uint8

const (
	// Modified is the Java-style modified UTF-8 encoding: NUL becomes
	// C0 80 and supplementary characters become surrogate pairs.
	Modified Mode = iota
	// PassThrough writes the string's UTF-8 bytes unchanged.
	PassThrough
)

// String returns the mode name used in configuration files.
func (m Mode) String() string {
	switch m {
	case Modified:
		return "modified"
	case PassThrough:
		return "utf8"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode name as produced by Mode.String.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "modified", "mutf8", "":
		return Modified, true
	case "utf8", "utf-8", "passthrough":
		return PassThrough, true
	}
	return 0, false
}

// Encode transcodes s according to the mode.
func (m Mode) Encode(s string) []byte {
	if m == PassThrough {
		return []byte(s)
	}
	return Encode(s)
}

// AppendEncode appends the encoding of s to dst.
func (m Mode) AppendEncode(dst []byte, s string) []byte {
	if m == PassThrough {
		return append(dst, s...)
	}
	return AppendEncode(dst, s)
}

// EncodedLen returns the number of bytes Encode would produce.
func (m Mode) EncodedLen(s string) int {
	if m == PassThrough {
		return len(s)
	}
	return EncodedLen(s)
}

// Decode transcodes wire bytes back to a host string.
func (m Mode) Decode(b []byte) string {
	if m == PassThrough {
		return string(b)
	}
	return Decode(b)
}

const (
	surrSelf = 0x10000
	surr1    = 0xd800
	surr2    = 0xdc00
	surr3    = 0xe000
)

// Encode returns the modified UTF-8 encoding of s.
func Encode(s string) []byte {
	return AppendEncode(make([]byte, 0, EncodedLen(s)), s)
}

// EncodedLen returns the length of the modified UTF-8 encoding of s.
func EncodedLen(s string) int {
	n := 0
	for _, r := range s {
		switch {
		case r == 0:
			n += 2
		case r <= 0x7f:
			n++
		case r <= 0x7ff:
			n += 2
		case r <= 0xffff:
			n += 3
		default:
			n += 6
		}
	}
	return n
}

// AppendEncode appends the modified UTF-8 encoding of s to dst.
// Invalid UTF-8 in s is encoded as U+FFFD.
func AppendEncode(dst []byte, s string) []byte {
	for _, r := range s {
		switch {
		case r == 0:
			dst = append(dst, 0xc0, 0x80)
		case r <= 0x7f:
			dst = append(dst, byte(r))
		case r <= 0x7ff:
			dst = append(dst,
				0xc0|byte(r>>6),
				0x80|byte(r)&0x3f)
		case r <= 0xffff:
			dst = appendThree(dst, r)
		default:
			r -= surrSelf
			dst = appendThree(dst, surr1+(r>>10)&0x3ff)
			dst = appendThree(dst, surr2+r&0x3ff)
		}
	}
	return dst
}

func appendThree(dst []byte, r rune) []byte {
	return append(dst,
		0xe0|byte(r>>12),
		0x80|byte(r>>6)&0x3f,
		0x80|byte(r)&0x3f)
}

// Decode converts modified UTF-8 to a Go string. Ill-formed or truncated
// sequences and unpaired surrogates decode to U+FFFD; a raw 0x00 byte is
// accepted as NUL.
func Decode(b []byte) string {
	if isASCII(b) {
		return string(b)
	}

	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c < 0x80:
			out = append(out, c)
			i++

		case c&0xe0 == 0xc0:
			if i+1 >= len(b) || !isCont(b[i+1]) {
				out = utf8.AppendRune(out, utf8.RuneError)
				i++
				continue
			}
			r := rune(c&0x1f)<<6 | rune(b[i+1]&0x3f)
			out = utf8.AppendRune(out, r)
			i += 2

		case c&0xf0 == 0xe0:
			r, ok := three(b, i)
			if !ok {
				out = utf8.AppendRune(out, utf8.RuneError)
				i++
				continue
			}
			if r >= surr1 && r < surr2 {
				if lo, ok := three(b, i+3); ok && lo >= surr2 && lo < surr3 {
					out = utf8.AppendRune(out, (r-surr1)<<10|(lo-surr2)+surrSelf)
					i += 6
					continue
				}
			}
			// utf8.AppendRune maps lone surrogates to U+FFFD.
			out = utf8.AppendRune(out, r)
			i += 3

		default:
			out = utf8.AppendRune(out, utf8.RuneError)
			i++
		}
	}
	return string(out)
}

func three(b []byte, i int) (rune, bool) {
	if i+2 >= len(b) || b[i]&0xf0 != 0xe0 || !isCont(b[i+1]) || !isCont(b[i+2]) {
		return 0, false
	}
	return rune(b[i]&0x0f)<<12 | rune(b[i+1]&0x3f)<<6 | rune(b[i+2]&0x3f), true
}

func isCont(c byte) bool {
	return c&0xc0 == 0x80
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}
