// Package percent implements the percent-decoding applied to command
// arguments and filtered input lines.
//
// Decoding is total: malformed escapes are never an error, they pass
// through literally. This differs from net/url, which rejects bad escapes
// and turns '+' into a space; callers of this tool are told to write %20
// for spaces and treat '+' as an ordinary character.
package percent

// Decode percent-decodes src in a single left-to-right pass and returns a
// freshly allocated result.
//
// A % followed by two hexadecimal digits (case-insensitive) decodes to the
// byte those digits name. A % that is truncated or followed by non-hex
// bytes is emitted literally, and the bytes after it are re-examined as
// ordinary input rather than consumed. Only one pass is applied, so
// "%2520" decodes to "%20", not to a space.
//
// Decode works on raw bytes and never interprets them: a multi-byte UTF-8
// sequence escaped byte-by-byte (e.g. "%C3%A9") reassembles correctly.
func Decode(src []byte) []byte {
	out := make([]byte, 0, len(src))
	for i := 0; i < len(src); {
		if src[i] == '%' && i+2 < len(src) {
			hi, okHi := unhex(src[i+1])
			lo, okLo := unhex(src[i+2])
			if okHi && okLo {
				out = append(out, hi<<4|lo)
				i += 3
				continue
			}
		}
		out = append(out, src[i])
		i++
	}
	return out
}

// DecodeString is Decode for strings, used on argument vectors.
func DecodeString(s string) string {
	return string(Decode([]byte(s)))
}

func unhex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
