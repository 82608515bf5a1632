package pgn

import "unicode/utf8"

// sanitizeUTF8 decodes data and, if any malformed byte sequence is found,
// rewrites the text to keep only ASCII printable characters plus
// tab/newline/carriage-return, replacing every other byte with a space so
// byte offsets of the surviving text are preserved (spec §4.3 UTF-8
// sanitization). Input that is already valid UTF-8 is returned unchanged.
func sanitizeUTF8(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	out := make([]byte, len(data))
	for i, b := range data {
		if b == '\t' || b == '\n' || b == '\r' || (b >= 0x20 && b <= 0x7E) {
			out[i] = b
		} else {
			out[i] = ' '
		}
	}
	return string(out)
}
