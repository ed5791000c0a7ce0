package utils

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// RepairFilename undoes the Latin-1 misinterpretation some browsers and
// multipart parsers apply to non-ASCII upload filenames: the UTF-8 bytes
// of the real name arrive decoded as one rune per byte. Re-encoding those
// runes back to Latin-1 recovers the original byte sequence, which is
// then kept when it forms valid UTF-8. Names that do not round-trip are
// returned unchanged.
func RepairFilename(name string) string {
	if isASCII(name) {
		return name
	}

	raw, err := charmap.ISO8859_1.NewEncoder().String(name)
	if err != nil {
		// Contains runes outside Latin-1, so it was never mangled.
		return name
	}
	if !utf8.ValidString(raw) {
		return name
	}
	return raw
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
