package export

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const fallbackFileName = "output"

// invalidPathChars are dropped from generated file names on every platform.
const invalidPathChars = `<>:"/\|?*`

// FileName builds a safe file name from a list name: NFKC-normalized,
// whitespace runs collapsed to a single hyphen, path-hostile characters
// removed. ext gets exactly one leading dot.
func FileName(base, ext string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range norm.NFKC.String(strings.TrimSpace(base)) {
		switch {
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteByte('-')
				lastSpace = true
			}
			continue
		case unicode.IsControl(r), strings.ContainsRune(invalidPathChars, r):
		default:
			b.WriteRune(r)
		}
		lastSpace = false
	}

	name := strings.Trim(b.String(), "-")
	if strings.Trim(name, ".") == "" {
		name = fallbackFileName
	}

	ext = strings.TrimLeft(strings.TrimSpace(ext), ".")
	if ext == "" {
		return name
	}
	return name + "." + ext
}
