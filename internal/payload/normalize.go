// Package payload turns raw captured script text into JSON-array text.
//
// Captured payloads arrive in several shapes: prefixed by the anti-hijacking
// sentinel, wrapped in prose or framing noise, escaped from inside an outer
// string literal, sprinkled with control characters, or truncated. Normalize
// tries a fixed sequence of strategies and returns the first candidate that
// is valid JSON with an array root.
package payload

import (
	"strings"
	"unicode"

	"github.com/kaptinlin/jsonrepair"
	"github.com/tidwall/gjson"
)

// Sentinel is the anti-hijacking prefix some responses carry before the JSON.
const Sentinel = ")]}'"

type strategy struct {
	name  string
	apply func(string) (string, bool)
}

// strategies run in order; each receives the trimmed raw text.
var strategies = []strategy{
	{"as-is", func(s string) (string, bool) { return s, true }},
	{"strip-sentinel", func(s string) (string, bool) { return StripSentinel(s), true }},
	{"slice-brackets", func(s string) (string, bool) { return sliceBrackets(StripSentinel(s)) }},
	{"unescape", func(s string) (string, bool) { return sliceBrackets(Unescape(StripSentinel(s))) }},
	{"strip-control", stripControlCandidate},
	{"repair", repairCandidate},
}

// Normalize returns text decodable as a JSON array, or a *FormatError.
func Normalize(raw string) (string, error) {
	text, _, err := NormalizeWithStrategy(raw)
	return text, err
}

// NormalizeWithStrategy is Normalize that also reports the name of the
// strategy that succeeded, for diagnostics.
func NormalizeWithStrategy(raw string) (string, string, error) {
	text := trim(raw)
	if text == "" {
		return "", "", NewFormatError("empty payload", raw, nil)
	}

	for _, st := range strategies {
		candidate, ok := st.apply(text)
		if !ok {
			continue
		}
		candidate = trim(candidate)
		if isArrayJSON(candidate) {
			return candidate, st.name, nil
		}
	}

	return "", "", NewFormatError("no normalization strategy produced a JSON array", text, nil)
}

func trim(s string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "\ufeff"))
}

func isArrayJSON(s string) bool {
	return len(s) >= 2 && s[0] == '[' && s[len(s)-1] == ']' && gjson.Valid(s)
}

// StripSentinel removes a leading Sentinel plus the newline (real or escaped)
// that follows it.
func StripSentinel(s string) string {
	s = trim(s)
	if !strings.HasPrefix(s, Sentinel) {
		return s
	}
	s = s[len(Sentinel):]
	s = strings.TrimPrefix(s, `\n`)
	return trim(s)
}

// sliceBrackets keeps the text between the first '[' and the last ']'.
func sliceBrackets(s string) (string, bool) {
	start := strings.IndexByte(s, '[')
	end := strings.LastIndexByte(s, ']')
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// Unescape undoes one level of \" and \\ escaping, left to right.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\') {
			b.WriteByte(s[i+1])
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// StripControl drops control characters other than tab, CR and LF.
func StripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' || r == '\r' || r == '\n' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

func stripControlCandidate(s string) (string, bool) {
	base := StripControl(StripSentinel(s))
	if sliced, ok := sliceBrackets(base); ok && isArrayJSON(sliced) {
		return sliced, true
	}
	return sliceBrackets(Unescape(base))
}

// repairCandidate handles truncated payloads: everything from the first '['
// is handed to the repair library, escaped and unescaped. A repair is only
// accepted when it closed a cut-off tail and the result still holds data;
// rewrites of the body itself mean the text was never an array.
func repairCandidate(s string) (string, bool) {
	base := StripControl(StripSentinel(s))
	start := strings.IndexByte(base, '[')
	if start < 0 {
		return "", false
	}
	for _, in := range []string{base[start:], Unescape(base[start:])} {
		repaired, err := jsonrepair.JSONRepair(in)
		if err != nil {
			continue
		}
		repaired = trim(repaired)
		if isArrayJSON(repaired) && onlyClosed(in, repaired) && len(gjson.Parse(repaired).Array()) > 0 {
			return repaired, true
		}
	}
	return "", false
}

// onlyClosed reports whether repaired is in plus closing tokens, ignoring a
// dangling comma at the cut.
func onlyClosed(in, repaired string) bool {
	head := strings.TrimRightFunc(in, func(r rune) bool { return r == ',' || unicode.IsSpace(r) })
	if head == "" || !strings.HasPrefix(repaired, head) {
		return false
	}
	tail := strings.ReplaceAll(repaired[len(head):], "null", "")
	return strings.Trim(tail, "\"]} \t\r\n") == ""
}
