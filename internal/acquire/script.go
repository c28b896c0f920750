package acquire

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
)

// Markers that bracket the list payload inside the page's bootstrap script.
// The end marker shows up escaped or plain depending on how the page was saved.
const startSentinel = ")]}'"

var (
	startMarkers = []string{startSentinel + "\n", startSentinel + `\n`}
	endMarkers   = []string{`\u003d13"]`, `\u003d13\"]`, `=13"]`, `=13\"]`}
)

// ErrScriptNotFound is returned when no script in the page carries a payload.
var ErrScriptNotFound = eris.New("acquire: no script carries the list payload")

// ExtractScript returns the text of the first script element that contains
// the payload start marker. Scripts under head are searched before the rest
// of the document.
func ExtractScript(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", eris.Wrap(err, "acquire: parse html")
	}

	for _, selector := range []string{"head > script", "script"} {
		var found string
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := s.Text()
			if startIndex(text) < 0 {
				return true
			}
			found = text
			return false
		})
		if found != "" {
			return found, nil
		}
	}

	return "", ErrScriptNotFound
}

// SlicePayload cuts the payload out of script text: from just after the
// start marker through the end marker inclusive, or to the end of the text
// when the end marker is absent. Text without a start marker is returned
// unchanged.
func SlicePayload(script string) string {
	start := startIndex(script)
	if start < 0 {
		return script
	}
	rest := script[start:]

	end := len(rest)
	for _, m := range endMarkers {
		if i := strings.Index(rest, m); i >= 0 && i+len(m) < end {
			end = i + len(m)
		}
	}
	return rest[:end]
}

// startIndex returns the offset just past the first start marker, or -1.
func startIndex(text string) int {
	best := -1
	for _, m := range startMarkers {
		if i := strings.Index(text, m); i >= 0 && (best < 0 || i+len(m) < best) {
			best = i + len(m)
		}
	}
	return best
}

// looksLikeHTML reports whether text is a page rather than a bare payload.
func looksLikeHTML(text string) bool {
	head := strings.ToLower(strings.TrimSpace(text))
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.HasPrefix(head, "<!doctype") ||
		strings.HasPrefix(head, "<html") ||
		strings.Contains(head, "<script")
}

// FromDocument turns captured text into payload text. Pages are searched for
// the payload script; anything else is treated as payload already.
func FromDocument(text string) (string, error) {
	if !looksLikeHTML(text) {
		return text, nil
	}
	script, err := ExtractScript(text)
	if err != nil {
		return "", err
	}
	return SlicePayload(script), nil
}
