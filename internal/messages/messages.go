// Package messages holds the user-facing message catalog. Parsing code never
// formats messages itself; commands receive a Formatter and use it for
// anything printed to the operator.
package messages

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Key identifies a catalog entry.
type Key string

const (
	ExtractionStarted   Key = "extraction.started"
	ExtractionCompleted Key = "extraction.completed"
	ExtractionFailed    Key = "extraction.failed"
	OutputWritten       Key = "output.written"
	PayloadUnreadable   Key = "payload.unreadable"
	PlacesNotFound      Key = "places.not_found"
	ExtractionArchived  Key = "extraction.archived"
	ServerListening     Key = "server.listening"
)

// Formatter renders catalog messages for one language.
type Formatter interface {
	Format(key Key, args ...any) string
	Language() language.Tag
}

var supported = []language.Tag{language.English, language.Spanish}

var entries = map[language.Tag]map[Key]string{
	language.English: {
		ExtractionStarted:   "Extracting saved list from %s",
		ExtractionCompleted: "Extracted %q with %d places",
		ExtractionFailed:    "Extraction failed: %v",
		OutputWritten:       "Wrote %s output to %s",
		PayloadUnreadable:   "The captured payload could not be decoded; the page format may have changed",
		PlacesNotFound:      "No places were recognized in the payload; the list format may have changed",
		ExtractionArchived:  "Archived extraction %s",
		ServerListening:     "Listening on %s",
	},
	language.Spanish: {
		ExtractionStarted:   "Extrayendo la lista guardada de %s",
		ExtractionCompleted: "Se extrajo %q con %d lugares",
		ExtractionFailed:    "La extracción falló: %v",
		OutputWritten:       "Se escribió la salida %s en %s",
		PayloadUnreadable:   "No se pudo decodificar el contenido capturado; el formato de la página puede haber cambiado",
		PlacesNotFound:      "No se reconocieron lugares en el contenido; el formato de la lista puede haber cambiado",
		ExtractionArchived:  "Extracción archivada %s",
		ServerListening:     "Escuchando en %s",
	},
}

var builder = newBuilder()

func newBuilder() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range entries {
		for key, msg := range msgs {
			// SetString only fails for malformed messages; entries are static.
			_ = b.SetString(tag, string(key), msg)
		}
	}
	return b
}

type printer struct {
	tag language.Tag
	p   *message.Printer
}

// New returns a Formatter for lang (a BCP 47 tag such as "es" or "en-GB").
// Unknown or malformed tags fall back to English.
func New(lang string) Formatter {
	tag := Match(lang)
	return &printer{tag: tag, p: message.NewPrinter(tag, message.Catalog(builder))}
}

// Match picks the supported language closest to lang.
func Match(lang string) language.Tag {
	t, err := language.Parse(lang)
	if err != nil {
		return language.English
	}
	_, idx, conf := language.NewMatcher(supported).Match(t)
	if conf == language.No {
		return language.English
	}
	return supported[idx]
}

func (p *printer) Format(key Key, args ...any) string {
	return p.p.Sprintf(string(key), args...)
}

func (p *printer) Language() language.Tag {
	return p.tag
}
