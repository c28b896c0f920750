package main

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/savedlist-cli/internal/messages"
	"github.com/sells-group/savedlist-cli/internal/payload"
	"github.com/sells-group/savedlist-cli/internal/savedlist"
	"github.com/sells-group/savedlist-cli/internal/store"
)

// openStore opens the configured archive. A nil store means archiving is
// disabled.
func openStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, eris.Wrap(err, "open store")
	}
	return st, nil
}

// requireStore opens the archive for commands that cannot run without one.
func requireStore(ctx context.Context) (store.Store, error) {
	if err := cfg.Validate("store"); err != nil {
		return nil, err
	}
	return openStore(ctx)
}

func closeStore(st store.Store) {
	if st != nil {
		_ = st.Close()
	}
}

// formatter returns the message catalog for the --lang flag, falling back
// to the configured language.
func formatter(lang string) messages.Formatter {
	if lang == "" && cfg != nil {
		lang = cfg.Messages.Lang
	}
	return messages.New(lang)
}

// failureHint maps structural parse errors to an operator-facing hint.
func failureHint(msgs messages.Formatter, err error) string {
	switch {
	case payload.IsFormatError(err):
		return msgs.Format(messages.PayloadUnreadable)
	case savedlist.IsMissingContainer(err):
		return msgs.Format(messages.PlacesNotFound)
	default:
		return ""
	}
}

// printValue writes v to w as indented JSON or YAML.
func printValue(w io.Writer, format string, v any) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(v), "print json")
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return eris.Wrap(err, "print yaml")
		}
		return eris.Wrap(enc.Close(), "print yaml")
	default:
		return eris.Errorf("unsupported print format %q (want json or yaml)", format)
	}
}
