// Package export writes a parsed saved list to interchange formats: CSV,
// KML, GeoJSON, XLSX and ESRI shapefile.
package export

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/savedlist-cli/internal/model"
)

// Exporter writes a SavedList to a file in one format.
type Exporter interface {
	// Format is the short format name used on the command line.
	Format() string
	// Extension is the file extension, with its leading dot.
	Extension() string
	// Write creates or truncates path and writes list to it.
	Write(ctx context.Context, list *model.SavedList, path string) error
}

var exporters = map[string]Exporter{}

func register(e Exporter) {
	exporters[e.Format()] = e
}

func init() {
	register(CSV{})
	register(KML{})
	register(GeoJSON{})
	register(XLSX{})
	register(Shapefile{})
}

// Lookup returns the exporter for format, matched case-insensitively.
func Lookup(format string) (Exporter, error) {
	e, ok := exporters[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, eris.Errorf("export: unknown format %q (known: %s)", format, strings.Join(Formats(), ", "))
	}
	return e, nil
}

// Formats lists the registered format names in sorted order.
func Formats() []string {
	names := make([]string, 0, len(exporters))
	for name := range exporters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Target is one file to produce.
type Target struct {
	Format string
	Path   string
}

// Output describes a written file.
type Output struct {
	Format string `json:"format" yaml:"format"`
	Path   string `json:"path" yaml:"path"`
	Places int    `json:"places" yaml:"places"`
}

// DefaultTargets builds one target per format inside outDir, named after the
// list.
func DefaultTargets(list *model.SavedList, formats []string, outDir string) ([]Target, error) {
	base := model.DefaultListName
	if list != nil && list.Header.Name != "" {
		base = list.Header.Name
	}

	seen := make(map[string]bool, len(formats))
	targets := make([]Target, 0, len(formats))
	for _, f := range formats {
		e, err := Lookup(f)
		if err != nil {
			return nil, err
		}
		if seen[e.Format()] {
			continue
		}
		seen[e.Format()] = true
		targets = append(targets, Target{
			Format: e.Format(),
			Path:   filepath.Join(outDir, FileName(base, e.Extension())),
		})
	}
	return targets, nil
}

// WriteAll writes every target concurrently. Outputs are returned in target
// order; the first failure cancels the remaining writes.
func WriteAll(ctx context.Context, list *model.SavedList, targets []Target) ([]Output, error) {
	if list == nil {
		return nil, eris.New("export: nil list")
	}
	log := zap.L().With(zap.String("component", "export"))

	outputs := make([]Output, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	for i, t := range targets {
		g.Go(func() error {
			e, err := Lookup(t.Format)
			if err != nil {
				return err
			}
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := ensureDir(t.Path); err != nil {
				return err
			}
			if err := e.Write(gctx, list, t.Path); err != nil {
				return eris.Wrapf(err, "export: write %s", t.Format)
			}
			outputs[i] = Output{Format: e.Format(), Path: t.Path, Places: list.Len()}
			log.Debug("wrote export", zap.String("format", e.Format()), zap.String("path", t.Path))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "export: create directory %s", dir)
	}
	return nil
}

// createFile truncates or creates path for writing.
func createFile(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, eris.Wrapf(err, "export: create %s", path)
	}
	return f, nil
}
