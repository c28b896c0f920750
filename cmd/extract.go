package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/savedlist-cli/internal/acquire"
	"github.com/sells-group/savedlist-cli/internal/export"
	"github.com/sells-group/savedlist-cli/internal/extract"
	"github.com/sells-group/savedlist-cli/internal/fetcher"
	"github.com/sells-group/savedlist-cli/internal/messages"
	"github.com/sells-group/savedlist-cli/internal/store"
)

var (
	extractURL         string
	extractPayloadFile string
	extractOutDir      string
	extractFormats     []string
	extractPrint       string
	extractLang        string
	extractNoArchive   bool

	// extractPaths maps an export format to its explicit --<format> path.
	extractPaths = map[string]*string{}
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a saved list from a list URL or a captured payload",
	Example: `  savedlist-cli extract --payload-file list.json
  savedlist-cli extract --url https://maps.app.goo.gl/abc --csv out.csv --kml out.kml
  savedlist-cli extract --payload-file page.html --formats geojson,xlsx --out-dir exports --print yaml`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		src, err := buildSource(extractURL, extractPayloadFile)
		if err != nil {
			return err
		}
		if err := cfg.Validate("extract"); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var st store.Store
		if !extractNoArchive {
			if st, err = openStore(ctx); err != nil {
				return err
			}
			defer closeStore(st)
		}

		opts := extractOptions(cmd.Flags().Changed("formats"))
		msgs := formatter(extractLang)
		res, err := runExtraction(ctx, cmd.ErrOrStderr(), extract.NewService(st, nil), src, opts, msgs)
		if err != nil {
			return err
		}
		if extractPrint != "" {
			return printValue(cmd.OutOrStdout(), extractPrint, res)
		}
		return nil
	},
}

// buildSource picks the acquisition path. Exactly one of url and path must
// be set.
func buildSource(url, path string) (acquire.Source, error) {
	url, path = strings.TrimSpace(url), strings.TrimSpace(path)
	switch {
	case url != "" && path != "":
		return nil, eris.New("extract: --url and --payload-file are mutually exclusive")
	case path != "":
		return acquire.NewFileSource(path), nil
	case url != "":
		if !strings.HasPrefix(strings.ToLower(url), "http") {
			return nil, eris.Errorf("extract: --url must be an http(s) URL, got %q", url)
		}
		f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
			UserAgent:  cfg.Fetch.UserAgent,
			Timeout:    time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
			MaxRetries: cfg.Fetch.MaxRetries,
			RatePerSec: cfg.Fetch.RatePerSec,
		})
		return acquire.NewHTTPSource(url, f), nil
	default:
		return nil, eris.New("extract: one of --url or --payload-file is required")
	}
}

// extractOptions turns the output flags into export options. Explicit
// per-format paths replace the configured default formats unless
// --formats was given as well.
func extractOptions(formatsChanged bool) extract.Options {
	opts := extract.Options{OutDir: extractOutDir}
	if opts.OutDir == "" {
		opts.OutDir = cfg.Export.OutDir
	}

	for _, format := range export.Formats() {
		if p := extractPaths[format]; p != nil && strings.TrimSpace(*p) != "" {
			opts.Targets = append(opts.Targets, export.Target{Format: format, Path: *p})
		}
	}

	switch {
	case formatsChanged:
		opts.Formats = extractFormats
	case len(opts.Targets) == 0:
		opts.Formats = cfg.Export.Formats
	}
	return opts
}

// runExtraction runs svc and reports progress to out.
func runExtraction(ctx context.Context, out io.Writer, svc *extract.Service, src acquire.Source, opts extract.Options, msgs messages.Formatter) (*extract.Result, error) {
	_, _ = fmt.Fprintln(out, msgs.Format(messages.ExtractionStarted, src.Name()))

	res, err := svc.Run(ctx, src, opts)
	if err != nil {
		reportFailure(out, msgs, err)
		return nil, err
	}
	reportResult(out, msgs, res)
	return res, nil
}

func reportResult(out io.Writer, msgs messages.Formatter, res *extract.Result) {
	_, _ = fmt.Fprintln(out, msgs.Format(messages.ExtractionCompleted, res.List.Header.Name, res.List.Len()))
	for _, o := range res.Outputs {
		_, _ = fmt.Fprintln(out, msgs.Format(messages.OutputWritten, o.Format, o.Path))
	}
	if res.ExtractionID != "" {
		_, _ = fmt.Fprintln(out, msgs.Format(messages.ExtractionArchived, res.ExtractionID))
	}
}

func reportFailure(out io.Writer, msgs messages.Formatter, err error) {
	if hint := failureHint(msgs, err); hint != "" {
		_, _ = fmt.Fprintln(out, hint)
	}
	_, _ = fmt.Fprintln(out, msgs.Format(messages.ExtractionFailed, err))
}

func init() {
	f := extractCmd.Flags()
	f.StringVar(&extractURL, "url", "", "saved list URL to download")
	f.StringVar(&extractPayloadFile, "payload-file", "", "captured payload, script, or saved page")
	for _, format := range export.Formats() {
		extractPaths[format] = f.String(format, "", fmt.Sprintf("write %s output to this path", format))
	}
	f.StringVar(&extractOutDir, "out-dir", "", "directory for --formats outputs (default from config)")
	f.StringSliceVar(&extractFormats, "formats", nil, "formats written to --out-dir (default from config: csv,kml)")
	f.StringVar(&extractPrint, "print", "", "print the result to stdout as json or yaml")
	f.StringVar(&extractLang, "lang", "", "language for progress messages (default from config)")
	f.BoolVar(&extractNoArchive, "no-archive", false, "do not archive the payload snapshot")
	rootCmd.AddCommand(extractCmd)
}
