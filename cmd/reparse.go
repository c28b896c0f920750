package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sells-group/savedlist-cli/internal/extract"
	"github.com/sells-group/savedlist-cli/internal/messages"
)

var (
	reparseFormats []string
	reparseOutDir  string
	reparsePrint   string
	reparseLang    string
)

var reparseCmd = &cobra.Command{
	Use:   "reparse <extraction-id>",
	Short: "Parse an archived payload snapshot again",
	Long:  "Loads the raw payload archived by a previous extraction, parses it with the current heuristics, and updates the archived outcome.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := requireStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore(st)

		outDir := reparseOutDir
		if outDir == "" {
			outDir = cfg.Export.OutDir
		}
		msgs := formatter(reparseLang)
		out := cmd.ErrOrStderr()
		_, _ = fmt.Fprintln(out, msgs.Format(messages.ExtractionStarted, args[0]))

		res, err := extract.NewService(st, nil).Reparse(ctx, args[0], extract.Options{
			Formats: reparseFormats,
			OutDir:  outDir,
		})
		if err != nil {
			reportFailure(out, msgs, err)
			return err
		}
		reportResult(out, msgs, res)

		if reparsePrint != "" {
			return printValue(cmd.OutOrStdout(), reparsePrint, res)
		}
		return nil
	},
}

func init() {
	reparseCmd.Flags().StringSliceVar(&reparseFormats, "formats", nil, "formats to write after parsing (none by default)")
	reparseCmd.Flags().StringVar(&reparseOutDir, "out-dir", "", "directory for outputs (default from config)")
	reparseCmd.Flags().StringVar(&reparsePrint, "print", "", "print the result to stdout as json or yaml")
	reparseCmd.Flags().StringVar(&reparseLang, "lang", "", "language for progress messages (default from config)")
	rootCmd.AddCommand(reparseCmd)
}
