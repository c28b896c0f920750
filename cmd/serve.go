package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sells-group/savedlist-cli/internal/extract"
	"github.com/sells-group/savedlist-cli/internal/messages"
	"github.com/sells-group/savedlist-cli/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the parse API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if servePort != 0 {
			cfg.Server.Port = servePort
		}
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore(st)

		msgs := formatter("")
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), msgs.Format(messages.ServerListening, fmt.Sprintf(":%d", cfg.Server.Port)))

		return server.New(extract.NewService(st, nil), st, cfg.Server).ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
