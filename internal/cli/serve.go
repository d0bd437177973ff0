package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/herdstats/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web dashboard",
	Long: `Start the dashboard web server.

Examples:
  herdstats serve                 # Listen on the configured address (default :8080)
  herdstats serve --addr :3000    # Listen on port 3000`,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Address to listen on (overrides HERDSTATS_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close(context.Background())

	addr := app.Config.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	server := web.NewServer(app.Service, app.Client, web.Options{
		Addr:            addr,
		ShutdownTimeout: app.Config.Server.ShutdownTimeout,
		Logger:          app.Logger,
	})
	return server.Start(ctx)
}
