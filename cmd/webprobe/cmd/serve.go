package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/webprobe-dev/webprobe/internal/api"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Serve exposes the campaign pipeline over HTTP: runs can be started
and polled, and persisted reports retrieved, via the /api/v1 endpoints.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	st, err := buildStack(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.close() }()

	addr := cfg.Server.Addr
	if cmd.Flags().Changed("addr") {
		addr = serveAddr
	}

	server := api.NewServer(st.manager, st.store,
		api.WithLogger(logger),
		api.WithCORSOrigins(cfg.Server.CORSOrigins),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting server", "addr", addr)
	return server.ListenAndServe(ctx, addr)
}
