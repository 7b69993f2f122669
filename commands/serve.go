package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"storefront/server"
	"storefront/session"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP and WebSocket API",
	Long: `Open the store, load the screens for the remembered user and serve them.

Examples:
  storefront serve
  storefront serve --addr 0.0.0.0:3536 --session redis`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address")
	serveCmd.Flags().String("session", "", "Session backend: file, redis or memory")
	serveCmd.Flags().String("webhook", "", "Checkout webhook URL")
	_ = v.BindPFlag("HTTP_ADDR", serveCmd.Flags().Lookup("addr"))
	_ = v.BindPFlag("SESSION_BACKEND", serveCmd.Flags().Lookup("session"))
	_ = v.BindPFlag("CHECKOUT_WEBHOOK_URL", serveCmd.Flags().Lookup("webhook"))
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	cfg, log, database, err := setup()
	if err != nil {
		return err
	}
	defer database.Close()

	store, err := session.NewStore(cfg)
	if err != nil {
		return err
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := server.NewServer(cfg, database, store, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
