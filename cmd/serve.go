package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"faceconsole/internal/config"
	"faceconsole/internal/faceapi"
	"faceconsole/internal/register"
	"faceconsole/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web console server",
	Long: `Start the Face Console web server.
It serves the registration, search, and identification API that the
browser frontend talks to, proxying all face recognition work to the
configured backend.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	serveCmd.Flags().String("host", "0.0.0.0", "Host to bind to")
}

// resolveServeHostPort resolves port and host from flags and environment variables.
func resolveServeHostPort(cmd *cobra.Command) (int, string) {
	port := mustGetInt(cmd, "port")
	host := mustGetString(cmd, "host")

	if envPort := os.Getenv("WEB_PORT"); envPort != "" {
		fmt.Sscanf(envPort, "%d", &port)
	}
	if envHost := os.Getenv("WEB_HOST"); envHost != "" {
		host = envHost
	}
	return port, host
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	client, err := faceapi.NewWithCapture(cfg.API.URL, cfg.API.Timeout, captureDir)
	if err != nil {
		return fmt.Errorf("failed to create backend client: %w", err)
	}

	cache, err := register.NewDraftCache(cfg.Draft.Dir)
	if err != nil {
		fmt.Printf("Warning: draft recovery disabled: %v\n", err)
		cache = nil
	}

	port, host := resolveServeHostPort(cmd)
	server := web.NewServer(cfg, client, cache, port, host)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Error during shutdown: %v\n", err)
		}
	}()

	fmt.Printf("Starting Face Console on http://%s:%d\n", host, port)
	fmt.Printf("Backend: %s\n", cfg.API.URL)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
