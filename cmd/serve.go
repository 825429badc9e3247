package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dvorakchen/number-extracter/internal/handlers"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string
	var opts extractOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start web server for the upload interface",
		Long: `Starts the web interface on the specified port.

The web interface lets you drop label photos, review the extracted track numbers,
dismiss entries and download the result as a spreadsheet.`,
		Example: `  # Start server on default port 8888
  number-extracter serve

  # Start server on custom port with Gemini
  number-extracter serve --port 3000 --provider gemini`,
		RunE: func(cmd *cobra.Command, args []string) error {
			extractor, svc, err := opts.build()
			if err != nil {
				return err
			}
			handler := handlers.New(extractor, svc.Provider, svc.Model)

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: handler.Routes(),
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Upload interface available", "addr", addr, "url", "http://localhost"+addr, "provider", svc.Provider, "model", svc.Model)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")
	opts.register(cmd)

	return cmd
}
