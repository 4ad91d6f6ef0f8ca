package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"goscatter/internal/export"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve <data>",
		Short: "Serve the chart over http",
		Long: `Serve an interactive html chart, static plots and a selection endpoint:

  GET /                          echarts page (?hide=A,B&brush=x0,y0,x1,y1)
  GET /plot.svg, /plot.png       static plot
  GET /selection?x0=&y0=&x1=&y1= brushed records as json
  GET /healthz`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			set, err := loadRecords(ctx, args[0])
			if err != nil {
				return err
			}
			addr := viper.GetString("serve.addr")
			cfg := chartConfig(slog.Default(), addr)
			cfg.Data = set.Records

			srv := &http.Server{
				Addr:              addr,
				Handler:           export.NewHandler(cfg, export.HTMLOptions{}, slog.Default()),
				ReadHeaderTimeout: 10 * time.Second,
			}
			return runServer(ctx, srv)
		},
	}
	cmd.Flags().String("addr", ":8080", "listen address")
	return cmd
}

// runServer serves until ctx is cancelled, then shuts down gracefully.
func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("serving chart", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}
