package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pathstack-dev/pathstack/pkg/bridge"
	"github.com/pathstack-dev/pathstack/pkg/history"
	"github.com/pathstack-dev/pathstack/pkg/middleware"
	"github.com/pathstack-dev/pathstack/pkg/router"
)

func serveCmd() *cobra.Command {
	var (
		addr    string
		initial string
		metrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the router to UI clients over HTTP/WebSocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			rcfg, err := cfg.RouteConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Bridge.Addr()
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			opts := []router.Option{
				router.WithConfig(rcfg),
				router.WithLogger(logger),
			}
			if metrics {
				opts = append(opts, router.WithMiddleware(middleware.Prometheus()))
			}
			r := router.New(history.NewMemory(initial), opts...)

			srv := bridge.New(r,
				bridge.WithAddr(addr),
				bridge.WithLogger(logger),
			)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from configuration)")
	cmd.Flags().StringVar(&initial, "initial", "/", "initial location")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "collect Prometheus navigation metrics")
	return cmd
}
