package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"kinview/internal/mcp"
	"kinview/internal/metrics"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func serveCmd() *cobra.Command {
	var metricsAddr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(metricsAddr)
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve prometheus metrics on this address, e.g. :9090")
	return cmd
}

func runServe(metricsAddr string) error {
	ctx := context.Background()

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	v, db, err := openView(ctx, cfg, logger, metrics.New(reg))
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: metricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.WithError(err).Error("metrics server stopped")
			}
		}()
		defer srv.Shutdown(ctx)
		logger.WithField("addr", metricsAddr).Info("serving metrics")
	}

	logger.WithField("layers", v.Layers).Info("serving tree over stdio")
	server := mcp.NewServer(v, db, logger, version)
	return server.Run(ctx, &sdk.StdioTransport{})
}
