package cli

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/felixgeelhaar/fathom-mcp/internal/infrastructure/logging"
)

func newServeCmd(deps *Dependencies) *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Start the MCP server",
		Long:    "Start the Fathom MCP server over stdio for use with Claude Desktop and other MCP clients.",
		PreRunE: requireConfig(deps),
		RunE: func(cmd *cobra.Command, args []string) error {
			if deps.MCPServer == nil {
				return fmt.Errorf("MCP server not configured")
			}
			logger := deps.Logger
			if logger == nil {
				logger = zap.NewNop()
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			// stdout carries MCP framing; everything else goes to the logger.
			logger.Info("starting MCP server",
				zap.String("server", deps.MCPServer.Name()),
				zap.String("version", deps.MCPServer.Version()),
				zap.String("transport", "stdio"),
				zap.String("base_url", deps.Config.Fathom.BaseURL),
				logging.APIKey(deps.Config.Fathom.APIKey),
			)

			if metricsAddr != "" {
				go serveSideListener(ctx, cancel, deps, logger, metricsAddr)
			}

			if err := deps.MCPServer.ServeStdio(ctx); err != nil {
				if ctx.Err() != nil {
					logger.Info("MCP server stopped")
					return nil
				}
				return fmt.Errorf("MCP server error: %w", err)
			}
			logger.Info("MCP server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", deps.Config.Metrics.Addr,
		"Address for the /health and /metrics listener (empty disables it)")

	return cmd
}

// serveSideListener runs until ctx is done. A listener failure stops the
// whole server.
func serveSideListener(ctx context.Context, cancel context.CancelFunc, deps *Dependencies, logger *zap.Logger, addr string) {
	logger.Info("starting health and metrics listener", zap.String("addr", addr))

	err := deps.MCPServer.ServeHTTP(ctx, addr, func(mux *http.ServeMux) {
		if deps.Gatherer != nil {
			mux.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
		}
	})
	if err != nil {
		logger.Error("health and metrics listener failed", zap.String("addr", addr), zap.Error(err))
		cancel()
	}
}
