package cmd

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ironsheep/image-transform-mcp/internal/ops"
	"github.com/ironsheep/image-transform-mcp/internal/server"
)

const metricsShutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the MCP protocol over stdin/stdout",
	Long: `Serve the Model Context Protocol over stdin/stdout until stdin closes.

Logs go to stderr because stdout carries the protocol. With --metrics-addr
(or metrics.addr in the config) Prometheus metrics are served on /metrics.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveFlags(serveCmd.Flags())
	rootCmd.AddCommand(serveCmd)
}

func serveFlags(flags *pflag.FlagSet) {
	flags.String("metrics-addr", "", "listen address for the Prometheus /metrics endpoint (disabled when empty)")
	flags.Int("max-request-bytes", 0, "largest accepted request line in bytes (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	addr := cfg.Metrics.Addr
	if flags.Changed("metrics-addr") {
		addr, _ = flags.GetString("metrics-addr")
	}
	maxRequest := cfg.Server.MaxRequestBytes
	if flags.Changed("max-request-bytes") {
		maxRequest, _ = flags.GetInt("max-request-bytes")
	}

	var metrics *ops.Metrics
	if addr != "" {
		metrics = ops.NewMetrics()
		stop, err := startMetricsServer(addr, metrics)
		if err != nil {
			return err
		}
		defer stop()
	}

	logger.Debug("starting MCP server",
		"version", Version,
		"build_time", BuildTime,
		"git_commit", GitCommit,
		"max_request_bytes", maxRequest,
	)

	srv := server.New(
		server.WithRunner(newRunner(metrics)),
		server.WithLogger(logger),
		server.WithVersion(Version),
		server.WithMaxRequestBytes(maxRequest),
	)
	return srv.Run(os.Stdin, os.Stdout)
}

// startMetricsServer listens on addr and serves m on /metrics until the
// returned stop function is called.
func startMetricsServer(addr string, m *ops.Metrics) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	httpServer := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "error", err)
		}
	}()
	logger.Info("serving metrics", "addr", ln.Addr().String())

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			logger.Warn("metrics server shutdown", "error", err)
		}
	}, nil
}
