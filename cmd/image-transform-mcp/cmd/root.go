// Package cmd implements the CLI commands for image-transform-mcp.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ironsheep/image-transform-mcp/internal/codec"
	"github.com/ironsheep/image-transform-mcp/internal/config"
	"github.com/ironsheep/image-transform-mcp/internal/logging"
	"github.com/ironsheep/image-transform-mcp/internal/ops"
)

var (
	// cfgFile holds the config file path from CLI flag.
	cfgFile string

	// cfg and logger are set by PersistentPreRunE before any command runs.
	cfg    *config.Config
	logger *slog.Logger
)

// rootCmd runs the MCP server when called without a subcommand, so MCP
// clients can launch the bare binary.
var rootCmd = &cobra.Command{
	Use:     "image-transform-mcp",
	Short:   "MCP server for in-memory image transformations",
	Version: Version,
	Long: `image-transform-mcp decodes an image, applies one operation from a catalog
of resizing, colour, filtering, thresholding, morphology, drawing and
seam-carving transforms, and re-encodes the result in the original format.

Without a subcommand it serves the Model Context Protocol over stdin/stdout.
The apply, info and ops subcommands run the same catalog from the shell.`,
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("executing root command: %w", err)
	}
	return nil
}

func init() {
	// Set here to avoid an initialization cycle through rootCmd.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return initConfig(cmd.Flags())
	}

	// Not bound to viper: an explicit flag beats env and file, but the
	// flag's default must not.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .image-transform-mcp.yaml in the working or home directory)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "json", "log format (text, json)")

	serveFlags(rootCmd.Flags())
}

// initConfig loads configuration, applies explicit flag overrides and
// installs the logger on stderr.
func initConfig(flags *pflag.FlagSet) error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	if flags.Changed("log-level") {
		level, _ := flags.GetString("log-level")
		loaded.Log.Level = config.NormalizeLevel(level)
	}
	if flags.Changed("log-format") {
		format, _ := flags.GetString("log-format")
		loaded.Log.Format = strings.ToLower(format)
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("validating flags: %w", err)
	}

	cfg = loaded
	logger = logging.New(cfg.Log, os.Stderr)
	slog.SetDefault(logger)
	return nil
}

// newRunner builds the operation runner from the loaded configuration.
func newRunner(m *ops.Metrics) *ops.Runner {
	opts := []ops.Option{
		ops.WithCodec(codec.New(cfg.Codec.Options())),
		ops.WithLogger(logger),
	}
	if m != nil {
		opts = append(opts, ops.WithMetrics(m))
	}
	return ops.New(opts...)
}
