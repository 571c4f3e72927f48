package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/niels/tinyhttpd/pkg/config"
	"github.com/niels/tinyhttpd/pkg/console"
	"github.com/niels/tinyhttpd/pkg/dispatch"
	"github.com/niels/tinyhttpd/pkg/fileload"
	"github.com/niels/tinyhttpd/pkg/logging"
	"github.com/niels/tinyhttpd/pkg/routes"
	"github.com/niels/tinyhttpd/pkg/server"
	"github.com/niels/tinyhttpd/pkg/version"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	debug       bool
	showVersion bool
	quiet       bool
	cfg         *config.Config
)

// NewRootCmd creates the root command for tinyhttpd
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   version.AppName + " <ip-address> <port>",
		Short: version.Description,
		Long: fmt.Sprintf(`%s - %s

Serves files from a fixed route table over HTTP/1.1, one connection at a time.
`, version.AppName, version.Description),
		Args: func(cmd *cobra.Command, args []string) error {
			// --version needs no positional arguments
			if showVersion {
				return nil
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load configuration
			if configPath != "" {
				cfg = config.LoadOrDefault(configPath)
			} else {
				cfg = config.Default()
			}

			logging.InitGlobalLogger(debug, cfg)
			logging.Info("Initializing tinyhttpd")

			if debug {
				logging.Debug("Debug logging enabled")
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Check if we should just show the version
			if showVersion {
				fmt.Fprintln(cmd.OutOrStdout(), version.GetVersionInfo())
				return nil
			}

			ipStr := args[0]
			port, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid port number: %s", args[1])
			}
			if err := server.ValidateAddr(ipStr, port); err != nil {
				return err
			}

			var tracker console.Tracker = console.NewConsoleTracker()
			if quiet {
				tracker = console.NewNopTracker()
			}

			table := routes.FromConfig(cfg)
			dispatcher := dispatch.New(table, fileload.NewOSLoader())
			srv := server.New(cfg, dispatcher,
				server.WithTracker(tracker),
				server.WithDebug(debug),
			)

			logging.InfoWith("Starting server", map[string]interface{}{
				"addr":   ipStr,
				"port":   port,
				"routes": table.Len(),
			})

			// Runs until the process is killed
			addr := fmt.Sprintf("%s:%d", ipStr, port)
			if err := srv.ListenAndServe(context.Background(), addr); err != nil {
				logging.ErrorWith("Server failed", map[string]interface{}{
					"error": err.Error(),
				})
				return err
			}
			return nil
		},
	}

	// Add flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug mode")
	rootCmd.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "Show version information")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress per-request console output")

	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
