package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pathstack-dev/pathstack/internal/config"
	"github.com/pathstack-dev/pathstack/pkg/route"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags shared by all subcommands.
var (
	flagConfig   string
	flagBlockSep string
	flagParamSep string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pathstack",
		Short: "Hierarchical URL route inspector and bridge",
		Long: `Pathstack parses pathnames into a stack of blocks of contexts and
matches selector rules against them.

  • parse a pathname and inspect its structure
  • match a textual selector rule against a pathname
  • serve the router to UI clients over HTTP/WebSocket`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "configuration file (default: pathstack.{json,yaml} in the working directory)")
	rootCmd.PersistentFlags().StringVar(&flagBlockSep, "block-sep", "", "block separator override")
	rootCmd.PersistentFlags().StringVar(&flagParamSep, "param-sep", "", "parameter separator override")

	rootCmd.AddCommand(
		parseCmd(),
		matchCmd(),
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the file configuration plus flag overrides.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if flagConfig != "" {
		cfg, err = config.Load(flagConfig)
	} else {
		cfg, err = config.Find(".")
	}
	if err != nil {
		return nil, err
	}

	if flagBlockSep != "" {
		cfg.BlockSeparator = flagBlockSep
	}
	if flagParamSep != "" {
		cfg.ParamSeparator = flagParamSep
	}
	return cfg, nil
}

// routeConfig validates the resolved separators.
func routeConfig() (route.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return route.Config{}, err
	}
	return cfg.RouteConfig()
}
