// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the labsite CLI.
// Implements: site search, paper list filter and research tabs, either
// from the terminal or served over HTTP.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/labsite/internal/logging"
	"github.com/pdiddy/labsite/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// siteCfg is decoded from viper before any subcommand runs.
var siteCfg types.SiteConfig

// logger is built from siteCfg.Log.
var logger = logging.Discard()

// rootCmd is the base command for the labsite CLI.
var rootCmd = &cobra.Command{
	Use:   "labsite",
	Short: "Interactive search, paper list and research tabs for the lab website",
	Long: `labsite provides the interactive parts of the lab website: full-text search
over the generated searchindex.json, the filterable publication list and the
research direction tabs.

Each part is a subcommand that works in the terminal; serve exposes all of
them over HTTP together with a JSON search API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.Unmarshal(&siteCfg); err != nil {
			return fmt.Errorf("decoding config: %w", err)
		}
		logger = logging.Setup(siteCfg.Log, os.Stderr)
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./labsite.yaml or ~/.config/labsite/labsite.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "text", "log format: text or json")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))

	setDefaults()
}

// setDefaults registers every config key so that environment variables are
// picked up by Unmarshal.
func setDefaults() {
	viper.SetDefault("search.base_url", "")
	viper.SetDefault("search.index_file", "public/searchindex.json")
	viper.SetDefault("search.timeout", defaultTimeout)
	viper.SetDefault("search.user_agent", defaultUserAgent)
	viper.SetDefault("search.max_results", 0)
	viper.SetDefault("search.compat_highlight", false)
	viper.SetDefault("search.time_zone", "")

	viper.SetDefault("serve.addr", ":8080")
	viper.SetDefault("serve.rate_limit", 10.0)
	viper.SetDefault("serve.rate_burst", 20)
	viper.SetDefault("serve.cache_size", 256)
	viper.SetDefault("serve.watch", false)
	viper.SetDefault("serve.cors_origin", "")

	viper.SetDefault("papers.data_file", "data/papers.yaml")
	viper.SetDefault("research.tabs_file", "data/research.yaml")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("labsite")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "labsite"))
		}
	}

	viper.SetEnvPrefix("LABSITE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
