package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/readmark/internal/logger"
)

var flagDebug bool

var rootCmd = &cobra.Command{
	Use:   "readmark",
	Short: "Convert web pages into clean Markdown",
	Long: `readmark converts web pages into clean Markdown, stripping
navigation, ads and other boilerplate while keeping the core content,
tables, images and metadata (title, source URL, publish date).

Usage:
  readmark convert <url> [flags]
  readmark convert --type html '<p>…</p>' [flags]
  readmark tidy page.md`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Options{Debug: flagDebug})
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
}

// initConfig loads optional defaults from .readmark.yaml in the working
// directory or the home directory. Flags given on the command line always
// win over the config file.
func initConfig() {
	viper.SetConfigName(".readmark")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	viper.SetEnvPrefix("READMARK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logger.Debug("loaded config file", "path", viper.ConfigFileUsed())
	}
}
