package main

import (
	"os"

	"bennypowers.dev/twls/internal/config"
	"bennypowers.dev/twls/internal/log"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "tailwind-scopes",
	Short: "Scope analysis for Tailwind CSS class lists and directives",
	Long: `tailwind-scopes finds the regions of HTML, JavaScript, and stylesheet
documents that Tailwind CSS tooling cares about: class attributes, class
names, @apply and friends, theme() calls, and the embedded languages
around them.

Run "tailwind-scopes serve" to start the language server on stdio.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a config file (JSON, JSONC, or YAML)")

	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	return nil
}

// loadConfig reads --config, or the project file in the working directory
// when the flag is unset. Without either the defaults apply.
func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return config.Default(), nil
		}
		path = config.FindProjectFile(wd)
	}
	if path == "" {
		return config.Default(), nil
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		return cfg, err
	}
	log.Debug("Loaded config: %s", path)
	return cfg, nil
}
