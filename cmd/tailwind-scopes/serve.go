package main

import (
	"fmt"

	"bennypowers.dev/twls/internal/log"
	"bennypowers.dev/twls/internal/version"
	"bennypowers.dev/twls/lsp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the language server on stdio",
	Long: `Start the language server, speaking LSP over stdin and stdout.
Logs go to stderr. Client settings and the workspace's twls.yaml are
merged on top of the --config file.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	server, err := lsp.NewServer(cfg)
	if err != nil {
		return fmt.Errorf("failed to create LSP server: %w", err)
	}
	defer func() {
		if err := server.Close(); err != nil {
			log.Warn("Failed to close server: %v", err)
		}
	}()

	log.Info("Starting tailwind-scopes %s", version.GetVersion())
	if err := server.RunStdio(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
