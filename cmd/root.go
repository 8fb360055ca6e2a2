package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the draftpatch application
var rootCmd = &cobra.Command{
	Use:   "draftpatch",
	Short: "Inspect Gmail attachments and edit drafts",
	Long: `draftpatch is a tool for working with Gmail drafts and attachments.

It lists the attachments of a message or draft as JSON and can replace the
full content of a draft, including recipients, body, file attachments and
reply threading.

It can run as:
  - A standalone CLI tool (default)
  - An MCP (Model Context Protocol) server for AI assistants`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "draftpatch version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// printJSON writes v as a single JSON line on the command's stdout.
func printJSON(cmd *cobra.Command, v interface{}) error {
	out, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}

// accountOrDefault maps an unset account to the default token slot.
func accountOrDefault(account string) string {
	if account == "" {
		return "default"
	}
	return account
}

func init() {
	rootCmd.AddCommand(newListAttachmentsCmd())
	rootCmd.AddCommand(newUpdateDraftCmd())
	rootCmd.AddCommand(newCreateDraftCmd())
	rootCmd.AddCommand(newGetAttachmentCmd())
	rootCmd.AddCommand(newDraftsCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newServeCmd())
}
