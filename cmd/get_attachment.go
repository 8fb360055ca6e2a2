package cmd

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/draftpatch/draftpatch/internal/gmail"
)

func newGetAttachmentCmd() *cobra.Command {
	var (
		account      string
		messageID    string
		attachmentID string
		outputPath   string
	)

	cmd := &cobra.Command{
		Use:   "get-attachment",
		Short: "Fetch the content of an attachment",
		Long: `Fetch the content of an attachment from a Gmail message.

Without --output the content is printed base64-encoded on stdout. With
--output the raw bytes are written to the given path; the filename part
is sanitized against path traversal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := gmail.NewClientForAccount(cmd.Context(), account)
			if err != nil {
				return err
			}

			data, err := client.GetAttachment(messageID, attachmentID)
			if err != nil {
				return err
			}

			if outputPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), base64.StdEncoding.EncodeToString(data))
				return nil
			}

			dir := filepath.Dir(outputPath)
			name := gmail.SanitizeFilename(filepath.Base(outputPath))
			target := filepath.Join(dir, name)
			if err := os.WriteFile(target, data, 0o600); err != nil {
				return fmt.Errorf("failed to write attachment to %s: %w", target, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes to %s\n", len(data), target)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account name to use")
	cmd.Flags().StringVar(&messageID, "message-id", "", "The Gmail message id")
	cmd.Flags().StringVar(&attachmentID, "attachment-id", "", "The attachment id")
	cmd.Flags().StringVar(&outputPath, "output", "", "Write raw content to this file instead of printing base64")
	_ = cmd.MarkFlagRequired("message-id")
	_ = cmd.MarkFlagRequired("attachment-id")

	return cmd
}
