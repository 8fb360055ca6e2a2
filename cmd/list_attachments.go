package cmd

import (
	"github.com/spf13/cobra"

	"github.com/draftpatch/draftpatch/internal/config"
	"github.com/draftpatch/draftpatch/internal/gmail"
)

func newListAttachmentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-attachments",
		Short: "List attachments of a Gmail message or draft as JSON",
		Long: `List the attachments of a Gmail message or draft.

Reads its input from the environment:
  EMAIL_ID        The message or draft id to inspect (required)
  GMAIL_ACCOUNT   Account name for multi-account setups (optional)

Prints {"attachments": [{"id", "filename"}, ...]} on success. When the
Gmail API rejects the request the error is printed as {"error": "..."}
and the command still exits normally, so scripted callers can consume
the output either way.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadListAttachments()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			client, err := gmail.NewClientForAccount(cmd.Context(), accountOrDefault(cfg.Account))
			if err != nil {
				return err
			}

			list, err := client.ListAttachments(cfg.EmailID)
			if err != nil {
				if svcErr, ok := gmail.AsServiceError(err); ok {
					return printJSON(cmd, map[string]string{"error": svcErr.Error()})
				}
				return err
			}
			return printJSON(cmd, list)
		},
	}
}
