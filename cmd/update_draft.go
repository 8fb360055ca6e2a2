package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/draftpatch/draftpatch/internal/config"
	"github.com/draftpatch/draftpatch/internal/gmail"
)

const draftEnvHelp = `Reads its input from the environment:
  TO_EMAILS          Comma-separated To recipients (required)
  CC_EMAILS          Comma-separated Cc recipients
  BCC_EMAILS         Comma-separated Bcc recipients
  SUBJECT            Message subject (required)
  MESSAGE            Plain text body (required)
  ATTACHMENTS        Comma-separated local file paths to attach
  REPLY_TO_EMAIL_ID  Message id to reply to; threads the draft
  REPLY_ALL          Exactly "true" to include the original recipients
  GMAIL_ACCOUNT      Account name for multi-account setups

Missing required variables are reported together before any network call.
Gmail API failures are printed and the command exits normally.`

// reportServiceError prints a Gmail service failure and reports whether it
// handled the error. Service failures are data for the caller, not an
// abnormal exit; anything else propagates through cobra.
func reportServiceError(cmd *cobra.Command, err error) bool {
	svcErr, ok := gmail.AsServiceError(err)
	if !ok {
		return false
	}
	fmt.Fprintf(cmd.OutOrStdout(), "An error occurred: %v\n", svcErr)
	return true
}

// outgoingFromConfig maps the environment configuration onto a draft payload.
func outgoingFromConfig(cfg *config.UpdateDraftConfig) *gmail.OutgoingMessage {
	return &gmail.OutgoingMessage{
		To:               cfg.To(),
		Cc:               cfg.Cc(),
		Bcc:              cfg.Bcc(),
		Subject:          cfg.Subject,
		Body:             cfg.Message,
		Attachments:      cfg.AttachmentPaths(),
		ReplyToMessageID: cfg.ReplyToEmailID,
		ReplyAll:         cfg.IsReplyAll(),
	}
}

func newUpdateDraftCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update-draft",
		Short: "Replace the full content of an existing Gmail draft",
		Long: `Replace the content of an existing Gmail draft.

In addition to the shared variables below, DRAFT_ID selects the draft
to update (required).

` + draftEnvHelp,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadUpdateDraft()
			if err != nil {
				return err
			}
			if err := cfg.Validate(true); err != nil {
				return err
			}

			client, err := gmail.NewClientForAccount(cmd.Context(), accountOrDefault(cfg.Account))
			if err != nil {
				return err
			}

			draft, err := client.UpdateDraft(cfg.DraftID, outgoingFromConfig(cfg))
			if err != nil {
				if reportServiceError(cmd, err) {
					return nil
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Draft Id: %s - Draft updated successfully!\n", draft.Id)
			return nil
		},
	}
}

func newCreateDraftCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-draft",
		Short: "Compose a new Gmail draft",
		Long: `Compose a new Gmail draft, optionally as a reply to an existing
message.

` + draftEnvHelp,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadUpdateDraft()
			if err != nil {
				return err
			}
			if err := cfg.Validate(false); err != nil {
				return err
			}

			client, err := gmail.NewClientForAccount(cmd.Context(), accountOrDefault(cfg.Account))
			if err != nil {
				return err
			}

			draft, err := client.CreateDraft(outgoingFromConfig(cfg))
			if err != nil {
				if reportServiceError(cmd, err) {
					return nil
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Draft Id: %s - Draft created successfully!\n", draft.Id)
			return nil
		},
	}
}
