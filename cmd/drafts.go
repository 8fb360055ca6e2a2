package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/draftpatch/draftpatch/internal/gmail"
)

func newDraftsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drafts",
		Short: "Inspect and send Gmail drafts",
	}

	cmd.AddCommand(newDraftsListCmd())
	cmd.AddCommand(newDraftsShowCmd())
	cmd.AddCommand(newDraftsSendCmd())

	return cmd
}

func newDraftsListCmd() *cobra.Command {
	var (
		account    string
		query      string
		maxResults int64
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List drafts in the mailbox",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := gmail.NewClientForAccount(cmd.Context(), account)
			if err != nil {
				return err
			}

			drafts, err := client.ListDrafts(query, maxResults)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Found %d draft(s)\n", len(drafts))
			for i, draft := range drafts {
				subject := ""
				if draft.Message != nil {
					subject = gmail.HeaderValue(draft.Message, "Subject")
				}
				fmt.Fprintf(out, "%d. Draft ID: %s (Subject: %s)\n", i+1, draft.Id, subject)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account name to use")
	cmd.Flags().StringVar(&query, "query", "", "Gmail search query to filter drafts")
	cmd.Flags().Int64Var(&maxResults, "max-results", 10, "Maximum number of drafts to list")

	return cmd
}

func newDraftsShowCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "show <draft-id>",
		Short: "Show a draft's headers and attachments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := gmail.NewClientForAccount(cmd.Context(), account)
			if err != nil {
				return err
			}

			draft, err := client.GetDraft(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Draft ID: %s\n", draft.Id)
			if draft.Message != nil {
				fmt.Fprintf(out, "Subject:  %s\n", gmail.HeaderValue(draft.Message, "Subject"))
				fmt.Fprintf(out, "To:       %s\n", gmail.HeaderValue(draft.Message, "To"))
				if cc := gmail.HeaderValue(draft.Message, "Cc"); cc != "" {
					fmt.Fprintf(out, "Cc:       %s\n", cc)
				}
				list := gmail.TopLevelAttachments(draft.Message)
				for _, att := range list.Attachments {
					fmt.Fprintf(out, "Attachment: %s (id %s)\n", att.Filename, att.ID)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account name to use")

	return cmd
}

func newDraftsSendCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "send <draft-id>",
		Short: "Send an existing draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := gmail.NewClientForAccount(cmd.Context(), account)
			if err != nil {
				return err
			}

			messageID, err := client.SendDraft(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Draft %s sent successfully (message ID: %s)\n", args[0], messageID)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account name to use")

	return cmd
}
