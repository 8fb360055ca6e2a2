package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/draftpatch/draftpatch/internal/google"
)

func newAuthCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize access to a Google account",
		Long: `Auth runs the OAuth2 authorization flow for a Google account.

It prints an authorization URL, waits for the authorization code on
standard input, and stores the resulting token in the local cache so
later commands can use it without prompting again.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Visit the URL below to authorize access for account %q:\n\n", account)
			fmt.Fprintf(out, "  %s\n\n", google.GetAuthURLForAccount(account))
			fmt.Fprint(out, "Enter the authorization code: ")

			reader := bufio.NewReader(cmd.InOrStdin())
			line, err := reader.ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("failed to read authorization code: %w", err)
			}
			code := strings.TrimSpace(line)
			if code == "" {
				return fmt.Errorf("no authorization code provided")
			}

			if err := google.SaveTokenForAccount(cmd.Context(), account, code); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Fprintf(out, "Authentication successful. Token saved for account %q.\n", account)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account name to authorize")

	return cmd
}
