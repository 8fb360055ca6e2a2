// Package config loads command configuration from the environment.
//
// Every command reads its inputs from environment variables so invocations
// can be scripted without flag plumbing. Validation reports all missing
// variables at once instead of failing on the first one.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// ListAttachmentsConfig configures the list-attachments command.
type ListAttachmentsConfig struct {
	// EmailID is the Gmail message or draft id to inspect.
	EmailID string `mapstructure:"email_id"`

	// Account selects which authenticated Gmail account to use.
	// Empty means the default account.
	Account string `mapstructure:"gmail_account"`
}

// Validate reports every missing required field in a single error.
func (c *ListAttachmentsConfig) Validate() error {
	return requireAll(map[string]string{
		"EMAIL_ID": c.EmailID,
	})
}

// UpdateDraftConfig configures the update-draft and create-draft commands.
type UpdateDraftConfig struct {
	// DraftID identifies the draft to replace. Not required when
	// creating a new draft.
	DraftID string `mapstructure:"draft_id"`

	// ToEmails, CcEmails and BccEmails are comma-separated address lists.
	ToEmails  string `mapstructure:"to_emails"`
	CcEmails  string `mapstructure:"cc_emails"`
	BccEmails string `mapstructure:"bcc_emails"`

	Subject string `mapstructure:"subject"`
	Message string `mapstructure:"message"`

	// Attachments is a comma-separated list of local file paths.
	Attachments string `mapstructure:"attachments"`

	// ReplyToEmailID threads the draft as a reply to that message.
	ReplyToEmailID string `mapstructure:"reply_to_email_id"`

	// ReplyAll folds the original recipients into the new draft.
	// Only the exact value "true" enables it.
	ReplyAll string `mapstructure:"reply_all"`

	Account string `mapstructure:"gmail_account"`
}

// Validate reports every missing required field in a single error.
// requireDraftID is set for update-draft, where the draft must already exist.
func (c *UpdateDraftConfig) Validate(requireDraftID bool) error {
	required := map[string]string{
		"TO_EMAILS": c.ToEmails,
		"SUBJECT":   c.Subject,
		"MESSAGE":   c.Message,
	}
	if requireDraftID {
		required["DRAFT_ID"] = c.DraftID
	}
	return requireAll(required)
}

// To returns the parsed To recipient list.
func (c *UpdateDraftConfig) To() []string { return splitList(c.ToEmails) }

// Cc returns the parsed Cc recipient list.
func (c *UpdateDraftConfig) Cc() []string { return splitList(c.CcEmails) }

// Bcc returns the parsed Bcc recipient list.
func (c *UpdateDraftConfig) Bcc() []string { return splitList(c.BccEmails) }

// AttachmentPaths returns the parsed attachment file paths.
func (c *UpdateDraftConfig) AttachmentPaths() []string { return splitList(c.Attachments) }

// IsReplyAll reports whether reply-all was requested. Any value other
// than the literal string "true" disables it, including "True" and "1".
func (c *UpdateDraftConfig) IsReplyAll() bool { return c.ReplyAll == "true" }

// LoadListAttachments reads the list-attachments configuration from the
// environment.
func LoadListAttachments() (*ListAttachmentsConfig, error) {
	v := newEnvViper("email_id", "gmail_account")
	cfg := &ListAttachmentsConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment configuration: %w", err)
	}
	return cfg, nil
}

// LoadUpdateDraft reads the draft composition configuration from the
// environment.
func LoadUpdateDraft() (*UpdateDraftConfig, error) {
	v := newEnvViper(
		"draft_id",
		"to_emails",
		"cc_emails",
		"bcc_emails",
		"subject",
		"message",
		"attachments",
		"reply_to_email_id",
		"reply_all",
		"gmail_account",
	)
	cfg := &UpdateDraftConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment configuration: %w", err)
	}
	return cfg, nil
}

// newEnvViper binds each key to its upper-snake environment variable.
func newEnvViper(keys ...string) *viper.Viper {
	v := viper.New()
	for _, key := range keys {
		// BindEnv never fails when given both a key and a variable name.
		_ = v.BindEnv(key, strings.ToUpper(key))
	}
	return v
}

// requireAll collects every empty required value into one error so a
// misconfigured invocation surfaces all problems in a single run.
func requireAll(required map[string]string) error {
	var missing []string
	for name, value := range required {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
}

// splitList splits a comma-separated value into trimmed, non-empty entries.
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
