// Package gmail_tools exposes the draft and attachment operations as MCP
// tools.
//
// Attachment tools (read-only, always registered):
//   - gmail_list_attachments: List attachments of a message or draft
//   - gmail_get_attachment: Retrieve attachment content (base64 or text)
//
// Draft tools:
//   - gmail_list_drafts: List drafts in the mailbox (read-only)
//   - gmail_create_draft: Compose a new draft, optionally as a reply
//   - gmail_update_draft: Replace an existing draft's content
//   - gmail_send_draft: Send an existing draft
//
// Mutating draft tools are withheld when the server runs read-only.
//
// All tools accept an optional "account" argument for multi-account use;
// clients are created lazily from cached OAuth tokens via the server
// context.
package gmail_tools
