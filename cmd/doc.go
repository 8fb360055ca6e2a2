// Package cmd implements the command-line interface for draftpatch.
//
// Commands:
//   - list-attachments: List attachments of a message or draft as JSON
//   - update-draft: Replace the content of an existing draft
//   - create-draft: Compose a new draft
//   - get-attachment: Fetch attachment content
//   - drafts: Inspect and send drafts
//   - auth: Authorize a Google account
//   - serve: Start the MCP server for AI assistants
//
// The list-attachments, update-draft and create-draft commands read their
// inputs from environment variables so they can be scripted; the remaining
// commands use flags.
package cmd
