// Package google handles OAuth2 authentication against Google for the Gmail
// API. Tokens are cached on disk per account so the CLI and the MCP server
// can run unattended after a one-time authorization.
package google
