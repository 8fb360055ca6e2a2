// Package common holds helpers shared by the MCP tool packages: account
// resolution, client acquisition and the instrumentation wrapper.
package common

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/draftpatch/draftpatch/internal/gmail"
	"github.com/draftpatch/draftpatch/internal/instrumentation"
	"github.com/draftpatch/draftpatch/internal/server"
)

// GetAccountFromArgs resolves the account a tool call targets. An explicit
// "account" argument wins; otherwise the default account is used.
func GetAccountFromArgs(args map[string]interface{}) string {
	if account, ok := args["account"].(string); ok && account != "" {
		return account
	}
	return "default"
}

// authInstructions is shown when a tool is called before the account was
// authorized.
const authInstructions = `Gmail OAuth token not found. To authorize access:

1. Visit this URL in your browser:
   %s

2. Sign in with your Google account
3. Grant access to Gmail
4. Copy the authorization code

5. Provide the authorization code via the google_save_auth_code tool to
   complete authentication.

You only need to authorize once; tokens are refreshed automatically.`

// GmailClient returns an authenticated client for the account, or a tool
// error result with authorization instructions when none is available.
func GmailClient(ctx context.Context, sc *server.ServerContext, account string) (*gmail.Client, *mcp.CallToolResult) {
	if client := sc.GmailClientForAccount(account); client != nil {
		return client, nil
	}

	if !gmail.HasTokenForAccount(account) {
		return nil, mcp.NewToolResultError(fmt.Sprintf(authInstructions, gmail.GetAuthURLForAccount(account)))
	}

	client, err := gmail.NewClientForAccount(ctx, account)
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("Failed to create Gmail client: %v", err))
	}
	sc.SetGmailClientForAccount(account, client)
	return client, nil
}

// ToolHandler is the handler signature the MCP server expects.
type ToolHandler = mcpserver.ToolHandlerFunc

// Instrumented wraps a tool handler with invocation metrics. The operation
// names the underlying Gmail API call for the API-level metric; pass ""
// for tools that never reach the API.
func Instrumented(toolName, operation string, sc *server.ServerContext, handler ToolHandler) ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		account := GetAccountFromArgs(request.GetArguments())

		result, err := handler(ctx, request)
		duration := time.Since(start)

		status := instrumentation.StatusSuccess
		if err != nil || (result != nil && result.IsError) {
			status = instrumentation.StatusError
		}

		metrics := sc.Metrics()
		metrics.RecordToolInvocation(ctx, toolName, status, account, duration)
		if operation != "" {
			metrics.RecordGmailOperation(ctx, operation, status, duration)
		}

		return result, err
	}
}
