package gmail_tools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/draftpatch/draftpatch/internal/gmail"
	"github.com/draftpatch/draftpatch/internal/instrumentation"
	"github.com/draftpatch/draftpatch/internal/logging"
	"github.com/draftpatch/draftpatch/internal/server"
	"github.com/draftpatch/draftpatch/internal/tools/common"
)

// RegisterDraftTools registers the draft lifecycle tools. Tools that
// mutate mailbox state are skipped in read-only mode.
func RegisterDraftTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listDraftsTool := mcp.NewTool("gmail_list_drafts",
		mcp.WithDescription("List drafts in the mailbox"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("query",
			mcp.Description("Gmail search query to filter drafts (e.g., 'subject:report')"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of results to return (default: 10)"),
		),
	)

	s.AddTool(listDraftsTool, common.Instrumented("gmail_list_drafts", "drafts.list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListDrafts(ctx, request, sc)
		}))

	if readOnly {
		return nil
	}

	createDraftTool := mcp.NewTool("gmail_create_draft",
		append([]mcp.ToolOption{
			mcp.WithDescription("Create a new Gmail draft, optionally as a reply to an existing message"),
		}, draftContentOptions()...)...,
	)

	s.AddTool(createDraftTool, common.Instrumented("gmail_create_draft", "drafts.create", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateDraft(ctx, request, sc)
		}))

	updateDraftTool := mcp.NewTool("gmail_update_draft",
		append([]mcp.ToolOption{
			mcp.WithDescription("Replace the full content of an existing Gmail draft"),
			mcp.WithString("draftId",
				mcp.Required(),
				mcp.Description("The ID of the draft to update"),
			),
		}, draftContentOptions()...)...,
	)

	s.AddTool(updateDraftTool, common.Instrumented("gmail_update_draft", "drafts.update", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleUpdateDraft(ctx, request, sc)
		}))

	sendDraftTool := mcp.NewTool("gmail_send_draft",
		mcp.WithDescription("Send an existing Gmail draft"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("draftId",
			mcp.Required(),
			mcp.Description("The ID of the draft to send"),
		),
	)

	s.AddTool(sendDraftTool, common.Instrumented("gmail_send_draft", "drafts.send", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSendDraft(ctx, request, sc)
		}))

	return nil
}

// draftContentOptions are the arguments shared by create and update. The
// tool description is not part of the shared set; each tool sets its own.
func draftContentOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("to",
			mcp.Required(),
			mcp.Description("Comma-separated list of To recipients"),
		),
		mcp.WithString("cc",
			mcp.Description("Comma-separated list of Cc recipients"),
		),
		mcp.WithString("bcc",
			mcp.Description("Comma-separated list of Bcc recipients"),
		),
		mcp.WithString("subject",
			mcp.Required(),
			mcp.Description("Message subject"),
		),
		mcp.WithString("body",
			mcp.Required(),
			mcp.Description("Plain text message body"),
		),
		mcp.WithString("attachments",
			mcp.Description("Comma-separated list of local file paths to attach"),
		),
		mcp.WithString("replyToMessageId",
			mcp.Description("Message ID to reply to; threads the draft into that conversation"),
		),
		mcp.WithString("replyAll",
			mcp.Description("Set to 'true' to include the original sender and recipients"),
		),
	}
}

// outgoingMessageFromArgs builds the draft payload from tool arguments.
// Returns an error result when a required argument is missing.
func outgoingMessageFromArgs(args map[string]interface{}) (*gmail.OutgoingMessage, *mcp.CallToolResult) {
	to, ok := args["to"].(string)
	if !ok || to == "" {
		return nil, mcp.NewToolResultError("to is required")
	}
	subject, ok := args["subject"].(string)
	if !ok || subject == "" {
		return nil, mcp.NewToolResultError("subject is required")
	}
	body, ok := args["body"].(string)
	if !ok || body == "" {
		return nil, mcp.NewToolResultError("body is required")
	}

	msg := &gmail.OutgoingMessage{
		To:      splitArg(to),
		Subject: subject,
		Body:    body,
	}
	if cc, ok := args["cc"].(string); ok {
		msg.Cc = splitArg(cc)
	}
	if bcc, ok := args["bcc"].(string); ok {
		msg.Bcc = splitArg(bcc)
	}
	if attachments, ok := args["attachments"].(string); ok {
		msg.Attachments = splitArg(attachments)
	}
	if replyTo, ok := args["replyToMessageId"].(string); ok {
		msg.ReplyToMessageID = replyTo
	}
	if replyAll, ok := args["replyAll"].(string); ok {
		msg.ReplyAll = replyAll == "true"
	}
	return msg, nil
}

// splitArg splits a comma-separated argument into trimmed non-empty parts.
func splitArg(value string) []string {
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

func handleListDrafts(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	query := ""
	if queryVal, ok := args["query"].(string); ok {
		query = queryVal
	}
	maxResults := int64(10)
	if maxResultsVal, ok := args["maxResults"].(float64); ok && maxResultsVal > 0 {
		maxResults = int64(maxResultsVal)
	}

	client, errResult := common.GmailClient(ctx, sc, common.GetAccountFromArgs(args))
	if errResult != nil {
		return errResult, nil
	}

	drafts, err := client.ListDrafts(query, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list drafts: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d draft(s):\n", len(drafts))
	for i, draft := range drafts {
		subject := ""
		if draft.Message != nil {
			subject = gmail.HeaderValue(draft.Message, "Subject")
		}
		fmt.Fprintf(&sb, "%d. Draft ID: %s (Subject: %s)\n", i+1, draft.Id, subject)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func handleCreateDraft(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	msg, errResult := outgoingMessageFromArgs(args)
	if errResult != nil {
		return errResult, nil
	}

	client, errResult := common.GmailClient(ctx, sc, common.GetAccountFromArgs(args))
	if errResult != nil {
		return errResult, nil
	}

	draft, err := client.CreateDraft(msg)
	if err != nil {
		sc.Metrics().RecordDraftOperation(ctx, "create", instrumentation.StatusError)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create draft: %v", err)), nil
	}
	sc.Metrics().RecordDraftOperation(ctx, "create", instrumentation.StatusSuccess)
	return mcp.NewToolResultText(fmt.Sprintf("Draft Id: %s - Draft created successfully!", draft.Id)), nil
}

func handleUpdateDraft(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	draftID, ok := args["draftId"].(string)
	if !ok || draftID == "" {
		return mcp.NewToolResultError("draftId is required"), nil
	}

	msg, errResult := outgoingMessageFromArgs(args)
	if errResult != nil {
		return errResult, nil
	}

	client, errResult := common.GmailClient(ctx, sc, common.GetAccountFromArgs(args))
	if errResult != nil {
		return errResult, nil
	}

	slog.Debug("updating draft", logging.DraftID(draftID))
	draft, err := client.UpdateDraft(draftID, msg)
	if err != nil {
		sc.Metrics().RecordDraftOperation(ctx, "update", instrumentation.StatusError)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to update draft: %v", err)), nil
	}
	sc.Metrics().RecordDraftOperation(ctx, "update", instrumentation.StatusSuccess)
	return mcp.NewToolResultText(fmt.Sprintf("Draft Id: %s - Draft updated successfully!", draft.Id)), nil
}

func handleSendDraft(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	draftID, ok := args["draftId"].(string)
	if !ok || draftID == "" {
		return mcp.NewToolResultError("draftId is required"), nil
	}

	client, errResult := common.GmailClient(ctx, sc, common.GetAccountFromArgs(args))
	if errResult != nil {
		return errResult, nil
	}

	slog.Debug("sending draft", logging.DraftID(draftID))
	messageID, err := client.SendDraft(draftID)
	if err != nil {
		sc.Metrics().RecordDraftOperation(ctx, "send", instrumentation.StatusError)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to send draft: %v", err)), nil
	}
	sc.Metrics().RecordDraftOperation(ctx, "send", instrumentation.StatusSuccess)
	return mcp.NewToolResultText(fmt.Sprintf("Draft %s sent successfully (message ID: %s)", draftID, messageID)), nil
}
