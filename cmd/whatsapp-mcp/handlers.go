package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wamcp/whatsapp-mcp/internal/bridge"
)

// --- Helpers ---

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

// failureResult renders the uniform failure shape for anything that went
// wrong at or past the dispatcher: {"success": false, "error": <message>}.
func failureResult(err error) *mcp.CallToolResult {
	payload, _ := json.Marshal(map[string]any{
		"success": false,
		"error":   err.Error(),
	})
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(string(payload)),
		},
		IsError: true,
	}
}

// validationResult renders client-side validation failures for the send
// family, which never contact the backend:
// {"success": false, "message": <reason>}.
func validationResult(reason string) *mcp.CallToolResult {
	payload, _ := json.Marshal(map[string]any{
		"success": false,
		"message": reason,
	})
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(string(payload)),
		},
		IsError: true,
	}
}

// sendOutcome maps a send-family result to the tool outcome. Validation
// failures use the message shape; everything else uses the error shape.
func sendOutcome(resp *bridge.SendResponse, err error) *mcp.CallToolResult {
	if err != nil {
		var be *bridge.Error
		if errors.As(err, &be) && be.IsValidation() {
			return validationResult(be.Message)
		}
		return failureResult(err)
	}
	status := resp.Message
	if status == "" {
		if resp.Success {
			status = "message sent"
		} else {
			status = "message not sent"
		}
	}
	payload, _ := json.Marshal(map[string]any{
		"success": resp.Success,
		"message": status,
	})
	return textResult(string(payload))
}

// --- Handlers ---

func handleSearchContacts(c *bridge.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		p := bridge.SearchContactsParams{
			Query: request.GetString("query", ""),
		}
		body, err := c.SearchContacts(ctx, p)
		if err != nil {
			return failureResult(err), nil
		}
		return textResult(string(body)), nil
	}
}

func handleListMessages(c *bridge.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		p := bridge.NewListMessagesParams()
		p.After = request.GetString("after", "")
		p.Before = request.GetString("before", "")
		p.SenderPhoneNumber = request.GetString("sender_phone_number", "")
		p.ChatJID = request.GetString("chat_jid", "")
		p.Query = request.GetString("query", "")
		p.Limit = request.GetInt("limit", p.Limit)
		p.Page = request.GetInt("page", p.Page)
		p.IncludeContext = request.GetBool("include_context", p.IncludeContext)
		p.ContextBefore = request.GetInt("context_before", p.ContextBefore)
		p.ContextAfter = request.GetInt("context_after", p.ContextAfter)

		body, err := c.ListMessages(ctx, p)
		if err != nil {
			return failureResult(err), nil
		}
		return textResult(string(body)), nil
	}
}

func handleListChats(c *bridge.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		p := bridge.NewListChatsParams()
		p.Query = request.GetString("query", "")
		p.Limit = request.GetInt("limit", p.Limit)
		p.Page = request.GetInt("page", p.Page)
		p.IncludeLastMessage = request.GetBool("include_last_message", p.IncludeLastMessage)
		p.SortBy = request.GetString("sort_by", p.SortBy)

		body, err := c.ListChats(ctx, p)
		if err != nil {
			return failureResult(err), nil
		}
		return textResult(string(body)), nil
	}
}

func handleGetChat(c *bridge.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		p := bridge.NewGetChatParams()
		p.ChatJID = request.GetString("chat_jid", "")
		p.IncludeLastMessage = request.GetBool("include_last_message", p.IncludeLastMessage)

		body, err := c.GetChat(ctx, p)
		if err != nil {
			return failureResult(err), nil
		}
		return textResult(string(body)), nil
	}
}

func handleGetDirectChatByContact(c *bridge.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		p := bridge.GetDirectChatByContactParams{
			SenderPhoneNumber: request.GetString("sender_phone_number", ""),
		}
		body, err := c.GetDirectChatByContact(ctx, p)
		if err != nil {
			return failureResult(err), nil
		}
		return textResult(string(body)), nil
	}
}

func handleGetContactChats(c *bridge.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		p := bridge.NewGetContactChatsParams()
		p.JID = request.GetString("jid", "")
		p.Limit = request.GetInt("limit", p.Limit)
		p.Page = request.GetInt("page", p.Page)

		body, err := c.GetContactChats(ctx, p)
		if err != nil {
			return failureResult(err), nil
		}
		return textResult(string(body)), nil
	}
}

func handleGetLastInteraction(c *bridge.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		p := bridge.GetLastInteractionParams{
			JID: request.GetString("jid", ""),
		}
		body, err := c.GetLastInteraction(ctx, p)
		if err != nil {
			return failureResult(err), nil
		}
		return textResult(string(body)), nil
	}
}

func handleGetMessageContext(c *bridge.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		p := bridge.NewGetMessageContextParams()
		p.MessageID = request.GetString("message_id", "")
		p.Before = request.GetInt("before", p.Before)
		p.After = request.GetInt("after", p.After)

		body, err := c.GetMessageContext(ctx, p)
		if err != nil {
			return failureResult(err), nil
		}
		return textResult(string(body)), nil
	}
}

func handleSendMessage(c *bridge.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		p := bridge.SendMessageParams{
			Recipient: request.GetString("recipient", ""),
			Message:   request.GetString("message", ""),
		}
		resp, err := c.SendMessage(ctx, p)
		return sendOutcome(resp, err), nil
	}
}

func handleSendFile(c *bridge.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		p := bridge.SendFileParams{
			Recipient: request.GetString("recipient", ""),
			MediaPath: request.GetString("media_path", ""),
		}
		resp, err := c.SendFile(ctx, p)
		return sendOutcome(resp, err), nil
	}
}

func handleSendAudioMessage(c *bridge.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		p := bridge.SendAudioMessageParams{
			Recipient: request.GetString("recipient", ""),
			MediaPath: request.GetString("media_path", ""),
		}
		resp, err := c.SendAudioMessage(ctx, p)
		return sendOutcome(resp, err), nil
	}
}

func handleDownloadMedia(c *bridge.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		p := bridge.DownloadMediaParams{
			MessageID: request.GetString("message_id", ""),
			ChatJID:   request.GetString("chat_jid", ""),
		}
		resp, err := c.DownloadMedia(ctx, p)
		if err != nil {
			return failureResult(err), nil
		}
		status := resp.Message
		if status == "" && resp.Success {
			status = fmt.Sprintf("media downloaded to %s", resp.Path)
		}
		payload, _ := json.Marshal(map[string]any{
			"success": resp.Success,
			"message": status,
			"path":    resp.Path,
		})
		return textResult(string(payload)), nil
	}
}
