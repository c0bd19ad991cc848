package main

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wamcp/whatsapp-mcp/internal/bridge"
)

// registerTools registers all MCP tools on the server, wiring each to a
// handler that calls the WhatsApp bridge REST API via the client.
func registerTools(s *server.MCPServer, c *bridge.Client) {
	s.AddTool(createSearchContactsTool(), handleSearchContacts(c))
	s.AddTool(createListMessagesTool(), handleListMessages(c))
	s.AddTool(createListChatsTool(), handleListChats(c))
	s.AddTool(createGetChatTool(), handleGetChat(c))
	s.AddTool(createGetDirectChatByContactTool(), handleGetDirectChatByContact(c))
	s.AddTool(createGetContactChatsTool(), handleGetContactChats(c))
	s.AddTool(createGetLastInteractionTool(), handleGetLastInteraction(c))
	s.AddTool(createGetMessageContextTool(), handleGetMessageContext(c))
	s.AddTool(createSendMessageTool(), handleSendMessage(c))
	s.AddTool(createSendFileTool(), handleSendFile(c))
	s.AddTool(createSendAudioMessageTool(), handleSendAudioMessage(c))
	s.AddTool(createDownloadMediaTool(), handleDownloadMedia(c))
}

// --- Tool definitions ---

func createSearchContactsTool() mcp.Tool {
	return mcp.NewTool(bridge.OpSearchContacts,
		mcp.WithDescription("Search WhatsApp contacts by name or phone number."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search term to match against contact names or phone numbers")),
	)
}

func createListMessagesTool() mcp.Tool {
	return mcp.NewTool(bridge.OpListMessages,
		mcp.WithDescription("Get WhatsApp messages matching specified criteria with optional context."),
		mcp.WithString("after", mcp.Description("Optional ISO-8601 date; only return messages after this date")),
		mcp.WithString("before", mcp.Description("Optional ISO-8601 date; only return messages before this date")),
		mcp.WithString("sender_phone_number", mcp.Description("Optional phone number to filter messages by sender")),
		mcp.WithString("chat_jid", mcp.Description("Optional chat JID to filter messages by chat")),
		mcp.WithString("query", mcp.Description("Optional search term to filter messages by content")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of messages to return (default: 20)")),
		mcp.WithNumber("page", mcp.Description("Page number for pagination (default: 0)")),
		mcp.WithBoolean("include_context", mcp.Description("Whether to include messages before and after matches (default: true)")),
		mcp.WithNumber("context_before", mcp.Description("Number of messages to include before each match (default: 1)")),
		mcp.WithNumber("context_after", mcp.Description("Number of messages to include after each match (default: 1)")),
	)
}

func createListChatsTool() mcp.Tool {
	return mcp.NewTool(bridge.OpListChats,
		mcp.WithDescription("Get WhatsApp chats matching specified criteria."),
		mcp.WithString("query", mcp.Description("Optional search term to filter chats by name or JID")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of chats to return (default: 20)")),
		mcp.WithNumber("page", mcp.Description("Page number for pagination (default: 0)")),
		mcp.WithBoolean("include_last_message", mcp.Description("Whether to include the last message in each chat (default: true)")),
		mcp.WithString("sort_by", mcp.Description("Field to sort results by, either 'last_active' or 'name' (default: 'last_active')")),
	)
}

func createGetChatTool() mcp.Tool {
	return mcp.NewTool(bridge.OpGetChat,
		mcp.WithDescription("Get WhatsApp chat metadata by JID."),
		mcp.WithString("chat_jid", mcp.Required(), mcp.Description("The JID of the chat to retrieve")),
		mcp.WithBoolean("include_last_message", mcp.Description("Whether to include the last message (default: true)")),
	)
}

func createGetDirectChatByContactTool() mcp.Tool {
	return mcp.NewTool(bridge.OpGetDirectChatByContact,
		mcp.WithDescription("Get WhatsApp chat metadata by sender phone number."),
		mcp.WithString("sender_phone_number", mcp.Required(), mcp.Description("The phone number to search for")),
	)
}

func createGetContactChatsTool() mcp.Tool {
	return mcp.NewTool(bridge.OpGetContactChats,
		mcp.WithDescription("Get all WhatsApp chats involving the contact."),
		mcp.WithString("jid", mcp.Required(), mcp.Description("The contact's JID to search for")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of chats to return (default: 20)")),
		mcp.WithNumber("page", mcp.Description("Page number for pagination (default: 0)")),
	)
}

func createGetLastInteractionTool() mcp.Tool {
	return mcp.NewTool(bridge.OpGetLastInteraction,
		mcp.WithDescription("Get most recent WhatsApp message involving the contact."),
		mcp.WithString("jid", mcp.Required(), mcp.Description("The JID of the contact to search for")),
	)
}

func createGetMessageContextTool() mcp.Tool {
	return mcp.NewTool(bridge.OpGetMessageContext,
		mcp.WithDescription("Get context around a specific WhatsApp message."),
		mcp.WithString("message_id", mcp.Required(), mcp.Description("The ID of the message to get context for")),
		mcp.WithNumber("before", mcp.Description("Number of messages to include before the target message (default: 5)")),
		mcp.WithNumber("after", mcp.Description("Number of messages to include after the target message (default: 5)")),
	)
}

func createSendMessageTool() mcp.Tool {
	return mcp.NewTool(bridge.OpSendMessage,
		mcp.WithDescription("Send a WhatsApp message to a person or group. For group chats use the JID."),
		mcp.WithString("recipient", mcp.Required(), mcp.Description("The recipient — either a phone number with country code but no + or other symbols, or a JID (e.g., '123456789@s.whatsapp.net' or a group JID like '123456789@g.us')")),
		mcp.WithString("message", mcp.Required(), mcp.Description("The message text to send")),
	)
}

func createSendFileTool() mcp.Tool {
	return mcp.NewTool(bridge.OpSendFile,
		mcp.WithDescription("Send a file such as a picture, raw audio, video or document via WhatsApp to the specified recipient. For group messages use the JID."),
		mcp.WithString("recipient", mcp.Required(), mcp.Description("The recipient — either a phone number with country code but no + or other symbols, or a JID")),
		mcp.WithString("media_path", mcp.Required(), mcp.Description("The absolute path to the media file to send (image, video, document)")),
	)
}

func createSendAudioMessageTool() mcp.Tool {
	return mcp.NewTool(bridge.OpSendAudioMessage,
		mcp.WithDescription("Send any audio file as a WhatsApp audio message to the specified recipient. For group messages use the JID. If it errors due to ffmpeg not being installed on the backend, use send_file instead."),
		mcp.WithString("recipient", mcp.Required(), mcp.Description("The recipient — either a phone number with country code but no + or other symbols, or a JID")),
		mcp.WithString("media_path", mcp.Required(), mcp.Description("The absolute path to the audio file to send (converted to an Opus voice note by the backend if needed)")),
	)
}

func createDownloadMediaTool() mcp.Tool {
	return mcp.NewTool(bridge.OpDownloadMedia,
		mcp.WithDescription("Download media from a WhatsApp message and get the local file path."),
		mcp.WithString("message_id", mcp.Required(), mcp.Description("The ID of the message containing the media")),
		mcp.WithString("chat_jid", mcp.Required(), mcp.Description("The JID of the chat containing the message")),
	)
}
