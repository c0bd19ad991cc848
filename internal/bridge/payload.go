package bridge

import "os"

// Payload is the generic key/value mapping sent to the backend — query
// parameters for GET operations, a JSON body for POST. Built fresh per
// invocation; keys for absent optionals are omitted entirely so the backend
// can distinguish "not specified" from "explicitly empty".
type Payload map[string]any

// SearchContactsParams — GET contacts/search.
type SearchContactsParams struct {
	Query string
}

func (p SearchContactsParams) Build() Payload {
	return Payload{"query": p.Query}
}

// ListMessagesParams — GET messages. The numeric and boolean fields carry
// static defaults and are always sent; string filters are omitted when empty.
// Values pass through unclamped — range checking belongs to the backend.
type ListMessagesParams struct {
	After             string
	Before            string
	SenderPhoneNumber string
	ChatJID           string
	Query             string
	Limit             int
	Page              int
	IncludeContext    bool
	ContextBefore     int
	ContextAfter      int
}

// NewListMessagesParams returns params carrying the documented defaults.
func NewListMessagesParams() ListMessagesParams {
	return ListMessagesParams{
		Limit:          20,
		Page:           0,
		IncludeContext: true,
		ContextBefore:  1,
		ContextAfter:   1,
	}
}

func (p ListMessagesParams) Build() Payload {
	payload := Payload{
		"limit":           p.Limit,
		"page":            p.Page,
		"include_context": p.IncludeContext,
		"context_before":  p.ContextBefore,
		"context_after":   p.ContextAfter,
	}
	if p.After != "" {
		payload["after"] = p.After
	}
	if p.Before != "" {
		payload["before"] = p.Before
	}
	if p.SenderPhoneNumber != "" {
		payload["sender_phone_number"] = p.SenderPhoneNumber
	}
	if p.ChatJID != "" {
		payload["chat_jid"] = p.ChatJID
	}
	if p.Query != "" {
		payload["query"] = p.Query
	}
	return payload
}

// ListChatsParams — GET chats.
type ListChatsParams struct {
	Query              string
	Limit              int
	Page               int
	IncludeLastMessage bool
	SortBy             string
}

func NewListChatsParams() ListChatsParams {
	return ListChatsParams{
		Limit:              20,
		Page:               0,
		IncludeLastMessage: true,
		SortBy:             "last_active",
	}
}

func (p ListChatsParams) Build() Payload {
	payload := Payload{
		"limit":                p.Limit,
		"page":                 p.Page,
		"include_last_message": p.IncludeLastMessage,
		"sort_by":              p.SortBy,
	}
	if p.Query != "" {
		payload["query"] = p.Query
	}
	return payload
}

// GetChatParams — GET chat.
type GetChatParams struct {
	ChatJID            string
	IncludeLastMessage bool
}

func NewGetChatParams() GetChatParams {
	return GetChatParams{IncludeLastMessage: true}
}

func (p GetChatParams) Build() Payload {
	return Payload{
		"chat_jid":             p.ChatJID,
		"include_last_message": p.IncludeLastMessage,
	}
}

// GetDirectChatByContactParams — GET chats/by-contact.
type GetDirectChatByContactParams struct {
	SenderPhoneNumber string
}

func (p GetDirectChatByContactParams) Build() Payload {
	return Payload{"phone_number": p.SenderPhoneNumber}
}

// GetContactChatsParams — GET contacts/chats.
type GetContactChatsParams struct {
	JID   string
	Limit int
	Page  int
}

func NewGetContactChatsParams() GetContactChatsParams {
	return GetContactChatsParams{Limit: 20, Page: 0}
}

func (p GetContactChatsParams) Build() Payload {
	return Payload{
		"jid":   p.JID,
		"limit": p.Limit,
		"page":  p.Page,
	}
}

// GetLastInteractionParams — GET contacts/last-interaction.
type GetLastInteractionParams struct {
	JID string
}

func (p GetLastInteractionParams) Build() Payload {
	return Payload{"jid": p.JID}
}

// GetMessageContextParams — GET message/context.
type GetMessageContextParams struct {
	MessageID string
	Before    int
	After     int
}

func NewGetMessageContextParams() GetMessageContextParams {
	return GetMessageContextParams{Before: 5, After: 5}
}

func (p GetMessageContextParams) Build() Payload {
	return Payload{
		"message_id": p.MessageID,
		"before":     p.Before,
		"after":      p.After,
	}
}

// SendMessageParams — POST send. An empty message body is allowed; the
// recipient is not.
type SendMessageParams struct {
	Recipient string
	Message   string
}

func (p SendMessageParams) Validate() error {
	if p.Recipient == "" {
		return missingField("recipient")
	}
	return nil
}

func (p SendMessageParams) Build() Payload {
	return Payload{
		"recipient": p.Recipient,
		"message":   p.Message,
	}
}

// SendFileParams — POST send with a local media path. The existence check
// runs before payload construction so a bad path never reaches the network.
type SendFileParams struct {
	Recipient string
	MediaPath string
}

func (p SendFileParams) Validate() error {
	if p.Recipient == "" {
		return missingField("recipient")
	}
	if p.MediaPath == "" {
		return missingField("media_path")
	}
	if info, err := os.Stat(p.MediaPath); err != nil || info.IsDir() {
		return fileNotFound(p.MediaPath)
	}
	return nil
}

func (p SendFileParams) Build() Payload {
	return Payload{
		"recipient":  p.Recipient,
		"media_path": p.MediaPath,
	}
}

// SendAudioMessageParams — POST send, flagged as an audio message. Any
// transcoding to an Opus voice note happens on the backend.
type SendAudioMessageParams struct {
	Recipient string
	MediaPath string
}

func (p SendAudioMessageParams) Validate() error {
	return SendFileParams{Recipient: p.Recipient, MediaPath: p.MediaPath}.Validate()
}

func (p SendAudioMessageParams) Build() Payload {
	return Payload{
		"recipient":  p.Recipient,
		"media_path": p.MediaPath,
		"is_audio":   true,
	}
}

// DownloadMediaParams — POST download.
type DownloadMediaParams struct {
	MessageID string
	ChatJID   string
}

func (p DownloadMediaParams) Validate() error {
	if p.MessageID == "" {
		return missingField("message_id")
	}
	if p.ChatJID == "" {
		return missingField("chat_jid")
	}
	return nil
}

func (p DownloadMediaParams) Build() Payload {
	return Payload{
		"message_id": p.MessageID,
		"chat_jid":   p.ChatJID,
	}
}
