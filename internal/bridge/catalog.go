package bridge

import "net/http"

// Operation names as registered on the MCP server.
const (
	OpSearchContacts         = "search_contacts"
	OpListMessages           = "list_messages"
	OpListChats              = "list_chats"
	OpGetChat                = "get_chat"
	OpGetDirectChatByContact = "get_direct_chat_by_contact"
	OpGetContactChats        = "get_contact_chats"
	OpGetLastInteraction     = "get_last_interaction"
	OpGetMessageContext      = "get_message_context"
	OpSendMessage            = "send_message"
	OpSendFile               = "send_file"
	OpSendAudioMessage       = "send_audio_message"
	OpDownloadMedia          = "download_media"
)

// Descriptor maps an operation name to its backend endpoint. Descriptors are
// created once at init and never mutated; the catalogue is shared read-only
// across all invocations.
type Descriptor struct {
	Name   string
	Method string // http.MethodGet or http.MethodPost
	Path   string // endpoint path relative to the configured base URL
}

var catalog = map[string]Descriptor{
	OpSearchContacts:         {Name: OpSearchContacts, Method: http.MethodGet, Path: "contacts/search"},
	OpListMessages:           {Name: OpListMessages, Method: http.MethodGet, Path: "messages"},
	OpListChats:              {Name: OpListChats, Method: http.MethodGet, Path: "chats"},
	OpGetChat:                {Name: OpGetChat, Method: http.MethodGet, Path: "chat"},
	OpGetDirectChatByContact: {Name: OpGetDirectChatByContact, Method: http.MethodGet, Path: "chats/by-contact"},
	OpGetContactChats:        {Name: OpGetContactChats, Method: http.MethodGet, Path: "contacts/chats"},
	OpGetLastInteraction:     {Name: OpGetLastInteraction, Method: http.MethodGet, Path: "contacts/last-interaction"},
	OpGetMessageContext:      {Name: OpGetMessageContext, Method: http.MethodGet, Path: "message/context"},
	OpSendMessage:            {Name: OpSendMessage, Method: http.MethodPost, Path: "send"},
	OpSendFile:               {Name: OpSendFile, Method: http.MethodPost, Path: "send"},
	OpSendAudioMessage:       {Name: OpSendAudioMessage, Method: http.MethodPost, Path: "send"},
	OpDownloadMedia:          {Name: OpDownloadMedia, Method: http.MethodPost, Path: "download"},
}

// Lookup resolves an operation descriptor by name.
func Lookup(name string) (Descriptor, bool) {
	d, ok := catalog[name]
	return d, ok
}

// Operations returns the catalogued operation names. Order is not defined.
func Operations() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	return names
}
