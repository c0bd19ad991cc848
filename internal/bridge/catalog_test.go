package bridge

import (
	"net/http"
	"testing"
)

func TestLookup_AllOperationsCatalogued(t *testing.T) {
	expected := map[string]Descriptor{
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

	for name, want := range expected {
		got, ok := Lookup(name)
		if !ok {
			t.Errorf("Lookup(%q) not found", name)
			continue
		}
		if got != want {
			t.Errorf("Lookup(%q) = %+v, want %+v", name, got, want)
		}
	}

	if len(Operations()) != len(expected) {
		t.Errorf("Expected %d catalogued operations, got %d", len(expected), len(Operations()))
	}
}

func TestLookup_UnknownOperation(t *testing.T) {
	if _, ok := Lookup("drop_all_chats"); ok {
		t.Error("Expected unknown operation to miss the catalogue")
	}
}
