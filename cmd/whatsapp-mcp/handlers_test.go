package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wamcp/whatsapp-mcp/internal/bridge"
	"github.com/wamcp/whatsapp-mcp/internal/common"
)

func testClient(baseURL string) *bridge.Client {
	return bridge.NewClient(baseURL, "test-key", 0, common.NewSilentLogger())
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Arguments = args
	return request
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("Expected non-empty result content")
	}
	return result.Content[0].(mcp.TextContent).Text
}

func TestHandleListChats_RawPassthrough(t *testing.T) {
	raw := `[{"jid":"123@g.us","name":"Family","last_message_at":"2026-08-01T10:00:00Z"}]`
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/chats" {
			t.Errorf("Expected /chats, got %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("sort_by") != "last_active" {
			t.Errorf("Expected sort_by=last_active default, got %q", q.Get("sort_by"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(raw))
	}))
	defer mockServer.Close()

	handler := handleListChats(testClient(mockServer.URL))
	result, err := handler(t.Context(), callRequest(nil))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("Expected success, got error: %v", result.Content)
	}
	if got := resultText(t, result); got != raw {
		t.Errorf("Expected raw backend body passed through, got %q", got)
	}
}

func TestHandleListMessages_ForwardsArguments(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("chat_jid") != "123@g.us" {
			t.Errorf("Expected chat_jid=123@g.us, got %q", q.Get("chat_jid"))
		}
		if q.Get("limit") != "5" {
			t.Errorf("Expected limit=5, got %q", q.Get("limit"))
		}
		if q.Has("query") {
			t.Error("Omitted query argument must not be forwarded")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer mockServer.Close()

	handler := handleListMessages(testClient(mockServer.URL))
	result, err := handler(t.Context(), callRequest(map[string]interface{}{
		"chat_jid": "123@g.us",
		"limit":    5,
	}))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("Expected success, got error: %v", result.Content)
	}
}

func TestHandleSendMessage_MissingRecipient(t *testing.T) {
	var calls atomic.Int32
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer mockServer.Close()

	handler := handleSendMessage(testClient(mockServer.URL))
	result, err := handler(t.Context(), callRequest(map[string]interface{}{
		"recipient": "",
		"message":   "hi",
	}))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("Expected error result for missing recipient")
	}

	var failure struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &failure); err != nil {
		t.Fatalf("Validation failure must be the documented JSON shape: %v", err)
	}
	if failure.Success {
		t.Error("Expected success=false")
	}
	if !strings.Contains(failure.Message, "recipient") {
		t.Errorf("Expected reason naming the missing field, got %q", failure.Message)
	}
	if calls.Load() != 0 {
		t.Errorf("Expected zero backend calls, got %d", calls.Load())
	}
}

func TestHandleSendFile_FileNotFound(t *testing.T) {
	var calls atomic.Int32
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer mockServer.Close()

	handler := handleSendFile(testClient(mockServer.URL))
	result, err := handler(t.Context(), callRequest(map[string]interface{}{
		"recipient":  "123@s.whatsapp.net",
		"media_path": "/nonexistent/path.jpg",
	}))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("Expected error result for missing media file")
	}
	if !strings.Contains(resultText(t, result), "media file not found") {
		t.Errorf("Expected file-not-found reason, got %q", resultText(t, result))
	}
	if calls.Load() != 0 {
		t.Errorf("Expected zero backend calls, got %d", calls.Load())
	}
}

func TestHandleSendFile_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.jpg")
	if err := os.WriteFile(path, []byte("jpeg"), 0o644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}

	var calls atomic.Int32
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Method != http.MethodPost || r.URL.Path != "/send" {
			t.Errorf("Expected POST /send, got %s %s", r.Method, r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		var req map[string]interface{}
		json.Unmarshal(raw, &req)
		if req["recipient"] != "123@s.whatsapp.net" || req["media_path"] != path {
			t.Errorf("Unexpected payload: %v", req)
		}
		if _, present := req["is_audio"]; present {
			t.Error("send_file must not set is_audio")
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "message": "file sent"})
	}))
	defer mockServer.Close()

	handler := handleSendFile(testClient(mockServer.URL))
	result, err := handler(t.Context(), callRequest(map[string]interface{}{
		"recipient":  "123@s.whatsapp.net",
		"media_path": path,
	}))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("Expected success, got error: %v", result.Content)
	}
	if calls.Load() != 1 {
		t.Errorf("Expected exactly one POST to the send endpoint, got %d", calls.Load())
	}
	if !strings.Contains(resultText(t, result), "file sent") {
		t.Errorf("Expected backend status message, got %q", resultText(t, result))
	}
}

func TestHandleSendAudioMessage_SetsAudioFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.mp3")
	if err := os.WriteFile(path, []byte("mp3"), 0o644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}

	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var req map[string]interface{}
		json.Unmarshal(raw, &req)
		if req["is_audio"] != true {
			t.Errorf("Expected is_audio=true, got %v", req["is_audio"])
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "message": "audio sent"})
	}))
	defer mockServer.Close()

	handler := handleSendAudioMessage(testClient(mockServer.URL))
	result, err := handler(t.Context(), callRequest(map[string]interface{}{
		"recipient":  "123@s.whatsapp.net",
		"media_path": path,
	}))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("Expected success, got error: %v", result.Content)
	}
}

func TestHandleDownloadMedia_Success(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"message": "downloaded",
			"path":    "/data/media/msg-1.jpg",
		})
	}))
	defer mockServer.Close()

	handler := handleDownloadMedia(testClient(mockServer.URL))
	result, err := handler(t.Context(), callRequest(map[string]interface{}{
		"message_id": "msg-1",
		"chat_jid":   "123@g.us",
	}))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("Expected success, got error: %v", result.Content)
	}
	if !strings.Contains(resultText(t, result), "/data/media/msg-1.jpg") {
		t.Errorf("Expected local media path in result, got %q", resultText(t, result))
	}
}

func TestHandleSearchContacts_BackendUnavailable(t *testing.T) {
	handler := handleSearchContacts(testClient("http://localhost:1"))
	result, err := handler(t.Context(), callRequest(map[string]interface{}{
		"query": "john",
	}))
	if err != nil {
		t.Fatalf("Transport failures must never surface as handler errors: %v", err)
	}
	if !result.IsError {
		t.Fatal("Expected error result for unreachable backend")
	}

	var failure struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &failure); err != nil {
		t.Fatalf("Failure must be the documented JSON shape: %v", err)
	}
	if failure.Success || failure.Error == "" {
		t.Errorf("Expected {success: false, error: ...}, got %+v", failure)
	}
}

func TestHandleSendMessage_BackendRejects(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "invalid recipient"})
	}))
	defer mockServer.Close()

	handler := handleSendMessage(testClient(mockServer.URL))
	result, err := handler(t.Context(), callRequest(map[string]interface{}{
		"recipient": "not-a-jid",
		"message":   "hi",
	}))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("Expected error result for backend rejection")
	}
	if !strings.Contains(resultText(t, result), "invalid recipient") {
		t.Errorf("Expected backend reason in failure, got %q", resultText(t, result))
	}
}
