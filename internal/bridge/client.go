package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wamcp/whatsapp-mcp/internal/common"
)

// maxResponseBytes caps how much of a backend response is read.
const maxResponseBytes = 1 << 20

// Client dispatches validated payloads to the WhatsApp bridge backend and
// normalizes every outcome. It holds no mutable state after construction, so
// concurrent invocations are safe.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
}

// NewClient creates a client targeting the given backend base URL. The API
// key is attached as an x-api-key header on every call. A non-positive
// timeout falls back to 60s — unbounded blocking on a dead backend is a
// defect, not an option.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *common.Logger) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// SendResponse is the backend's documented shape for the send endpoint.
type SendResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DownloadResponse is the backend's documented shape for the download
// endpoint. Path is the local file path of the downloaded media.
type DownloadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

// Invoke executes one catalogued operation against the backend and returns
// the raw response body. GET operations send the payload as query
// parameters, POST operations as a JSON body. Exactly one attempt is made;
// retry decisions belong to the caller.
func (c *Client) Invoke(ctx context.Context, op string, payload Payload) ([]byte, error) {
	desc, ok := Lookup(op)
	if !ok {
		return nil, &Error{Kind: ErrUnknownOperation, Message: fmt.Sprintf("unknown operation: %s", op)}
	}

	log := c.logger.WithCorrelationId(uuid.New().String())
	log.Debug().
		Str("operation", op).
		Str("method", desc.Method).
		Str("path", desc.Path).
		Msg("Bridge Request")

	endpoint := c.baseURL + "/" + desc.Path

	var bodyReader io.Reader
	if desc.Method == http.MethodPost {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, &Error{Kind: ErrNetwork, Message: "failed to marshal request payload", Err: err}
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, desc.Method, endpoint, bodyReader)
	if err != nil {
		return nil, &Error{Kind: ErrNetwork, Message: "failed to create request", Err: err}
	}
	if desc.Method == http.MethodGet {
		req.URL.RawQuery = encodeQuery(payload)
	} else {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		log.Error().Err(err).Str("operation", op).Dur("duration", duration).Msg("Bridge Request Failed")
		return nil, &Error{Kind: ErrNetwork, Message: fmt.Sprintf("request to %s failed", desc.Path), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &Error{Kind: ErrNetwork, Message: "failed to read response body", Err: err}
	}

	log.Debug().
		Str("operation", op).
		Int("status_code", resp.StatusCode).
		Dur("duration", duration).
		Msg("Bridge Response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{Kind: ErrNetwork, Message: httpErrorMessage(resp.StatusCode, body)}
	}

	return body, nil
}

// httpErrorMessage prefers the backend's own error field when the failure
// body is JSON, falling back to status plus raw body.
func httpErrorMessage(status int, body []byte) string {
	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &errResp) == nil {
		if errResp.Error != "" {
			return fmt.Sprintf("backend returned %d: %s", status, errResp.Error)
		}
		if errResp.Message != "" {
			return fmt.Sprintf("backend returned %d: %s", status, errResp.Message)
		}
	}
	return fmt.Sprintf("backend returned %d: %s", status, strings.TrimSpace(string(body)))
}

// encodeQuery flattens a payload into URL query parameters. Only primitive
// values occur in catalogued payloads.
func encodeQuery(payload Payload) string {
	query := url.Values{}
	for key, value := range payload {
		switch v := value.(type) {
		case string:
			query.Set(key, v)
		case bool:
			query.Set(key, strconv.FormatBool(v))
		case int:
			query.Set(key, strconv.Itoa(v))
		default:
			query.Set(key, fmt.Sprintf("%v", v))
		}
	}
	return query.Encode()
}

// --- Query operations: opaque passthrough of the backend body ---

func (c *Client) SearchContacts(ctx context.Context, p SearchContactsParams) ([]byte, error) {
	return c.Invoke(ctx, OpSearchContacts, p.Build())
}

func (c *Client) ListMessages(ctx context.Context, p ListMessagesParams) ([]byte, error) {
	return c.Invoke(ctx, OpListMessages, p.Build())
}

func (c *Client) ListChats(ctx context.Context, p ListChatsParams) ([]byte, error) {
	return c.Invoke(ctx, OpListChats, p.Build())
}

func (c *Client) GetChat(ctx context.Context, p GetChatParams) ([]byte, error) {
	return c.Invoke(ctx, OpGetChat, p.Build())
}

func (c *Client) GetDirectChatByContact(ctx context.Context, p GetDirectChatByContactParams) ([]byte, error) {
	return c.Invoke(ctx, OpGetDirectChatByContact, p.Build())
}

func (c *Client) GetContactChats(ctx context.Context, p GetContactChatsParams) ([]byte, error) {
	return c.Invoke(ctx, OpGetContactChats, p.Build())
}

func (c *Client) GetLastInteraction(ctx context.Context, p GetLastInteractionParams) ([]byte, error) {
	return c.Invoke(ctx, OpGetLastInteraction, p.Build())
}

func (c *Client) GetMessageContext(ctx context.Context, p GetMessageContextParams) ([]byte, error) {
	return c.Invoke(ctx, OpGetMessageContext, p.Build())
}

// --- Send/download operations: validated, with typed response parsing ---

func (c *Client) SendMessage(ctx context.Context, p SendMessageParams) (*SendResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	body, err := c.Invoke(ctx, OpSendMessage, p.Build())
	if err != nil {
		return nil, err
	}
	return parseSendResponse(body)
}

func (c *Client) SendFile(ctx context.Context, p SendFileParams) (*SendResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	body, err := c.Invoke(ctx, OpSendFile, p.Build())
	if err != nil {
		return nil, err
	}
	return parseSendResponse(body)
}

func (c *Client) SendAudioMessage(ctx context.Context, p SendAudioMessageParams) (*SendResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	body, err := c.Invoke(ctx, OpSendAudioMessage, p.Build())
	if err != nil {
		return nil, err
	}
	return parseSendResponse(body)
}

func (c *Client) DownloadMedia(ctx context.Context, p DownloadMediaParams) (*DownloadResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	body, err := c.Invoke(ctx, OpDownloadMedia, p.Build())
	if err != nil {
		return nil, err
	}
	var resp DownloadResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &Error{Kind: ErrDecode, Message: "invalid JSON response from backend", Err: err}
	}
	return &resp, nil
}

func parseSendResponse(body []byte) (*SendResponse, error) {
	var resp SendResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &Error{Kind: ErrDecode, Message: "invalid JSON response from backend", Err: err}
	}
	return &resp, nil
}
