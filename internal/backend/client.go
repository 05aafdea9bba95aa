// Package backend implements the HTTP JSON client for the remote
// recommendation service.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vmelnikov/kinosovetnik/internal/catalog"
	"github.com/vmelnikov/kinosovetnik/internal/chatcontext"
	"github.com/vmelnikov/kinosovetnik/internal/session"
)

// ChatRequest is the outbound chat payload. History is expected to be capped
// at the 10 most recent messages by the caller.
type ChatRequest struct {
	Message   string               `json:"message"`
	SessionID string               `json:"session_id"`
	Context   chatcontext.Snapshot `json:"context"`
	History   []session.Message    `json:"history"`
}

// ChatResponse is the parsed backend reply.
type ChatResponse struct {
	Answer          string
	Recommendations []catalog.Item
}

// Sender sends one chat round trip to the backend.
type Sender interface {
	Send(ctx context.Context, req ChatRequest) (ChatResponse, error)
}

// Client talks to the recommendation backend over HTTP. The assistant text
// field name differs across deployments, so it is configurable; well-known
// alternates are probed when the configured field is absent.
type Client struct {
	url         string
	answerField string
	client      *http.Client
}

func NewClient(baseURL, answerField string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		url:         strings.TrimRight(strings.TrimSpace(baseURL), "/") + "/api/chat",
		answerField: strings.TrimSpace(answerField),
		client:      &http.Client{Timeout: timeout},
	}
}

func (c *Client) Send(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return ChatResponse{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return ChatResponse{}, &TransportError{Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return ChatResponse{}, &TransportError{
			Status: res.StatusCode,
			Err:    fmt.Errorf("backend http status %d: %s", res.StatusCode, string(body)),
		}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return ChatResponse{}, &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}

	return c.parseResponse(body)
}

func (c *Client) parseResponse(body []byte) (ChatResponse, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return ChatResponse{}, &MalformedResponseError{Reason: "body is not a JSON object"}
	}

	answer := extractAnswer(obj, c.answerField)
	if answer == "" {
		return ChatResponse{}, &MalformedResponseError{Reason: "no assistant text field"}
	}

	out := ChatResponse{Answer: answer}
	if raw, ok := obj["recommendations"]; ok {
		if err := json.Unmarshal(raw, &out.Recommendations); err != nil {
			return ChatResponse{}, &MalformedResponseError{Reason: "recommendations field is not a list"}
		}
	}
	return out, nil
}

// extractAnswer tries the configured field first, then well-known
// alternates used by other deployments of the backend.
func extractAnswer(obj map[string]json.RawMessage, preferred string) string {
	fields := []string{preferred, "response", "message", "text"}
	for _, k := range fields {
		if k == "" {
			continue
		}
		raw, ok := obj[k]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			continue
		}
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}
