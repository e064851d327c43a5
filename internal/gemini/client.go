// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/SoftwareApkDev/gemini-chat-app/internal/session"
)

// messageSender is the part of *genai.Chat a Handle needs.
type messageSender interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// opener starts a remote chat for a session request.
type opener func(ctx context.Context, req session.SessionRequest) (messageSender, error)

// Endpoint starts Gemini chat sessions. It implements session.Endpoint.
type Endpoint struct {
	logger     *slog.Logger
	baseURL    string
	httpClient *http.Client
	open       opener
}

// Option configures an Endpoint.
type Option func(*Endpoint)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Endpoint) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithBaseURL overrides the Gemini API base URL.
func WithBaseURL(url string) Option {
	return func(e *Endpoint) { e.baseURL = url }
}

// WithHTTPClient sets the HTTP client used by the SDK.
func WithHTTPClient(c *http.Client) Option {
	return func(e *Endpoint) { e.httpClient = c }
}

// NewEndpoint creates a Gemini endpoint. No network traffic happens until
// StartSession.
func NewEndpoint(opts ...Option) *Endpoint {
	e := &Endpoint{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("component", "gemini")
	if e.open == nil {
		e.open = e.openChat
	}
	return e
}

// StartSession creates an SDK client for the request credential and opens a
// chat seeded with the request history.
func (e *Endpoint) StartSession(ctx context.Context, req session.SessionRequest) (session.Handle, error) {
	if strings.TrimSpace(req.Model) == "" {
		return nil, fmt.Errorf("model name is empty")
	}
	chat, err := e.open(ctx, req)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("chat opened", "model", req.Model, "history_turns", len(req.History))
	return &Handle{chat: chat, model: req.Model, logger: e.logger}, nil
}

func (e *Endpoint) openChat(ctx context.Context, req session.SessionRequest) (messageSender, error) {
	cc := &genai.ClientConfig{
		APIKey:     req.Credential,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: e.httpClient,
	}
	if e.baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: e.baseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	chat, err := client.Chats.Create(ctx, req.Model, buildConfig(req.SystemPrompt), buildHistory(req.History))
	if err != nil {
		return nil, fmt.Errorf("failed to create chat for model %s: %w", req.Model, err)
	}
	return chat, nil
}

// buildConfig returns nil when there is nothing to configure.
func buildConfig(systemPrompt string) *genai.GenerateContentConfig {
	if strings.TrimSpace(systemPrompt) == "" {
		return nil
	}
	return &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	}
}

func buildHistory(turns []session.Turn) []*genai.Content {
	if len(turns) == 0 {
		return nil
	}
	out := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		var role genai.Role = genai.RoleUser
		if t.Role == session.RoleModel {
			role = genai.RoleModel
		}
		out = append(out, genai.NewContentFromText(t.Text, role))
	}
	return out
}

// =============================================================================
// HANDLE
// =============================================================================

// Handle is an open Gemini chat. It implements session.Handle.
type Handle struct {
	chat   messageSender
	model  string
	logger *slog.Logger
}

// Send sends one user message and returns the reply text.
func (h *Handle) Send(ctx context.Context, text string) (string, error) {
	resp, err := h.chat.SendMessage(ctx, genai.Part{Text: text})
	if err != nil {
		werr := wrapError(err)
		h.logger.Warn("gemini request failed", "model", h.model, "kind", kindOf(werr), "error", err)
		return "", werr
	}
	return replyText(resp)
}

func replyText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", &RequestError{Kind: KindEmpty, Message: ErrNoCandidates.Error(), Err: ErrNoCandidates}
	}
	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			msg := fmt.Sprintf("%s: %s", ErrBlocked, resp.PromptFeedback.BlockReason)
			return "", &RequestError{Kind: KindBlocked, Message: msg, Err: ErrBlocked}
		}
		return "", &RequestError{Kind: KindEmpty, Message: ErrNoCandidates.Error(), Err: ErrNoCandidates}
	}
	c := resp.Candidates[0]
	if c == nil {
		return "", &RequestError{Kind: KindEmpty, Message: ErrNoCandidates.Error(), Err: ErrNoCandidates}
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		msg := ErrNoText.Error()
		if c.FinishReason != "" {
			msg = fmt.Sprintf("%s (finish reason: %s)", ErrNoText, c.FinishReason)
		}
		return "", &RequestError{Kind: KindEmpty, Message: msg, Err: ErrNoText}
	}
	return text, nil
}

func kindOf(err error) string {
	if re, ok := err.(*RequestError); ok {
		return re.Kind.String()
	}
	return KindUnknown.String()
}
