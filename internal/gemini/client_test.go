// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/SoftwareApkDev/gemini-chat-app/internal/session"
)

type fakeChat struct {
	resp  *genai.GenerateContentResponse
	err   error
	parts []genai.Part
}

func (f *fakeChat) SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	f.parts = append(f.parts, parts...)
	return f.resp, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: genai.NewContentFromText(text, genai.RoleModel),
		}},
	}
}

func endpointWith(chat messageSender, openErr error) *Endpoint {
	e := NewEndpoint()
	e.open = func(ctx context.Context, req session.SessionRequest) (messageSender, error) {
		return chat, openErr
	}
	return e
}

func TestHandle_Send(t *testing.T) {
	chat := &fakeChat{resp: textResponse("hi there")}
	h, err := endpointWith(chat, nil).StartSession(context.Background(), session.SessionRequest{Credential: "k", Model: "m"})
	require.NoError(t, err)

	reply, err := h.Send(context.Background(), "hello")

	require.NoError(t, err)
	assert.Equal(t, "hi there", reply)
	require.Len(t, chat.parts, 1)
	assert.Equal(t, "hello", chat.parts[0].Text)
}

func TestHandle_SendError(t *testing.T) {
	chat := &fakeChat{err: errors.New("timeout")}
	h, err := endpointWith(chat, nil).StartSession(context.Background(), session.SessionRequest{Model: "m"})
	require.NoError(t, err)

	_, err = h.Send(context.Background(), "x")

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "timeout", err.Error())
	assert.Equal(t, KindTimeout, reqErr.Kind)
}

func TestHandle_EmptyResponses(t *testing.T) {
	blocked := &genai.GenerateContentResponse{
		PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: "SAFETY"},
	}
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		kind Kind
		is   error
	}{
		{"nil response", nil, KindEmpty, ErrNoCandidates},
		{"no candidates", &genai.GenerateContentResponse{}, KindEmpty, ErrNoCandidates},
		{"blocked", blocked, KindBlocked, ErrBlocked},
		{"candidate without content", &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
		}, KindEmpty, ErrNoText},
		{"blank text", &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{Content: genai.NewContentFromText("  ", genai.RoleModel)}},
		}, KindEmpty, ErrNoText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handle{chat: &fakeChat{resp: tt.resp}, logger: NewEndpoint().logger}
			_, err := h.Send(context.Background(), "x")

			var reqErr *RequestError
			require.ErrorAs(t, err, &reqErr)
			assert.Equal(t, tt.kind, reqErr.Kind)
			assert.ErrorIs(t, err, tt.is)
		})
	}
}

func TestHandle_EmptyTextCarriesFinishReason(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
	}
	h := &Handle{chat: &fakeChat{resp: resp}, logger: NewEndpoint().logger}

	reply, err := h.Send(context.Background(), "x")

	assert.Empty(t, reply)
	require.Error(t, err)
	assert.Equal(t, "response contained no text (finish reason: SAFETY)", err.Error())
}

func TestStartSession_Errors(t *testing.T) {
	_, err := endpointWith(&fakeChat{}, nil).StartSession(context.Background(), session.SessionRequest{Model: " "})
	assert.Error(t, err)

	cause := errors.New("bad key")
	_, err = endpointWith(nil, cause).StartSession(context.Background(), session.SessionRequest{Model: "m"})
	assert.ErrorIs(t, err, cause)
}

func TestBuildConfig(t *testing.T) {
	assert.Nil(t, buildConfig(""))
	assert.Nil(t, buildConfig("   "))

	cfg := buildConfig("be brief")
	require.NotNil(t, cfg)
	require.NotNil(t, cfg.SystemInstruction)
	require.Len(t, cfg.SystemInstruction.Parts, 1)
	assert.Equal(t, "be brief", cfg.SystemInstruction.Parts[0].Text)
}

func TestBuildHistory(t *testing.T) {
	assert.Nil(t, buildHistory(nil))

	got := buildHistory([]session.Turn{
		{Role: session.RoleUser, Text: "hello"},
		{Role: session.RoleModel, Text: "hi there"},
	})

	require.Len(t, got, 2)
	assert.EqualValues(t, "user", got[0].Role)
	assert.Equal(t, "hello", got[0].Parts[0].Text)
	assert.EqualValues(t, "model", got[1].Role)
	assert.Equal(t, "hi there", got[1].Parts[0].Text)
}

func TestWrapError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		kind   Kind
		status int
	}{
		{"api 401", genai.APIError{Code: 401, Message: "unauthorized"}, KindAuthentication, 401},
		{"api 429 pointer", &genai.APIError{Code: 429, Message: "slow down"}, KindRateLimit, 429},
		{"api 404", genai.APIError{Code: 404}, KindNotFound, 404},
		{"api 400", genai.APIError{Code: 400}, KindInvalidRequest, 400},
		{"api 503", genai.APIError{Code: 503}, KindServer, 503},
		{"wrapped api", fmt.Errorf("call: %w", genai.APIError{Code: 500}), KindServer, 500},
		{"deadline", context.DeadlineExceeded, KindTimeout, 0},
		{"api key text", errors.New("API key not valid"), KindAuthentication, 0},
		{"quota text", errors.New("quota exceeded"), KindRateLimit, 0},
		{"unavailable text", errors.New("service unavailable"), KindServer, 0},
		{"other", errors.New("boom"), KindUnknown, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := wrapError(tt.err)

			var reqErr *RequestError
			require.ErrorAs(t, err, &reqErr)
			assert.Equal(t, tt.kind, reqErr.Kind)
			assert.Equal(t, tt.status, reqErr.StatusCode)
			assert.Equal(t, tt.err.Error(), reqErr.Error())
		})
	}

	assert.NoError(t, wrapError(nil))
}

func TestWrapError_KeepsRequestError(t *testing.T) {
	orig := &RequestError{Kind: KindBlocked, Message: "blocked"}
	assert.Same(t, orig, wrapError(orig))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "authentication", KindAuthentication.String())
	assert.Equal(t, "empty_response", KindEmpty.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

// TestEndpoint_HTTP drives the real SDK against a local server.
func TestEndpoint_HTTP(t *testing.T) {
	var gotKey, gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-goog-api-key")
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"hi there"}]}}]}`)
	}))
	defer srv.Close()

	e := NewEndpoint(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	h, err := e.StartSession(context.Background(), session.SessionRequest{Credential: "test-key", Model: "gemini-test"})
	require.NoError(t, err)

	reply, err := h.Send(context.Background(), "hello")

	require.NoError(t, err)
	assert.Equal(t, "hi there", reply)
	assert.Equal(t, "test-key", gotKey)
	assert.True(t, strings.Contains(gotPath, "gemini-test:generateContent"), gotPath)
	assert.Contains(t, gotBody, "contents")
}

func TestEndpoint_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`)
	}))
	defer srv.Close()

	e := NewEndpoint(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	h, err := e.StartSession(context.Background(), session.SessionRequest{Credential: "bad", Model: "gemini-test"})
	require.NoError(t, err)

	_, err = h.Send(context.Background(), "hello")

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, KindAuthentication, reqErr.Kind)
	assert.Equal(t, http.StatusForbidden, reqErr.StatusCode)
	assert.Contains(t, err.Error(), "API key not valid")
}
