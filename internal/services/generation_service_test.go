package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/creatorflowhq/creatorflow-backend/internal/config"
	"github.com/creatorflowhq/creatorflow-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestParseArtifact(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "plain json",
			raw:  `{"content": "Did you know?", "confidence": 0.9}`,
			want: "Did you know?",
		},
		{
			name: "json fence",
			raw:  "```json\n{\"content\": \"Hook line\", \"confidence\": 0.8}\n```",
			want: "Hook line",
		},
		{
			name: "bare fence",
			raw:  "```\n{\"content\": \"Hook line\"}\n```",
			want: "Hook line",
		},
		{
			name: "surrounding whitespace",
			raw:  "  \n{\"content\": \"x\"}\n  ",
			want: "x",
		},
		{
			name:    "not json",
			raw:     "Sure! Here is your hook: ...",
			wantErr: true,
		},
		{
			name:    "empty content field",
			raw:     `{"content": "", "confidence": 0.5}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			artifact, err := parseArtifact(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, artifact.Content)
		})
	}
}

func chatResponse(content string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	})
	return string(body)
}

func TestCallProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req llmRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "glm-4-flash", req.Model)
		assert.Len(t, req.Messages, 2)

		w.Write([]byte(chatResponse(`{"content": "Stop scrolling!", "hook_type": "statement", "confidence": 0.91}`)))
	}))
	defer srv.Close()

	svc := &GenerationService{client: srv.Client()}
	idea := &models.Idea{RawContent: "morning routines for founders"}

	artifact, err := svc.callProvider(srv.URL, "test-key", "glm-4-flash", idea, models.GeneratedHook, models.PlatformTikTok, models.ToneFriendly)
	assert.NoError(t, err)
	assert.Equal(t, "Stop scrolling!", artifact.Content)
	assert.Equal(t, "statement", artifact.HookType)
}

func TestCallProvider_MissingKey(t *testing.T) {
	svc := &GenerationService{client: http.DefaultClient}
	_, err := svc.callProvider("http://localhost", "", "m", &models.Idea{}, models.GeneratedHook, models.PlatformTikTok, models.ToneFriendly)
	assert.Error(t, err)
}

func TestCallProvider_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	svc := &GenerationService{client: srv.Client()}
	_, err := svc.callProvider(srv.URL, "k", "m", &models.Idea{}, models.GeneratedHook, models.PlatformTikTok, models.ToneFriendly)
	assert.Error(t, err)
}

func TestCallLLM_FallsBackToDeepSeek(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer primary.Close()

	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatResponse(`{"content": "fallback hook", "confidence": 0.7}`)))
	}))
	defer fallback.Close()

	cfg := &config.Config{
		GLMAPIURL:      primary.URL,
		GLMAPIKey:      "glm-key",
		GLMModel:       "glm-4-flash",
		DeepSeekAPIURL: fallback.URL,
		DeepSeekAPIKey: "ds-key",
		DeepSeekModel:  "deepseek-chat",
	}
	svc := &GenerationService{cfg: cfg, client: http.DefaultClient}

	artifact, model, err := svc.callLLM(&models.Idea{RawContent: "x"}, models.GeneratedHook, models.PlatformTikTok, models.ToneFriendly)
	assert.NoError(t, err)
	assert.Equal(t, "deepseek-chat", model)
	assert.Equal(t, "fallback hook", artifact.Content)
}

func TestCallLLM_AllProvidersFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := &config.Config{
		GLMAPIURL: srv.URL,
		GLMAPIKey: "k",
		GLMModel:  "glm-4-flash",
	}
	svc := &GenerationService{cfg: cfg, client: http.DefaultClient}

	_, _, err := svc.callLLM(&models.Idea{}, models.GeneratedHook, models.PlatformTikTok, models.ToneFriendly)
	assert.Error(t, err)
}
