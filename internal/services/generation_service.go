package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/creatorflowhq/creatorflow-backend/internal/config"
	"github.com/creatorflowhq/creatorflow-backend/internal/dto"
	"github.com/creatorflowhq/creatorflow-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type llmMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type llmRequest struct {
	Model       string       `json:"model"`
	Messages    []llmMessage `json:"messages"`
	Temperature float64      `json:"temperature"`
	MaxTokens   int          `json:"max_tokens"`
}

type llmResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type generatedArtifact struct {
	Content           string  `json:"content"`
	HookType          string  `json:"hook_type,omitempty"`
	EstimatedDuration int     `json:"estimated_duration,omitempty"`
	Confidence        float64 `json:"confidence"`
}

// GenerationService produces hooks, scripts, captions, hashtags and CTAs for
// an idea via OpenAI-compatible chat APIs: GLM first, DeepSeek fallback.
type GenerationService struct {
	db        *gorm.DB
	cfg       *config.Config
	users     *UserService
	ideas     *IdeaService
	analytics *AnalyticsService
	client    *http.Client
}

func NewGenerationService(db *gorm.DB, cfg *config.Config, users *UserService, ideas *IdeaService, analytics *AnalyticsService) *GenerationService {
	return &GenerationService{
		db:        db,
		cfg:       cfg,
		users:     users,
		ideas:     ideas,
		analytics: analytics,
		client:    &http.Client{Timeout: cfg.AITimeout},
	}
}

// Generate gates on subscription limits, produces one artifact for the idea,
// persists it, bumps the generation counter and the daily rollup.
func (s *GenerationService) Generate(userID string, req *dto.GenerateRequest) (*models.GeneratedContent, dto.Decision, error) {
	idea, err := s.ideas.Get(userID, req.IdeaID)
	if err != nil {
		return nil, dto.Decision{}, err
	}

	decision, err := s.users.CanPerformAction(userID, ActionGenerateContent)
	if err != nil {
		return nil, dto.Decision{}, err
	}
	if !decision.Allowed {
		return nil, decision, nil
	}

	platform := req.Platform
	if platform == "" {
		platform = idea.TargetPlatform
	}
	tone := req.Tone
	if tone == "" {
		tone = models.ToneFriendly
	}

	artifact, model, err := s.callLLM(idea, req.ContentType, platform, tone)
	if err != nil {
		return nil, dto.Decision{}, err
	}

	metadata, _ := json.Marshal(map[string]interface{}{
		"hook_type":          artifact.HookType,
		"word_count":         len(strings.Fields(artifact.Content)),
		"estimated_duration": artifact.EstimatedDuration,
		"confidence":         artifact.Confidence,
		"model":              model,
	})

	content := models.GeneratedContent{
		ID:          uuid.New(),
		IdeaID:      idea.ID,
		UserID:      userID,
		ContentType: req.ContentType,
		Platform:    platform,
		Content:     artifact.Content,
		Metadata:    datatypes.JSON(metadata),
	}

	if err := s.db.Create(&content).Error; err != nil {
		return nil, dto.Decision{}, err
	}

	if err := s.users.IncrementUsage(userID, "generations"); err != nil {
		return nil, dto.Decision{}, err
	}
	if err := s.analytics.RecordDailyActivity(userID, 0, 1); err != nil {
		slog.Warn("daily rollup update failed", "user_id", userID, "error", err)
	}

	return &content, decision, nil
}

func (s *GenerationService) ListForIdea(userID string, ideaID uuid.UUID) (*dto.GenerationListResponse, error) {
	if _, err := s.ideas.Get(userID, ideaID); err != nil {
		return nil, err
	}

	var content []models.GeneratedContent
	err := s.db.Where("idea_id = ?", ideaID).
		Order("created_at DESC").
		Find(&content).Error
	if err != nil {
		return nil, err
	}

	return &dto.GenerationListResponse{Content: content, Total: int64(len(content))}, nil
}

func (s *GenerationService) callLLM(idea *models.Idea, contentType models.GeneratedContentType, platform models.Platform, tone models.ContentTone) (*generatedArtifact, string, error) {
	artifact, err := s.callProvider(s.cfg.GLMAPIURL, s.cfg.GLMAPIKey, s.cfg.GLMModel, idea, contentType, platform, tone)
	if err == nil {
		return artifact, s.cfg.GLMModel, nil
	}
	slog.Warn("GLM generation failed, trying DeepSeek", "error", err)

	if s.cfg.DeepSeekAPIKey != "" {
		artifact, err = s.callProvider(s.cfg.DeepSeekAPIURL, s.cfg.DeepSeekAPIKey, s.cfg.DeepSeekModel, idea, contentType, platform, tone)
		if err == nil {
			return artifact, s.cfg.DeepSeekModel, nil
		}
		slog.Warn("DeepSeek also failed", "error", err)
	}

	return nil, "", fmt.Errorf("all LLM providers failed: %w", err)
}

func (s *GenerationService) callProvider(apiURL, apiKey, model string, idea *models.Idea, contentType models.GeneratedContentType, platform models.Platform, tone models.ContentTone) (*generatedArtifact, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key not configured")
	}

	reqBody, err := json.Marshal(llmRequest{
		Model: model,
		Messages: []llmMessage{
			{Role: "system", Content: systemPrompt(contentType, platform, tone)},
			{Role: "user", Content: userPrompt(idea, contentType)},
		},
		Temperature: 0.8,
		MaxTokens:   1024,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", apiURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned %d: %s", resp.StatusCode, string(body))
	}

	var llmResp llmResponse
	if err := json.Unmarshal(body, &llmResp); err != nil {
		return nil, err
	}
	if len(llmResp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from API")
	}

	return parseArtifact(llmResp.Choices[0].Message.Content)
}

// parseArtifact strips markdown fences and decodes the JSON payload the
// prompt asks for.
func parseArtifact(raw string) (*generatedArtifact, error) {
	content := strings.TrimSpace(raw)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var artifact generatedArtifact
	if err := json.Unmarshal([]byte(content), &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	if artifact.Content == "" {
		return nil, fmt.Errorf("LLM returned empty content")
	}
	return &artifact, nil
}

func systemPrompt(contentType models.GeneratedContentType, platform models.Platform, tone models.ContentTone) string {
	task := map[models.GeneratedContentType]string{
		models.GeneratedHook:     "a scroll-stopping opening hook (first 3 seconds of the video)",
		models.GeneratedScript:   "a full short-form video script structured as hook, context, main content and call to action",
		models.GeneratedCaption:  "an engaging post caption",
		models.GeneratedHashtags: "a space-separated set of relevant hashtags",
		models.GeneratedCTA:      "a strong call to action line",
	}[contentType]

	return fmt.Sprintf(`You are a short-form video content strategist. Write %s for %s in a %s tone.

Rules:
1. Match the creator's topic and audience exactly
2. Keep within the platform's length conventions
3. Return ONLY valid JSON, no markdown or explanation

JSON shape:
{"content": "...", "hook_type": "question|statement|statistic|story", "estimated_duration": <seconds>, "confidence": <0..1>}`,
		task, platform, strings.ToLower(string(tone)))
}

func userPrompt(idea *models.Idea, contentType models.GeneratedContentType) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Idea: %q\n", idea.RawContent)
	if idea.ContentType != "" {
		fmt.Fprintf(&sb, "Content type: %s\n", idea.ContentType)
	}
	if len(idea.ProcessedContent) > 0 {
		fmt.Fprintf(&sb, "Processed breakdown: %s\n", string(idea.ProcessedContent))
	}
	fmt.Fprintf(&sb, "Produce the %s now.", strings.ToLower(string(contentType)))
	return sb.String()
}
