package services

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/creatorflowhq/creatorflow-backend/internal/dto"
	"github.com/creatorflowhq/creatorflow-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrIdeaNotFound    = errors.New("idea not found")
	ErrNotIdeaOwner    = errors.New("you do not own this idea")
	ErrEmptyRawContent = errors.New("raw content is required")
)

type IdeaService struct {
	db    *gorm.DB
	users *UserService
}

func NewIdeaService(db *gorm.DB, users *UserService) *IdeaService {
	return &IdeaService{db: db, users: users}
}

// Create gates on the subscription limits, inserts the idea and bumps the
// monthly counter. The gate is advisory: check, then increment, with no
// storage-level cap in between.
func (s *IdeaService) Create(userID string, req *dto.CreateIdeaRequest) (*models.Idea, dto.Decision, error) {
	if strings.TrimSpace(req.RawContent) == "" {
		return nil, dto.Decision{}, ErrEmptyRawContent
	}

	decision, err := s.users.CanPerformAction(userID, ActionCreateIdea)
	if err != nil {
		return nil, dto.Decision{}, err
	}
	if !decision.Allowed {
		return nil, decision, nil
	}

	platform := req.TargetPlatform
	if platform == "" {
		platform = models.PlatformAll
	}

	idea := models.Idea{
		ID:             uuid.New(),
		UserID:         userID,
		RawContent:     req.RawContent,
		ContentType:    req.ContentType,
		TargetPlatform: platform,
		Tags:           toJSONArray(req.Tags),
		WordCount:      len(strings.Fields(req.RawContent)),
		Status:         models.IdeaDraft,
	}

	if err := s.db.Create(&idea).Error; err != nil {
		return nil, dto.Decision{}, err
	}

	if err := s.users.IncrementUsage(userID, "ideas"); err != nil {
		return nil, dto.Decision{}, err
	}

	return &idea, decision, nil
}

func (s *IdeaService) List(userID string, limit, offset int) (*dto.IdeaListResponse, error) {
	var ideas []models.Idea
	var total int64

	s.db.Model(&models.Idea{}).Where("user_id = ?", userID).Count(&total)

	err := s.db.Where("user_id = ?", userID).
		Preload("GeneratedContent").
		Preload("PerformanceData").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ideas).Error
	if err != nil {
		return nil, err
	}

	return &dto.IdeaListResponse{Ideas: ideas, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *IdeaService) Get(userID string, ideaID uuid.UUID) (*models.Idea, error) {
	var idea models.Idea
	err := s.db.Preload("GeneratedContent").Preload("PerformanceData").
		First(&idea, "id = ?", ideaID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrIdeaNotFound
	}
	if err != nil {
		return nil, err
	}
	if idea.UserID != userID {
		return nil, ErrNotIdeaOwner
	}
	return &idea, nil
}

func (s *IdeaService) Update(userID string, ideaID uuid.UUID, req *dto.UpdateIdeaRequest) (*models.Idea, error) {
	idea, err := s.Get(userID, ideaID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.RawContent != nil {
		updates["raw_content"] = *req.RawContent
		updates["word_count"] = len(strings.Fields(*req.RawContent))
	}
	if req.ContentType != nil {
		updates["content_type"] = *req.ContentType
	}
	if req.TargetPlatform != nil {
		updates["target_platform"] = *req.TargetPlatform
	}
	if req.Tags != nil {
		updates["tags"] = toJSONArray(req.Tags)
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if len(updates) == 0 {
		return idea, nil
	}

	if err := s.db.Model(idea).Updates(updates).Error; err != nil {
		return nil, err
	}
	return idea, nil
}

func (s *IdeaService) Archive(userID string, ideaID uuid.UUID) (*models.Idea, error) {
	status := models.IdeaArchived
	return s.Update(userID, ideaID, &dto.UpdateIdeaRequest{Status: &status})
}

func (s *IdeaService) Delete(userID string, ideaID uuid.UUID) error {
	idea, err := s.Get(userID, ideaID)
	if err != nil {
		return err
	}
	return s.db.Delete(idea).Error
}

func toJSONArray(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(b)
}
