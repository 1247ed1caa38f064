package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/creatorflowhq/creatorflow-backend/internal/dto"
	"github.com/creatorflowhq/creatorflow-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrTemplateNotFound = errors.New("template not found")

type TemplateService struct {
	db *gorm.DB
}

func NewTemplateService(db *gorm.DB) *TemplateService {
	return &TemplateService{db: db}
}

func (s *TemplateService) List(category models.ContentCategory, platform models.Platform) (*dto.TemplateListResponse, error) {
	query := s.db.Model(&models.Template{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if platform != "" {
		query = query.Where("platform IN ?", []models.Platform{platform, models.PlatformAll})
	}

	var templates []models.Template
	if err := query.Order("success_rate DESC").Find(&templates).Error; err != nil {
		return nil, err
	}
	return &dto.TemplateListResponse{Templates: templates, Total: int64(len(templates))}, nil
}

func (s *TemplateService) Get(id uuid.UUID) (*models.Template, error) {
	var tpl models.Template
	err := s.db.First(&tpl, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

// Render substitutes {variable} placeholders in the formula. Placeholders
// without a supplied value are left intact so the caller can see what is
// still missing.
func (s *TemplateService) Render(id uuid.UUID, variables map[string]string) (string, error) {
	tpl, err := s.Get(id)
	if err != nil {
		return "", err
	}
	return RenderFormula(tpl.Formula, variables), nil
}

func RenderFormula(formula string, variables map[string]string) string {
	rendered := formula
	for key, value := range variables {
		rendered = strings.ReplaceAll(rendered, "{"+key+"}", value)
	}
	return rendered
}

func (s *TemplateService) Create(req *dto.CreateTemplateRequest) (*models.Template, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Formula) == "" {
		return nil, fmt.Errorf("template name and formula are required")
	}

	vars, err := json.Marshal(req.Variables)
	if err != nil {
		return nil, err
	}

	tpl := models.Template{
		ID:          uuid.New(),
		Name:        req.Name,
		Category:    req.Category,
		Platform:    req.Platform,
		ContentType: req.ContentType,
		Formula:     req.Formula,
		Variables:   datatypes.JSON(vars),
	}
	if err := s.db.Create(&tpl).Error; err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (s *TemplateService) Delete(id uuid.UUID) error {
	result := s.db.Delete(&models.Template{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

// SeedBuiltins installs the shipped content formulas once. Safe to call on
// every boot.
func (s *TemplateService) SeedBuiltins() error {
	var count int64
	if err := s.db.Model(&models.Template{}).Where("built_in = ?", true).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	builtins := []models.Template{
		{
			Name:        "Question Hook Formula",
			Category:    models.CategoryEducation,
			Platform:    models.PlatformAll,
			ContentType: models.GeneratedHook,
			Formula:     "Did you know that {statistic}% of {target_audience} {common_problem}?",
			Variables:   mustJSON(map[string]string{"statistic": "90, 85, 75, 95", "target_audience": "entrepreneurs, creators, business owners", "common_problem": "make this mistake, waste time on this, struggle with this"}),
			SuccessRate: 0.87,
		},
		{
			Name:        "Transformation Story Hook",
			Category:    models.CategoryLifestyle,
			Platform:    models.PlatformAll,
			ContentType: models.GeneratedHook,
			Formula:     "I tried {activity} for {duration} and here's what happened...",
			Variables:   mustJSON(map[string]string{"activity": "this morning routine, cold showers, journaling", "duration": "30 days, a week, a month"}),
			SuccessRate: 0.82,
		},
		{
			Name:        "Contrarian Opener",
			Category:    models.CategoryBusiness,
			Platform:    models.PlatformAll,
			ContentType: models.GeneratedHook,
			Formula:     "Stop doing {common_practice} wrong! Here's what actually works:",
			Variables:   mustJSON(map[string]string{"common_practice": "social media marketing, cold outreach, content planning"}),
			SuccessRate: 0.79,
		},
		{
			Name:        "Relatable List CTA",
			Category:    models.CategoryHumor,
			Platform:    models.PlatformAll,
			ContentType: models.GeneratedCTA,
			Formula:     "Which one is you? Comment {option_range} below!",
			Variables:   mustJSON(map[string]string{"option_range": "1-5, 1-3, A or B"}),
			SuccessRate: 0.71,
		},
	}

	for i := range builtins {
		builtins[i].ID = uuid.New()
		builtins[i].BuiltIn = true
	}

	if err := s.db.Create(&builtins).Error; err != nil {
		return err
	}
	slog.Info("built-in templates seeded", "count", len(builtins))
	return nil
}

func mustJSON(m map[string]string) datatypes.JSON {
	b, err := json.Marshal(m)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(b)
}
