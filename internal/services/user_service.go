package services

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/creatorflowhq/creatorflow-backend/internal/config"
	"github.com/creatorflowhq/creatorflow-backend/internal/dto"
	"github.com/creatorflowhq/creatorflow-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailMissing = errors.New("no email address found for user")
)

const (
	ActionCreateIdea      = "create_idea"
	ActionGenerateContent = "generate_content"

	// unlimited is surfaced as -1 in limit reports.
	unlimited = -1

	trialDuration = 3 * 24 * time.Hour

	reasonSubscriptionExpired = "Subscription expired. Please upgrade to continue."
	reasonIdeaLimitReached    = "Monthly idea limit reached. Upgrade for unlimited ideas."
	reasonGenLimitReached     = "Monthly generation limit reached. Upgrade for unlimited generations."
)

// UserService resolves session principals to local user records and computes
// subscription-derived usage limits.
type UserService struct {
	db          *gorm.DB
	adminEmails []string
	now         func() time.Time
}

func NewUserService(db *gorm.DB, cfg *config.Config) *UserService {
	return &UserService{
		db:          db,
		adminEmails: parseCSV(cfg.AdminEmails),
		now:         time.Now,
	}
}

// GetWithRelations loads the user with subscription and settings attached.
func (s *UserService) GetWithRelations(userID string) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Subscription").Preload("UserSettings").
		First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EnsureUser resolves a principal to its local record, synthesizing the full
// default state (user + settings + trial subscription) in one transaction
// when the provider knows the user but this database does not yet.
func (s *UserService) EnsureUser(principalID, email string, name *string) (*models.User, error) {
	user, err := s.GetWithRelations(principalID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}
	if email == "" {
		return nil, ErrEmailMissing
	}
	if err := s.CreateWithDefaults(s.db, principalID, email, name); err != nil {
		return nil, err
	}
	return s.GetWithRelations(principalID)
}

// CreateWithDefaults inserts User + UserSettings + trial Subscription
// atomically. Callers already inside a transaction pass their tx handle.
func (s *UserService) CreateWithDefaults(db *gorm.DB, id, email string, name *string) error {
	now := s.now()
	trialEnd := now.Add(trialDuration)

	return db.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			ID:                 id,
			Email:              email,
			Name:               name,
			SubscriptionStatus: models.StatusFreeTrial,
			TrialStartedAt:     &now,
			LastResetAt:        now,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		settings := models.UserSettings{
			ID:                 uuid.New(),
			UserID:             id,
			DefaultTone:        models.ToneFriendly,
			AutoSave:           true,
			EmailNotifications: true,
		}
		if err := tx.Create(&settings).Error; err != nil {
			return err
		}

		sub := models.Subscription{
			ID:         uuid.New(),
			UserID:     id,
			Status:     models.StatusFreeTrial,
			Plan:       models.PlanFreeTrial,
			TrialStart: &now,
			TrialEnd:   &trialEnd,
		}
		return tx.Create(&sub).Error
	})
}

// HasValidSubscription reports whether the user may use the product at all:
// ACTIVE always qualifies; FREE_TRIAL and TRIALING qualify while the trial
// window is open; no subscription row never qualifies.
func (s *UserService) HasValidSubscription(user *models.User) bool {
	if user.Subscription == nil {
		return false
	}

	switch user.Subscription.Status {
	case models.StatusFreeTrial, models.StatusTrialing:
		if user.Subscription.TrialEnd == nil {
			return false
		}
		return s.now().Before(*user.Subscription.TrialEnd)
	case models.StatusActive:
		return true
	default:
		return false
	}
}

// CheckLimits computes the usage report for both monthly counters. Detection
// of a stale month only logs; the actual reset belongs to the out-of-band
// job (StartMonthlyReset).
func (s *UserService) CheckLimits(user *models.User) dto.UsageReport {
	now := s.now()
	if now.Month() != user.LastResetAt.Month() || now.Year() != user.LastResetAt.Year() {
		slog.Info("monthly limits due for reset", "user_id", user.ID)
	}

	var status models.SubscriptionStatus
	if user.Subscription != nil {
		status = user.Subscription.Status
	}

	ideaLimit := limitFor(status)
	genLimit := limitFor(status)

	return dto.UsageReport{
		Ideas: dto.IdeaCounter{
			Used:      user.MonthlyIdeas,
			Limit:     ideaLimit,
			Remaining: remaining(ideaLimit, user.MonthlyIdeas),
			CanCreate: underLimit(ideaLimit, user.MonthlyIdeas),
		},
		Generations: dto.GenerationCounter{
			Used:        user.MonthlyGenerations,
			Limit:       genLimit,
			Remaining:   remaining(genLimit, user.MonthlyGenerations),
			CanGenerate: underLimit(genLimit, user.MonthlyGenerations),
		},
	}
}

func limitFor(status models.SubscriptionStatus) int {
	switch status {
	case models.StatusFreeTrial, models.StatusTrialing, models.StatusActive:
		return unlimited
	default:
		return 0
	}
}

func underLimit(limit, used int) bool {
	return limit == unlimited || used < limit
}

func remaining(limit, used int) int {
	if limit == unlimited {
		return unlimited
	}
	if r := limit - used; r > 0 {
		return r
	}
	return 0
}

// CanPerformAction re-resolves the user and gates the requested action.
// Business rejections come back as a Decision value, never an error.
func (s *UserService) CanPerformAction(userID, action string) (dto.Decision, error) {
	user, err := s.GetWithRelations(userID)
	if err != nil {
		return dto.Decision{}, err
	}

	if !s.HasValidSubscription(user) {
		return dto.Decision{Allowed: false, Reason: reasonSubscriptionExpired}, nil
	}

	limits := s.CheckLimits(user)
	switch action {
	case ActionCreateIdea:
		if !limits.Ideas.CanCreate {
			return dto.Decision{Allowed: false, Reason: reasonIdeaLimitReached}, nil
		}
		return dto.Decision{Allowed: true}, nil
	case ActionGenerateContent:
		if !limits.Generations.CanGenerate {
			return dto.Decision{Allowed: false, Reason: reasonGenLimitReached}, nil
		}
		return dto.Decision{Allowed: true}, nil
	default:
		return dto.Decision{Allowed: false, Reason: "Unknown action"}, nil
	}
}

// IncrementUsage bumps a monthly counter by one in a single UPDATE. The
// storage layer enforces no cap; enforcement is advisory via CanPerformAction.
func (s *UserService) IncrementUsage(userID, kind string) error {
	column := "monthly_ideas"
	if kind == "generations" {
		column = "monthly_generations"
	}
	return s.db.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn(column, gorm.Expr(column+" + 1")).Error
}

func (s *UserService) IsAdmin(user *models.User) bool {
	for _, email := range s.adminEmails {
		if strings.EqualFold(email, user.Email) {
			return true
		}
	}
	return false
}

func (s *UserService) UpdateSettings(userID string, req *dto.UpdateSettingsRequest) (*models.UserSettings, error) {
	var settings models.UserSettings
	if err := s.db.First(&settings, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.DefaultTone != nil {
		updates["default_tone"] = *req.DefaultTone
	}
	if req.AutoSave != nil {
		updates["auto_save"] = *req.AutoSave
	}
	if req.EmailNotifications != nil {
		updates["email_notifications"] = *req.EmailNotifications
	}
	if req.Timezone != nil {
		updates["timezone"] = *req.Timezone
	}
	if len(updates) == 0 {
		return &settings, nil
	}

	if err := s.db.Model(&settings).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// ApplyProfileUpdates persists a partial profile update for an already
// resolved user.
func (s *UserService) ApplyProfileUpdates(user *models.User, updates map[string]interface{}) error {
	return s.db.Model(user).Updates(updates).Error
}

// StartMonthlyReset runs the out-of-band counter reset: a daily tick that
// zeroes the monthly counters for every user whose last reset happened in an
// earlier calendar month. CheckLimits only detects staleness; this is the
// job that acts on it.
func (s *UserService) StartMonthlyReset(done chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.resetStaleCounters()
			case <-done:
				return
			}
		}
	}()
}

func (s *UserService) resetStaleCounters() {
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	result := s.db.Model(&models.User{}).
		Where("last_reset_at < ?", monthStart).
		Updates(map[string]interface{}{
			"monthly_ideas":       0,
			"monthly_generations": 0,
			"last_reset_at":       now,
		})
	if result.Error != nil {
		slog.Error("monthly usage reset failed", "error", result.Error)
	} else if result.RowsAffected > 0 {
		slog.Info("monthly usage counters reset", "users", result.RowsAffected)
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
