package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/creatorflowhq/creatorflow-backend/internal/dto"
	"github.com/creatorflowhq/creatorflow-backend/internal/models"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ReplayStore tracks delivery ids of successfully processed webhooks.
// Retries of a processed delivery are acknowledged without reprocessing;
// deliveries that failed are never marked, so the provider's retry runs the
// handlers again.
type ReplayStore interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	MarkProcessed(ctx context.Context, eventID string) error
}

type redisReplayStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisReplayStore(client *redis.Client) ReplayStore {
	return &redisReplayStore{client: client, ttl: 24 * time.Hour}
}

func (r *redisReplayStore) Seen(ctx context.Context, eventID string) (bool, error) {
	n, err := r.client.Exists(ctx, "webhook:seen:"+eventID).Result()
	return n > 0, err
}

func (r *redisReplayStore) MarkProcessed(ctx context.Context, eventID string) error {
	return r.client.Set(ctx, "webhook:seen:"+eventID, 1, r.ttl).Err()
}

// SyncService applies verified identity-provider webhook events to local
// user records.
type SyncService struct {
	db     *gorm.DB
	users  *UserService
	replay ReplayStore
}

func NewSyncService(db *gorm.DB, users *UserService, replay ReplayStore) *SyncService {
	return &SyncService{db: db, users: users, replay: replay}
}

// IsDuplicate reports whether this delivery id was already processed. With
// no replay store configured every delivery counts as first.
func (s *SyncService) IsDuplicate(ctx context.Context, eventID string) bool {
	if s.replay == nil || eventID == "" {
		return false
	}
	seen, err := s.replay.Seen(ctx, eventID)
	if err != nil {
		// Dedup is best-effort; a broken store must not drop real events.
		slog.Warn("webhook replay check failed", "error", err)
		return false
	}
	return seen
}

// MarkProcessed records the delivery id once handling succeeded. Failed
// deliveries stay unmarked so the provider's retry is processed, not acked
// as a duplicate.
func (s *SyncService) MarkProcessed(ctx context.Context, eventID string) {
	if s.replay == nil || eventID == "" {
		return
	}
	if err := s.replay.MarkProcessed(ctx, eventID); err != nil {
		slog.Warn("webhook replay mark failed", "error", err, "event_id", eventID)
	}
}

// HandleEvent dispatches one verified event. Unrecognized types are logged
// no-ops.
func (s *SyncService) HandleEvent(event *dto.IdentityEvent) error {
	switch event.Type {
	case "user.created":
		return s.handleUserCreated(&event.Data)
	case "user.updated":
		return s.handleUserUpdated(&event.Data)
	case "user.deleted":
		return s.handleUserDeleted(&event.Data)
	default:
		slog.Info("unhandled webhook event type", "event_type", event.Type)
		return nil
	}
}

func (s *SyncService) handleUserCreated(data *dto.IdentityEventData) error {
	email, ok := primaryEmail(data)
	if !ok {
		return ErrEmailMissing
	}
	name := displayName(data.FirstName, data.LastName)

	slog.Info("creating user from webhook", "user_id", data.ID)
	return s.users.CreateWithDefaults(s.db, data.ID, email, name)
}

func (s *SyncService) handleUserUpdated(data *dto.IdentityEventData) error {
	email, ok := primaryEmail(data)
	if !ok {
		// Not an error: the provider can emit updates without email payloads.
		slog.Warn("no email address found for user update", "user_id", data.ID)
		return nil
	}
	name := displayName(data.FirstName, data.LastName)

	var user models.User
	err := s.db.First(&user, "id = ?", data.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Out-of-order delivery: synthesize the same default state as
		// user.created.
		return s.users.CreateWithDefaults(s.db, data.ID, email, name)
	}
	if err != nil {
		return err
	}

	return s.db.Model(&user).Updates(map[string]interface{}{
		"email":      email,
		"name":       name,
		"updated_at": time.Now(),
	}).Error
}

func (s *SyncService) handleUserDeleted(data *dto.IdentityEventData) error {
	slog.Info("anonymizing deleted user", "user_id", data.ID)

	// Anonymize in place; ideas, generated content and analytics rows stay.
	result := s.db.Model(&models.User{}).
		Where("id = ?", data.ID).
		Updates(map[string]interface{}{
			"email":       AnonymizedEmail(data.ID),
			"name":        "Deleted User",
			"brand_voice": nil,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		slog.Warn("user.deleted for unknown user", "user_id", data.ID)
	}
	return nil
}

// AnonymizedEmail derives the deterministic placeholder written on deletion.
func AnonymizedEmail(userID string) string {
	return fmt.Sprintf("deleted_%s@deleted.com", userID)
}

func primaryEmail(data *dto.IdentityEventData) (string, bool) {
	if len(data.EmailAddresses) == 0 || data.EmailAddresses[0].EmailAddress == "" {
		return "", false
	}
	return data.EmailAddresses[0].EmailAddress, true
}

// displayName joins the non-empty name parts with a space; nil when both are
// absent.
func displayName(first, last *string) *string {
	var parts []string
	if first != nil && *first != "" {
		parts = append(parts, *first)
	}
	if last != nil && *last != "" {
		parts = append(parts, *last)
	}
	if len(parts) == 0 {
		return nil
	}
	name := strings.Join(parts, " ")
	return &name
}
