package services

import (
	"testing"
	"time"

	"github.com/creatorflowhq/creatorflow-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
}

func trialUser(status models.SubscriptionStatus, trialEnd *time.Time) *models.User {
	return &models.User{
		ID:          "user_123",
		Email:       "creator@example.com",
		LastResetAt: fixedNow(),
		Subscription: &models.Subscription{
			Status:   status,
			TrialEnd: trialEnd,
		},
	}
}

func TestHasValidSubscription(t *testing.T) {
	svc := &UserService{now: fixedNow}

	future := fixedNow().Add(24 * time.Hour)
	past := fixedNow().Add(-24 * time.Hour)

	tests := []struct {
		name string
		user *models.User
		want bool
	}{
		{"no subscription row", &models.User{ID: "u"}, false},
		{"active", trialUser(models.StatusActive, nil), true},
		{"free trial still open", trialUser(models.StatusFreeTrial, &future), true},
		{"free trial expired", trialUser(models.StatusFreeTrial, &past), false},
		{"free trial without end date", trialUser(models.StatusFreeTrial, nil), false},
		{"trialing still open", trialUser(models.StatusTrialing, &future), true},
		{"trialing expired", trialUser(models.StatusTrialing, &past), false},
		{"past due", trialUser(models.StatusPastDue, &future), false},
		{"cancelled", trialUser(models.StatusCancelled, nil), false},
		{"expired", trialUser(models.StatusExpired, nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.HasValidSubscription(tt.user))
		})
	}
}

func TestHasValidSubscription_TrialEndBoundary(t *testing.T) {
	svc := &UserService{now: fixedNow}

	// now == trialEnd is already expired; validity requires now strictly
	// before the end of the window.
	exact := fixedNow()
	assert.False(t, svc.HasValidSubscription(trialUser(models.StatusFreeTrial, &exact)))
}

func TestCheckLimits_ValidStatusesAreUnlimited(t *testing.T) {
	svc := &UserService{now: fixedNow}
	future := fixedNow().Add(time.Hour)

	for _, status := range []models.SubscriptionStatus{
		models.StatusFreeTrial, models.StatusTrialing, models.StatusActive,
	} {
		user := trialUser(status, &future)
		user.MonthlyIdeas = 9999
		user.MonthlyGenerations = 9999

		report := svc.CheckLimits(user)
		assert.Equal(t, -1, report.Ideas.Limit, status)
		assert.Equal(t, -1, report.Ideas.Remaining, status)
		assert.True(t, report.Ideas.CanCreate, status)
		assert.Equal(t, -1, report.Generations.Limit, status)
		assert.True(t, report.Generations.CanGenerate, status)
	}
}

func TestCheckLimits_InvalidStatusesAreZero(t *testing.T) {
	svc := &UserService{now: fixedNow}

	for _, status := range []models.SubscriptionStatus{
		models.StatusPastDue, models.StatusCancelled, models.StatusExpired,
	} {
		user := trialUser(status, nil)
		user.MonthlyIdeas = 3

		report := svc.CheckLimits(user)
		assert.Equal(t, 0, report.Ideas.Limit, status)
		assert.Equal(t, 0, report.Ideas.Remaining, status)
		assert.False(t, report.Ideas.CanCreate, status)
		assert.False(t, report.Generations.CanGenerate, status)
	}
}

func TestCheckLimits_NoSubscriptionRow(t *testing.T) {
	svc := &UserService{now: fixedNow}
	user := &models.User{ID: "u", LastResetAt: fixedNow()}

	report := svc.CheckLimits(user)
	assert.Equal(t, 0, report.Ideas.Limit)
	assert.False(t, report.Ideas.CanCreate)
}

func TestRemaining(t *testing.T) {
	assert.Equal(t, -1, remaining(unlimited, 500))
	assert.Equal(t, 3, remaining(10, 7))
	// Never negative even when usage overshot the cap.
	assert.Equal(t, 0, remaining(10, 14))
	assert.Equal(t, 0, remaining(10, 10))
}

func TestUnderLimit(t *testing.T) {
	assert.True(t, underLimit(unlimited, 1_000_000))
	assert.True(t, underLimit(10, 9))
	assert.False(t, underLimit(10, 10))
	assert.False(t, underLimit(0, 0))
}

func TestIsAdmin(t *testing.T) {
	svc := &UserService{adminEmails: parseCSV("admin@creatorflow.io, ops@creatorflow.io")}

	assert.True(t, svc.IsAdmin(&models.User{Email: "admin@creatorflow.io"}))
	assert.True(t, svc.IsAdmin(&models.User{Email: "ADMIN@creatorflow.io"}))
	assert.False(t, svc.IsAdmin(&models.User{Email: "someone@creatorflow.io"}))
}

func TestParseCSV(t *testing.T) {
	assert.Nil(t, parseCSV(""))
	assert.Equal(t, []string{"a@x.com"}, parseCSV("a@x.com"))
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, parseCSV(" a@x.com ,, b@x.com "))
}
