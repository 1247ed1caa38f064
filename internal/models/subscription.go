package models

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string

const (
	StatusFreeTrial SubscriptionStatus = "FREE_TRIAL"
	StatusTrialing  SubscriptionStatus = "TRIALING"
	StatusActive    SubscriptionStatus = "ACTIVE"
	StatusPastDue   SubscriptionStatus = "PAST_DUE"
	StatusCancelled SubscriptionStatus = "CANCELLED"
	StatusExpired   SubscriptionStatus = "EXPIRED"
)

type SubscriptionPlan string

const (
	PlanFreeTrial SubscriptionPlan = "FREE_TRIAL"
	PlanStarter   SubscriptionPlan = "STARTER"
	PlanPro       SubscriptionPlan = "PRO"
	PlanTeam      SubscriptionPlan = "TEAM"
)

// Subscription is written by user synthesis (trial creation) and the billing
// webhook pipeline. Each writer targets a fixed status; reads judge validity
// through the resolver, not here.
type Subscription struct {
	ID     uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID string             `gorm:"size:64;not null;uniqueIndex" json:"user_id"`
	Status SubscriptionStatus `gorm:"size:20;not null;default:'FREE_TRIAL'" json:"status"`
	Plan   SubscriptionPlan   `gorm:"size:20;not null;default:'FREE_TRIAL'" json:"plan"`

	TrialStart         *time.Time `json:"trial_start"`
	TrialEnd           *time.Time `json:"trial_end"`
	CurrentPeriodStart *time.Time `json:"current_period_start"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end"`

	StripeCustomerID     *string `gorm:"size:255;index" json:"-"`
	StripeSubscriptionID *string `gorm:"size:255;index" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}
