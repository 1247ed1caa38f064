package dto

import "github.com/creatorflowhq/creatorflow-backend/internal/models"

// MeResponse is the resolver's output: the local user with relations plus
// the computed usage report.
type MeResponse struct {
	User   *models.User `json:"user"`
	Limits UsageReport  `json:"limits"`
}

// UsageReport carries the per-counter limit state. A limit (and remaining)
// of -1 means unlimited; Infinity does not survive JSON.
type UsageReport struct {
	Ideas       IdeaCounter       `json:"ideas"`
	Generations GenerationCounter `json:"generations"`
}

type IdeaCounter struct {
	Used      int  `json:"used"`
	Limit     int  `json:"limit"`
	Remaining int  `json:"remaining"`
	CanCreate bool `json:"canCreate"`
}

type GenerationCounter struct {
	Used        int  `json:"used"`
	Limit       int  `json:"limit"`
	Remaining   int  `json:"remaining"`
	CanGenerate bool `json:"canGenerate"`
}

// Decision is the business-rule gate result. Rejections travel as values,
// never as errors.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

type UpdateSettingsRequest struct {
	DefaultTone        *models.ContentTone `json:"default_tone"`
	AutoSave           *bool               `json:"auto_save"`
	EmailNotifications *bool               `json:"email_notifications"`
	Timezone           *string             `json:"timezone"`
}

type UpdateProfileRequest struct {
	Name               *string  `json:"name"`
	BrandVoice         *string  `json:"brand_voice"`
	PreferredPlatforms []string `json:"preferred_platforms"`
}
