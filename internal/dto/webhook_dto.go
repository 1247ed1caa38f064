package dto

// IdentityEvent is the provider's webhook envelope: {"type": ..., "data": {...}}.
type IdentityEvent struct {
	Type string            `json:"type"`
	Data IdentityEventData `json:"data"`
}

type IdentityEventData struct {
	ID             string         `json:"id"`
	EmailAddresses []EmailAddress `json:"email_addresses"`
	FirstName      *string        `json:"first_name"`
	LastName       *string        `json:"last_name"`
	ImageURL       string         `json:"image_url"`
}

type EmailAddress struct {
	EmailAddress string `json:"email_address"`
}
