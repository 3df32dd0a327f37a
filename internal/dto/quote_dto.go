package dto

// SubmitQuoteRequest is the public (unauthenticated) intake payload. Any
// status supplied by the visitor is ignored — new requests are always
// persisted as "pending".
type SubmitQuoteRequest struct {
	Name      string  `json:"name"    validate:"required,min=2"`
	Email     string  `json:"email"   validate:"required,email"`
	Phone     *string `json:"phone"`
	Message   *string `json:"message"`
	ProductID *string `json:"product_id" validate:"omitempty,uuid"`
}

// TriageQuoteRequest mutates status and staff notes. Transitions between
// statuses are free — no state machine is enforced.
type TriageQuoteRequest struct {
	Status string  `json:"status" validate:"required,oneof=pending contacted quoted converted cancelled"`
	Notes  *string `json:"notes"`
}

type QuoteFilter struct {
	Status string `form:"status"` // pending | contacted | quoted | converted | cancelled | all
	Search string `form:"search"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type QuoteResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone"`
	Message     *string `json:"message"`
	ProductID   *string `json:"product_id"`
	ProductName *string `json:"product_name"`
	Status      string  `json:"status"`
	Notes       *string `json:"notes"`
	// Pre-filled outbound deep links for manual follow-up. Fire-and-forget:
	// nothing tracks whether the contact actually happened.
	WhatsAppURL *string `json:"whatsapp_url,omitempty"`
	MailtoURL   string  `json:"mailto_url"`
	CreatedAt   string  `json:"created_at"`
}

type QuoteListResponse struct {
	Data  []QuoteResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
