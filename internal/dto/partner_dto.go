package dto

// Customers and suppliers share the exact same shape; the DTOs are reused for
// both aggregates.

type PartnerFilter struct {
	Search string `form:"search"` // matches name, email, document or city
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type SavePartnerRequest struct {
	Name     string  `json:"name" validate:"required,min=2"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone"`
	Document *string `json:"document"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
	State    *string `json:"state"`
	Notes    *string `json:"notes"`
}

type PartnerResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Document  *string `json:"document"`
	Address   *string `json:"address"`
	City      *string `json:"city"`
	State     *string `json:"state"`
	Notes     *string `json:"notes"`
	CreatedAt string  `json:"created_at"`
}

type PartnerListResponse struct {
	Data  []PartnerResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
