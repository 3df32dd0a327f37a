package dto

type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=2"`
	Slug        string  `json:"slug" validate:"required,min=2"`
	Description *string `json:"description"`
}

type UpdateCategoryRequest = CreateCategoryRequest

type CategoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
}
