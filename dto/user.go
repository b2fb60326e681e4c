package dto

type UpdateProfileRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=3,max=100"`
	Password *string `json:"password" validate:"omitempty,strong_password"`
}

func (u UpdateProfileRequest) Validate() error {
	return GetValidator().Struct(u)
}

type SaveBookmarkRequest struct {
	Page int `json:"page" validate:"required,gte=1" example:"42"`
}

func (s SaveBookmarkRequest) Validate() error {
	return GetValidator().Struct(s)
}

type CreateHighlightRequest struct {
	Page  int    `json:"page" validate:"required,gte=1" example:"42"`
	Text  string `json:"text" validate:"required,max=2000"`
	Note  string `json:"note" validate:"max=2000"`
	Color string `json:"color" validate:"max=20" example:"yellow"`
}

func (c CreateHighlightRequest) Validate() error {
	return GetValidator().Struct(c)
}

type SetUserBlockedRequest struct {
	Blocked bool `json:"blocked"`
}

type AdminOverviewResponse struct {
	TotalUsers int64 `json:"total_users" example:"120"`
	TotalBooks int64 `json:"total_books" example:"42"`
}

type SetUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin" example:"admin"`
}

func (s SetUserRoleRequest) Validate() error {
	return GetValidator().Struct(s)
}
