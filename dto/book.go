package dto

type CreateBookRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=255" example:"O'tkan kunlar"`
	Author      string   `json:"author" validate:"required,min=1,max=255" example:"Abdulla Qodiriy"`
	Description string   `json:"description" validate:"max=5000"`
	Year        int      `json:"year" validate:"gte=0,lte=2100" example:"1925"`
	Pages       int      `json:"pages" validate:"gte=0" example:"400"`
	Language    string   `json:"language" validate:"max=50" example:"uz"`
	CategoryIDs []string `json:"category_ids"`
}

func (c CreateBookRequest) Validate() error {
	return GetValidator().Struct(c)
}

type UpdateBookRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=1,max=255"`
	Author      *string  `json:"author" validate:"omitempty,min=1,max=255"`
	Description *string  `json:"description" validate:"omitempty,max=5000"`
	Year        *int     `json:"year" validate:"omitempty,gte=0,lte=2100"`
	Pages       *int     `json:"pages" validate:"omitempty,gte=0"`
	Language    *string  `json:"language" validate:"omitempty,max=50"`
	Status      *string  `json:"status" validate:"omitempty,oneof=active inactive"`
	CategoryIDs []string `json:"category_ids"`
}

func (u UpdateBookRequest) Validate() error {
	return GetValidator().Struct(u)
}

type ListBooksRequest struct {
	Search   string `query:"search"`
	Category string `query:"category"`
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
}

type BookListResponse struct {
	Books []BookResponse `json:"books"`
	Total int64          `json:"total" example:"42"`
	Page  int            `json:"page" example:"1"`
	Limit int            `json:"limit" example:"20"`
}

type BookResponse struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	Description   string   `json:"description"`
	Year          int      `json:"year"`
	Pages         int      `json:"pages"`
	Language      string   `json:"language"`
	CoverURL      string   `json:"cover_url,omitempty"`
	FileURL       string   `json:"file_url,omitempty"`
	Status        string   `json:"status"`
	ViewCount     int64    `json:"view_count"`
	DownloadCount int64    `json:"download_count"`
	Categories    []string `json:"categories"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100" example:"Tarixiy"`
	Slug string `json:"slug" validate:"required,min=1,max=100" example:"tarixiy"`
}

func (c CreateCategoryRequest) Validate() error {
	return GetValidator().Struct(c)
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5" example:"5"`
	Comment string `json:"comment" validate:"max=2000"`
}

func (c CreateReviewRequest) Validate() error {
	return GetValidator().Struct(c)
}
