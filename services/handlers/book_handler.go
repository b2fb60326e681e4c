package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SaydirasulovFirdavs/web-kutubxona/dto"
	"github.com/SaydirasulovFirdavs/web-kutubxona/shared"
)

type BookHandler struct {
	bookSvc BookServiceInterface
}

func NewBookHandler(bookSvc BookServiceInterface) *BookHandler {
	return &BookHandler{
		bookSvc: bookSvc,
	}
}

// @Summary List books
// @Description Browse the active catalog with search and category filters
// @Tags books
// @Accept json
// @Produce json
// @Param search query string false "Title or author search"
// @Param category query string false "Category slug"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} shared.Response{data=dto.BookListResponse}
// @Router /api/books [get]
func (h *BookHandler) ListBooks(c *fiber.Ctx) error {
	var req dto.ListBooksRequest
	if err := c.QueryParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid query")
	}

	resp, err := h.bookSvc.ListBooks(req, false)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", resp)
}

// @Summary Trending books
// @Description Most viewed and downloaded active books
// @Tags books
// @Accept json
// @Produce json
// @Param limit query int false "Result size"
// @Success 200 {object} shared.Response{data=[]dto.BookResponse}
// @Router /api/books/trending [get]
func (h *BookHandler) TrendingBooks(c *fiber.Ctx) error {
	books, err := h.bookSvc.TrendingBooks(c.QueryInt("limit"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", books)
}

// @Summary New arrivals
// @Description Recently added active books
// @Tags books
// @Accept json
// @Produce json
// @Param limit query int false "Result size"
// @Success 200 {object} shared.Response{data=[]dto.BookResponse}
// @Router /api/books/new [get]
func (h *BookHandler) NewArrivals(c *fiber.Ctx) error {
	books, err := h.bookSvc.NewArrivals(c.QueryInt("limit"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", books)
}

// @Summary Recommended books
// @Description Unread books from categories the user already reads
// @Tags books
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param limit query int false "Result size"
// @Success 200 {object} shared.Response{data=[]dto.BookResponse}
// @Router /api/books/recommended [get]
func (h *BookHandler) RecommendedBooks(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	books, err := h.bookSvc.RecommendedBooks(userID, c.QueryInt("limit"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", books)
}

// @Summary Get book
// @Description Book details with presigned cover and file links
// @Tags books
// @Accept json
// @Produce json
// @Param bookId path string true "Book ID"
// @Success 200 {object} shared.Response{data=dto.BookResponse}
// @Router /api/books/{bookId} [get]
func (h *BookHandler) GetBook(c *fiber.Ctx) error {
	book, err := h.bookSvc.GetBook(c.Params("bookId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", book)
}

// @Summary Download book
// @Description Get a presigned download link and record the download
// @Tags books
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param bookId path string true "Book ID"
// @Success 200 {object} shared.Response{data=string}
// @Router /api/books/{bookId}/download [get]
func (h *BookHandler) DownloadBook(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	url, err := h.bookSvc.DownloadBook(userID, c.Params("bookId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", url)
}

// @Summary List categories
// @Tags books
// @Accept json
// @Produce json
// @Success 200 {object} shared.Response{data=[]model.Category}
// @Router /api/books/categories [get]
func (h *BookHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.bookSvc.ListCategories()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", categories)
}

// @Summary Book reviews
// @Tags books
// @Accept json
// @Produce json
// @Param bookId path string true "Book ID"
// @Success 200 {object} shared.Response{data=[]model.Review}
// @Router /api/books/{bookId}/reviews [get]
func (h *BookHandler) GetReviews(c *fiber.Ctx) error {
	reviews, err := h.bookSvc.GetReviews(c.Params("bookId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", reviews)
}

// @Summary Review a book
// @Tags books
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param bookId path string true "Book ID"
// @Param reviewRequest body dto.CreateReviewRequest true "Review"
// @Success 201 {object} shared.Response{data=model.Review}
// @Router /api/books/{bookId}/reviews [post]
func (h *BookHandler) CreateReview(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}
	if err := req.Validate(); err != nil {
		return shared.NewBadRequestError(err, "Validation failed")
	}

	review, err := h.bookSvc.CreateReview(userID, c.Params("bookId"), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Sharh qo'shildi", review)
}
