package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SaydirasulovFirdavs/web-kutubxona/dto"
	"github.com/SaydirasulovFirdavs/web-kutubxona/shared"
)

type UserHandler struct {
	userSvc UserServiceInterface
}

func NewUserHandler(userSvc UserServiceInterface) *UserHandler {
	return &UserHandler{
		userSvc: userSvc,
	}
}

// @Summary Get user profile
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.UserInfo}
// @Router /api/user/profile [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	profile, err := h.userSvc.GetProfile(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", profile)
}

// @Summary Update user profile
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param updateRequest body dto.UpdateProfileRequest true "Profile changes"
// @Success 200 {object} shared.Response{data=dto.UserInfo}
// @Router /api/user/profile [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}
	if err := req.Validate(); err != nil {
		return shared.NewBadRequestError(err, "Validation failed")
	}

	profile, err := h.userSvc.UpdateProfile(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", profile)
}

// @Summary My library
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=[]model.UserLibrary}
// @Router /api/user/library [get]
func (h *UserHandler) GetLibrary(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	entries, err := h.userSvc.GetLibrary(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", entries)
}

// @Summary Add book to library
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param bookId path string true "Book ID"
// @Success 201 {object} shared.Response
// @Router /api/user/library/{bookId} [post]
func (h *UserHandler) AddToLibrary(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	if err := h.userSvc.AddToLibrary(userID, c.Params("bookId")); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Kitob kutubxonaga qo'shildi", nil)
}

// @Summary Remove book from library
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param bookId path string true "Book ID"
// @Success 200 {object} shared.Response
// @Router /api/user/library/{bookId} [delete]
func (h *UserHandler) RemoveFromLibrary(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	if err := h.userSvc.RemoveFromLibrary(userID, c.Params("bookId")); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Kitob kutubxonadan olib tashlandi", nil)
}

// @Summary Mark book as finished
// @Description Counts the book toward reading achievements, once per book
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param bookId path string true "Book ID"
// @Success 200 {object} shared.Response
// @Router /api/user/library/{bookId}/finish [post]
func (h *UserHandler) FinishBook(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	if err := h.userSvc.FinishBook(userID, c.Params("bookId")); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Kitob o'qib tugatildi", nil)
}

// @Summary My bookmarks
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=[]model.Bookmark}
// @Router /api/user/bookmarks [get]
func (h *UserHandler) GetBookmarks(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	bookmarks, err := h.userSvc.GetBookmarks(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", bookmarks)
}

// @Summary Save bookmark
// @Description Upserts the single bookmark for a book
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param bookId path string true "Book ID"
// @Param bookmarkRequest body dto.SaveBookmarkRequest true "Bookmark"
// @Success 200 {object} shared.Response{data=model.Bookmark}
// @Router /api/user/books/{bookId}/bookmark [post]
func (h *UserHandler) SaveBookmark(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.SaveBookmarkRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}
	if err := req.Validate(); err != nil {
		return shared.NewBadRequestError(err, "Validation failed")
	}

	bookmark, err := h.userSvc.SaveBookmark(userID, c.Params("bookId"), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", bookmark)
}

// @Summary My highlights
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param book_id query string false "Filter by book"
// @Success 200 {object} shared.Response{data=[]model.Highlight}
// @Router /api/user/highlights [get]
func (h *UserHandler) GetHighlights(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	highlights, err := h.userSvc.GetHighlights(userID, c.Query("book_id"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", highlights)
}

// @Summary Create highlight
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param bookId path string true "Book ID"
// @Param highlightRequest body dto.CreateHighlightRequest true "Highlight"
// @Success 201 {object} shared.Response{data=model.Highlight}
// @Router /api/user/books/{bookId}/highlights [post]
func (h *UserHandler) CreateHighlight(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.CreateHighlightRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}
	if err := req.Validate(); err != nil {
		return shared.NewBadRequestError(err, "Validation failed")
	}

	highlight, err := h.userSvc.CreateHighlight(userID, c.Params("bookId"), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Success", highlight)
}

// @Summary Delete highlight
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param highlightId path string true "Highlight ID"
// @Success 200 {object} shared.Response
// @Router /api/user/highlights/{highlightId} [delete]
func (h *UserHandler) DeleteHighlight(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	if err := h.userSvc.DeleteHighlight(userID, c.Params("highlightId")); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Belgi o'chirildi", nil)
}

// @Summary My download history
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=[]model.DownloadHistory}
// @Router /api/user/downloads [get]
func (h *UserHandler) GetDownloadHistory(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	records, err := h.userSvc.GetDownloadHistory(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", records)
}
