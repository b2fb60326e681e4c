package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/SaydirasulovFirdavs/web-kutubxona/dto"
	"github.com/SaydirasulovFirdavs/web-kutubxona/shared"
)

type AdminHandler struct {
	adminSvc AdminServiceInterface
	bookSvc  BookServiceInterface
}

func NewAdminHandler(adminSvc AdminServiceInterface, bookSvc BookServiceInterface) *AdminHandler {
	return &AdminHandler{
		adminSvc: adminSvc,
		bookSvc:  bookSvc,
	}
}

// @Summary List users
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param search query string false "Email or name search"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} shared.Response
// @Router /api/admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	users, total, err := h.adminSvc.ListUsers(c.Query("search"), page, limit)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", fiber.Map{
		"users": users,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// @Summary Block or unblock user
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param userId path string true "User ID"
// @Param blockRequest body dto.SetUserBlockedRequest true "Blocked flag"
// @Success 200 {object} shared.Response
// @Router /api/admin/users/{userId}/block [put]
func (h *AdminHandler) SetUserBlocked(c *fiber.Ctx) error {
	var req dto.SetUserBlockedRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := h.adminSvc.SetUserBlocked(c.Params("userId"), req.Blocked); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", nil)
}

// @Summary Change user role
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param userId path string true "User ID"
// @Param roleRequest body dto.SetUserRoleRequest true "New role"
// @Success 200 {object} shared.Response
// @Router /api/admin/users/{userId}/role [put]
func (h *AdminHandler) SetUserRole(c *fiber.Ctx) error {
	var req dto.SetUserRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}
	if err := req.Validate(); err != nil {
		return shared.NewBadRequestError(err, "Validation failed")
	}

	if err := h.adminSvc.SetUserRole(c.Params("userId"), req); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", nil)
}

// @Summary Dashboard overview
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Success 200 {object} shared.Response{data=dto.AdminOverviewResponse}
// @Router /api/admin/overview [get]
func (h *AdminHandler) GetOverview(c *fiber.Ctx) error {
	overview, err := h.adminSvc.GetOverview()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", overview)
}

// @Summary Create book
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param bookRequest body dto.CreateBookRequest true "Book data"
// @Success 201 {object} shared.Response{data=dto.BookResponse}
// @Router /api/admin/books [post]
func (h *AdminHandler) CreateBook(c *fiber.Ctx) error {
	var req dto.CreateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}
	if err := req.Validate(); err != nil {
		return shared.NewBadRequestError(err, "Validation failed")
	}

	book, err := h.bookSvc.CreateBook(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Kitob qo'shildi", book)
}

// @Summary Update book
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param bookId path string true "Book ID"
// @Param bookRequest body dto.UpdateBookRequest true "Book changes"
// @Success 200 {object} shared.Response{data=dto.BookResponse}
// @Router /api/admin/books/{bookId} [put]
func (h *AdminHandler) UpdateBook(c *fiber.Ctx) error {
	var req dto.UpdateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}
	if err := req.Validate(); err != nil {
		return shared.NewBadRequestError(err, "Validation failed")
	}

	book, err := h.bookSvc.UpdateBook(c.Params("bookId"), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", book)
}

// @Summary Deactivate book
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param bookId path string true "Book ID"
// @Success 200 {object} shared.Response
// @Router /api/admin/books/{bookId} [delete]
func (h *AdminHandler) DeleteBook(c *fiber.Ctx) error {
	if err := h.bookSvc.DeleteBook(c.Params("bookId")); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Kitob o'chirildi", nil)
}

// @Summary Upload book cover
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param bookId path string true "Book ID"
// @Param file formData file true "Cover image"
// @Success 200 {object} shared.Response{data=dto.BookResponse}
// @Router /api/admin/books/{bookId}/cover [post]
func (h *AdminHandler) UploadCover(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return shared.NewBadRequestError(err, "File is required")
	}

	book, err := h.bookSvc.UploadCover(c.Params("bookId"), file)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", book)
}

// @Summary Upload book file
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param bookId path string true "Book ID"
// @Param file formData file true "Book file"
// @Success 200 {object} shared.Response{data=dto.BookResponse}
// @Router /api/admin/books/{bookId}/file [post]
func (h *AdminHandler) UploadFile(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return shared.NewBadRequestError(err, "File is required")
	}

	book, err := h.bookSvc.UploadFile(c.Params("bookId"), file)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", book)
}

// @Summary Create category
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param categoryRequest body dto.CreateCategoryRequest true "Category"
// @Success 201 {object} shared.Response{data=model.Category}
// @Router /api/admin/categories [post]
func (h *AdminHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}
	if err := req.Validate(); err != nil {
		return shared.NewBadRequestError(err, "Validation failed")
	}

	category, err := h.bookSvc.CreateCategory(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Kategoriya qo'shildi", category)
}
