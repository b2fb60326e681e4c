package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SaydirasulovFirdavs/web-kutubxona/dto"
	"github.com/SaydirasulovFirdavs/web-kutubxona/shared"
)

// StatsHandler exposes the reading engagement tracker.
type StatsHandler struct {
	readingSvc ReadingServiceInterface
}

func NewStatsHandler(readingSvc ReadingServiceInterface) *StatsHandler {
	return &StatsHandler{
		readingSvc: readingSvc,
	}
}

// @Summary Start reading session
// @Description Open a reading session for a book
// @Tags stats
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param bookId path string true "Book ID"
// @Success 201 {object} shared.Response{data=dto.StartSessionResponse}
// @Router /api/stats/session/start/{bookId} [post]
func (h *StatsHandler) StartSession(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	bookID := c.Params("bookId")

	resp, err := h.readingSvc.StartSession(userID, bookID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Sessiya boshlandi", resp)
}

// @Summary End reading session
// @Description Close a reading session, update streaks and evaluate achievements
// @Tags stats
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param endRequest body dto.EndSessionRequest true "Session to end"
// @Success 200 {object} shared.Response
// @Router /api/stats/session/end [post]
func (h *StatsHandler) EndSession(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.EndSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}
	if err := req.Validate(); err != nil {
		return shared.NewBadRequestError(err, "Validation failed")
	}

	message, err := h.readingSvc.EndSession(userID, req.SessionID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, message, nil)
}

// @Summary My reading stats
// @Description Streak counters and accumulated reading time
// @Tags stats
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.UserStatsResponse}
// @Router /api/stats/my [get]
func (h *StatsHandler) GetMyStats(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	stats, err := h.readingSvc.GetMyStats(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", stats)
}

// @Summary My achievements
// @Description Achievements earned by the current user, newest first
// @Tags stats
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=[]dto.EarnedAchievementResponse}
// @Router /api/stats/achievements [get]
func (h *StatsHandler) GetMyAchievements(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	achievements, err := h.readingSvc.GetMyAchievements(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", achievements)
}

// @Summary Explain a passage
// @Description Get a short explanation for a text passage
// @Tags stats
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param explainRequest body dto.ExplainRequest true "Passage"
// @Success 200 {object} shared.Response{data=dto.ExplainResponse}
// @Router /api/stats/explain [post]
func (h *StatsHandler) Explain(c *fiber.Ctx) error {
	var req dto.ExplainRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}
	if err := req.Validate(); err != nil {
		return shared.NewBadRequestError(err, "Validation failed")
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", h.readingSvc.ExplainText(req))
}
