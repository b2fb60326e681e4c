package dto

import "time"

type StartSessionResponse struct {
	SessionID string `json:"sessionId" example:"0190f7a2-..."`
}

type EndSessionRequest struct {
	SessionID string `json:"sessionId" validate:"required" example:"0190f7a2-..."`
}

func (e EndSessionRequest) Validate() error {
	return GetValidator().Struct(e)
}

type UserStatsResponse struct {
	CurrentStreak    int        `json:"current_streak" example:"3"`
	LongestStreak    int        `json:"longest_streak" example:"7"`
	LastReadDate     *time.Time `json:"last_read_date"`
	TotalBooksRead   int        `json:"total_books_read" example:"5"`
	TotalReadingTime int        `json:"total_reading_time" example:"240"`
}

type EarnedAchievementResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name" example:"Birinchi Qadam"`
	Description      string    `json:"description"`
	Icon             string    `json:"icon" example:"footprints"`
	Category         string    `json:"category" example:"sessions"`
	RequirementType  string    `json:"requirement_type" example:"total_sessions"`
	RequirementValue int       `json:"requirement_value" example:"1"`
	EarnedAt         time.Time `json:"earned_at"`
}

type ExplainRequest struct {
	Text     string `json:"text" validate:"required,max=2000"`
	Question string `json:"question" validate:"max=500"`
}

func (e ExplainRequest) Validate() error {
	return GetValidator().Struct(e)
}

type ExplainResponse struct {
	Explanation string `json:"explanation"`
}
