package shared

const (
	UserID   = "user_id"
	UserRole = "user_role"

	BookStatusActive   = "active"
	BookStatusInactive = "inactive"

	RequirementTotalSessions = "total_sessions"
	RequirementNightSessions = "night_sessions"
	RequirementDailyMinutes  = "daily_minutes"
	RequirementTotalBooks    = "total_books"
)
