package model

import "time"

// ReadingSession records one continuous stretch of reading. EndTime stays nil
// while the session is open; DurationMinutes is filled in when it closes.
type ReadingSession struct {
	ID              string     `json:"id" gorm:"primaryKey"`
	UserID          string     `json:"user_id" gorm:"not null;index"`
	BookID          string     `json:"book_id" gorm:"not null;index"`
	StartTime       time.Time  `json:"start_time" gorm:"not null"`
	EndTime         *time.Time `json:"end_time"`
	DurationMinutes float64    `json:"duration_minutes" gorm:"not null;default:0"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type UserStreak struct {
	UserID           string     `json:"user_id" gorm:"primaryKey"`
	CurrentStreak    int        `json:"current_streak" gorm:"not null;default:0"`
	LongestStreak    int        `json:"longest_streak" gorm:"not null;default:0"`
	LastReadDate     *time.Time `json:"last_read_date"`
	TotalBooksRead   int        `json:"total_books_read" gorm:"not null;default:0"`
	TotalReadingTime int        `json:"total_reading_time" gorm:"not null;default:0"` // in minutes
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type Achievement struct {
	ID               string    `json:"id" gorm:"primaryKey"`
	Name             string    `json:"name" gorm:"unique;not null"`
	Description      string    `json:"description"`
	Icon             string    `json:"icon"`
	Category         string    `json:"category"`
	RequirementType  string    `json:"requirement_type" gorm:"not null"`
	RequirementValue int       `json:"requirement_value" gorm:"not null"`
	CreatedAt        time.Time `json:"created_at"`
}

type UserAchievement struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	UserID        string    `json:"user_id" gorm:"not null;uniqueIndex:idx_user_achievement"`
	AchievementID string    `json:"achievement_id" gorm:"not null;uniqueIndex:idx_user_achievement"`
	EarnedAt      time.Time `json:"earned_at" gorm:"not null"`

	Achievement *Achievement `json:"achievement,omitempty" gorm:"foreignKey:AchievementID"`
}
