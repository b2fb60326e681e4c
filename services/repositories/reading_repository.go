package repositories

import (
	"time"

	"github.com/SaydirasulovFirdavs/web-kutubxona/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReadingRepository handles reading sessions, streaks and achievements
type ReadingRepository struct {
	BaseRepository
}

func NewReadingRepository(db *gorm.DB) *ReadingRepository {
	return &ReadingRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *ReadingRepository) CreateSession(userID, bookID string, startTime time.Time) (*model.ReadingSession, error) {
	id, _ := uuid.NewV7()
	session := &model.ReadingSession{
		ID:        id.String(),
		UserID:    userID,
		BookID:    bookID,
		StartTime: startTime,
	}
	if err := ds.db.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// GetOpenSession returns the session only if it belongs to the user and has
// not been ended yet.
func (ds *ReadingRepository) GetOpenSession(sessionID, userID string) (*model.ReadingSession, error) {
	var session model.ReadingSession
	err := ds.db.
		Where("id = ? AND user_id = ? AND end_time IS NULL", sessionID, userID).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// CloseSession writes the end time and duration, guarded so a session can only
// be closed once. Returns the number of rows updated.
func (ds *ReadingRepository) CloseSession(sessionID, userID string, endTime time.Time, durationMinutes float64) (int64, error) {
	res := ds.db.Model(&model.ReadingSession{}).
		Where("id = ? AND user_id = ? AND end_time IS NULL", sessionID, userID).
		Updates(map[string]interface{}{
			"end_time":         endTime,
			"duration_minutes": durationMinutes,
		})
	return res.RowsAffected, res.Error
}

// EnsureStreak creates the per-user streak row if it does not exist yet.
func (ds *ReadingRepository) EnsureStreak(userID string) error {
	streak := model.UserStreak{UserID: userID}
	return ds.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&streak).Error
}

func (ds *ReadingRepository) GetStreak(userID string) (*model.UserStreak, error) {
	var streak model.UserStreak
	if err := ds.db.Where("user_id = ?", userID).First(&streak).Error; err != nil {
		return nil, err
	}
	return &streak, nil
}

// UpdateStreakTx runs apply against the user's streak row inside one
// transaction. The row is created if missing and, on postgres, locked with
// FOR UPDATE so concurrent session ends cannot interleave the read and the
// write.
func (ds *ReadingRepository) UpdateStreakTx(userID string, apply func(streak *model.UserStreak) error) error {
	return ds.db.Transaction(func(tx *gorm.DB) error {
		row := model.UserStreak{UserID: userID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			return err
		}

		q := tx
		if ds.dialect() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var streak model.UserStreak
		if err := q.Where("user_id = ?", userID).First(&streak).Error; err != nil {
			return err
		}

		if err := apply(&streak); err != nil {
			return err
		}

		return tx.Save(&streak).Error
	})
}

// ReadingAggregates holds the per-user counters achievement requirements are
// checked against.
type ReadingAggregates struct {
	TotalSessions int64
	NightSessions int64
	DailyMinutes  float64
}

// Aggregates counts completed sessions for the user. Night sessions are those
// started between 22:00 and 05:00; daily minutes sum only sessions started
// within [dayStart, dayEnd).
func (ds *ReadingRepository) Aggregates(userID string, dayStart, dayEnd time.Time) (*ReadingAggregates, error) {
	var agg ReadingAggregates

	base := ds.db.Model(&model.ReadingSession{}).
		Where("user_id = ? AND end_time IS NOT NULL", userID)

	if err := base.Session(&gorm.Session{}).Count(&agg.TotalSessions).Error; err != nil {
		return nil, err
	}

	hourExpr := "CAST(strftime('%H', start_time) AS INTEGER)"
	if ds.dialect() == "postgres" {
		hourExpr = "EXTRACT(HOUR FROM start_time)"
	}

	err := ds.db.Model(&model.ReadingSession{}).
		Where("user_id = ? AND end_time IS NOT NULL", userID).
		Where(hourExpr+" >= 22 OR "+hourExpr+" < 5").
		Count(&agg.NightSessions).Error
	if err != nil {
		return nil, err
	}

	var daily struct {
		Total float64
	}
	err = ds.db.Model(&model.ReadingSession{}).
		Select("COALESCE(SUM(duration_minutes), 0) AS total").
		Where("user_id = ? AND end_time IS NOT NULL", userID).
		Where("start_time >= ? AND start_time < ?", dayStart, dayEnd).
		Scan(&daily).Error
	if err != nil {
		return nil, err
	}
	agg.DailyMinutes = daily.Total

	return &agg, nil
}

// UnearnedAchievements returns achievements the user has not been awarded yet.
func (ds *ReadingRepository) UnearnedAchievements(userID string) ([]model.Achievement, error) {
	var achievements []model.Achievement
	err := ds.db.Model(&model.Achievement{}).
		Joins("LEFT JOIN user_achievements ua ON ua.achievement_id = achievements.id AND ua.user_id = ?", userID).
		Where("ua.id IS NULL").
		Find(&achievements).Error
	if err != nil {
		return nil, err
	}
	return achievements, nil
}

// AwardAchievement grants the achievement, silently skipping duplicates.
func (ds *ReadingRepository) AwardAchievement(userID, achievementID string, earnedAt time.Time) error {
	id, _ := uuid.NewV7()
	award := model.UserAchievement{
		ID:            id.String(),
		UserID:        userID,
		AchievementID: achievementID,
		EarnedAt:      earnedAt,
	}
	return ds.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&award).Error
}

func (ds *ReadingRepository) EarnedAchievements(userID string) ([]model.UserAchievement, error) {
	var earned []model.UserAchievement
	err := ds.db.
		Preload("Achievement").
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&earned).Error
	if err != nil {
		return nil, err
	}
	return earned, nil
}

func (ds *ReadingRepository) ListAchievements() ([]model.Achievement, error) {
	var achievements []model.Achievement
	if err := ds.db.Order("requirement_value ASC").Find(&achievements).Error; err != nil {
		return nil, err
	}
	return achievements, nil
}
