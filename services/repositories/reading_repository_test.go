package repositories

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SaydirasulovFirdavs/web-kutubxona/model"
)

func setupTestDB(t *testing.T) (*gorm.DB, func()) {
	dbPath := "./test_repo_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.ReadingSession{},
		&model.UserStreak{},
		&model.Achievement{},
		&model.UserAchievement{},
	)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, cleanup
}

func closedSession(t *testing.T, repo *ReadingRepository, userID string, start time.Time, minutes float64) {
	t.Helper()
	session, err := repo.CreateSession(userID, "book-1", start)
	require.NoError(t, err)

	rows, err := repo.CloseSession(session.ID, userID, start.Add(time.Duration(minutes)*time.Minute), minutes)
	require.NoError(t, err)
	require.EqualValues(t, 1, rows)
}

func TestCloseSession_GuardedAgainstReplay(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewReadingRepository(db)

	session, err := repo.CreateSession("user-1", "book-1", time.Now())
	require.NoError(t, err)

	rows, err := repo.CloseSession(session.ID, "user-1", time.Now(), 7)
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)

	rows, err = repo.CloseSession(session.ID, "user-1", time.Now(), 7)
	require.NoError(t, err)
	assert.EqualValues(t, 0, rows)
}

func TestCloseSession_WrongUserDoesNothing(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewReadingRepository(db)

	session, err := repo.CreateSession("user-1", "book-1", time.Now())
	require.NoError(t, err)

	rows, err := repo.CloseSession(session.ID, "user-2", time.Now(), 7)
	require.NoError(t, err)
	assert.EqualValues(t, 0, rows)

	_, err = repo.GetOpenSession(session.ID, "user-1")
	require.NoError(t, err, "session must still be open")
}

func TestEnsureStreak_Idempotent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewReadingRepository(db)

	require.NoError(t, repo.EnsureStreak("user-1"))
	require.NoError(t, repo.EnsureStreak("user-1"))

	var count int64
	require.NoError(t, db.Model(&model.UserStreak{}).Where("user_id = ?", "user-1").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAggregates_NightSessions(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewReadingRepository(db)

	base := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	// 23:00 and 04:30 are night, 12:00 and 21:59 are not.
	closedSession(t, repo, "user-1", base.Add(23*time.Hour), 10)
	closedSession(t, repo, "user-1", base.Add(4*time.Hour+30*time.Minute), 10)
	closedSession(t, repo, "user-1", base.Add(12*time.Hour), 10)
	closedSession(t, repo, "user-1", base.Add(21*time.Hour+59*time.Minute), 10)

	agg, err := repo.Aggregates("user-1", base, base.AddDate(0, 0, 1))
	require.NoError(t, err)

	assert.EqualValues(t, 4, agg.TotalSessions)
	assert.EqualValues(t, 2, agg.NightSessions)
}

func TestAggregates_DailyMinutesWindow(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewReadingRepository(db)

	today := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	closedSession(t, repo, "user-1", today.Add(9*time.Hour), 30)
	closedSession(t, repo, "user-1", today.Add(15*time.Hour), 20)
	closedSession(t, repo, "user-1", yesterday.Add(9*time.Hour), 45)

	agg, err := repo.Aggregates("user-1", today, today.AddDate(0, 0, 1))
	require.NoError(t, err)

	assert.EqualValues(t, 3, agg.TotalSessions, "total count spans all days")
	assert.InDelta(t, 50, agg.DailyMinutes, 0.001, "daily minutes cover only the given day")
}

func TestAggregates_IgnoresOpenSessions(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewReadingRepository(db)

	today := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	closedSession(t, repo, "user-1", today.Add(9*time.Hour), 30)

	_, err := repo.CreateSession("user-1", "book-1", today.Add(10*time.Hour))
	require.NoError(t, err)

	agg, err := repo.Aggregates("user-1", today, today.AddDate(0, 0, 1))
	require.NoError(t, err)

	assert.EqualValues(t, 1, agg.TotalSessions)
	assert.InDelta(t, 30, agg.DailyMinutes, 0.001)
}

func TestUnearnedAchievements_AntiJoin(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewReadingRepository(db)

	first := model.Achievement{ID: "ach-1", Name: "First", RequirementType: "total_sessions", RequirementValue: 1}
	second := model.Achievement{ID: "ach-2", Name: "Second", RequirementType: "total_sessions", RequirementValue: 10}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	require.NoError(t, repo.AwardAchievement("user-1", "ach-1", time.Now()))

	unearned, err := repo.UnearnedAchievements("user-1")
	require.NoError(t, err)
	require.Len(t, unearned, 1)
	assert.Equal(t, "ach-2", unearned[0].ID)

	// Another user's award must not leak in.
	other, err := repo.UnearnedAchievements("user-2")
	require.NoError(t, err)
	assert.Len(t, other, 2)
}

func TestAwardAchievement_DuplicateIsSilent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewReadingRepository(db)

	achievement := model.Achievement{ID: "ach-1", Name: "First", RequirementType: "total_sessions", RequirementValue: 1}
	require.NoError(t, db.Create(&achievement).Error)

	require.NoError(t, repo.AwardAchievement("user-1", "ach-1", time.Now()))
	require.NoError(t, repo.AwardAchievement("user-1", "ach-1", time.Now()))

	earned, err := repo.EarnedAchievements("user-1")
	require.NoError(t, err)
	assert.Len(t, earned, 1)
}

func TestEarnedAchievements_NewestFirst(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewReadingRepository(db)

	older := model.Achievement{ID: "ach-1", Name: "Older", RequirementType: "total_sessions", RequirementValue: 1}
	newer := model.Achievement{ID: "ach-2", Name: "Newer", RequirementType: "total_sessions", RequirementValue: 2}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)

	now := time.Now()
	require.NoError(t, repo.AwardAchievement("user-1", "ach-1", now.Add(-time.Hour)))
	require.NoError(t, repo.AwardAchievement("user-1", "ach-2", now))

	earned, err := repo.EarnedAchievements("user-1")
	require.NoError(t, err)
	require.Len(t, earned, 2)
	assert.Equal(t, "ach-2", earned[0].AchievementID)
	require.NotNil(t, earned[0].Achievement)
	assert.Equal(t, "Newer", earned[0].Achievement.Name)
}

func TestUpdateStreakTx_CreatesRowAndApplies(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewReadingRepository(db)

	err := repo.UpdateStreakTx("user-1", func(streak *model.UserStreak) error {
		streak.TotalReadingTime += 12
		return nil
	})
	require.NoError(t, err)

	streak, err := repo.GetStreak("user-1")
	require.NoError(t, err)
	assert.Equal(t, 12, streak.TotalReadingTime)
}
