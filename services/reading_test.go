package services

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
	"github.com/SaydirasulovFirdavs/web-kutubxona/services/repositories"
	"github.com/SaydirasulovFirdavs/web-kutubxona/shared"
)

func setupTestDB(t *testing.T) (*SqliteService, func()) {
	dbPath := "./test_reading_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(migrationModels()...)
	require.NoError(t, err)

	err = seedAchievements(db)
	require.NoError(t, err)

	svc := &SqliteService{db: db}
	svc.users = repositories.NewUserRepository(db)
	svc.books = repositories.NewBookRepository(db)
	svc.library = repositories.NewLibraryRepository(db)
	svc.reading = repositories.NewReadingRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return svc, cleanup
}

func newReadingService(sqlSvc *SqliteService) *ReadingService {
	return &ReadingService{sqlSvc: sqlSvc}
}

func createTestUser(t *testing.T, sqlSvc *SqliteService, email string) *model.User {
	user, err := sqlSvc.Users().CreateUser(&model.User{
		FullName: "Test Reader",
		Email:    email,
		Password: "hashed",
		Role:     model.RoleUser,
	})
	require.NoError(t, err)
	return user
}

func createTestBook(t *testing.T, sqlSvc *SqliteService, title string) *model.Book {
	book, err := sqlSvc.Books().CreateBook(&model.Book{
		Title:  title,
		Author: "Test Author",
	})
	require.NoError(t, err)
	return book
}

func endedAchievementNames(t *testing.T, svc *ReadingService, userID string) []string {
	earned, err := svc.GetMyAchievements(userID)
	require.NoError(t, err)

	names := make([]string, 0, len(earned))
	for _, a := range earned {
		names = append(names, a.Name)
	}
	return names
}

func TestStartSession_CreatesOpenSession(t *testing.T) {
	sqlSvc, cleanup := setupTestDB(t)
	defer cleanup()
	svc := newReadingService(sqlSvc)

	user := createTestUser(t, sqlSvc, "reader@example.com")
	book := createTestBook(t, sqlSvc, "Yulduzli Tunlar")

	resp, err := svc.StartSession(user.ID, book.ID)

	require.NoError(t, err)
	assert.NotEmpty(t, resp.SessionID)

	session, err := sqlSvc.Reading().GetOpenSession(resp.SessionID, user.ID)
	require.NoError(t, err)
	assert.Nil(t, session.EndTime)
	assert.Equal(t, book.ID, session.BookID)
}

func TestStartSession_UnknownBook(t *testing.T) {
	sqlSvc, cleanup := setupTestDB(t)
	defer cleanup()
	svc := newReadingService(sqlSvc)

	user := createTestUser(t, sqlSvc, "reader@example.com")

	_, err := svc.StartSession(user.ID, "missing-book")

	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestStartSession_InactiveBook(t *testing.T) {
	sqlSvc, cleanup := setupTestDB(t)
	defer cleanup()
	svc := newReadingService(sqlSvc)

	user := createTestUser(t, sqlSvc, "reader@example.com")
	book := createTestBook(t, sqlSvc, "Yulduzli Tunlar")
	book.Status = shared.BookStatusInactive
	require.NoError(t, sqlSvc.Books().UpdateBook(book))

	_, err := svc.StartSession(user.ID, book.ID)

	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestEndSession_QualifyingSessionStartsStreak(t *testing.T) {
	sqlSvc, cleanup := setupTestDB(t)
	defer cleanup()
	svc := newReadingService(sqlSvc)

	user := createTestUser(t, sqlSvc, "reader@example.com")
	book := createTestBook(t, sqlSvc, "Yulduzli Tunlar")

	session, err := sqlSvc.Reading().CreateSession(user.ID, book.ID, time.Now().Add(-10*time.Minute))
	require.NoError(t, err)

	message, err := svc.EndSession(user.ID, session.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, message)

	stats, err := svc.GetMyStats(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, 1, stats.LongestStreak)
	assert.Equal(t, 10, stats.TotalReadingTime)
	require.NotNil(t, stats.LastReadDate)
}

func TestEndSession_ShortSessionAccumulatesTimeOnly(t *testing.T) {
	sqlSvc, cleanup := setupTestDB(t)
	defer cleanup()
	svc := newReadingService(sqlSvc)

	user := createTestUser(t, sqlSvc, "reader@example.com")
	book := createTestBook(t, sqlSvc, "Yulduzli Tunlar")

	session, err := sqlSvc.Reading().CreateSession(user.ID, book.ID, time.Now().Add(-2*time.Minute))
	require.NoError(t, err)

	_, err = svc.EndSession(user.ID, session.ID)
	require.NoError(t, err)

	stats, err := svc.GetMyStats(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.CurrentStreak, "a session under the floor must not start a streak")
	assert.Equal(t, 2, stats.TotalReadingTime)
}

func TestEndSession_SecondQualifyingSameDayIsNoOp(t *testing.T) {
	sqlSvc, cleanup := setupTestDB(t)
	defer cleanup()
	svc := newReadingService(sqlSvc)

	user := createTestUser(t, sqlSvc, "reader@example.com")
	book := createTestBook(t, sqlSvc, "Yulduzli Tunlar")

	for i := 0; i < 2; i++ {
		session, err := sqlSvc.Reading().CreateSession(user.ID, book.ID, time.Now().Add(-6*time.Minute))
		require.NoError(t, err)
		_, err = svc.EndSession(user.ID, session.ID)
		require.NoError(t, err)
	}

	stats, err := svc.GetMyStats(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, 12, stats.TotalReadingTime)
}

func TestEndSession_ConsecutiveDayIncrements(t *testing.T) {
	sqlSvc, cleanup := setupTestDB(t)
	defer cleanup()
	svc := newReadingService(sqlSvc)

	user := createTestUser(t, sqlSvc, "reader@example.com")
	book := createTestBook(t, sqlSvc, "Yulduzli Tunlar")

	// Simulate a qualifying read yesterday.
	require.NoError(t, sqlSvc.Reading().EnsureStreak(user.ID))
	yesterday := time.Now().AddDate(0, 0, -1)
	yesterdayDay := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, yesterday.Location())
	err := sqlSvc.Reading().UpdateStreakTx(user.ID, func(streak *model.UserStreak) error {
		streak.CurrentStreak = 2
		streak.LongestStreak = 2
		streak.LastReadDate = &yesterdayDay
		return nil
	})
	require.NoError(t, err)

	session, err := sqlSvc.Reading().CreateSession(user.ID, book.ID, time.Now().Add(-7*time.Minute))
	require.NoError(t, err)
	_, err = svc.EndSession(user.ID, session.ID)
	require.NoError(t, err)

	stats, err := svc.GetMyStats(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.CurrentStreak)
	assert.Equal(t, 3, stats.LongestStreak)
}

func TestEndSession_MissedDaysReset(t *testing.T) {
	sqlSvc, cleanup := setupTestDB(t)
	defer cleanup()
	svc := newReadingService(sqlSvc)

	user := createTestUser(t, sqlSvc, "reader@example.com")
	book := createTestBook(t, sqlSvc, "Yulduzli Tunlar")

	require.NoError(t, sqlSvc.Reading().EnsureStreak(user.ID))
	threeDaysAgo := time.Now().AddDate(0, 0, -3)
	staleDay := time.Date(threeDaysAgo.Year(), threeDaysAgo.Month(), threeDaysAgo.Day(), 0, 0, 0, 0, threeDaysAgo.Location())
	err := sqlSvc.Reading().UpdateStreakTx(user.ID, func(streak *model.UserStreak) error {
		streak.CurrentStreak = 6
		streak.LongestStreak = 6
		streak.LastReadDate = &staleDay
		return nil
	})
	require.NoError(t, err)

	session, err := sqlSvc.Reading().CreateSession(user.ID, book.ID, time.Now().Add(-8*time.Minute))
	require.NoError(t, err)
	_, err = svc.EndSession(user.ID, session.ID)
	require.NoError(t, err)

	stats, err := svc.GetMyStats(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, 6, stats.LongestStreak)
}

func TestEndSession_OnlyOnce(t *testing.T) {
	sqlSvc, cleanup := setupTestDB(t)
	defer cleanup()
	svc := newReadingService(sqlSvc)

	user := createTestUser(t, sqlSvc, "reader@example.com")
	book := createTestBook(t, sqlSvc, "Yulduzli Tunlar")

	session, err := sqlSvc.Reading().CreateSession(user.ID, book.ID, time.Now().Add(-6*time.Minute))
	require.NoError(t, err)

	_, err = svc.EndSession(user.ID, session.ID)
	require.NoError(t, err)

	_, err = svc.EndSession(user.ID, session.ID)
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode)

	stats, err := svc.GetMyStats(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, stats.TotalReadingTime, "a replayed end must not double-count time")
}

func TestEndSession_ForeignSessionRejected(t *testing.T) {
	sqlSvc, cleanup := setupTestDB(t)
	defer cleanup()
	svc := newReadingService(sqlSvc)

	owner := createTestUser(t, sqlSvc, "owner@example.com")
	other := createTestUser(t, sqlSvc, "other@example.com")
	book := createTestBook(t, sqlSvc, "Yulduzli Tunlar")

	session, err := sqlSvc.Reading().CreateSession(owner.ID, book.ID, time.Now().Add(-6*time.Minute))
	require.NoError(t, err)

	_, err = svc.EndSession(other.ID, session.ID)
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestGetMyStats_LazyCreatesStreakRow(t *testing.T) {
	sqlSvc, cleanup := setupTestDB(t)
	defer cleanup()
	svc := newReadingService(sqlSvc)

	user := createTestUser(t, sqlSvc, "reader@example.com")

	stats, err := svc.GetMyStats(user.ID)

	require.NoError(t, err)
	assert.Equal(t, 0, stats.CurrentStreak)
	assert.Equal(t, 0, stats.LongestStreak)
	assert.Nil(t, stats.LastReadDate)
	assert.Equal(t, 0, stats.TotalBooksRead)
	assert.Equal(t, 0, stats.TotalReadingTime)

	_, err = sqlSvc.Reading().GetStreak(user.ID)
	require.NoError(t, err)
}

func TestAchievements_FirstSessionAward(t *testing.T) {
	sqlSvc, cleanup := setupTestDB(t)
	defer cleanup()
	svc := newReadingService(sqlSvc)

	user := createTestUser(t, sqlSvc, "reader@example.com")
	book := createTestBook(t, sqlSvc, "Yulduzli Tunlar")

	session, err := sqlSvc.Reading().CreateSession(user.ID, book.ID, time.Now().Add(-2*time.Minute))
	require.NoError(t, err)
	_, err = svc.EndSession(user.ID, session.ID)
	require.NoError(t, err)

	names := endedAchievementNames(t, svc, user.ID)
	assert.Contains(t, names, "Birinchi Qadam")
}

func TestAchievements_AwardedOnlyOnce(t *testing.T) {
	sqlSvc, cleanup := setupTestDB(t)
	defer cleanup()
	svc := newReadingService(sqlSvc)

	user := createTestUser(t, sqlSvc, "reader@example.com")
	book := createTestBook(t, sqlSvc, "Yulduzli Tunlar")

	for i := 0; i < 3; i++ {
		session, err := sqlSvc.Reading().CreateSession(user.ID, book.ID, time.Now().Add(-6*time.Minute))
		require.NoError(t, err)
		_, err = svc.EndSession(user.ID, session.ID)
		require.NoError(t, err)
	}

	names := endedAchievementNames(t, svc, user.ID)
	count := 0
	for _, name := range names {
		if name == "Birinchi Qadam" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestAchievements_DailyMinutes(t *testing.T) {
	sqlSvc, cleanup := setupTestDB(t)
	defer cleanup()
	svc := newReadingService(sqlSvc)

	user := createTestUser(t, sqlSvc, "reader@example.com")
	book := createTestBook(t, sqlSvc, "Yulduzli Tunlar")

	session, err := sqlSvc.Reading().CreateSession(user.ID, book.ID, time.Now().Add(-65*time.Minute))
	require.NoError(t, err)
	_, err = svc.EndSession(user.ID, session.ID)
	require.NoError(t, err)

	names := endedAchievementNames(t, svc, user.ID)
	assert.Contains(t, names, "Marafonchi")
}

func TestAchievements_TotalBooks(t *testing.T) {
	sqlSvc, cleanup := setupTestDB(t)
	defer cleanup()
	svc := newReadingService(sqlSvc)

	user := createTestUser(t, sqlSvc, "reader@example.com")

	for i := 0; i < 5; i++ {
		book := createTestBook(t, sqlSvc, "Kitob")
		require.NoError(t, sqlSvc.Library().AddToLibrary(user.ID, book.ID))
		require.NoError(t, svc.RecordBookFinished(user.ID, book.ID))
	}

	stats, err := svc.GetMyStats(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalBooksRead)

	names := endedAchievementNames(t, svc, user.ID)
	assert.Contains(t, names, "Bilimdon")
}

func TestRecordBookFinished_Idempotent(t *testing.T) {
	sqlSvc, cleanup := setupTestDB(t)
	defer cleanup()
	svc := newReadingService(sqlSvc)

	user := createTestUser(t, sqlSvc, "reader@example.com")
	book := createTestBook(t, sqlSvc, "Yulduzli Tunlar")
	require.NoError(t, sqlSvc.Library().AddToLibrary(user.ID, book.ID))

	require.NoError(t, svc.RecordBookFinished(user.ID, book.ID))
	require.NoError(t, svc.RecordBookFinished(user.ID, book.ID))

	stats, err := svc.GetMyStats(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalBooksRead)
}
