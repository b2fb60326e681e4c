package services

import (
	"errors"

	"github.com/SaydirasulovFirdavs/web-kutubxona/model"
	"github.com/SaydirasulovFirdavs/web-kutubxona/services/repositories"
	"github.com/SaydirasulovFirdavs/web-kutubxona/shared"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DB_SVC is the service id both database backends register under. The runtime
// picks one backend via DB_DRIVER; everything else resolves the same id and
// stays oblivious to which driver is behind it.
const DB_SVC = "db_svc"

// DatabaseService is what the rest of the application sees of the database.
type DatabaseService interface {
	Db() *gorm.DB
	HandleError(err error) error

	Users() *repositories.UserRepository
	Books() *repositories.BookRepository
	Library() *repositories.LibraryRepository
	Reading() *repositories.ReadingRepository
}

func migrationModels() []interface{} {
	return []interface{}{
		&model.User{},

		// Catalog models
		&model.Book{},
		&model.Category{},
		&model.UserLibrary{},
		&model.DownloadHistory{},
		&model.Bookmark{},
		&model.Highlight{},
		&model.Review{},

		// Engagement models
		&model.ReadingSession{},
		&model.UserStreak{},
		&model.Achievement{},
		&model.UserAchievement{},
	}
}

func seedAchievements(db *gorm.DB) error {
	achievements := []model.Achievement{
		{
			Name:             "Birinchi Qadam",
			Description:      "Birinchi o'qish sessiyasini yakunlang",
			Icon:             "footprints",
			Category:         "sessions",
			RequirementType:  shared.RequirementTotalSessions,
			RequirementValue: 1,
		},
		{
			Name:             "Tungi Boyqush",
			Description:      "Kechasi 3 marta kitob o'qing",
			Icon:             "owl",
			Category:         "habits",
			RequirementType:  shared.RequirementNightSessions,
			RequirementValue: 3,
		},
		{
			Name:             "Marafonchi",
			Description:      "Bir kunda 60 daqiqa kitob o'qing",
			Icon:             "timer",
			Category:         "time",
			RequirementType:  shared.RequirementDailyMinutes,
			RequirementValue: 60,
		},
		{
			Name:             "Bilimdon",
			Description:      "5 ta kitobni o'qib tugating",
			Icon:             "graduation-cap",
			Category:         "books",
			RequirementType:  shared.RequirementTotalBooks,
			RequirementValue: 5,
		},
	}

	for _, achievement := range achievements {
		var existing model.Achievement
		err := db.Where("name = ?", achievement.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		id, _ := uuid.NewV7()
		achievement.ID = id.String()
		if err := db.Create(&achievement).Error; err != nil {
			return err
		}
	}

	log.Println("Achievement seed data verified")
	return nil
}
