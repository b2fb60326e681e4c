package services

import (
	"math"
	"time"

	"github.com/SaydirasulovFirdavs/web-kutubxona/dto"
	"github.com/SaydirasulovFirdavs/web-kutubxona/model"
	"github.com/SaydirasulovFirdavs/web-kutubxona/shared"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
)

// ReadingService owns the engagement tracker: session lifecycle, streaks and
// achievement awards.
type ReadingService struct {
	context.DefaultService

	sqlSvc DatabaseService
}

const READING_SVC = "reading_svc"

// minQualifyingMinutes is the floor a session must reach to count toward the
// daily streak. Shorter sessions still accumulate reading time.
const minQualifyingMinutes = 5.0

func (svc ReadingService) Id() string {
	return READING_SVC
}

func (svc *ReadingService) Configure(ctx *context.Context) error {
	svc.sqlSvc = ctx.Service(DB_SVC).(DatabaseService)
	return svc.DefaultService.Configure(ctx)
}

func (svc *ReadingService) Start() error {
	return nil
}

func (svc *ReadingService) StartSession(userID, bookID string) (*dto.StartSessionResponse, error) {
	if _, err := svc.sqlSvc.Books().GetActiveBook(bookID); err != nil {
		return nil, shared.NewNotFoundError(err, "Kitob topilmadi")
	}

	session, err := svc.sqlSvc.Reading().CreateSession(userID, bookID, time.Now())
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	readingSessionsStartedTotal.Inc()

	return &dto.StartSessionResponse{SessionID: session.ID}, nil
}

func (svc *ReadingService) EndSession(userID, sessionID string) (string, error) {
	session, err := svc.sqlSvc.Reading().GetOpenSession(sessionID, userID)
	if err != nil {
		return "", shared.NewNotFoundError(err, "Sessiya topilmadi yoki allaqachon yakunlangan")
	}

	now := time.Now()
	durationMinutes := now.Sub(session.StartTime).Minutes()
	if durationMinutes < 0 {
		// Clock skew between start and end. Close the session without
		// crediting any time.
		durationMinutes = 0
	}

	rows, err := svc.sqlSvc.Reading().CloseSession(sessionID, userID, now, durationMinutes)
	if err != nil {
		return "", svc.sqlSvc.HandleError(err)
	}
	if rows == 0 {
		return "", shared.NewNotFoundError(nil, "Sessiya topilmadi yoki allaqachon yakunlangan")
	}

	err = svc.sqlSvc.Reading().UpdateStreakTx(userID, func(streak *model.UserStreak) error {
		streak.TotalReadingTime += int(math.Round(durationMinutes))
		if durationMinutes >= minQualifyingMinutes {
			advanceStreak(streak, now)
		}
		return nil
	})
	if err != nil {
		return "", svc.sqlSvc.HandleError(err)
	}

	readingSessionsEndedTotal.Inc()

	// Achievement evaluation is best effort: a failure here must not fail
	// the session end.
	if err := svc.checkAchievements(userID, now); err != nil {
		log.WithFields(log.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Warn("Achievement check failed")
	}

	return "Sessiya yakunlandi", nil
}

// advanceStreak applies one qualifying reading day to the streak counters.
// Same-day reads are no-ops, consecutive days increment, a gap resets to 1.
// A last-read date in the future is left untouched so a clock jump cannot
// wipe the streak.
func advanceStreak(streak *model.UserStreak, now time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if streak.LastReadDate == nil {
		streak.CurrentStreak = 1
	} else {
		daysDiff := calendarDays(*streak.LastReadDate, now)
		if daysDiff < 0 {
			return
		}

		switch daysDiff {
		case 0:
			// Same day, no change to streak
		case 1:
			// Next day, increment streak
			streak.CurrentStreak++
		default:
			// Missed day(s), reset streak
			streak.CurrentStreak = 1
		}
	}

	if streak.CurrentStreak > streak.LongestStreak {
		streak.LongestStreak = streak.CurrentStreak
	}
	streak.LastReadDate = &today
}

// calendarDays returns the calendar-day difference b-a. Both dates are
// re-anchored at UTC midnight so a 23h or 25h local day around a DST switch
// still counts as exactly one day.
func calendarDays(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}

func (svc *ReadingService) checkAchievements(userID string, now time.Time) error {
	unearned, err := svc.sqlSvc.Reading().UnearnedAchievements(userID)
	if err != nil {
		return err
	}
	if len(unearned) == 0 {
		return nil
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	agg, err := svc.sqlSvc.Reading().Aggregates(userID, dayStart, dayEnd)
	if err != nil {
		return err
	}

	streak, err := svc.sqlSvc.Reading().GetStreak(userID)
	if err != nil {
		return err
	}

	for _, achievement := range unearned {
		var progress float64

		switch achievement.RequirementType {
		case shared.RequirementTotalSessions:
			progress = float64(agg.TotalSessions)
		case shared.RequirementNightSessions:
			progress = float64(agg.NightSessions)
		case shared.RequirementDailyMinutes:
			progress = agg.DailyMinutes
		case shared.RequirementTotalBooks:
			progress = float64(streak.TotalBooksRead)
		default:
			log.WithFields(log.Fields{
				"achievement_id":   achievement.ID,
				"requirement_type": achievement.RequirementType,
			}).Warn("Unknown achievement requirement type")
			continue
		}

		if progress < float64(achievement.RequirementValue) {
			continue
		}

		if err := svc.sqlSvc.Reading().AwardAchievement(userID, achievement.ID, now); err != nil {
			return err
		}

		achievementsAwardedTotal.WithLabelValues(achievement.RequirementType).Inc()

		log.WithFields(log.Fields{
			"user_id":     userID,
			"achievement": achievement.Name,
		}).Info("Achievement earned")
	}

	return nil
}

// RecordBookFinished counts a finished book once per user and book, then
// re-evaluates achievements.
func (svc *ReadingService) RecordBookFinished(userID, bookID string) error {
	newlyFinished, err := svc.sqlSvc.Library().MarkFinished(userID, bookID)
	if err != nil {
		return svc.sqlSvc.HandleError(err)
	}
	if !newlyFinished {
		return nil
	}

	err = svc.sqlSvc.Reading().UpdateStreakTx(userID, func(streak *model.UserStreak) error {
		streak.TotalBooksRead++
		return nil
	})
	if err != nil {
		return svc.sqlSvc.HandleError(err)
	}

	if err := svc.checkAchievements(userID, time.Now()); err != nil {
		log.WithFields(log.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Warn("Achievement check failed")
	}

	return nil
}

func (svc *ReadingService) GetMyStats(userID string) (*dto.UserStatsResponse, error) {
	if err := svc.sqlSvc.Reading().EnsureStreak(userID); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	streak, err := svc.sqlSvc.Reading().GetStreak(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	return &dto.UserStatsResponse{
		CurrentStreak:    streak.CurrentStreak,
		LongestStreak:    streak.LongestStreak,
		LastReadDate:     streak.LastReadDate,
		TotalBooksRead:   streak.TotalBooksRead,
		TotalReadingTime: streak.TotalReadingTime,
	}, nil
}

func (svc *ReadingService) GetMyAchievements(userID string) ([]dto.EarnedAchievementResponse, error) {
	earned, err := svc.sqlSvc.Reading().EarnedAchievements(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	achievements := make([]dto.EarnedAchievementResponse, 0, len(earned))
	for _, ua := range earned {
		if ua.Achievement == nil {
			continue
		}
		achievements = append(achievements, dto.EarnedAchievementResponse{
			ID:               ua.Achievement.ID,
			Name:             ua.Achievement.Name,
			Description:      ua.Achievement.Description,
			Icon:             ua.Achievement.Icon,
			Category:         ua.Achievement.Category,
			RequirementType:  ua.Achievement.RequirementType,
			RequirementValue: ua.Achievement.RequirementValue,
			EarnedAt:         ua.EarnedAt,
		})
	}
	return achievements, nil
}

// ExplainText produces a short reader-facing note about a passage. A proper
// model-backed explanation is not wired up yet; the endpoint answers with a
// fixed hint so clients can build against a stable contract.
func (svc *ReadingService) ExplainText(req dto.ExplainRequest) *dto.ExplainResponse {
	explanation := "Bu matn uchun tushuntirish hozircha mavjud emas. " +
		"Matnni diqqat bilan qayta o'qib chiqing va asosiy fikrni belgilang."
	return &dto.ExplainResponse{Explanation: explanation}
}
