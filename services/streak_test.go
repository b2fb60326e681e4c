package services

import (
	"testing"
	"time"

	"github.com/SaydirasulovFirdavs/web-kutubxona/model"
	"github.com/stretchr/testify/assert"
)

func dayAt(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestAdvanceStreak_FirstEverRead(t *testing.T) {
	streak := &model.UserStreak{}

	advanceStreak(streak, time.Date(2026, time.March, 10, 14, 30, 0, 0, time.UTC))

	assert.Equal(t, 1, streak.CurrentStreak)
	assert.Equal(t, 1, streak.LongestStreak)
	assert.Equal(t, dayAt(2026, time.March, 10), *streak.LastReadDate)
}

func TestAdvanceStreak_SameDayIsNoOp(t *testing.T) {
	last := dayAt(2026, time.March, 10)
	streak := &model.UserStreak{
		CurrentStreak: 3,
		LongestStreak: 5,
		LastReadDate:  &last,
	}

	advanceStreak(streak, time.Date(2026, time.March, 10, 23, 59, 0, 0, time.UTC))

	assert.Equal(t, 3, streak.CurrentStreak)
	assert.Equal(t, 5, streak.LongestStreak)
}

func TestAdvanceStreak_NextDayIncrements(t *testing.T) {
	last := dayAt(2026, time.March, 10)
	streak := &model.UserStreak{
		CurrentStreak: 3,
		LongestStreak: 3,
		LastReadDate:  &last,
	}

	advanceStreak(streak, time.Date(2026, time.March, 11, 0, 5, 0, 0, time.UTC))

	assert.Equal(t, 4, streak.CurrentStreak)
	assert.Equal(t, 4, streak.LongestStreak)
	assert.Equal(t, dayAt(2026, time.March, 11), *streak.LastReadDate)
}

func TestAdvanceStreak_GapResetsToOne(t *testing.T) {
	last := dayAt(2026, time.March, 10)
	streak := &model.UserStreak{
		CurrentStreak: 7,
		LongestStreak: 7,
		LastReadDate:  &last,
	}

	advanceStreak(streak, time.Date(2026, time.March, 13, 9, 0, 0, 0, time.UTC))

	assert.Equal(t, 1, streak.CurrentStreak)
	assert.Equal(t, 7, streak.LongestStreak, "longest streak must survive a reset")
}

func TestAdvanceStreak_LongestOnlyGrows(t *testing.T) {
	last := dayAt(2026, time.March, 10)
	streak := &model.UserStreak{
		CurrentStreak: 9,
		LongestStreak: 9,
		LastReadDate:  &last,
	}

	advanceStreak(streak, time.Date(2026, time.March, 11, 9, 0, 0, 0, time.UTC))

	assert.Equal(t, 10, streak.CurrentStreak)
	assert.Equal(t, 10, streak.LongestStreak)
}

func TestAdvanceStreak_IncrementsAcrossSpringForward(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	// 2026-03-08 is the US spring-forward date: only 23h separate the two
	// local midnights, which must still count as one calendar day.
	last := time.Date(2026, time.March, 8, 0, 0, 0, 0, loc)
	streak := &model.UserStreak{
		CurrentStreak: 3,
		LongestStreak: 3,
		LastReadDate:  &last,
	}

	advanceStreak(streak, time.Date(2026, time.March, 9, 9, 0, 0, 0, loc))

	assert.Equal(t, 4, streak.CurrentStreak)
	assert.Equal(t, 4, streak.LongestStreak)
}

func TestAdvanceStreak_ResetAcrossFallBack(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	// 25h local day on 2026-11-01 must not turn a two-day gap into one.
	last := time.Date(2026, time.October, 31, 0, 0, 0, 0, loc)
	streak := &model.UserStreak{
		CurrentStreak: 6,
		LongestStreak: 6,
		LastReadDate:  &last,
	}

	advanceStreak(streak, time.Date(2026, time.November, 2, 9, 0, 0, 0, loc))

	assert.Equal(t, 1, streak.CurrentStreak)
	assert.Equal(t, 6, streak.LongestStreak)
}

func TestAdvanceStreak_FutureLastReadDateUntouched(t *testing.T) {
	last := dayAt(2026, time.March, 15)
	streak := &model.UserStreak{
		CurrentStreak: 4,
		LongestStreak: 4,
		LastReadDate:  &last,
	}

	advanceStreak(streak, time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC))

	assert.Equal(t, 4, streak.CurrentStreak)
	assert.Equal(t, dayAt(2026, time.March, 15), *streak.LastReadDate)
}
