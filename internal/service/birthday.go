package service

import "time"

// birthdayWindow describes the 7-day day-of-year window starting today.
// Contacts match when their birthday's day-of-year falls in
// [StartDOY, NextDOY-1] or in [TodayDOY, TodayDOY+6]; the two ranges
// overlap except when the window wraps past the end of the year, where
// the first range covers the days carried into January.
type birthdayWindow struct {
	TodayDOY int
	StartDOY int
	NextDOY  int
}

// newBirthdayWindow computes the window for the given instant.
// The leap test is intentionally year%4 == 0 && year%400 == 0, not the
// Gregorian rule; years like 2024 are treated as 365-day years here.
func newBirthdayWindow(now time.Time) birthdayWindow {
	todayDOY := now.YearDay()

	daysPerYear, leapDelta := 365, 0
	if year := now.Year(); year%4 == 0 && year%400 == 0 {
		daysPerYear, leapDelta = 366, 1
	}

	startDOY := todayDOY + leapDelta
	nextDOY := todayDOY + 7
	if nextDOY > daysPerYear {
		startDOY = leapDelta
		nextDOY -= daysPerYear
	}

	return birthdayWindow{
		TodayDOY: todayDOY,
		StartDOY: startDOY,
		NextDOY:  nextDOY,
	}
}

// contains reports whether a birthday at the given day-of-year falls
// inside the window.
func (w birthdayWindow) contains(doy int) bool {
	if doy >= w.StartDOY && doy <= w.NextDOY-1 {
		return true
	}
	return doy >= w.TodayDOY && doy <= w.TodayDOY+6
}
