package habits

import (
	"math"
	"time"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/utils"
)

// completionSets indexes each habit's completed dates for quick lookup.
func (s *Store) completionSets() []map[string]bool {
	sets := make([]map[string]bool, len(s.doc.Habits))
	for i, h := range s.doc.Habits {
		set := make(map[string]bool, len(h.CompletedDates))
		for _, d := range h.CompletedDates {
			set[d] = true
		}
		sets[i] = set
	}
	return sets
}

func allCompleted(sets []map[string]bool, day string) bool {
	for _, set := range sets {
		if !set[day] {
			return false
		}
	}
	return true
}

// CalculateStreak counts consecutive days, ending today or yesterday, on which
// every habit was completed. An unfinished today doesn't break the streak.
func (s *Store) CalculateStreak() int {
	if len(s.doc.Habits) == 0 {
		return 0
	}

	sets := s.completionSets()
	today := utils.StartOfDay(s.Now())
	streak := 0

	for day := today; ; day = utils.AddDays(day, -1) {
		if !allCompleted(sets, utils.FormatDate(day)) {
			if day.Equal(today) {
				continue
			}
			break
		}
		streak++
	}

	return streak
}

// MonthlyProgress returns the percentage of days so far this month on which
// the habit was completed, rounded to the nearest integer. Unknown habits
// report 0.
func (s *Store) MonthlyProgress(habitID string) int {
	i := s.indexOf(habitID)
	if i < 0 {
		return 0
	}

	now := s.Now()
	elapsed := now.Day()
	if elapsed <= 0 {
		return 0
	}

	completed := 0
	for _, d := range s.doc.Habits[i].CompletedDates {
		t, err := time.Parse(constants.DateFormat, d)
		if err != nil {
			continue
		}
		if t.Year() == now.Year() && t.Month() == now.Month() {
			completed++
		}
	}

	return int(math.Round(100 * float64(completed) / float64(elapsed)))
}

// WeekNumber returns the ISO-8601 week of the calendar day of date and the
// ISO week-year it belongs to. Weeks start on Monday and week 1 holds the
// year's first Thursday, so early January days can fall in the previous
// year's last week.
func WeekNumber(date time.Time) (week, year int) {
	year, week = date.ISOWeek()
	return week, year
}

// weekStart returns the Sunday that opens the calendar week containing
// today shifted back by weekOffset weeks.
func (s *Store) weekStart(weekOffset int) time.Time {
	today := utils.StartOfDay(s.Now())
	return utils.AddDays(today, -weekOffset*7-int(today.Weekday()))
}

// WindowWeek returns the ISO week and week-year labelling the Sunday-start
// window weekOffset weeks back. The label is taken from the window's Monday,
// which shares its ISO week with the following five days.
func (s *Store) WindowWeek(weekOffset int) (week, year int) {
	return WeekNumber(utils.AddDays(s.weekStart(weekOffset), 1))
}

// WeeklyCompletions counts the days of a Sunday-start week on which every
// habit was completed. weekOffset 0 is the current week, 1 the week before.
func (s *Store) WeeklyCompletions(weekOffset int) int {
	if len(s.doc.Habits) == 0 {
		return 0
	}

	sets := s.completionSets()
	start := s.weekStart(weekOffset)
	completed := 0
	for i := 0; i < 7; i++ {
		if allCompleted(sets, utils.FormatDate(utils.AddDays(start, i))) {
			completed++
		}
	}
	return completed
}

// WeekDays returns the seven YYYY-MM-DD dates WeeklyCompletions inspects for
// weekOffset, Sunday first.
func (s *Store) WeekDays(weekOffset int) []string {
	start := s.weekStart(weekOffset)
	days := make([]string, 7)
	for i := range days {
		days[i] = utils.FormatDate(utils.AddDays(start, i))
	}
	return days
}
