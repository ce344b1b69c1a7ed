package habits

import (
	"fmt"
	"slices"

	"github.com/julianstephens/habitkit/internal/models"
)

type challengeTemplate struct {
	slug         string
	name         string
	description  string
	difficulty   models.Difficulty
	requiredDays int
}

var challengeTemplates = []challengeTemplate{
	{
		slug:         "steady-start",
		name:         "Steady Start",
		description:  "Complete every habit on 3 days this week.",
		difficulty:   models.DifficultyEasy,
		requiredDays: 3,
	},
	{
		slug:         "momentum",
		name:         "Momentum",
		description:  "Complete every habit on 5 days this week.",
		difficulty:   models.DifficultyMedium,
		requiredDays: 5,
	},
	{
		slug:         "perfect-week",
		name:         "Perfect Week",
		description:  "Complete every habit on all 7 days this week.",
		difficulty:   models.DifficultyHard,
		requiredDays: 7,
	},
}

// ChallengeID builds the id of a challenge for an ISO week, e.g.
// "momentum-2024-W07".
func ChallengeID(slug string, week, year int) string {
	return fmt.Sprintf("%s-%d-W%02d", slug, year, week)
}

// Challenges lists the weekly challenges for the week weekOffset weeks back.
// Ids carry the ISO week of the window WeeklyCompletions counts, so one
// Sunday-start window always maps to one id.
func (s *Store) Challenges(weekOffset int) []models.WeeklyChallenge {
	week, year := s.WindowWeek(weekOffset)

	out := make([]models.WeeklyChallenge, 0, len(challengeTemplates))
	for _, tpl := range challengeTemplates {
		id := ChallengeID(tpl.slug, week, year)
		out = append(out, models.WeeklyChallenge{
			ID:           id,
			Name:         tpl.name,
			Description:  tpl.description,
			Difficulty:   tpl.difficulty,
			RequiredDays: tpl.requiredDays,
			WeekNumber:   week,
			Year:         year,
			Claimed:      slices.Contains(s.doc.ClaimedChallenges, id),
		})
	}
	return out
}

// FindChallenge looks up a challenge id among the given week's challenges.
func (s *Store) FindChallenge(id string, weekOffset int) (models.WeeklyChallenge, bool) {
	for _, c := range s.Challenges(weekOffset) {
		if c.ID == id {
			return c, true
		}
	}
	return models.WeeklyChallenge{}, false
}

// ChallengeEarned reports whether the fully-completed days of the week
// weekOffset weeks back meet the challenge's requirement.
func (s *Store) ChallengeEarned(c models.WeeklyChallenge, weekOffset int) bool {
	return s.WeeklyCompletions(weekOffset) >= c.RequiredDays
}
