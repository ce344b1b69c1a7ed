package models

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// WeeklyChallenge is a reward target for one ISO week.
type WeeklyChallenge struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Difficulty   Difficulty `json:"difficulty"`
	RequiredDays int        `json:"requiredDays"`
	WeekNumber   int        `json:"weekNumber"`
	Year         int        `json:"year"`
	Claimed      bool       `json:"claimed"`
}
