package models

import (
	"slices"
	"time"
)

// Habit represents a recurring practice to track
type Habit struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Icon           string    `json:"icon"`
	CreatedAt      time.Time `json:"createdAt"`
	CompletedDates []string  `json:"completedDates"` // YYYY-MM-DD, insertion ordered
}

// IsCompletedOn reports whether day (YYYY-MM-DD) is marked done.
func (h Habit) IsCompletedOn(day string) bool {
	return slices.Contains(h.CompletedDates, day)
}

// AppDocument is the single persisted aggregate.
type AppDocument struct {
	Habits                 []Habit  `json:"habits"`
	UniqueID               string   `json:"uniqueId"`
	Username               string   `json:"username"`
	HasCompletedOnboarding bool     `json:"hasCompletedOnboarding"`
	ClaimedChallenges      []string `json:"claimedChallenges"`
}

// Clone returns a deep copy so callers can't mutate store-owned slices.
func (d AppDocument) Clone() AppDocument {
	out := d
	out.Habits = make([]Habit, len(d.Habits))
	for i, h := range d.Habits {
		h.CompletedDates = append([]string{}, h.CompletedDates...)
		out.Habits[i] = h
	}
	out.ClaimedChallenges = append([]string{}, d.ClaimedChallenges...)
	return out
}
