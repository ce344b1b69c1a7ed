package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictMissingHabitID     ConflictType = "missing_habit_id"
	ConflictDuplicateHabitID   ConflictType = "duplicate_habit_id"
	ConflictDuplicateHabitName ConflictType = "duplicate_habit_name"
	ConflictEmptyHabitName     ConflictType = "empty_habit_name"
	ConflictInvalidDate        ConflictType = "invalid_date"
	ConflictFutureDate         ConflictType = "future_date"
	ConflictDuplicateDate      ConflictType = "duplicate_date"
	ConflictInvalidChallengeID ConflictType = "invalid_challenge_id"
	ConflictDuplicateClaim     ConflictType = "duplicate_claim"
	ConflictMissingUniqueID    ConflictType = "missing_unique_id"
)

// Conflict represents a detected problem in the app document
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // Habit names or challenge ids involved
	HabitIDs    []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

var challengeIDPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*-\d{4}-W\d{2}$`)

// Validator checks app documents for inconsistencies
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateDocument checks a document. today is the current calendar day
// (YYYY-MM-DD); completions after it are reported.
func (v *Validator) ValidateDocument(doc models.AppDocument, today string) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	if doc.UniqueID == "" {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictMissingUniqueID,
			Description: "Document has no unique id",
		})
	}

	result.Conflicts = append(result.Conflicts, v.validateHabits(doc.Habits, today)...)
	result.Conflicts = append(result.Conflicts, v.validateClaims(doc.ClaimedChallenges)...)

	return result
}

func (v *Validator) validateHabits(habits []models.Habit, today string) []Conflict {
	var conflicts []Conflict

	idCount := make(map[string]int)
	nameIDs := make(map[string][]string)
	var names []string
	for _, h := range habits {
		if h.ID == "" {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictMissingHabitID,
				Description: fmt.Sprintf("Habit \"%s\" has no id", h.Name),
				Items:       []string{h.Name},
			})
		} else {
			idCount[h.ID]++
			if idCount[h.ID] == 2 {
				conflicts = append(conflicts, Conflict{
					Type:        ConflictDuplicateHabitID,
					Description: fmt.Sprintf("Duplicate habit id: %s", h.ID),
					HabitIDs:    []string{h.ID},
				})
			}
		}

		name := strings.TrimSpace(h.Name)
		if name == "" {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictEmptyHabitName,
				Description: fmt.Sprintf("Habit %s has an empty name", h.ID),
				HabitIDs:    []string{h.ID},
			})
			continue
		}
		key := strings.ToLower(name)
		if _, seen := nameIDs[key]; !seen {
			names = append(names, key)
		}
		nameIDs[key] = append(nameIDs[key], h.ID)
	}

	for _, key := range names {
		if ids := nameIDs[key]; len(ids) > 1 {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictDuplicateHabitName,
				Description: fmt.Sprintf("Duplicate habit name: \"%s\" (IDs: %v)", key, ids),
				Items:       []string{key},
				HabitIDs:    ids,
			})
		}
	}

	for _, h := range habits {
		conflicts = append(conflicts, v.validateDates(h, today)...)
	}

	return conflicts
}

func (v *Validator) validateDates(h models.Habit, today string) []Conflict {
	var conflicts []Conflict
	seen := make(map[string]bool, len(h.CompletedDates))
	var future []string

	for _, d := range h.CompletedDates {
		if !utils.ValidateDate(d) {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Habit \"%s\" has invalid completion date: %s", h.Name, d),
				Items:       []string{h.Name},
				HabitIDs:    []string{h.ID},
			})
			continue
		}
		if seen[d] {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictDuplicateDate,
				Description: fmt.Sprintf("Habit \"%s\" lists %s more than once", h.Name, d),
				Items:       []string{h.Name},
				HabitIDs:    []string{h.ID},
			})
			continue
		}
		seen[d] = true
		// YYYY-MM-DD strings order lexically
		if today != "" && d > today {
			future = append(future, d)
		}
	}

	if len(future) > 0 {
		sort.Strings(future)
		conflicts = append(conflicts, Conflict{
			Type:        ConflictFutureDate,
			Description: fmt.Sprintf("Habit \"%s\" is completed on future dates: %s", h.Name, strings.Join(future, ", ")),
			Items:       []string{h.Name},
			HabitIDs:    []string{h.ID},
		})
	}

	return conflicts
}

func (v *Validator) validateClaims(claims []string) []Conflict {
	var conflicts []Conflict
	seen := make(map[string]bool, len(claims))
	for _, id := range claims {
		if !challengeIDPattern.MatchString(id) {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictInvalidChallengeID,
				Description: fmt.Sprintf("Claimed challenge has unrecognized id: %q", id),
				Items:       []string{id},
			})
		}
		if seen[id] {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictDuplicateClaim,
				Description: fmt.Sprintf("Challenge claimed more than once: %s", id),
				Items:       []string{id},
			})
		}
		seen[id] = true
	}
	return conflicts
}
