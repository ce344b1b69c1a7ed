// Package habits owns the app document: the habit list, daily completion
// marks, user identity and claimed challenges. Every mutation rewrites the
// whole document to its storage slot.
package habits

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/logger"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/storage"
)

// Store is not safe for concurrent use. Two processes sharing one slot
// overwrite each other's changes; the last write wins.
type Store struct {
	provider  storage.Provider
	key       string
	doc       models.AppDocument
	now       func() time.Time
	loc       *time.Location
	newID     func() string
	onDiscard func(raw string)
}

type Option func(*Store)

// WithClock overrides the source of "now".
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLocation sets the timezone that decides which calendar day "today" is.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) { s.loc = loc }
}

// WithIDGenerator overrides habit and user id generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithKey stores the document under a slot other than the default.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithDiscardHook is called with the raw slot value before an unparsable
// document is replaced by a fresh one.
func WithDiscardHook(fn func(raw string)) Option {
	return func(s *Store) { s.onDiscard = fn }
}

// Open loads the document from provider, creating or repairing it as needed.
// The provider must already be loaded. Only provider read failures other than
// an empty slot are returned as errors.
func Open(provider storage.Provider, opts ...Option) (*Store, error) {
	s := &Store{
		provider: provider,
		key:      constants.StorageKey,
		now:      time.Now,
		loc:      time.Local,
		newID:    func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}

	raw, err := provider.Get(s.key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		logger.Info("No stored document, starting fresh", "key", s.key)
		s.doc = s.newDocument()
	case err != nil:
		return nil, fmt.Errorf("failed to read document: %w", err)
	default:
		s.doc = s.decode(raw)
	}

	// Write back fresh, repaired or migrated documents right away
	data, err := json.Marshal(s.doc)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}
	if string(data) != raw {
		if err := s.save(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Store) newDocument() models.AppDocument {
	return models.AppDocument{
		Habits:            []models.Habit{},
		UniqueID:          s.newID(),
		Username:          "",
		ClaimedChallenges: []string{},
	}
}

// decode parses a stored document, backfilling fields that older versions
// did not write. Unparsable input yields a fresh document.
func (s *Store) decode(raw string) models.AppDocument {
	var doc models.AppDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		logger.Warn("Discarding malformed document", "key", s.key, "error", err)
		if s.onDiscard != nil {
			s.onDiscard(raw)
		}
		return s.newDocument()
	}

	if doc.UniqueID == "" {
		logger.Info("Backfilling missing uniqueId")
		doc.UniqueID = s.newID()
	}
	if doc.Habits == nil {
		doc.Habits = []models.Habit{}
	}
	if doc.ClaimedChallenges == nil {
		doc.ClaimedChallenges = []string{}
	}
	for i := range doc.Habits {
		doc.Habits[i].CompletedDates = dedupe(doc.Habits[i].CompletedDates)
	}

	return doc
}

func dedupe(dates []string) []string {
	out := make([]string, 0, len(dates))
	seen := make(map[string]bool, len(dates))
	for _, d := range dates {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}

func (s *Store) save() error {
	data, err := json.Marshal(s.doc)
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}
	if err := s.provider.Set(s.key, string(data)); err != nil {
		logger.Error("Failed to persist document", "key", s.key, "error", err)
		return fmt.Errorf("failed to persist document: %w", err)
	}
	return nil
}

// Document returns a copy of the current document.
func (s *Store) Document() models.AppDocument {
	return s.doc.Clone()
}

// Habits returns a copy of the habits in creation order.
func (s *Store) Habits() []models.Habit {
	return s.doc.Clone().Habits
}

// Habit looks up a habit by id.
func (s *Store) Habit(id string) (models.Habit, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Habit{}, false
	}
	h := s.doc.Habits[i]
	h.CompletedDates = append([]string{}, h.CompletedDates...)
	return h, true
}

func (s *Store) UniqueID() string { return s.doc.UniqueID }

func (s *Store) Username() string { return s.doc.Username }

func (s *Store) HasCompletedOnboarding() bool { return s.doc.HasCompletedOnboarding }

func (s *Store) ClaimedChallenges() []string {
	return append([]string{}, s.doc.ClaimedChallenges...)
}

// Location is the timezone used to decide calendar days.
func (s *Store) Location() *time.Location { return s.loc }

// Now returns the current moment in the store's location.
func (s *Store) Now() time.Time { return s.now().In(s.loc) }

func (s *Store) indexOf(id string) int {
	for i, h := range s.doc.Habits {
		if h.ID == id {
			return i
		}
	}
	return -1
}

// AddHabit appends a new habit and returns it. Name and icon are stored as
// given.
func (s *Store) AddHabit(name, icon string) (models.Habit, error) {
	habit := models.Habit{
		ID:             s.newID(),
		Name:           name,
		Icon:           icon,
		CreatedAt:      s.now().UTC(),
		CompletedDates: []string{},
	}
	s.doc.Habits = append(s.doc.Habits, habit)
	logger.Debug("Added habit", "id", habit.ID, "name", name)
	return habit, s.save()
}

// ToggleHabitForDate flips the completion mark of habitID on date
// (YYYY-MM-DD). Unknown ids leave the document untouched.
func (s *Store) ToggleHabitForDate(habitID, date string) error {
	i := s.indexOf(habitID)
	if i < 0 {
		logger.Debug("Toggle for unknown habit ignored", "id", habitID)
		return nil
	}

	h := &s.doc.Habits[i]
	dates := make([]string, 0, len(h.CompletedDates)+1)
	found := false
	for _, d := range h.CompletedDates {
		if d == date {
			found = true
			continue
		}
		dates = append(dates, d)
	}
	if !found {
		dates = append(dates, date)
	}
	h.CompletedDates = dates

	return s.save()
}

// DeleteHabit removes the habit with the given id. Unknown ids are ignored.
func (s *Store) DeleteHabit(habitID string) error {
	i := s.indexOf(habitID)
	if i < 0 {
		return nil
	}
	s.doc.Habits = slices.Delete(s.doc.Habits, i, i+1)
	return s.save()
}

func (s *Store) CompleteOnboarding() error {
	s.doc.HasCompletedOnboarding = true
	return s.save()
}

func (s *Store) SetUsername(name string) error {
	s.doc.Username = name
	return s.save()
}

// ClaimChallenge records a claimed challenge id. Repeat claims are appended
// again.
func (s *Store) ClaimChallenge(challengeID string) error {
	s.doc.ClaimedChallenges = append(s.doc.ClaimedChallenges, challengeID)
	return s.save()
}
