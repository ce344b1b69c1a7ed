package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/habitkit/internal/backup"
	"github.com/julianstephens/habitkit/internal/habits"
	"github.com/julianstephens/habitkit/internal/logger"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/storage"
	"github.com/julianstephens/habitkit/internal/utils"
)

type Context struct {
	Provider  storage.Provider
	Timezone  string
	BackupDir string
	Out       io.Writer
	In        io.Reader

	// Clock overrides time.Now; tests pin it.
	Clock func() time.Time

	store *habits.Store
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) in() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

func (c *Context) now() time.Time {
	if c.Clock == nil {
		return time.Now()
	}
	return c.Clock()
}

func (c *Context) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) println(args ...interface{}) {
	fmt.Fprintln(c.out(), args...)
}

// Backups returns the backup manager for the configured storage.
func (c *Context) Backups() *backup.Manager {
	return backup.NewManager(c.Provider, c.BackupDir)
}

// Habits opens the habit store on first use. Unparsable documents are
// quarantined into the backup directory before being replaced.
func (c *Context) Habits() (*habits.Store, error) {
	if c.store != nil {
		return c.store, nil
	}

	loc, err := utils.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}

	mgr := c.Backups()
	opts := []habits.Option{
		habits.WithLocation(loc),
		habits.WithDiscardHook(func(raw string) {
			if _, err := mgr.Quarantine(raw); err != nil {
				logger.Error("Failed to quarantine malformed document", "error", err)
			}
		}),
	}
	if c.Clock != nil {
		opts = append(opts, habits.WithClock(c.Clock))
	}

	store, err := habits.Open(c.Provider, opts...)
	if err != nil {
		return nil, err
	}
	c.store = store
	return store, nil
}

// findHabit resolves a habit by id, then by case-insensitive name.
func findHabit(store *habits.Store, ref string) (models.Habit, error) {
	if h, ok := store.Habit(ref); ok {
		return h, nil
	}
	for _, h := range store.Habits() {
		if strings.EqualFold(h.Name, ref) {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit %q not found", ref)
}

// resolveDate turns "today", "yesterday" or YYYY-MM-DD into a date string
// in the store's timezone.
func resolveDate(store *habits.Store, s string) (string, error) {
	today := utils.StartOfDay(store.Now())
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return utils.FormatDate(today), nil
	case "yesterday":
		return utils.FormatDate(utils.AddDays(today, -1)), nil
	}
	if !utils.ValidateDate(s) {
		return "", fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD, 'today' or 'yesterday')", s)
	}
	return s, nil
}

func displayName(h models.Habit) string {
	if h.Icon == "" {
		return h.Name
	}
	return h.Icon + " " + h.Name
}
