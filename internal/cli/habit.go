package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/utils"
)

const defaultIcon = "🎯"

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits."`
	Toggle HabitToggleCmd `cmd:"" help:"Toggle a habit's completion for a day."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its history."`
	Log    HabitLogCmd    `cmd:"" help:"Show recent completion history."`
}

type HabitAddCmd struct {
	Name string `arg:"" help:"Name of the habit."`
	Icon string `help:"Icon token or catalog label (see 'habitkit icons')." default:"🎯"`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	store, err := ctx.Habits()
	if err != nil {
		return err
	}

	icon := c.Icon
	if icon == "" {
		icon = defaultIcon
	}
	if resolved, ok := models.IconForLabel(icon); ok {
		icon = resolved
	}

	h, err := store.AddHabit(c.Name, icon)
	if err != nil {
		return err
	}

	ctx.printf("Added habit: %s (ID: %s)\n", displayName(h), h.ID)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	store, err := ctx.Habits()
	if err != nil {
		return err
	}

	habits := store.Habits()
	if len(habits) == 0 {
		ctx.println("No habits yet. Add one with 'habitkit habit add NAME'.")
		return nil
	}

	today := utils.FormatDate(store.Now())
	for _, h := range habits {
		mark := " "
		if h.IsCompletedOn(today) {
			mark = "✓"
		}
		ctx.printf("[%s] %s  %d%% this month  (ID: %s)\n", mark, displayName(h), store.MonthlyProgress(h.ID), h.ID)
	}
	return nil
}

type HabitToggleCmd struct {
	Habit string `arg:"" help:"Habit ID or name."`
	Date  string `help:"Day to toggle (YYYY-MM-DD, 'today' or 'yesterday')." default:"today"`
}

func (c *HabitToggleCmd) Run(ctx *Context) error {
	store, err := ctx.Habits()
	if err != nil {
		return err
	}

	h, err := findHabit(store, c.Habit)
	if err != nil {
		return err
	}
	date, err := resolveDate(store, c.Date)
	if err != nil {
		return err
	}

	if err := store.ToggleHabitForDate(h.ID, date); err != nil {
		return err
	}

	updated, _ := store.Habit(h.ID)
	if updated.IsCompletedOn(date) {
		ctx.printf("✓ %s completed on %s\n", displayName(updated), date)
	} else {
		ctx.printf("%s unmarked on %s\n", displayName(updated), date)
	}
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit ID or name."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	store, err := ctx.Habits()
	if err != nil {
		return err
	}

	h, err := findHabit(store, c.Habit)
	if err != nil {
		return err
	}

	if err := store.DeleteHabit(h.ID); err != nil {
		return err
	}

	ctx.printf("Deleted habit: %s\n", displayName(h))
	return nil
}

type HabitLogCmd struct {
	Days int `help:"Number of days to show, ending today." default:"7"`
}

func (c *HabitLogCmd) Run(ctx *Context) error {
	if c.Days < 1 {
		return fmt.Errorf("--days must be at least 1")
	}

	store, err := ctx.Habits()
	if err != nil {
		return err
	}

	habits := store.Habits()
	if len(habits) == 0 {
		ctx.println("No habits yet.")
		return nil
	}

	today := utils.StartOfDay(store.Now())
	days := make([]time.Time, c.Days)
	for i := range days {
		days[i] = utils.AddDays(today, i-c.Days+1)
	}

	width := 0
	for _, h := range habits {
		if n := len([]rune(displayName(h))); n > width {
			width = n
		}
	}

	var header strings.Builder
	for _, d := range days {
		header.WriteString(d.Format("Mon")[:2])
		header.WriteString(" ")
	}
	ctx.printf("%s  %s\n", strings.Repeat(" ", width), strings.TrimRight(header.String(), " "))

	for _, h := range habits {
		name := displayName(h)
		var row strings.Builder
		for _, d := range days {
			if h.IsCompletedOn(utils.FormatDate(d)) {
				row.WriteString("✓  ")
			} else {
				row.WriteString("·  ")
			}
		}
		ctx.printf("%s%s  %s\n", name, strings.Repeat(" ", width-len([]rune(name))), strings.TrimRight(row.String(), " "))
	}

	ctx.printf("\n%s .. %s\n", utils.FormatDate(days[0]), utils.FormatDate(days[len(days)-1]))
	return nil
}
