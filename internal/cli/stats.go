package cli

type StatsCmd struct {
	WeekOffset int `help:"Weeks back for the weekly count (0 = this week)." default:"0"`
}

func (c *StatsCmd) Run(ctx *Context) error {
	store, err := ctx.Habits()
	if err != nil {
		return err
	}

	now := store.Now()
	week, year := store.WindowWeek(c.WeekOffset)
	days := store.WeekDays(c.WeekOffset)

	ctx.printf("Current streak: %d day(s)\n", store.CalculateStreak())
	ctx.printf("Perfect days %s .. %s: %d/7\n", days[0], days[len(days)-1], store.WeeklyCompletions(c.WeekOffset))
	ctx.printf("ISO week: %d-W%02d\n", year, week)

	list := store.Habits()
	if len(list) == 0 {
		return nil
	}

	ctx.printf("\nMonthly progress (%s):\n", now.Format("January 2006"))
	for _, h := range list {
		ctx.printf("  %-24s %3d%%\n", displayName(h), store.MonthlyProgress(h.ID))
	}
	return nil
}
