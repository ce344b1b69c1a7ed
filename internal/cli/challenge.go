package cli

import (
	"fmt"
	"slices"
)

type ChallengeCmd struct {
	List  ChallengeListCmd  `cmd:"" help:"Show weekly challenges."`
	Claim ChallengeClaimCmd `cmd:"" help:"Claim an earned challenge."`
}

type ChallengeListCmd struct {
	WeekOffset int `help:"Weeks back (0 = this week)." default:"0"`
}

func (c *ChallengeListCmd) Run(ctx *Context) error {
	if c.WeekOffset < 0 {
		return fmt.Errorf("--week-offset cannot be negative")
	}

	store, err := ctx.Habits()
	if err != nil {
		return err
	}

	challenges := store.Challenges(c.WeekOffset)
	done := store.WeeklyCompletions(c.WeekOffset)
	ctx.printf("Week %d-W%02d (%d perfect day(s) so far)\n\n", challenges[0].Year, challenges[0].WeekNumber, done)

	for _, ch := range challenges {
		status := fmt.Sprintf("%d/%d", min(done, ch.RequiredDays), ch.RequiredDays)
		switch {
		case ch.Claimed:
			status = "claimed"
		case store.ChallengeEarned(ch, c.WeekOffset):
			status = "earned, claim with 'habitkit challenge claim " + ch.ID + "'"
		}
		ctx.printf("  [%-6s] %s: %s\n", ch.Difficulty, ch.Name, ch.Description)
		ctx.printf("           %s  (%s)\n", ch.ID, status)
	}
	return nil
}

type ChallengeClaimCmd struct {
	ID         string `arg:"" help:"Challenge ID."`
	WeekOffset int    `help:"Week the challenge belongs to (0 = this week)." default:"0"`
}

func (c *ChallengeClaimCmd) Run(ctx *Context) error {
	if c.WeekOffset < 0 {
		return fmt.Errorf("--week-offset cannot be negative")
	}

	store, err := ctx.Habits()
	if err != nil {
		return err
	}

	if slices.Contains(store.ClaimedChallenges(), c.ID) {
		return fmt.Errorf("challenge %s is already claimed", c.ID)
	}

	ch, ok := store.FindChallenge(c.ID, c.WeekOffset)
	if !ok {
		return fmt.Errorf("challenge %s not found for week offset %d", c.ID, c.WeekOffset)
	}
	if !store.ChallengeEarned(ch, c.WeekOffset) {
		return fmt.Errorf("challenge %s not earned yet: %d of %d perfect days", c.ID, store.WeeklyCompletions(c.WeekOffset), ch.RequiredDays)
	}

	if err := store.ClaimChallenge(ch.ID); err != nil {
		return err
	}

	ctx.printf("✓ Claimed %s\n", ch.Name)
	return nil
}
