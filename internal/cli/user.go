package cli

import (
	"fmt"
	"strings"
)

type UserCmd struct {
	Show    UserShowCmd    `cmd:"" help:"Show profile information."`
	Name    UserNameCmd    `cmd:"" help:"Set or clear the display name."`
	Onboard UserOnboardCmd `cmd:"" help:"Mark onboarding as complete."`
}

type UserShowCmd struct{}

func (c *UserShowCmd) Run(ctx *Context) error {
	store, err := ctx.Habits()
	if err != nil {
		return err
	}

	name := store.Username()
	if name == "" {
		name = "(not set)"
	}
	ctx.printf("Name:       %s\n", name)
	ctx.printf("ID:         %s\n", store.UniqueID())
	ctx.printf("Onboarded:  %t\n", store.HasCompletedOnboarding())
	ctx.printf("Habits:     %d\n", len(store.Habits()))
	ctx.printf("Challenges: %d claimed\n", len(store.ClaimedChallenges()))
	return nil
}

type UserNameCmd struct {
	Name  string `arg:"" optional:"" help:"Display name."`
	Clear bool   `help:"Remove the display name."`
}

func (c *UserNameCmd) Run(ctx *Context) error {
	name := strings.TrimSpace(c.Name)
	switch {
	case c.Clear && name != "":
		return fmt.Errorf("--clear does not take a name")
	case !c.Clear && name == "":
		return fmt.Errorf("name cannot be empty, use --clear to remove it")
	}

	store, err := ctx.Habits()
	if err != nil {
		return err
	}
	if err := store.SetUsername(name); err != nil {
		return err
	}

	if name == "" {
		ctx.println("Name cleared")
		return nil
	}
	ctx.printf("Name set to %s\n", name)
	return nil
}

type UserOnboardCmd struct{}

func (c *UserOnboardCmd) Run(ctx *Context) error {
	store, err := ctx.Habits()
	if err != nil {
		return err
	}

	if store.HasCompletedOnboarding() {
		ctx.println("Onboarding already complete.")
		return nil
	}
	if err := store.CompleteOnboarding(); err != nil {
		return err
	}

	ctx.println("✓ Onboarding complete")
	return nil
}
