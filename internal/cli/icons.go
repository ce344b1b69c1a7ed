package cli

import "github.com/julianstephens/habitkit/internal/models"

type IconsCmd struct{}

func (c *IconsCmd) Run(ctx *Context) error {
	for _, ic := range models.HabitIcons {
		ctx.printf("%s  %s\n", ic.Icon, ic.Label)
	}
	return nil
}
