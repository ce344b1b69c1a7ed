package cli

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Provider.Init(); err != nil {
		return err
	}

	store, err := ctx.Habits()
	if err != nil {
		return err
	}

	ctx.printf("Initialized habitkit storage at: %s\n", ctx.Provider.GetConfigPath())
	ctx.printf("Your permanent id: %s\n", store.UniqueID())
	return nil
}
