package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/logger"
	"github.com/julianstephens/habitkit/internal/storage"
)

type DebugCmd struct {
	DBPath    DebugDBPathCmd    `cmd:"" name:"db-path" help:"Show storage location."`
	DumpDoc   DebugDumpDocCmd   `cmd:"" name:"dump-doc" help:"Dump the stored document as JSON."`
	DumpHabit DebugDumpHabitCmd `cmd:"" name:"dump-habit" help:"Dump one habit as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *Context) error {
	output := map[string]string{
		"path": ctx.Provider.GetConfigPath(),
		"key":  constants.StorageKey,
	}
	if log := logger.Path(); log != "" {
		output["log"] = log
	}
	return ctx.printJSON(output)
}

type DebugDumpDocCmd struct {
	Raw bool `help:"Print the stored slot verbatim instead of the normalized document."`
}

func (cmd *DebugDumpDocCmd) Run(ctx *Context) error {
	if cmd.Raw {
		raw, err := ctx.Provider.Get(constants.StorageKey)
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no document stored under %q", constants.StorageKey)
		}
		if err != nil {
			return fmt.Errorf("failed to read document: %w", err)
		}
		ctx.println(raw)
		return nil
	}

	store, err := ctx.Habits()
	if err != nil {
		return err
	}
	return ctx.printJSON(store.Document())
}

type DebugDumpHabitCmd struct {
	ID string `arg:"" help:"ID or name of the habit to dump."`
}

func (cmd *DebugDumpHabitCmd) Run(ctx *Context) error {
	store, err := ctx.Habits()
	if err != nil {
		return err
	}

	h, err := findHabit(store, cmd.ID)
	if err != nil {
		return err
	}
	return ctx.printJSON(h)
}

func (c *Context) printJSON(v interface{}) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	c.println(string(jsonBytes))
	return nil
}
