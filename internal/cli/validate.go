package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/storage"
	"github.com/julianstephens/habitkit/internal/utils"
	"github.com/julianstephens/habitkit/internal/validation"
)

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *Context) error {
	result, err := validateStored(ctx)
	if err != nil {
		return err
	}

	ctx.println("Validating habit document...")
	ctx.println()
	ctx.println(result.FormatReport())
	return nil
}

// validateStored checks the slot as stored, before any load-time repair.
func validateStored(ctx *Context) (validation.ValidationResult, error) {
	raw, err := ctx.Provider.Get(constants.StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return validation.ValidationResult{}, fmt.Errorf("no document stored yet")
	}
	if err != nil {
		return validation.ValidationResult{}, fmt.Errorf("failed to read document: %w", err)
	}

	var doc models.AppDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return validation.ValidationResult{}, fmt.Errorf("document is not valid JSON: %w", err)
	}

	loc, err := utils.LoadLocation(ctx.Timezone)
	if err != nil {
		return validation.ValidationResult{}, fmt.Errorf("invalid timezone %q: %w", ctx.Timezone, err)
	}
	now := ctx.now().In(loc)

	return validation.New().ValidateDocument(doc, utils.FormatDate(now)), nil
}
