package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/keyring"
	"github.com/julianstephens/habitkit/internal/storage"
	"github.com/julianstephens/habitkit/internal/utils"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.println("Running diagnostics...")
	ctx.println()

	hasError := false
	reachable := false

	// Check 1: storage reachable
	if err := checkStorageReachable(ctx); err != nil {
		ctx.printf("❌ Storage reachable: FAIL\n")
		ctx.printf("   Error: %v\n", err)
		hasError = true
	} else {
		ctx.printf("✓ Storage reachable: OK\n")
		reachable = true
	}

	// Check 2: document consistent (only if storage is reachable)
	if reachable {
		result, err := validateStored(ctx)
		switch {
		case err != nil:
			ctx.printf("❌ Document valid: FAIL\n")
			ctx.printf("   Error: %v\n", err)
			hasError = true
		case result.HasConflicts():
			ctx.printf("❌ Document valid: FAIL\n")
			for _, c := range result.Conflicts {
				ctx.printf("   %s\n", c.Description)
			}
			hasError = true
		default:
			ctx.printf("✓ Document valid: OK\n")
		}
	} else {
		ctx.printf("⊘ Document valid: SKIPPED (storage not reachable)\n")
	}

	// Check 3: backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		ctx.printf("⚠ Backups present: WARNING\n")
		ctx.printf("   %v\n", err)
	} else {
		ctx.printf("✓ Backups present: OK\n")
	}

	// Check 4: keyring (only matters for PostgreSQL)
	if _, ok := ctx.Provider.(*storage.PostgresStore); ok {
		if keyring.IsAvailable() {
			ctx.printf("✓ OS keyring: OK\n")
		} else {
			ctx.printf("⚠ OS keyring: WARNING\n")
			ctx.printf("   keyring not available, set %s or use .pgpass\n", constants.EnvDBConnection)
		}
	}

	// Check 5: clock/timezone sanity
	if err := checkClockTimezone(ctx); err != nil {
		ctx.printf("❌ Clock/timezone: FAIL\n")
		ctx.printf("   Error: %v\n", err)
		hasError = true
	} else {
		ctx.printf("✓ Clock/timezone: OK\n")
	}

	ctx.println()
	if hasError {
		ctx.println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.println("All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *Context) error {
	if err := ctx.Provider.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if _, err := ctx.Provider.Get(constants.StorageKey); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to read storage: %w", err)
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	backups, err := ctx.Backups().ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	for _, b := range backups {
		if !b.Malformed {
			return nil
		}
	}
	return fmt.Errorf("no backups found - consider creating one with 'habitkit backup create'")
}

func checkClockTimezone(ctx *Context) error {
	now := ctx.now()

	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	if !utils.ValidateTimezone(ctx.Timezone) {
		return fmt.Errorf("unknown timezone: %s", ctx.Timezone)
	}

	if ctx.Timezone == "" && now.Location() == time.UTC {
		ctx.printf("   Note: timezone is UTC\n")
	}

	return nil
}
