package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/habitkit/internal/backup"
	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/errors"
	"github.com/julianstephens/habitkit/internal/logger"
	"github.com/julianstephens/habitkit/internal/utils"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Storage file path or PostgreSQL connection string. PostgreSQL passwords must NOT be embedded; use HABITKIT_DB_CONNECTION, the OS keyring or .pgpass instead." env:"HABITKIT_CONFIG" default:"~/.config/habitkit/habitkit.json"`
	Timezone string `help:"IANA timezone used for calendar days (default: system local)." env:"HABITKIT_TIMEZONE"`
	Debug    bool   `help:"Enable debug logging to stderr." env:"HABITKIT_DEBUG"`

	Init      cli.InitCmd      `cmd:"" help:"Initialize habitkit storage."`
	Habit     cli.HabitCmd     `cmd:"" help:"Manage habits and daily completions."`
	Stats     cli.StatsCmd     `cmd:"" help:"Show streak and progress statistics."`
	User      cli.UserCmd      `cmd:"" help:"Manage profile information."`
	Challenge cli.ChallengeCmd `cmd:"" help:"Weekly challenges."`
	Icons     cli.IconsCmd     `cmd:"" help:"List the habit icon catalog."`
	Backup    cli.BackupCmd    `cmd:"" help:"Manage document backups."`
	Keyring   cli.KeyringCmd   `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Doctor    cli.DoctorCmd    `cmd:"" help:"Run health checks and diagnostics."`
	Validate  cli.ValidateCmd  `cmd:"" help:"Check the stored document for inconsistencies."`
	Diag      cli.DebugCmd     `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
}

func main() {
	// A missing .env is fine
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal habit tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if !utils.ValidateTimezone(CLI.Timezone) {
		errors.Fatalf("unknown timezone: %s", CLI.Timezone)
	}

	backend, err := cli.ResolveBackend(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: backend.ConfigDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	logger.Debug("Starting", "command", ctx.Command(), "storage", backend.Provider.GetConfigPath())

	appCtx := &cli.Context{
		Provider:  backend.Provider,
		Timezone:  CLI.Timezone,
		BackupDir: backup.DefaultBackupDir(backend.ConfigDir),
	}

	if needsStorage(ctx.Command()) {
		if err := backend.Provider.Load(); err != nil {
			errors.Fatal(err)
		}
	}
	defer backend.Provider.Close()

	if err := ctx.Run(appCtx); err != nil {
		_ = backend.Provider.Close()
		errors.Fatal(err)
	}
}

// needsStorage reports whether storage must be loaded before the command
// runs. init creates it, doctor checks it itself, keyring and icons never touch it.
func needsStorage(command string) bool {
	for _, prefix := range []string{"init", "doctor", "keyring", "icons"} {
		if command == prefix || strings.HasPrefix(command, prefix+" ") {
			return false
		}
	}
	return true
}
