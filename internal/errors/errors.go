// Package errors renders command failures for the habitkit CLI and adds a
// next step for the failures a user can fix themselves.
package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/keyring"
	"github.com/julianstephens/habitkit/internal/logger"
	"github.com/julianstephens/habitkit/internal/storage"
)

var hints = []struct {
	target error
	hint   string
}{
	{keyring.ErrNotFound, "store one with 'habitkit keyring set' or set " + constants.EnvDBConnection},
	{keyring.ErrKeyringUnavailable, "set " + constants.EnvDBConnection + " or use .pgpass instead"},
	{storage.ErrInvalidConnectionString, "use postgres://user@host:5432/db or host=... dbname=... user=..."},
	{storage.ErrNotLoaded, "this is a bug, rerun with --debug and check " + constants.AppName + ".log"},
}

// Format prefixes err with "Error: ".
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

func Formatf(format string, args ...any) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint returns a follow-up suggestion for err, or "".
func Hint(err error) string {
	for _, h := range hints {
		if errors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

// Fatal logs err, prints it with any hint to stderr and exits 1. A nil err
// is ignored.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	if hint := Hint(err); hint != "" {
		fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
	}
	os.Exit(1)
}

func Fatalf(format string, args ...any) {
	Fatal(fmt.Errorf(format, args...))
}
