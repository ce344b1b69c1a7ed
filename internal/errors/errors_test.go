package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/keyring"
	"github.com/julianstephens/habitkit/internal/storage"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("storage not initialized"),
			expected: "Error: storage not initialized",
		},
		{
			name:     "wrapped error",
			err:      fmt.Errorf("failed to write storage: %w", errors.New("disk full")),
			expected: "Error: failed to write storage: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		args     []any
		expected string
	}{
		{
			name:     "no args",
			format:   "backup not found",
			expected: "Error: backup not found",
		},
		{
			name:     "with args",
			format:   "challenge %q not earned (%d/%d days)",
			args:     []any{"steady-2024-W01", 2, 3},
			expected: `Error: challenge "steady-2024-W01" not earned (2/3 days)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Formatf(tt.format, tt.args...)
			if result != tt.expected {
				t.Errorf("Formatf(%q) = %q, want %q", tt.format, result, tt.expected)
			}
		})
	}
}

func TestHint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"unrelated", errors.New("habit not found"), ""},
		{"keyring empty", fmt.Errorf("lookup: %w", keyring.ErrNotFound), "habitkit keyring set"},
		{"keyring unavailable", keyring.ErrKeyringUnavailable, constants.EnvDBConnection},
		{"bad connection string", storage.ErrInvalidConnectionString, "postgres://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hint(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("Hint(%v) = %q, want none", tt.err, got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("Hint(%v) = %q, want it to mention %q", tt.err, got, tt.want)
			}
		})
	}
}
