package main

import "testing"

func TestNeedsStorage(t *testing.T) {
	tests := []struct {
		command string
		want    bool
	}{
		{"init", false},
		{"keyring set", false},
		{"keyring status", false},
		{"icons", false},
		{"habit add <name>", true},
		{"habit list", true},
		{"stats", true},
		{"backup restore <backup-file>", true},
		{"doctor", false},
		{"debug db-path", true},
	}

	for _, tt := range tests {
		if got := needsStorage(tt.command); got != tt.want {
			t.Errorf("needsStorage(%q) = %v, want %v", tt.command, got, tt.want)
		}
	}
}
