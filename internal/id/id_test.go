package id_test

import (
	"testing"

	"github.com/Manirmaths/Naijaprep/internal/id"
)

func TestGenerateID(t *testing.T) {
	a, b := id.GenerateID(), id.GenerateID()

	if len(a) != id.Length {
		t.Errorf("expected length %d, got %d", id.Length, len(a))
	}
	if a == b {
		t.Error("expected two generated IDs to differ")
	}
	if !id.Valid(a) {
		t.Errorf("expected generated ID %q to be valid", a)
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"q-algebra-1", true},
		{"abc123", true},
		{"", false},
		{"1; DROP TABLE", false},
		{"../etc", false},
	}

	for _, tt := range tests {
		if got := id.Valid(tt.in); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
