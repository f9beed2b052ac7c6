package repository

import (
	"testing"

	apperrors "github.com/t1nkr/releasecache/pkg/errors"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"T1nkR-Mesh-Name-Synchronizer", "T1nkR-Mesh-Name-Synchronizer"},
		{"/repo", "repo"},
		{"repo/", "repo"},
		{"/repo/", "repo"},
		{"owner/repo", "owner/repo"},
		{"/owner/repo/", "owner/repo"},
		{"_private", "_private"},
		{"a", "a"},
		{"a/b-c/d_e", "a/b-c/d_e"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			for _, external := range []bool{true, false} {
				got, err := Normalize(tt.in, external)
				if err != nil {
					t.Fatalf("Normalize(%q, %v) error: %v", tt.in, external, err)
				}
				if got != tt.want {
					t.Errorf("Normalize(%q, %v) = %q, want %q", tt.in, external, got, tt.want)
				}

				again, err := Normalize(got, external)
				if err != nil || again != got {
					t.Errorf("Normalize is not idempotent: %q -> %q (%v)", got, again, err)
				}
			}
		})
	}
}

func TestNormalizeRejects(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{"empty", ""},
		{"nil", nil},
		{"number", 42},
		{"bool", true},
		{"slash only", "/"},
		{"double slash", "//"},
		{"consecutive slashes", "owner//repo"},
		{"leading double slash", "//repo"},
		{"trailing double slash", "repo//"},
		{"space", "my repo"},
		{"dot", "repo.name"},
		{"leading dash", "-repo"},
		{"unicode", "répo"},
		{"query", "repo?x=1"},
		{"traversal", "../etc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.in, true)
			if !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
				t.Errorf("Normalize(%v, true) error = %v, want INVALID_INPUT", tt.in, err)
			}

			_, err = Normalize(tt.in, false)
			if !apperrors.Is(err, apperrors.ErrCodeInternal) {
				t.Errorf("Normalize(%v, false) error = %v, want INTERNAL_ERROR", tt.in, err)
			}
		})
	}
}
