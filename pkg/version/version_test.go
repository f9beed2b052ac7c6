package version

import (
	"testing"

	apperrors "github.com/t1nkr/releasecache/pkg/errors"
)

func TestIsNewer(t *testing.T) {
	tests := []struct {
		latest  string
		current string
		want    bool
	}{
		{"v2.0.0", "1.0.0", true},
		{"v1.1.0", "1.0.0", true},
		{"v1.0.1", "1.0.0", true},
		{"v1.1.9", "2.2.2", false},
		{"v2.1.9", "2.2.2", false},
		{"v2.2.1", "2.2.2", false},
		{"v1.0.0", "1.0.0", false},
		{"v2.0.0", "1.9.9", true},
		{"v1.3.0", "1.2.9", true},
		{"v1.2.3-beta", "1.2.2", true},
		{"v1.2.3-rc1", "1.2.3", false},
		{"1.2.3", "1.2.2", true},
		{"v1.2", "1.1.5", true},
		{"v1.2", "1.2.5", false},
		{"v1.2.5", "1.2", false},
		{"v2", "1.0.0", true},
		{"v1.0.1", "(1, 0, 0)", true},
		{"v1.0.0", "[1, 0, 0]", false},
		{"v1.2.0", "( 1 ,1,0 )", true},
		{"v1.2.0", " 1.1.0 ", true},
	}

	for _, tt := range tests {
		t.Run(tt.latest+"_vs_"+tt.current, func(t *testing.T) {
			got, err := IsNewer(tt.latest, tt.current)
			if err != nil {
				t.Fatalf("IsNewer(%q, %q) error: %v", tt.latest, tt.current, err)
			}
			if got != tt.want {
				t.Errorf("IsNewer(%q, %q) = %v, want %v", tt.latest, tt.current, got, tt.want)
			}
		})
	}
}

func TestIsNewerErrors(t *testing.T) {
	tests := []struct {
		name    string
		latest  string
		current any
		code    apperrors.Code
	}{
		{"invalid tag", "invalid", "1.0.0", apperrors.ErrCodeUpstreamData},
		{"empty tag", "", "1.0.0", apperrors.ErrCodeUpstreamData},
		{"invalid current", "v1.0.0", "invalid", apperrors.ErrCodeInvalidInput},
		{"empty current", "v1.0.0", "", apperrors.ErrCodeInvalidInput},
		{"nil current", "v1.0.0", nil, apperrors.ErrCodeInvalidInput},
		{"numeric current", "v1.0.0", 1.0, apperrors.ErrCodeInvalidInput},
		{"negative component", "v1.0.0", "1.-1.0", apperrors.ErrCodeInvalidInput},
		{"trailing dot", "v1.0.0", "1.0.", apperrors.ErrCodeInvalidInput},
		{"empty tuple", "v1.0.0", "()", apperrors.ErrCodeInvalidInput},
		{"spaces in dotted form", "v1.0.0", "1 . 2", apperrors.ErrCodeInvalidInput},
		{"leading space in component", "v1.0.0", "1. 2.0", apperrors.ErrCodeInvalidInput},
		{"bad tag wins over nil current", "", nil, apperrors.ErrCodeUpstreamData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := IsNewerValue(tt.latest, tt.current)
			if err == nil {
				t.Fatalf("IsNewerValue(%q, %v) should fail", tt.latest, tt.current)
			}
			if got := apperrors.GetCode(err); got != tt.code {
				t.Errorf("code = %v, want %v", got, tt.code)
			}
		})
	}
}

func TestParseTag(t *testing.T) {
	got, err := ParseTag("v10.20.30-alpha.1")
	if err != nil {
		t.Fatalf("ParseTag error: %v", err)
	}
	want := []int{10, 20, 30}
	if len(got) != len(want) {
		t.Fatalf("ParseTag = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ParseTag[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
