package version

import (
	"strings"
	"testing"
)

func TestColoredPlain(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	tests := []struct {
		version string
		want    string
	}{
		{"0.1.0-dev", "0.1.0-dev"},
		{"1.2.3", "1.2.3"},
		{"2", "2"},
	}
	for _, tt := range tests {
		Version = tt.version
		if got := Colored(false); got != tt.want {
			t.Errorf("Colored(false) for %q = %q", tt.version, got)
		}
	}
}

func TestColoredEscapes(t *testing.T) {
	if got := Colored(true); !strings.Contains(got, "\x1b[") {
		t.Errorf("Colored(true) has no escapes: %q", got)
	}
}

func TestBannerOptionalFields(t *testing.T) {
	origCommit, origDate := GitCommit, BuildDate
	defer func() { GitCommit, BuildDate = origCommit, origDate }()

	GitCommit, BuildDate = "", ""
	if got := Banner(false); got != "tuplegen "+Version {
		t.Errorf("Banner = %q", got)
	}

	GitCommit, BuildDate = "abc123", "2024-01-15T10:30:00Z"
	got := Banner(false)
	if !strings.Contains(got, "(abc123)") || !strings.HasSuffix(got, "built 2024-01-15T10:30:00Z") {
		t.Errorf("Banner = %q", got)
	}
}
