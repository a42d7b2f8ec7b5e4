package version

import (
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if BuildTime == "" || GitCommit == "" {
		t.Error("build info should be initialized")
	}
}

func TestString(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "v1.2.3"
	got := String()
	if !strings.HasPrefix(got, "avtag v1.2.3 ") {
		t.Fatalf("unexpected version line %q", got)
	}
	if !strings.Contains(got, "commit "+GitCommit) {
		t.Fatalf("missing commit in %q", got)
	}
}
