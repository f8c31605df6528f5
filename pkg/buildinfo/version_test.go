package buildinfo

import (
	"runtime"
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })
	Version, Commit = "v1.2.3", "abc123"

	got := String()
	for _, want := range []string{"placegraph version: v1.2.3", "commit: abc123", "go: " + runtime.Version()} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}

func TestGetKeepsStamps(t *testing.T) {
	oldCommit, oldDate := Commit, Date
	t.Cleanup(func() { Commit, Date = oldCommit, oldDate })
	Commit, Date = "deadbeef", "2026-01-02T03:04:05Z"

	got := Get()
	if got.Commit != "deadbeef" || got.Date != "2026-01-02T03:04:05Z" {
		t.Errorf("Get() = %+v, want stamped commit and date", got)
	}
}

func TestShortCommit(t *testing.T) {
	tests := []struct{ in, want string }{
		{"0123456789abcdef0123", "0123456789ab"},
		{"abc", "abc"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := shortCommit(tt.in); got != tt.want {
			t.Errorf("shortCommit(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTemplate(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })
	Version = "v0.3.0"

	got := Template()
	if !strings.HasPrefix(got, "{{.Name}} v0.3.0 (") {
		t.Errorf("Template() = %q, want cobra name placeholder and version", got)
	}
}
