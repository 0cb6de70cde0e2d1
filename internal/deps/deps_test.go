package deps

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"galleryorganizer/internal/services"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available || results[0].Detail != "" || results[0].Path != present {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[1].Available || results[1].Detail == "" {
		t.Fatalf("expected missing binary to be unavailable with detail, got %#v", results[1])
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}
	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("unexpected blank command status %#v", results[2])
	}
}

func TestRequirementsByOS(t *testing.T) {
	linux, err := Requirements("linux")
	if err != nil {
		t.Fatalf("linux: %v", err)
	}
	if got := linux[len(linux)-1].Command; got != "zip" {
		t.Fatalf("linux archiver = %q", got)
	}
	windows, err := Requirements("windows")
	if err != nil {
		t.Fatalf("windows: %v", err)
	}
	if got := windows[len(windows)-1].Command; got != "bz" {
		t.Fatalf("windows archiver = %q", got)
	}
	if _, err := Requirements("plan9"); !errors.Is(err, services.ErrEnvironment) {
		t.Fatalf("expected environment error, got %v", err)
	}
}

func TestEnsureWithStubbedPath(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("shell stubs require linux")
	}
	binDir := t.TempDir()
	script := []byte("#!/bin/sh\nexit 0\n")
	for _, name := range []string{"ffmpeg", "exiftool"} {
		if err := os.WriteFile(filepath.Join(binDir, name), script, 0o755); err != nil {
			t.Fatalf("write %s stub: %v", name, err)
		}
	}
	t.Setenv("PATH", binDir)

	statuses, err := Ensure("linux")
	if !errors.Is(err, services.ErrEnvironment) {
		t.Fatalf("expected missing zip to fail, got %v", err)
	}
	if len(statuses) != 3 || !statuses[0].Available || statuses[2].Available {
		t.Fatalf("unexpected statuses %#v", statuses)
	}

	if err := os.WriteFile(filepath.Join(binDir, "zip"), script, 0o755); err != nil {
		t.Fatalf("write zip stub: %v", err)
	}
	if _, err := Ensure("linux"); err != nil {
		t.Fatalf("expected all tools present, got %v", err)
	}
}
