package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"galleryorganizer/internal/journal"
	"galleryorganizer/internal/pluginio"
	"galleryorganizer/internal/testsupport"
)

type cliTestEnv struct {
	baseDir     string
	pluginDir   string
	configPath  string
	journalPath string
	server      *testsupport.GraphQLServer
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("STASH_URL", "")
	t.Setenv("STASH_API_KEY", "")

	env := &cliTestEnv{
		baseDir:     base,
		pluginDir:   filepath.Join(base, "plugins", "GalleryOrganizer"),
		journalPath: filepath.Join(base, "state", "journal.db"),
		server:      testsupport.NewGraphQLServer(t),
	}
	if err := os.MkdirAll(env.pluginDir, 0o755); err != nil {
		t.Fatalf("mkdir plugin dir: %v", err)
	}
	contents := fmt.Sprintf(`[stash]
url = '%s'

[logging]
level = "debug"
dir = '%s'

[journal]
enabled = true
path = '%s'
`, env.server.URL, filepath.Join(base, "logs"), env.journalPath)
	env.configPath = filepath.Join(env.pluginDir, "galleryorganizer.toml")
	if err := os.WriteFile(env.configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	env.server.Handle("PluginConfiguration", func(testsupport.GraphQLRequest) any {
		return map[string]any{"configuration": map[string]any{
			"plugins": map[string]any{"GalleryOrganizer": map[string]any{"video_hwaccel": "QSV"}},
		}}
	})
	env.server.Handle("FindGalleries", func(testsupport.GraphQLRequest) any {
		return map[string]any{"findGalleries": map[string]any{
			"count": 1,
			"galleries": []map[string]any{
				{"id": "1", "title": nil, "folder": map[string]any{"path": "/lib/Set A"}, "files": []any{}},
			},
		}}
	})
	env.server.Handle("GalleryUpdate", func(req testsupport.GraphQLRequest) any {
		input, _ := req.Variables["input"].(map[string]any)
		return map[string]any{"galleryUpdate": map[string]any{"id": input["id"]}}
	})
	return env
}

func (e *cliTestEnv) pluginPayload(t *testing.T, mode string) string {
	t.Helper()
	u, err := url.Parse(e.server.URL)
	if err != nil {
		t.Fatalf("parse server url: %v", err)
	}
	host, portText, err := net.SplitHostPort(u.Host)
	if err != nil {
		t.Fatalf("split host: %v", err)
	}
	port, _ := strconv.Atoi(portText)
	payload := map[string]any{
		"args": map[string]any{"mode": mode},
		"server_connection": map[string]any{
			"Scheme":        "http",
			"Host":          host,
			"Port":          port,
			"SessionCookie": map[string]any{"Name": "session", "Value": "cookie-1"},
			"Dir":           e.baseDir,
			"PluginDir":     e.pluginDir,
		},
	}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return string(data)
}

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func decodeOutput(t *testing.T, stdout string) pluginio.Output {
	t.Helper()
	var out pluginio.Output
	if err := json.Unmarshal([]byte(strings.TrimSpace(stdout)), &out); err != nil {
		t.Fatalf("decode plugin output %q: %v", stdout, err)
	}
	return out
}

func TestPluginModeRunsSelectedPass(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, stderr, err := runCLI(t, env.pluginPayload(t, "galleries_title"))
	if err != nil {
		t.Fatalf("plugin run: %v\nstderr: %s", err, stderr)
	}
	out := decodeOutput(t, stdout)
	if out.Error != "" || !strings.Contains(out.Output, "updated=1") {
		t.Fatalf("unexpected output %+v", out)
	}
	if got := env.server.Count("GalleryUpdate"); got != 1 {
		t.Fatalf("expected one update, got %d", got)
	}
	for _, req := range env.server.Requests() {
		if len(req.Cookies) != 1 || req.Cookies[0].Value != "cookie-1" {
			t.Fatalf("request %s missing session cookie", req.Operation)
		}
	}
	for _, want := range []string{"\x01i\x02", "Starting Fill galleries title...", "video_hwaccel=QSV", "\x01p\x02"} {
		if !strings.Contains(stderr, want) {
			t.Fatalf("stderr missing %q:\n%s", want, stderr)
		}
	}

	store, err := journal.Open(env.journalPath)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	defer store.Close()
	runs, err := store.RecentRuns(context.Background(), 5)
	if err != nil || len(runs) != 1 {
		t.Fatalf("runs=%+v err=%v", runs, err)
	}
	if runs[0].Source != "plugin" || runs[0].Counts.Updated != 1 || !runs[0].Finished() {
		t.Fatalf("unexpected journal run %+v", runs[0])
	}
}

func TestPluginModeUnknownModeIsNoop(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, stderr, err := runCLI(t, env.pluginPayload(t, "sort_jvid_galleries"))
	if err != nil {
		t.Fatalf("plugin run: %v", err)
	}
	out := decodeOutput(t, stdout)
	if !strings.Contains(out.Output, "no action") {
		t.Fatalf("unexpected output %+v", out)
	}
	if reqs := env.server.Requests(); len(reqs) != 0 {
		t.Fatalf("unknown mode issued %d requests", len(reqs))
	}
	if !strings.Contains(stderr, "\x01w\x02") {
		t.Fatalf("expected a warning line, got %q", stderr)
	}
}

func TestPluginModeReportsBadInput(t *testing.T) {
	setupCLITestEnv(t)

	stdout, _, err := runCLI(t, "")
	if !errors.Is(err, errReported) {
		t.Fatalf("expected reported error, got %v", err)
	}
	if out := decodeOutput(t, stdout); out.Error == "" {
		t.Fatalf("expected error document, got %q", stdout)
	}
}

func TestRunAndHistoryCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, _, err := runCLI(t, "", "--config", env.configPath, "run", "galleries_title", "--quiet")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stdout, "galleries_title") {
		t.Fatalf("expected summary table, got %q", stdout)
	}

	stdout, _, err = runCLI(t, "", "--config", env.configPath, "history", "--limit", "5")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(stdout, "galleries_title") || !strings.Contains(stdout, "cli") {
		t.Fatalf("unexpected history output %q", stdout)
	}
}

func TestModesCommandListsEveryMode(t *testing.T) {
	stdout, _, err := runCLI(t, "", "modes")
	if err != nil {
		t.Fatalf("modes: %v", err)
	}
	for _, mode := range []string{"galleries_title", "galleries_date", "galleries_performers", "galleries_tags", "add_jvid_metadata", "add_xiuren_metadata"} {
		if !strings.Contains(stdout, mode) {
			t.Fatalf("modes output missing %s:\n%s", mode, stdout)
		}
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	setupCLITestEnv(t)
	target := filepath.Join(t.TempDir(), "galleryorganizer.toml")

	if _, _, err := runCLI(t, "", "config", "init", "--path", target); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, _, err := runCLI(t, "", "config", "init", "--path", target); err == nil {
		t.Fatal("expected second init to fail without --overwrite")
	}
	stdout, _, err := runCLI(t, "", "--config", target, "config", "validate")
	if err != nil {
		t.Fatalf("validate sample: %v", err)
	}
	for _, want := range []string{"Configuration valid", "excluded_categories", "杂图, 写真", "uncensored_tag", "check_on_start"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("validate output missing %q:\n%s", want, stdout)
		}
	}
}

func TestConfigInitWritesIntoPluginDir(t *testing.T) {
	env := setupCLITestEnv(t)
	pluginDir := filepath.Join(env.baseDir, "plugins", "Fresh")

	stdout, _, err := runCLI(t, "", "config", "init", "--plugin-dir", pluginDir)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	target := filepath.Join(pluginDir, "galleryorganizer.toml")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected %s: %v", target, err)
	}
	if !strings.Contains(stdout, target) {
		t.Fatalf("expected output to name %s, got %q", target, stdout)
	}
	if _, _, err := runCLI(t, "", "config", "init", "--plugin-dir", pluginDir, "--path", target); err == nil {
		t.Fatal("expected --path and --plugin-dir to be rejected together")
	}
}

func TestCheckEnvReportsToolsAndServer(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("shell stubs require linux")
	}
	env := setupCLITestEnv(t)
	binDir := filepath.Join(env.baseDir, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin: %v", err)
	}
	for _, name := range []string{"ffmpeg", "exiftool", "zip"} {
		if err := os.WriteFile(filepath.Join(binDir, name), []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
			t.Fatalf("write %s stub: %v", name, err)
		}
	}
	t.Setenv("PATH", binDir)
	env.server.Handle("Version", func(testsupport.GraphQLRequest) any {
		return map[string]any{"version": map[string]any{"version": "v0.27.2"}}
	})

	stdout, _, err := runCLI(t, "", "--config", env.configPath, "check-env")
	if err != nil {
		t.Fatalf("check-env: %v\n%s", err, stdout)
	}
	for _, want := range []string{"ExifTool", "Journal directory", "Reachable (v0.27.2)", "QSV"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("check-env output missing %q:\n%s", want, stdout)
		}
	}

	if err := os.Remove(filepath.Join(binDir, "zip")); err != nil {
		t.Fatalf("remove zip stub: %v", err)
	}
	if _, _, err := runCLI(t, "", "--config", env.configPath, "check-env"); err == nil {
		t.Fatal("expected check-env to fail without zip")
	}
}
