package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/easypass/internal/config"
	"github.com/verte-zerg/easypass/internal/model"
)

func setupEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func outputLines(out string) []string {
	trimmed := strings.TrimRight(out, "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}

func TestGenerateCount(t *testing.T) {
	setupEnv(t)
	out, err := runCLI(t, "generate", "--count", "3", "--length", "10", "--no-history")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	lines := outputLines(out)
	if len(lines) != 3 {
		t.Fatalf("expected 3 passwords, got %q", out)
	}
	for _, line := range lines {
		if utf8.RuneCountInString(line) != 10 {
			t.Fatalf("expected 10 characters, got %q", line)
		}
	}

	out, err = runCLI(t, "history", "list")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	if !strings.Contains(out, "No passwords in history.") {
		t.Fatalf("expected empty history, got %q", out)
	}
}

func TestGenerateRecordsHistory(t *testing.T) {
	setupEnv(t)
	out, err := runCLI(t, "generate", "--length", "12", "--upper=false", "--symbols=false")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	value := strings.TrimSpace(out)
	for _, r := range value {
		if unicode.IsUpper(r) || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			t.Fatalf("unexpected rune %q in %q", r, value)
		}
	}

	out, err = runCLI(t, "history", "list", "--search", value)
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	if !strings.Contains(out, value) {
		t.Fatalf("expected %q in history:\n%s", value, out)
	}

	out, err = runCLI(t, "history", "stats")
	if err != nil {
		t.Fatalf("history stats: %v", err)
	}
	if !strings.Contains(out, "Entries: 1") {
		t.Fatalf("unexpected stats output:\n%s", out)
	}

	if _, err := runCLI(t, "history", "clear", "--yes"); err != nil {
		t.Fatalf("history clear: %v", err)
	}
	out, err = runCLI(t, "history", "stats")
	if err != nil {
		t.Fatalf("history stats: %v", err)
	}
	if !strings.Contains(out, "Entries: 0") {
		t.Fatalf("expected cleared history:\n%s", out)
	}
}

func TestGenerateRejectsInvalidSettings(t *testing.T) {
	setupEnv(t)
	if _, err := runCLI(t, "generate", "--length", "40"); err == nil {
		t.Fatalf("expected length error")
	}
	if _, err := runCLI(t, "generate", "--upper=false", "--lower=false", "--digits=false", "--symbols=false"); err == nil {
		t.Fatalf("expected category error")
	}
	if _, err := runCLI(t, "generate", "--count", "0"); err == nil {
		t.Fatalf("expected count error")
	}
}

func TestSettingsSetAndReset(t *testing.T) {
	setupEnv(t)
	out, err := runCLI(t, "settings", "set", "--length", "20", "--theme", "light")
	if err != nil {
		t.Fatalf("settings set: %v", err)
	}
	if !strings.Contains(out, "20") || !strings.Contains(out, "light") {
		t.Fatalf("unexpected settings output:\n%s", out)
	}

	out, err = runCLI(t, "generate", "--no-history")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got := utf8.RuneCountInString(strings.TrimSpace(out)); got != 20 {
		t.Fatalf("expected saved length 20, got %d", got)
	}

	if _, err := runCLI(t, "settings", "set", "--theme", "blue"); err == nil {
		t.Fatalf("expected theme error")
	}

	out, err = runCLI(t, "settings", "reset")
	if err != nil {
		t.Fatalf("settings reset: %v", err)
	}
	if !strings.Contains(out, "16") || !strings.Contains(out, "dark") {
		t.Fatalf("expected defaults after reset:\n%s", out)
	}
}

func TestConfigFileDefaults(t *testing.T) {
	setupEnv(t)
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("[generator]\nlength = 8\ndigits = false\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	out, err := runCLI(t, "generate", "--no-history", "--symbols=false")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	value := strings.TrimSpace(out)
	if utf8.RuneCountInString(value) != 8 {
		t.Fatalf("expected length 8 from config, got %q", value)
	}
	for _, r := range value {
		if unicode.IsDigit(r) {
			t.Fatalf("expected no digits, got %q", value)
		}
	}
}

func writeConfig(t *testing.T, body string) {
	t.Helper()
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestConfigFileRejectsOutOfRangeDefaults(t *testing.T) {
	setupEnv(t)
	writeConfig(t, "[generator]\nlength = 40\n")
	_, err := runCLI(t, "generate", "--no-history")
	if err == nil {
		t.Fatalf("expected config error")
	}
	if !strings.Contains(err.Error(), "invalid config") || strings.Contains(err.Error(), "--length") {
		t.Fatalf("expected error to point at the config file, got %v", err)
	}

	writeConfig(t, "[generator]\nuppercase = false\nlowercase = false\ndigits = false\nsymbols = false\n")
	if _, err := runCLI(t, "settings"); err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Fatalf("expected config error for empty categories, got %v", err)
	}
}

func TestDBPathFromConfigAndFlag(t *testing.T) {
	setupEnv(t)
	dir := t.TempDir()
	fromConfig := filepath.Join(dir, "config.db")
	fromFlag := filepath.Join(dir, "flag.db")
	writeConfig(t, fmt.Sprintf("[history]\ndb-path = %q\n", fromConfig))

	if _, err := runCLI(t, "generate"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := os.Stat(fromConfig); err != nil {
		t.Fatalf("expected database at config path: %v", err)
	}

	if _, err := runCLI(t, "generate", "--db", fromFlag); err != nil {
		t.Fatalf("generate with --db: %v", err)
	}
	if _, err := os.Stat(fromFlag); err != nil {
		t.Fatalf("expected database at flag path: %v", err)
	}
	if _, err := os.Stat(config.DefaultDBPath()); !os.IsNotExist(err) {
		t.Fatalf("expected default database untouched, got %v", err)
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	setupEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	if cfg.Generator.Length != nil || cfg.UI.Theme != nil {
		t.Fatalf("expected all template values commented out")
	}
}

func TestApplySettingsFlags(t *testing.T) {
	var f settingsFlags
	cmd := &cobra.Command{Use: "test"}
	addSettingsFlags(cmd, &f)
	if err := cmd.ParseFlags([]string{"--length=8", "--digits=false"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	base := model.Settings{Length: 30, Uppercase: false, Lowercase: true, Digits: true, Symbols: true}
	got := applySettingsFlags(cmd, &f, base)
	if got.Length != 8 || got.Digits {
		t.Fatalf("expected passed flags applied, got %+v", got)
	}
	if got.Uppercase || !got.Lowercase || !got.Symbols {
		t.Fatalf("expected unpassed flags to keep base values, got %+v", got)
	}
}

func TestValidateSettings(t *testing.T) {
	if err := validateSettings(model.DefaultSettings()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := model.DefaultSettings()
	s.Length = model.MinLength - 1
	if err := validateSettings(s); err == nil {
		t.Fatalf("expected length error")
	}
	if err := validateSettings(model.Settings{Length: 10}); err == nil {
		t.Fatalf("expected category error")
	}
}
