package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/capkit/internal/logging"
	"github.com/danmuck/capkit/internal/testutil/testlog"
	"github.com/rs/zerolog"
)

func TestRunWithDefaults(t *testing.T) {
	testlog.Start(t)
	var out bytes.Buffer
	if err := run([]string{"-log-level", "error"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{
		"== delegation",
		"3 objects were added, 2 remain",
		"Property age changed from 34 to 35",
		"== variance",
	} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunWithConfigFile(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "capdemo.toml")
	body := "name = \"cfgtest\"\nlog_level = \"error\"\nscenarios = [\"delegation\"]\n[counting]\nelements = [5, 5, 5, 6]\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	var out bytes.Buffer
	if err := run([]string{"-config", path}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "4 objects were added, 2 remain") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
	if strings.Contains(out.String(), "== observable") {
		t.Fatalf("scenario filter ignored:\n%s", out.String())
	}
}

func TestLoadOptionsOverrides(t *testing.T) {
	testlog.Start(t)
	cfg, err := loadOptions("", "debug", "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.MetricsAddr != defaultServeAddr {
		t.Fatalf("overrides: %+v", cfg)
	}
	cfg, err = loadOptions("", "", "127.0.0.1:0")
	if err != nil || cfg.MetricsAddr != "127.0.0.1:0" {
		t.Fatalf("addr override: %+v err=%v", cfg, err)
	}
	if _, err := loadOptions("", "shout", ""); err == nil {
		t.Fatalf("expected invalid level error")
	}
	if _, err := loadOptions(filepath.Join(t.TempDir(), "nope.toml"), "", ""); err == nil {
		t.Fatalf("expected missing file error")
	}
}

func TestRunRejectsUnknownFlag(t *testing.T) {
	testlog.Start(t)
	if err := run([]string{"-bogus"}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected flag error")
	}
}

func TestResolveLevelPrecedence(t *testing.T) {
	testlog.Start(t)
	t.Setenv(logging.EnvLogLevel, "")
	if got := resolveLevel("", "warn"); got != zerolog.WarnLevel {
		t.Fatalf("config level: got %v", got)
	}

	t.Setenv(logging.EnvLogLevel, "error")
	if got := resolveLevel("", "warn"); got != zerolog.ErrorLevel {
		t.Fatalf("env should beat config: got %v", got)
	}
	if got := resolveLevel("debug", "warn"); got != zerolog.DebugLevel {
		t.Fatalf("flag should beat env: got %v", got)
	}
}

func TestRunAppliesLevel(t *testing.T) {
	testlog.Start(t)
	t.Setenv(logging.EnvLogLevel, "")
	defer logging.SetLevel(zerolog.DebugLevel)
	if err := run([]string{"-log-level", "warn"}, &bytes.Buffer{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Fatalf("global level: got %v want warn", zerolog.GlobalLevel())
	}
}
