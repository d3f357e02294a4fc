package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/danmuck/capkit/internal/testutil/testlog"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capdemo.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDemoTemplateMatchesDefaults(t *testing.T) {
	testlog.Start(t)
	path := writeFile(t, demoTemplate)
	cfg, err := LoadDemoConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultDemoConfig()) {
		t.Fatalf("template differs from defaults:\n got %+v\nwant %+v", cfg, DefaultDemoConfig())
	}
}

func TestLoadOverlaysOnlyDefinedKeys(t *testing.T) {
	testlog.Start(t)
	path := writeFile(t, `
scenarios = [" Variance ", "", "lazy"]

[counting]
backing = "ArrayList"
`)
	cfg, err := LoadDemoConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(cfg.Scenarios, []string{"variance", "lazy"}) {
		t.Fatalf("scenarios: %v", cfg.Scenarios)
	}
	if cfg.Counting.Backing != BackingArrayList {
		t.Fatalf("backing: %q", cfg.Counting.Backing)
	}
	def := DefaultDemoConfig()
	if !reflect.DeepEqual(cfg.Counting.Elements, def.Counting.Elements) || cfg.Person.Age != def.Person.Age {
		t.Fatalf("undefined keys should keep defaults: %+v", cfg)
	}
}

func TestLoadRejectsInvalidConfigs(t *testing.T) {
	testlog.Start(t)
	cases := map[string]string{
		"unknown scenario": `scenarios = ["teleport"]`,
		"empty scenarios":  `scenarios = []`,
		"bad backing":      "[counting]\nbacking = \"tree\"",
		"bad log level":    `log_level = "loud"`,
		"blank name":       `name = "  "`,
		"bad update":       "[[person.updates]]\nproperty = \"height\"\nvalue = 1",
		"negative update":  "[[person.updates]]\nproperty = \"age\"\nvalue = -1",
		"unknown key":      `colour = "blue"`,
		"syntax":           `name = `,
	}
	for name, body := range cases {
		if _, err := LoadDemoConfig(writeFile(t, body)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	testlog.Start(t)
	_, err := LoadDemoConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil || !strings.Contains(err.Error(), "config load failed") {
		t.Fatalf("expected load failure, got %v", err)
	}
}

func TestWriteTemplate(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "out.toml")
	if err := WriteTemplate(path, "minimal", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := WriteTemplate(path, "minimal", false); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
	if err := WriteTemplate(path, "demo", true); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if _, err := LoadDemoConfig(path); err != nil {
		t.Fatalf("written template does not load: %v", err)
	}
	if _, err := Template("ghost"); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}
