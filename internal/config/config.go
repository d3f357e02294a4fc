package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/capkit/internal/logging"
)

// Scenario names understood by capdemo.
const (
	ScenarioDelegation = "delegation"
	ScenarioObservable = "observable"
	ScenarioLazy       = "lazy"
	ScenarioVariance   = "variance"
)

var KnownScenarios = []string{ScenarioDelegation, ScenarioObservable, ScenarioLazy, ScenarioVariance}

// Backing kinds for the counting scenario.
const (
	BackingHashSet   = "hashset"
	BackingArrayList = "arraylist"
)

type DemoConfig struct {
	Name        string         `toml:"name"`
	LogLevel    string         `toml:"log_level"`
	MetricsAddr string         `toml:"metrics_addr"`
	Scenarios   []string       `toml:"scenarios"`
	Counting    CountingConfig `toml:"counting"`
	Person      PersonConfig   `toml:"person"`
}

type CountingConfig struct {
	Backing  string `toml:"backing"`
	Elements []int  `toml:"elements"`
}

type PersonConfig struct {
	Name    string         `toml:"name"`
	Age     int            `toml:"age"`
	Salary  int            `toml:"salary"`
	Updates []PersonUpdate `toml:"updates"`
}

type PersonUpdate struct {
	Property string `toml:"property"`
	Value    int    `toml:"value"`
}

func DefaultDemoConfig() DemoConfig {
	return DemoConfig{
		Name:      "capdemo",
		LogLevel:  "info",
		Scenarios: slices.Clone(KnownScenarios),
		Counting: CountingConfig{
			Backing:  BackingHashSet,
			Elements: []int{1, 1, 2},
		},
		Person: PersonConfig{
			Name:   "Dmitry",
			Age:    34,
			Salary: 2000,
			Updates: []PersonUpdate{
				{Property: "age", Value: 35},
				{Property: "salary", Value: 2100},
			},
		},
	}
}

// LoadDemoConfig overlays the keys defined in path on DefaultDemoConfig and
// validates the result.
func LoadDemoConfig(path string) (DemoConfig, error) {
	cfg := DefaultDemoConfig()

	var raw DemoConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return DemoConfig{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return DemoConfig{}, fmt.Errorf("config parse failed (%s): unknown key %s", path, undecoded[0])
	}

	if meta.IsDefined("name") {
		cfg.Name = strings.TrimSpace(raw.Name)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("metrics_addr") {
		cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)
	}
	if meta.IsDefined("scenarios") {
		cfg.Scenarios = normalizeNames(raw.Scenarios)
	}
	if meta.IsDefined("counting", "backing") {
		cfg.Counting.Backing = strings.ToLower(strings.TrimSpace(raw.Counting.Backing))
	}
	if meta.IsDefined("counting", "elements") {
		cfg.Counting.Elements = raw.Counting.Elements
	}
	if meta.IsDefined("person", "name") {
		cfg.Person.Name = strings.TrimSpace(raw.Person.Name)
	}
	if meta.IsDefined("person", "age") {
		cfg.Person.Age = raw.Person.Age
	}
	if meta.IsDefined("person", "salary") {
		cfg.Person.Salary = raw.Person.Salary
	}
	if meta.IsDefined("person", "updates") {
		cfg.Person.Updates = raw.Person.Updates
	}

	if err := ValidateDemoConfig(cfg); err != nil {
		return DemoConfig{}, err
	}
	return cfg, nil
}

func ValidateDemoConfig(cfg DemoConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("demo config missing name")
	}
	if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("demo config invalid log_level %q", cfg.LogLevel)
	}
	if len(cfg.Scenarios) == 0 {
		return fmt.Errorf("demo config lists no scenarios")
	}
	for i, name := range cfg.Scenarios {
		if !slices.Contains(KnownScenarios, name) {
			return fmt.Errorf("scenario[%d] unknown: %q", i, name)
		}
	}
	switch cfg.Counting.Backing {
	case BackingHashSet, BackingArrayList:
	default:
		return fmt.Errorf("counting backing must be %s or %s, got %q", BackingHashSet, BackingArrayList, cfg.Counting.Backing)
	}
	if strings.TrimSpace(cfg.Person.Name) == "" {
		return fmt.Errorf("person name is required")
	}
	for i, u := range cfg.Person.Updates {
		if err := ValidatePersonUpdate(u); err != nil {
			return fmt.Errorf("person.updates[%d] invalid: %w", i, err)
		}
	}
	return nil
}

func ValidatePersonUpdate(u PersonUpdate) error {
	switch u.Property {
	case "age", "salary":
	default:
		return fmt.Errorf("property must be age or salary, got %q", u.Property)
	}
	if u.Value < 0 {
		return fmt.Errorf("%s must not be negative", u.Property)
	}
	return nil
}

func normalizeNames(in []string) []string {
	out := make([]string, 0, len(in))
	for _, name := range in {
		v := strings.ToLower(strings.TrimSpace(name))
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
