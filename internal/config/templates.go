package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "demo", "capdemo":
		return demoTemplate, nil
	case "minimal":
		return minimalTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const demoTemplate = `name = "capdemo"
log_level = "info"
# metrics_addr = ":9464"
scenarios = ["delegation", "observable", "lazy", "variance"]

[counting]
backing = "hashset"
elements = [1, 1, 2]

[person]
name = "Dmitry"
age = 34
salary = 2000

[[person.updates]]
property = "age"
value = 35

[[person.updates]]
property = "salary"
value = 2100
`

const minimalTemplate = `name = "capdemo"
scenarios = ["delegation"]
`
