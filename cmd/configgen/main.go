package main

import (
	"flag"
	"log"

	"github.com/danmuck/capkit/internal/config"
)

const defaultPath = "cmd/capdemo/config.toml"

func main() {
	kind := flag.String("kind", "demo", "template kind: demo|minimal")
	output := flag.String("output", defaultPath, "output path for config template")
	validate := flag.Bool("validate", false, "validate an existing config file")
	input := flag.String("input", defaultPath, "config path for validation")
	force := flag.Bool("force", false, "overwrite existing config file")
	flag.Parse()

	if *validate {
		if _, err := config.LoadDemoConfig(*input); err != nil {
			log.Fatal(err)
		}
		log.Printf("Validated capdemo config at %s", *input)
		return
	}

	if err := config.WriteTemplate(*output, *kind, *force); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %s config template to %s", *kind, *output)
}
