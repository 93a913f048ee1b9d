// Package main generates the markdown reference pages for relcalc from the
// command tree, the configuration defaults and the expression builtins.
//
// Usage:
//
//	go run ./scripts/gendocs -gen=cli -outdir=docs/cli
//	go run ./scripts/gendocs -gen=config -outdir=docs
//	go run ./scripts/gendocs -gen=expressions -outdir=docs
//	go run ./scripts/gendocs -gen=all
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

var (
	genFlag    = flag.String("gen", "all", "what to generate: cli, config, expressions, all")
	outDirFlag = flag.String("outdir", "", "output directory (defaults based on gen type)")
)

// generators maps each -gen value to its generator and default directory
// below the project root.
var generators = map[string]struct {
	dir string
	run func(outDir string) error
}{
	"cli":         {dir: filepath.Join("docs", "cli"), run: generateCLIDocs},
	"config":      {dir: "docs", run: generateConfigDocs},
	"expressions": {dir: "docs", run: generateExpressionDocs},
}

func main() {
	flag.Parse()

	projectRoot, err := findProjectRoot()
	if err != nil {
		log.Fatalf("failed to find project root: %v", err)
	}
	log.Printf("Project root: %s", projectRoot)

	if err := generate(*genFlag, projectRoot, *outDirFlag); err != nil {
		log.Fatal(err)
	}
	log.Println("Done!")
}

// generate runs one generator, or all of them for "all". outDir overrides
// the default directory of a single generator.
func generate(gen, projectRoot, outDir string) error {
	if gen == "all" {
		for _, name := range []string{"cli", "config", "expressions"} {
			if err := generate(name, projectRoot, ""); err != nil {
				return err
			}
		}
		return nil
	}

	g, ok := generators[gen]
	if !ok {
		return fmt.Errorf("unknown -gen value: %s (use: cli, config, expressions, all)", gen)
	}
	if outDir == "" {
		outDir = filepath.Join(projectRoot, g.dir)
	}
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := g.run(outDir); err != nil {
		return fmt.Errorf("failed to generate %s docs: %w", gen, err)
	}
	return nil
}

// findProjectRoot walks up from current directory to find go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
