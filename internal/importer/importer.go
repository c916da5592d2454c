// Package importer loads macro packs — YAML files of named dice notations —
// and stores them through a MacroStore.
package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/dicebox/internal/dice"
	"github.com/cory-johannsen/dicebox/internal/storage/postgres"
)

// PackMacro is one named notation inside a pack file.
type PackMacro struct {
	Name     string `yaml:"name"`
	Notation string `yaml:"notation"`
}

// Pack is the on-disk layout of a macro pack file.
type Pack struct {
	Name   string      `yaml:"name"`
	Macros []PackMacro `yaml:"macros"`
}

// MacroStore defines the persistence operations required by the Importer.
type MacroStore interface {
	Upsert(ctx context.Context, name, notation string) (postgres.Macro, error)
}

// Importer orchestrates macro pack import from a directory into a MacroStore.
type Importer struct {
	store  MacroStore
	logger *zap.Logger
}

// New constructs an Importer backed by the given store.
//
// Precondition: store and logger must be non-nil.
// Postcondition: returns a non-nil Importer.
func New(store MacroStore, logger *zap.Logger) *Importer {
	return &Importer{store: store, logger: logger}
}

// LoadPack parses and validates a single pack file. Every macro must have a
// non-empty name and a notation that compiles to at least one term.
//
// Postcondition: returns the parsed pack, or an error naming the offending entry.
func LoadPack(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pack %q: %w", path, err)
	}

	var pack Pack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("parsing pack %q: %w", path, err)
	}

	if pack.Name == "" {
		return nil, fmt.Errorf("pack %q: missing name", path)
	}
	seen := make(map[string]struct{}, len(pack.Macros))
	for i, m := range pack.Macros {
		if m.Name == "" {
			return nil, fmt.Errorf("pack %q: macro %d has no name", path, i)
		}
		if _, dup := seen[m.Name]; dup {
			return nil, fmt.Errorf("pack %q: duplicate macro %q", path, m.Name)
		}
		seen[m.Name] = struct{}{}
		if dice.Compile(m.Notation).Len() == 0 {
			return nil, fmt.Errorf("pack %q: macro %q: unrecognized notation %q", path, m.Name, m.Notation)
		}
	}
	return &pack, nil
}

// Run loads every *.yaml pack in dir, in lexicographic order, and upserts all
// macros. Later packs override earlier ones on name collisions.
//
// Precondition: dir must be a readable directory.
// Postcondition: all macros from all packs are stored, or an error is
// returned and the store is left partially updated.
func (imp *Importer) Run(ctx context.Context, dir string) error {
	overall := time.Now()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading pack dir %q: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext := filepath.Ext(e.Name()); ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	total := 0
	for _, path := range paths {
		t0 := time.Now()
		pack, err := LoadPack(path)
		if err != nil {
			return err
		}

		for _, m := range pack.Macros {
			if _, err := imp.store.Upsert(ctx, m.Name, m.Notation); err != nil {
				return fmt.Errorf("storing macro %q from pack %q: %w", m.Name, pack.Name, err)
			}
		}
		total += len(pack.Macros)

		imp.logger.Info("imported macro pack",
			zap.String("pack", pack.Name),
			zap.String("path", path),
			zap.Int("macros", len(pack.Macros)),
			zap.Duration("elapsed", time.Since(t0).Round(time.Millisecond)),
		)
	}

	imp.logger.Info("macro import complete",
		zap.Int("packs", len(paths)),
		zap.Int("macros", total),
		zap.Duration("elapsed", time.Since(overall).Round(time.Millisecond)),
	)
	return nil
}
