// Package catalogimporter loads YAML lore catalogs into the pool store.
package catalogimporter

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/loreforge/internal/platform/config"
	"github.com/louisbranch/loreforge/internal/services/forge/storage/sqlite"
)

// Config holds configuration for the catalog importer.
type Config struct {
	Path   string
	DBPath string `env:"DB_PATH"`
	DryRun bool
}

// DefaultDBPath is the pool database used when none is configured.
var DefaultDBPath = filepath.Join("data", "lore.db")

// ParseConfig parses LOREFORGE_ environment defaults and CLI flags into a
// Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = DefaultDBPath
	}

	fs.StringVar(&cfg.Path, "file", "", "catalog YAML file or directory of YAML files")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "pool database path")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "validate without writing to the database")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if strings.TrimSpace(cfg.Path) == "" {
		return Config{}, errors.New("file is required")
	}
	return cfg, nil
}

// Run executes the importer using the provided Config.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = io.Discard
	}

	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return errors.New("file is required")
	}
	files, err := listCatalogFiles(path)
	if err != nil {
		return fmt.Errorf("list catalog files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no catalog files found in %s", path)
	}

	docs := make([]Document, 0, len(files))
	for _, file := range files {
		doc, err := readDocument(file)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}
	catalog, err := Build(docs)
	if err != nil {
		return fmt.Errorf("validate catalog: %w", err)
	}
	summary := catalog.Summary()

	if cfg.DryRun {
		_, err = fmt.Fprintf(out, "validated %d univers, %d candidate(s), %d fragment(s) from %d file(s)\n",
			summary.Univers, summary.Candidates, summary.Fragments, len(files))
		return err
	}

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open pool store: %w", err)
	}
	defer store.Close()

	if err := Write(ctx, store, catalog); err != nil {
		return fmt.Errorf("import catalog: %w", err)
	}
	_, err = fmt.Fprintf(out, "imported %d univers, %d candidate(s), %d fragment(s) into %s\n",
		summary.Univers, summary.Candidates, summary.Fragments, cfg.DBPath)
	return err
}
