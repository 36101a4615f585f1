package catalogimporter

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/louisbranch/loreforge/internal/core/lore"
	"github.com/louisbranch/loreforge/internal/services/forge/storage"
	"github.com/louisbranch/loreforge/internal/services/forge/storage/sqlite"
)

func TestParseConfigRequiresFile(t *testing.T) {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	if _, err := ParseConfig(fs, nil); err == nil {
		t.Fatal("expected file error")
	}
}

func TestParseConfigReadsEnvAndFlags(t *testing.T) {
	t.Setenv("LOREFORGE_DB_PATH", "/tmp/env.db")

	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-file", "catalog.yaml", "-dry-run"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "/tmp/env.db" {
		t.Fatalf("db path = %q", cfg.DBPath)
	}
	if cfg.Path != "catalog.yaml" || !cfg.DryRun {
		t.Fatalf("config = %+v", cfg)
	}
}

func TestListCatalogFiles(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"b.yml", "a.yaml", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte(""), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(root, "nested.yaml"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	files, err := listCatalogFiles(root)
	if err != nil {
		t.Fatalf("listCatalogFiles returned error: %v", err)
	}
	want := []string{filepath.Join(root, "a.yaml"), filepath.Join(root, "b.yml")}
	if strings.Join(files, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, files)
	}
}

func TestRunDryRunDoesNotWrite(t *testing.T) {
	root := t.TempDir()
	catalogPath := writeCatalog(t, root)
	dbPath := filepath.Join(root, "data", "lore.db")

	var out bytes.Buffer
	err := Run(context.Background(), Config{Path: catalogPath, DBPath: dbPath, DryRun: true}, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "validated 1 univers, 4 candidate(s), 2 fragment(s) from 1 file(s)") {
		t.Fatalf("unexpected output %q", out.String())
	}
	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Fatalf("expected no database, stat err = %v", err)
	}
}

func TestRunImportsIntoStore(t *testing.T) {
	root := t.TempDir()
	catalogPath := writeCatalog(t, root)
	dbPath := filepath.Join(root, "data", "lore.db")

	var out bytes.Buffer
	if err := Run(context.Background(), Config{Path: root, DBPath: dbPath}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "imported 1 univers") {
		t.Fatalf("unexpected output %q", out.String())
	}
	// A second run upserts instead of failing on existing ids.
	if err := Run(context.Background(), Config{Path: catalogPath, DBPath: dbPath}, nil); err != nil {
		t.Fatalf("rerun: %v", err)
	}

	store, err := sqlite.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	names, err := store.ListCandidates(context.Background(), storage.PoolQuery{
		Kind:      lore.KindCharacter,
		UniversID: "alpha",
		CultureID: "elfe",
		Genres:    []string{"F"},
	})
	if err != nil {
		t.Fatalf("list candidates: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("candidates = %d, want 2", len(names))
	}
	fragments, err := store.ListFragments(context.Background(), storage.PoolQuery{Kind: lore.KindCharacter, UniversID: "alpha"})
	if err != nil {
		t.Fatalf("list fragments: %v", err)
	}
	if len(fragments) != 2 {
		t.Fatalf("fragments = %d, want 2", len(fragments))
	}
}

func TestRunReportsDecodeErrors(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "broken.yaml")
	if err := os.WriteFile(path, []byte("pools: {"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	err := Run(context.Background(), Config{Path: path, DryRun: true}, nil)
	if err == nil || !strings.Contains(err.Error(), "decode broken.yaml") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func writeCatalog(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "catalog.yaml")
	if err := os.WriteFile(path, []byte(sampleCatalog), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}
