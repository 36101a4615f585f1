package catalogimporter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/louisbranch/loreforge/internal/core/lore"
	"gopkg.in/yaml.v3"
)

// Document is one YAML catalog file.
type Document struct {
	Univers    []UniversEntry   `yaml:"univers"`
	Pools      []PoolEntry      `yaml:"pools"`
	Candidates []CandidateEntry `yaml:"candidates"`
	Fragments  []FragmentEntry  `yaml:"fragments"`
}

// UniversEntry declares a univers.
type UniversEntry struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// PoolEntry is the shorthand for many candidates sharing one scope.
type PoolEntry struct {
	Kind      lore.Kind `yaml:"kind"`
	Univers   string    `yaml:"univers"`
	Culture   string    `yaml:"culture"`
	Categorie string    `yaml:"categorie"`
	Genre     string    `yaml:"genre"`
	Label     string    `yaml:"label"`
	Names     []string  `yaml:"names"`
}

// CandidateEntry is a fully specified candidate. The id is derived from its
// scope and text when omitted.
type CandidateEntry struct {
	Kind           lore.Kind `yaml:"kind"`
	Univers        string    `yaml:"univers"`
	lore.Candidate `yaml:",inline"`
}

// FragmentEntry is a fragment. The id is derived from its text when omitted.
type FragmentEntry struct {
	Univers       string `yaml:"univers"`
	lore.Fragment `yaml:",inline"`
}

// listCatalogFiles returns path itself, or the .yaml and .yml files directly
// under it, sorted by name.
func listCatalogFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".yaml", ".yml":
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func readDocument(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	doc, err := decodeDocument(data)
	if err != nil {
		return Document{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return doc, nil
}

// decodeDocument rejects unknown fields and multi-document streams.
func decodeDocument(data []byte) (Document, error) {
	var doc Document
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return doc, nil
		}
		return Document{}, err
	}
	var extra any
	if err := dec.Decode(&extra); err == nil {
		return Document{}, fmt.Errorf("multiple YAML documents are not supported")
	} else if !errors.Is(err, io.EOF) {
		return Document{}, err
	}
	return doc, nil
}
