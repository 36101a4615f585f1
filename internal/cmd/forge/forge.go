// Package forge parses the forge command line and dispatches its
// subcommands: generate, import and serve.
package forge

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	platformcmd "github.com/louisbranch/loreforge/internal/platform/cmd"
	mcpservice "github.com/louisbranch/loreforge/internal/services/forge/mcp/service"
	"github.com/louisbranch/loreforge/internal/services/forge/service"
	"github.com/louisbranch/loreforge/internal/services/forge/storage/sqlite"
	catalogimporter "github.com/louisbranch/loreforge/internal/tools/importer/lore"
)

const usage = `usage: forge <command> [flags]

commands:
  generate   generate items and print them as JSON
  import     load a YAML catalog into the pool database
  serve      run the MCP server (stdio or http)
`

// Config holds settings shared by every subcommand.
type Config struct {
	DBPath    string `env:"DB_PATH"`
	Transport string `env:"MCP_TRANSPORT" envDefault:"stdio"`
	HTTPAddr  string `env:"MCP_HTTP_ADDR" envDefault:"localhost:8081"`
}

// GenerateConfig holds the generate subcommand settings.
type GenerateConfig struct {
	Config
	Request service.GenerateRequest
	Pretty  bool
}

// ParseGenerateConfig parses environment and flags for generate.
func ParseGenerateConfig(fs *flag.FlagSet, args []string) (GenerateConfig, error) {
	var cfg GenerateConfig
	if err := platformcmd.ParseConfig(&cfg.Config); err != nil {
		return GenerateConfig{}, err
	}
	cfg.DBPath = dbPathOrDefault(cfg.DBPath)

	var seed string
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "pool database path")
	fs.StringVar(&cfg.Request.Kind, "kind", "character", "character, location, title or concept")
	fs.IntVar(&cfg.Request.Count, "count", service.DefaultCount, "number of items (1-200)")
	fs.StringVar(&cfg.Request.CultureID, "culture", "", "culture scope")
	fs.StringVar(&cfg.Request.CategorieID, "categorie", "", "categorie scope")
	fs.StringVar(&cfg.Request.UniversID, "univers", "", "univers scope")
	fs.StringVar(&cfg.Request.Genre, "genre", "", "genre such as M, F or NB")
	fs.StringVar(&seed, "seed", "", "seed to replay a previous result")
	fs.StringVar(&cfg.Request.Keywords, "keywords", "", "keywords ranking matching names first")
	fs.BoolVar(&cfg.Pretty, "pretty", false, "indent JSON output")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return GenerateConfig{}, err
	}

	// An explicit empty seed is a valid seed; only an absent flag defaults.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			cfg.Request.Seed = &seed
		}
	})
	return cfg, nil
}

// ParseServeConfig parses environment and flags for serve.
func ParseServeConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	cfg.DBPath = dbPathOrDefault(cfg.DBPath)

	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "pool database path")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Main dispatches args[0] to its subcommand.
func Main(ctx context.Context, args []string, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if len(args) == 0 {
		_, _ = io.WriteString(out, usage)
		return errors.New("command is required")
	}

	name, rest := args[0], args[1:]
	switch name {
	case "generate":
		cfg, err := ParseGenerateConfig(flag.NewFlagSet("generate", flag.ContinueOnError), rest)
		if err != nil {
			return err
		}
		return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceForge, func(ctx context.Context) error {
			return Generate(ctx, cfg, out)
		})
	case "import":
		cfg, err := catalogimporter.ParseConfig(flag.NewFlagSet("import", flag.ContinueOnError), rest)
		if err != nil {
			return err
		}
		return catalogimporter.Run(ctx, cfg, out)
	case "serve":
		cfg, err := ParseServeConfig(flag.NewFlagSet("serve", flag.ContinueOnError), rest)
		if err != nil {
			return err
		}
		return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceForgeMCP, func(ctx context.Context) error {
			return Serve(ctx, cfg)
		})
	case "help", "-h", "-help", "--help":
		_, err := io.WriteString(out, usage)
		return err
	default:
		_, _ = io.WriteString(out, usage)
		return fmt.Errorf("unknown command %q", name)
	}
}

// Generate runs one request against the pool database and writes the
// response as JSON.
func Generate(ctx context.Context, cfg GenerateConfig, out io.Writer) error {
	store, err := openStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	resp, err := service.NewService(store).Generate(ctx, cfg.Request)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	if cfg.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(resp); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	return nil
}

// Serve runs the MCP server until ctx ends.
func Serve(ctx context.Context, cfg Config) error {
	store, err := openStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	return mcpservice.Run(ctx, mcpservice.Config{
		Transport: cfg.Transport,
		HTTPAddr:  cfg.HTTPAddr,
	}, service.NewService(store))
}

func openStore(path string) (*sqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pool store: %w", err)
	}
	return store, nil
}

func dbPathOrDefault(path string) string {
	if strings.TrimSpace(path) == "" {
		return catalogimporter.DefaultDBPath
	}
	return path
}
