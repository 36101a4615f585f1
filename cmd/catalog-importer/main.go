package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	platformcmd "github.com/louisbranch/loreforge/internal/platform/cmd"
	"github.com/louisbranch/loreforge/internal/platform/config"
	catalogimporter "github.com/louisbranch/loreforge/internal/tools/importer/lore"
)

// main loads a YAML lore catalog into the pool database.
func main() {
	log.SetPrefix(platformcmd.LogPrefix(platformcmd.ServiceImporter))

	cfg, err := catalogimporter.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := catalogimporter.Run(ctx, cfg, os.Stdout); err != nil {
		stop()
		config.Exitf("catalog import: %v", err)
	}
}
