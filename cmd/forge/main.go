package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	forgecmd "github.com/louisbranch/loreforge/internal/cmd/forge"
	platformcmd "github.com/louisbranch/loreforge/internal/platform/cmd"
	"github.com/louisbranch/loreforge/internal/platform/config"
)

// main runs a forge subcommand: generate, import or serve.
func main() {
	log.SetPrefix(platformcmd.LogPrefix(platformcmd.ServiceForge))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := forgecmd.Main(ctx, os.Args[1:], os.Stdout); err != nil {
		stop()
		config.Exitf("Error: %v", err)
	}
}
