// Package main exposes portfolio content to MCP clients. Stdout belongs to
// the protocol in stdio mode, so logging stays on stderr.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	mcpcmd "github.com/atelierfolio/atelier/internal/cmd/mcp"
)

func main() {
	log.SetOutput(os.Stderr)
	log.SetPrefix("[MCP] ")

	cfg, err := mcpcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := mcpcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("mcp %s: %v", cfg.Transport, err)
	}
}
