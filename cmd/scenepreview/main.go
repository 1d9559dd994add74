// Package main runs the terminal scene preview.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	scenepreviewcmd "github.com/atelierfolio/atelier/internal/cmd/scenepreview"
)

func main() {
	log.SetPrefix("[PREVIEW] ")
	cfg, err := scenepreviewcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := scenepreviewcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("scene preview: %v", err)
	}
}
