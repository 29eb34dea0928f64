// Package main starts the social platform admin console.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	admincmd "github.com/louisbranch/socialadmin/internal/cmd/admin"
	"github.com/louisbranch/socialadmin/internal/platform/config"
)

func main() {
	log.SetPrefix("[ADMIN] ")
	if err := config.LoadEnvFile(os.Getenv("SOCIAL_ADMIN_ENV_FILE")); err != nil {
		log.Fatalf("load env file: %v", err)
	}
	cfg, err := admincmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := admincmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
