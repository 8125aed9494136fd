package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mmcdole/showlist/internal/config"
	"github.com/mmcdole/showlist/internal/log"
	"github.com/mmcdole/showlist/internal/store"
	"github.com/mmcdole/showlist/internal/syncserver"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var (
		showVersion bool
		addr        string
		dbPath      string
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	flag.StringVar(&dbPath, "db", "", "backup database path (overrides server.db_path)")
	flag.Parse()

	if showVersion {
		fmt.Printf("showlist-syncd %s\n", Version)
		return
	}

	if err := run(addr, dbPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(addr, dbPath string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if dbPath != "" {
		cfg.Server.DBPath = dbPath
	}

	// The server logs to stderr
	logger, err := log.SetupLogger(&config.LoggingConfig{Level: cfg.Logging.Level})
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Server.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open backup store: %w", err)
	}
	defer st.Close()

	if len(cfg.Server.Tokens) == 0 {
		logger.Warn("no server.tokens configured, accepting any bearer token")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting showlist-syncd", "version", Version, "db", cfg.Server.DBPath)
	return syncserver.NewServer(st, cfg.Server.Tokens, logger).Run(ctx, cfg.Server.Addr)
}
