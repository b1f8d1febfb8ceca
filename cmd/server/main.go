package main

import (
	"flag"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	"github.com/riyadrajan/updatedversion/internal/config"
	"github.com/riyadrajan/updatedversion/internal/log"
	"github.com/riyadrajan/updatedversion/internal/server"
	"github.com/riyadrajan/updatedversion/internal/session"
)

// #region main
func main() {
	configPath := flag.String("config", "", "path to YAML config")
	flag.Parse()

	log.Init("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		stdlog.Fatalf("failed to load config: %v", err)
	}

	store, err := session.NewStore(cfg.DBPath)
	if err != nil {
		stdlog.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	srv := server.NewServer(cfg.ServerAddr, store)

	// Graceful shutdown on SIGINT/SIGTERM.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info("shutting down")
		if err := srv.Shutdown(); err != nil {
			log.Error("shutdown error", "err", err)
		}
	}()

	if err := srv.Start(); err != nil {
		stdlog.Fatalf("server error: %v", err)
	}
}

// #endregion main
