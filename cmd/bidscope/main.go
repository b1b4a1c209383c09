// File path: cmd/bidscope/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/bidscope/bidscope/internal/analysis"
	"github.com/bidscope/bidscope/internal/api"
	"github.com/bidscope/bidscope/internal/common"
	"github.com/bidscope/bidscope/internal/llm"
	"github.com/bidscope/bidscope/internal/sqlite"
)

func main() {
	logger := common.Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err != nil {
		logger.Warn("bidscope: .env file not loaded", "error", err)
	} else {
		logger.Info("bidscope: environment loaded from .env")
	}

	addr := flag.String("addr", ":8080", "listen address")
	dbPath := flag.String("db", defaultDatabasePath(), "path to the SQLite database")
	minModules := flag.Int("min-modules", 0, "minimum module count before accepting a generated breakdown (0 uses defaults)")
	minTasks := flag.Int("min-tasks", 0, "minimum task count before accepting a generated breakdown (0 uses defaults)")
	flag.Parse()

	logger.Info("bidscope: startup initiated", "addr", *addr, "db", *dbPath)

	storeCfg, err := sqlite.LoadConfig()
	if err != nil {
		logger.Error("bidscope: sqlite config load failed", "error", err)
		fmt.Println("sqlite config error:", err)
		os.Exit(1)
	}
	if trimmed := strings.TrimSpace(*dbPath); trimmed != "" && storeCfg.Path == "" {
		storeCfg.Path = trimmed
	}

	store, err := sqlite.OpenWithConfig(storeCfg)
	if err != nil {
		logger.Error("bidscope: store initialization failed", "error", err)
		fmt.Println("store error:", err)
		os.Exit(1)
	}
	defer store.Close()

	caps := llm.DetectCapabilities()
	chain := llm.NewChain(ctx, caps)
	logger.Info("bidscope: provider chain ready", "providers", chain.Names())

	breakdownCfg := analysis.DefaultBreakdownConfig()
	if *minModules > 0 {
		breakdownCfg.MinModules = *minModules
	}
	if *minTasks > 0 {
		breakdownCfg.MinTasks = *minTasks
	}

	service := analysis.NewService(store, chain, breakdownCfg)

	server, err := api.NewServer(store, service)
	if err != nil {
		logger.Error("bidscope: server construction failed", "error", err)
		fmt.Println("server error:", err)
		os.Exit(1)
	}

	logger.Info("bidscope: server listening", "addr", *addr, "health", "/healthz")
	fmt.Printf("Serving on %s\n", *addr)
	reachable := *addr
	if strings.HasPrefix(reachable, ":") {
		reachable = "localhost" + reachable
	}
	logger.Info("bidscope: verify reachability", "suggestion", fmt.Sprintf("curl http://%s/healthz", reachable))
	if err := http.ListenAndServe(*addr, server.Router()); err != nil {
		logger.Error("bidscope: server stopped", "error", err)
		fmt.Println("server stopped:", err)
	}
}

func defaultDatabasePath() string {
	return filepath.Join("data", "bidscope.db")
}
