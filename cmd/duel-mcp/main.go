package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/duelcore/internal/config"
	duelmcp "github.com/peterkuimelis/duelcore/internal/mcp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	flag.StringVar(&cfg.Decks, "decks", cfg.Decks, "path to decks YAML file (default: built-in decks)")
	flag.StringVar(&cfg.Catalog, "catalog", cfg.Catalog, "path to card catalog YAML file (default: built-in cards)")
	flag.StringVar(&cfg.Port, "port", cfg.Port, "TCP port for a human opponent")
	flag.Parse()

	cat, decks, err := cfg.LoadCards()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the MCP protocol; operational logs go to stderr.
	opts := cfg.SessionOptions()
	opts.Slog = slog.New(slog.NewTextHandler(os.Stderr, nil))

	m := duelmcp.NewManager(decks, cat, opts, cfg.Port)
	defer m.Close()

	s := server.NewMCPServer("duelcore", "1.0.0")
	m.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
