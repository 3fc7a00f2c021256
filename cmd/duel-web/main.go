package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/peterkuimelis/duelcore/internal/config"
	"github.com/peterkuimelis/duelcore/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	flag.StringVar(&cfg.WebPort, "port", cfg.WebPort, "HTTP port to listen on")
	flag.StringVar(&cfg.Decks, "decks", cfg.Decks, "path to decks YAML file (default: built-in decks)")
	flag.StringVar(&cfg.Catalog, "catalog", cfg.Catalog, "path to card catalog YAML file (default: built-in cards)")
	flag.Parse()

	cat, decks, err := cfg.LoadCards()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	opts := cfg.SessionOptions()
	opts.Slog = logger
	srv := web.NewServer(cat, decks, opts, logger)

	if err := srv.ListenAndServe(":" + cfg.WebPort); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
