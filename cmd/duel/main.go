package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/peterkuimelis/duelcore/internal/catalog"
	"github.com/peterkuimelis/duelcore/internal/config"
	"github.com/peterkuimelis/duelcore/internal/game"
	"github.com/peterkuimelis/duelcore/internal/log"
	dnet "github.com/peterkuimelis/duelcore/internal/net"
	"github.com/peterkuimelis/duelcore/internal/session"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := os.Args[1]
	switch cmd {
	case "host":
		err = runHost(ctx, cfg, os.Args[2:])
	case "join":
		err = runJoin(ctx, cfg, os.Args[2:])
	case "solo":
		err = runSolo(ctx, cfg, os.Args[2:])
	case "simulate":
		err = runSimulate(ctx, cfg, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fatal(err)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  duel host     [--deck N] [--port P] [--decks FILE] [--seed S]")
	fmt.Println("  duel join     [--deck N] [--addr ADDR]")
	fmt.Println("  duel solo     [--deck N] [--ai-deck N] [--decks FILE] [--seed S]")
	fmt.Println("  duel simulate [--deck N] [--ai-deck N] [--decks FILE] [--seed S]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  host      Start a game server and play as Player 1")
	fmt.Println("  join      Connect to a game server and play as Player 2")
	fmt.Println("  solo      Play against the built-in AI in this terminal")
	fmt.Println("  simulate  Watch the AI play both sides and print the log")
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// commonFlags registers the flags every local duel shares.
func commonFlags(fs *flag.FlagSet, cfg *config.Config) *int {
	deck := fs.Int("deck", 1, "deck number to use (from the deck list)")
	fs.StringVar(&cfg.Decks, "decks", cfg.Decks, "path to decks YAML file (default: built-in decks)")
	fs.StringVar(&cfg.Catalog, "catalog", cfg.Catalog, "path to card catalog YAML file (default: built-in cards)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "shuffle seed (0 picks one)")
	return deck
}

func newServer(cfg config.Config, deck int) (*dnet.Server, error) {
	cat, decks, err := cfg.LoadCards()
	if err != nil {
		return nil, err
	}
	return &dnet.Server{
		Decks:    decks,
		Catalog:  cat,
		Port:     cfg.Port,
		HostDeck: deck,
		Seed:     cfg.DuelSeed(),
		Options:  cfg.SessionOptions(),
	}, nil
}

func runHost(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("host", flag.ExitOnError)
	deck := commonFlags(fs, &cfg)
	fs.StringVar(&cfg.Port, "port", cfg.Port, "TCP port to listen on")
	fs.Parse(args)

	srv, err := newServer(cfg, *deck)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}

func runJoin(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	deck := fs.Int("deck", 2, "deck number to use (from the host's deck list)")
	addr := fs.String("addr", "localhost:"+cfg.Port, "server address to connect to")
	fs.Parse(args)

	return dnet.Connect(ctx, *addr, *deck)
}

func runSolo(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("solo", flag.ExitOnError)
	deck := commonFlags(fs, &cfg)
	aiDeck := fs.Int("ai-deck", 2, "deck number for the AI")
	fs.Parse(args)

	srv, err := newServer(cfg, *deck)
	if err != nil {
		return err
	}
	return srv.PlayLocal(ctx, *aiDeck)
}

func runSimulate(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	deck := commonFlags(fs, &cfg)
	aiDeck := fs.Int("ai-deck", 2, "deck number for Player 2")
	timeout := fs.Duration("timeout", time.Minute, "give up after this long")
	fs.Parse(args)

	cat, decks, err := cfg.LoadCards()
	if err != nil {
		return err
	}
	gc := game.Config{Catalog: cat, AI: [2]bool{true, true}, Seed: cfg.DuelSeed()}
	for i, n := range []int{*deck, *aiDeck} {
		d, err := decks.DeckByNumber(n)
		if err != nil {
			return err
		}
		gc.Decks[i] = d.Expand()
	}
	fmt.Printf("Seed %d: %s vs %s\n", gc.Seed, deckName(decks, *deck), deckName(decks, *aiDeck))

	sess, err := session.New(gc, session.Options{Logger: log.NewTextLogger(os.Stdout)})
	if err != nil {
		return err
	}
	defer sess.Close()
	sess.Start()

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()
	final, err := sess.Wait(ctx)
	if err != nil {
		return fmt.Errorf("simulation stopped on turn %d: %w", final.Turn, err)
	}
	fmt.Println(dnet.Result(final))
	return nil
}

func deckName(decks *catalog.DeckFile, n int) string {
	d, err := decks.DeckByNumber(n)
	if err != nil {
		return "?"
	}
	return d.Name
}
