package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed decks.yaml
var defaultDecks []byte

// ErrDeckNotFound is returned by DeckByNumber and DeckByName.
var ErrDeckNotFound = errors.New("deck not found")

// DeckFile represents the top-level YAML structure.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry represents a single deck in the YAML file.
type DeckEntry struct {
	Name  string      `yaml:"name" json:"name"`
	Cards []CardEntry `yaml:"cards" json:"cards"`
}

// CardEntry represents a card and its count in a deck.
type CardEntry struct {
	ID    string `yaml:"id" json:"id"`
	Count int    `yaml:"count" json:"count"`
}

// Expand returns the deck's card ids with counts applied, in file order.
func (d DeckEntry) Expand() []string {
	var ids []string
	for _, entry := range d.Cards {
		for i := 0; i < entry.Count; i++ {
			ids = append(ids, entry.ID)
		}
	}
	return ids
}

// ParseDecks parses deck YAML and checks every id against the catalog.
func ParseDecks(data []byte, c *Catalog) (*DeckFile, error) {
	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}
	for _, deck := range df.Decks {
		for _, entry := range deck.Cards {
			if _, ok := c.Lookup(entry.ID); !ok {
				return nil, fmt.Errorf("deck %q: %w: %s", deck.Name, ErrUnknownCard, entry.ID)
			}
		}
	}
	return &df, nil
}

// ParseDeckFile reads a YAML deck file from disk.
func ParseDeckFile(path string, c *Catalog) (*DeckFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDecks(data, c)
}

// DefaultDecks returns the embedded deck lists.
func DefaultDecks() *DeckFile {
	df, err := ParseDecks(defaultDecks, Default())
	if err != nil {
		panic(fmt.Sprintf("builtin decks: %v", err))
	}
	return df
}

// LoadDecks reads path, or the embedded decks when path is empty.
func LoadDecks(path string, c *Catalog) (*DeckFile, error) {
	if path == "" {
		return ParseDecks(defaultDecks, c)
	}
	return ParseDeckFile(path, c)
}

// DeckByNumber returns the Nth deck (1-indexed).
func (df *DeckFile) DeckByNumber(n int) (DeckEntry, error) {
	if n < 1 || n > len(df.Decks) {
		return DeckEntry{}, fmt.Errorf("%w: %d (have %d decks)", ErrDeckNotFound, n, len(df.Decks))
	}
	return df.Decks[n-1], nil
}

// DeckByName returns the deck with the given name.
func (df *DeckFile) DeckByName(name string) (DeckEntry, error) {
	for _, d := range df.Decks {
		if d.Name == name {
			return d, nil
		}
	}
	return DeckEntry{}, fmt.Errorf("%w: %q", ErrDeckNotFound, name)
}
