package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed cards.yaml
var defaultCards []byte

// ErrUnknownCard is returned when a deck names a card id the catalog lacks.
var ErrUnknownCard = errors.New("unknown card")

// File represents the top-level catalog YAML structure.
type File struct {
	Cards []*Card `yaml:"cards"`
}

// Catalog is an id-keyed, read-only table of card definitions.
type Catalog struct {
	byID  map[string]*Card
	order []string
}

// Parse builds a catalog from YAML bytes.
func Parse(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}
	c := &Catalog{byID: make(map[string]*Card, len(f.Cards))}
	for _, card := range f.Cards {
		if card.ID == "" {
			return nil, fmt.Errorf("card %q has no id", card.Name)
		}
		if _, dup := c.byID[card.ID]; dup {
			return nil, fmt.Errorf("duplicate card id %q", card.ID)
		}
		if card.Name == "" {
			card.Name = card.ID
		}
		c.byID[card.ID] = card
		c.order = append(c.order, card.ID)
	}
	return c, nil
}

// Load reads a catalog file from disk.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

var builtin *Catalog

func init() {
	c, err := Parse(defaultCards)
	if err != nil {
		panic(fmt.Sprintf("builtin catalog: %v", err))
	}
	builtin = c
}

// Default returns the embedded card catalog.
func Default() *Catalog {
	return builtin
}

// Lookup finds a card by id.
func (c *Catalog) Lookup(id string) (*Card, bool) {
	card, ok := c.byID[id]
	return card, ok
}

// MustLookup panics if the id is unknown. Intended for tests and fixtures.
func (c *Catalog) MustLookup(id string) *Card {
	card, ok := c.byID[id]
	if !ok {
		panic(fmt.Sprintf("%v: %s", ErrUnknownCard, id))
	}
	return card
}

// Resolve maps a list of ids to card definitions.
func (c *Catalog) Resolve(ids []string) ([]*Card, error) {
	cards := make([]*Card, 0, len(ids))
	for _, id := range ids {
		card, ok := c.byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCard, id)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// All returns every card in file order.
func (c *Catalog) All() []*Card {
	out := make([]*Card, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// IDs returns the sorted card ids.
func (c *Catalog) IDs() []string {
	ids := append([]string(nil), c.order...)
	sort.Strings(ids)
	return ids
}
