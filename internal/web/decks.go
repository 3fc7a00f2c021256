package web

import (
	"github.com/peterkuimelis/duelcore/internal/catalog"
)

// DeckInfo is the JSON representation of a deck for the /api/decks endpoint.
type DeckInfo struct {
	Number int      `json:"number"`
	Name   string   `json:"name"`
	Size   int      `json:"size"`
	Cards  []string `json:"cards"`
}

// deckInfos lists decks with their unique card names in file order.
func deckInfos(df *catalog.DeckFile, cat *catalog.Catalog) []DeckInfo {
	decks := make([]DeckInfo, 0, len(df.Decks))
	for i, d := range df.Decks {
		di := DeckInfo{
			Number: i + 1,
			Name:   d.Name,
			Size:   len(d.Expand()),
		}
		seen := make(map[string]bool)
		for _, c := range d.Cards {
			name := c.ID
			if card, ok := cat.Lookup(c.ID); ok {
				name = card.Name
			}
			if !seen[name] {
				di.Cards = append(di.Cards, name)
				seen[name] = true
			}
		}
		decks = append(decks, di)
	}
	return decks
}
