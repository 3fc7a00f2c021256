package game

import (
	"testing"

	"github.com/peterkuimelis/duelcore/internal/catalog"
)

func TestSpellSpeed(t *testing.T) {
	c := catalog.Default()
	tests := []struct {
		id   string
		want int
	}{
		{"greed_protocol", 1},
		{"ice_breaker", 2},
		{"reflector_array", 2},
		{"root_override", 3},
		{"chrome_sentinel", 1},
		{"decoy_drone", 2},
		{"null_signal", 2},
	}
	for _, tt := range tests {
		if got := SpellSpeed(c.MustLookup(tt.id)); got != tt.want {
			t.Errorf("SpellSpeed(%s) = %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestCanChain(t *testing.T) {
	c := catalog.Default()
	normal := c.MustLookup("greed_protocol")
	quick := c.MustLookup("ice_breaker")
	trap := c.MustLookup("reflector_array")
	counter := c.MustLookup("root_override")

	tests := []struct {
		name      string
		top, next *catalog.Card
		want      bool
	}{
		{"empty chain", nil, normal, true},
		{"quick on normal", normal, quick, true},
		{"normal on normal", normal, normal, true},
		{"normal on trap", trap, normal, false},
		{"trap on quick", quick, trap, true},
		{"trap on counter", counter, trap, false},
		{"counter on counter", counter, counter, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanChain(tt.top, tt.next); got != tt.want {
				t.Errorf("CanChain = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChainPushAndLIFO(t *testing.T) {
	s := newTestDuel(t, nil, nil)
	d := s.clone()
	c := d.Catalog()

	var order []string
	record := func(name string) *Effect {
		return &Effect{Resolve: func(_ *State, link *ChainLink) { order = append(order, name) }}
	}

	var ch Chain
	first := d.newInstance(c.MustLookup("ice_breaker"), 0)
	second := d.newInstance(c.MustLookup("root_override"), 1)
	third := d.newInstance(c.MustLookup("greed_protocol"), 0)

	if !d.addToChain(&ch, ChainLink{Card: first, Effect: record("first"), Controller: 0, Zone: -1}) {
		t.Fatal("first link rejected")
	}
	if !d.addToChain(&ch, ChainLink{Card: second, Effect: record("second"), Controller: 1, Zone: -1}) {
		t.Fatal("counter trap should chain on a quick-play spell")
	}
	if d.addToChain(&ch, ChainLink{Card: third, Effect: record("third"), Controller: 0, Zone: -1}) {
		t.Fatal("normal spell should not chain on a counter trap")
	}
	if ch.Len() != 2 || ch.Top().Index != 2 {
		t.Fatalf("chain has %d links, top index %d", ch.Len(), ch.Top().Index)
	}

	d.resolveChain(&ch)
	if len(order) != 2 || order[0] != "second" || order[1] != "first" {
		t.Errorf("resolution order = %v, want [second first]", order)
	}
	if ch.Len() != 0 {
		t.Error("chain should be empty after resolution")
	}
	if !graveyardHas(d, 0, "ice_breaker") || !graveyardHas(d, 1, "root_override") {
		t.Error("resolved cards should be in their owners' graveyards")
	}
}
