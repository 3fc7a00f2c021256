package game

// AttackDecl is a declared attack waiting to be resolved.
type AttackDecl struct {
	Attacker     PlayerID `json:"attacker"`
	AttackerZone int      `json:"attackerZone"`
	AttackerCard int      `json:"attackerCard"`
	// DefenderZone is -1 for a direct attack.
	DefenderZone int `json:"defenderZone"`
	DefenderCard int `json:"defenderCard"`

	ShieldDecided bool `json:"shieldDecided"`
	ShieldUsed    bool `json:"shieldUsed"`
}

func (a AttackDecl) Direct() bool {
	return a.DefenderZone < 0
}

func (a AttackDecl) Defender() PlayerID {
	return a.Attacker.Opponent()
}

// ShieldPrompt asks a defending player whether to discard a damage shield.
type ShieldPrompt struct {
	Player PlayerID `json:"player"`
	Card   int      `json:"card"`
	Damage int      `json:"damage"`
}

// Trigger is an optional effect waiting for its controller's confirmation.
type Trigger struct {
	Player       PlayerID `json:"player"`
	Filter       string   `json:"filter"`
	SourceCardID string   `json:"sourceCardId"`
	SourceName   string   `json:"sourceName"`
}

// DeckSearch is an open deck search with its legal choices.
type DeckSearch struct {
	Player     PlayerID `json:"player"`
	Filter     string   `json:"filter"`
	SourceName string   `json:"sourceName"`
	Candidates []int    `json:"candidates"`
}

// Pending holds every suspended decision. Several may be layered at once;
// Awaiting picks the one that currently drives input.
type Pending struct {
	Attack  *AttackDecl
	Shield  *ShieldPrompt
	Effects []Trigger
	Search  *DeckSearch
}

func (p Pending) clone() Pending {
	c := Pending{}
	if p.Attack != nil {
		a := *p.Attack
		c.Attack = &a
	}
	if p.Shield != nil {
		sh := *p.Shield
		c.Shield = &sh
	}
	c.Effects = append([]Trigger(nil), p.Effects...)
	if p.Search != nil {
		se := *p.Search
		se.Candidates = append([]int(nil), p.Search.Candidates...)
		c.Search = &se
	}
	return c
}

type AwaitKind int

const (
	AwaitNone AwaitKind = iota
	AwaitAttackResponse
	AwaitShieldChoice
	AwaitEffectConfirm
	AwaitDeckSearch
)

func (k AwaitKind) String() string {
	switch k {
	case AwaitAttackResponse:
		return "attack_response"
	case AwaitShieldChoice:
		return "shield_choice"
	case AwaitEffectConfirm:
		return "effect_confirm"
	case AwaitDeckSearch:
		return "deck_search"
	default:
		return "none"
	}
}

func (k AwaitKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Await is the decision the duel is blocked on, tagged by Kind. Only the
// fields for that kind are set.
type Await struct {
	Kind    AwaitKind     `json:"kind"`
	Player  PlayerID      `json:"player"`
	Attack  *AttackDecl   `json:"attack,omitempty"`
	Shield  *ShieldPrompt `json:"shield,omitempty"`
	Trigger *Trigger      `json:"trigger,omitempty"`
	Search  *DeckSearch   `json:"search,omitempty"`
}

// Awaiting returns the decision that drives input, by precedence:
// deck search, effect confirmation, shield choice, attack response.
func (s *State) Awaiting() Await {
	p := s.Pending
	switch {
	case p.Search != nil:
		return Await{Kind: AwaitDeckSearch, Player: p.Search.Player, Search: p.Search}
	case len(p.Effects) > 0:
		t := p.Effects[0]
		return Await{Kind: AwaitEffectConfirm, Player: t.Player, Trigger: &t}
	case p.Shield != nil:
		return Await{Kind: AwaitShieldChoice, Player: p.Shield.Player, Shield: p.Shield, Attack: p.Attack}
	case p.Attack != nil:
		return Await{Kind: AwaitAttackResponse, Player: p.Attack.Defender(), Attack: p.Attack}
	}
	return Await{Kind: AwaitNone, Player: s.Current}
}

// Blocked reports whether any decision is outstanding.
func (s *State) Blocked() bool {
	return s.Awaiting().Kind != AwaitNone
}
