package game

import (
	"fmt"
	"strings"

	"github.com/peterkuimelis/duelcore/internal/catalog"
)

// --- Enums ---

type PlayerID int

// NoPlayer marks an absent winner.
const NoPlayer PlayerID = -1

func (p PlayerID) Opponent() PlayerID {
	return 1 - p
}

func (p PlayerID) String() string {
	if p == NoPlayer {
		return "none"
	}
	return fmt.Sprintf("P%d", p+1)
}

func (p PlayerID) valid() bool {
	return p == 0 || p == 1
}

type Phase int

const (
	PhaseDraw Phase = iota
	PhaseStandby
	PhaseMain1
	PhaseBattle
	PhaseMain2
	PhaseEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseDraw:
		return "Draw Phase"
	case PhaseStandby:
		return "Standby Phase"
	case PhaseMain1:
		return "Main Phase 1"
	case PhaseBattle:
		return "Battle Phase"
	case PhaseMain2:
		return "Main Phase 2"
	case PhaseEnd:
		return "End Phase"
	default:
		return "None"
	}
}

var phaseNames = map[Phase]string{
	PhaseDraw:    "draw",
	PhaseStandby: "standby",
	PhaseMain1:   "main1",
	PhaseBattle:  "battle",
	PhaseMain2:   "main2",
	PhaseEnd:     "end",
}

func (p Phase) MarshalText() ([]byte, error) {
	name, ok := phaseNames[p]
	if !ok {
		return nil, fmt.Errorf("invalid phase %d", int(p))
	}
	return []byte(name), nil
}

func (p *Phase) UnmarshalText(b []byte) error {
	v, err := ParsePhase(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ParsePhase accepts the short wire names ("main1", "battle", ...).
func ParsePhase(name string) (Phase, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for p, n := range phaseNames {
		if n == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown phase %q", name)
}

func (p Phase) isMain() bool {
	return p == PhaseMain1 || p == PhaseMain2
}

type Position int

const (
	PositionAttack Position = iota
	PositionDefense
)

func (p Position) String() string {
	if p == PositionAttack {
		return "ATK"
	}
	return "DEF"
}

// Toggle returns the other battle position.
func (p Position) Toggle() Position {
	if p == PositionAttack {
		return PositionDefense
	}
	return PositionAttack
}

func (p Position) MarshalText() ([]byte, error) {
	if p == PositionAttack {
		return []byte("attack"), nil
	}
	return []byte("defense"), nil
}

func (p *Position) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "attack", "atk":
		*p = PositionAttack
	case "defense", "def":
		*p = PositionDefense
	default:
		return fmt.Errorf("unknown position %q", b)
	}
	return nil
}

// --- Card instance ---

// CardInstance is one physical copy of a card in a duel. Instance ids are
// unique per duel.
type CardInstance struct {
	ID        int           `json:"id"`
	Card      *catalog.Card `json:"card"`
	Owner     PlayerID      `json:"owner"`
	Position  Position      `json:"position"`
	FaceDown  bool          `json:"faceDown"`
	SetOnTurn int           `json:"setOnTurn"`
	// EquippedTo is the controller's monster zone this card is attached to, or -1.
	EquippedTo int `json:"equippedTo"`
}

func (ci *CardInstance) clone() *CardInstance {
	c := *ci
	return &c
}

func (ci *CardInstance) String() string {
	if ci == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s#%d", ci.Card.Name, ci.ID)
}

// DisplayString shows position and stats for field cards.
func (ci *CardInstance) DisplayString() string {
	face := "face-up"
	if ci.FaceDown {
		face = "face-down"
	}
	if ci.Card.IsMonster() {
		return fmt.Sprintf("%s [%s %s, ATK %d / DEF %d]", ci.Card.Name, face, ci.Position, ci.Card.ATK, ci.Card.DEF)
	}
	return fmt.Sprintf("%s [%s]", ci.Card.Name, face)
}

// resetForZone clears field-only state when a card leaves the field.
func (ci *CardInstance) resetForZone() {
	ci.Position = PositionAttack
	ci.FaceDown = false
	ci.SetOnTurn = 0
	ci.EquippedTo = -1
}

// ZoneKind identifies where a card instance lives.
type ZoneKind int

const (
	ZoneDeck ZoneKind = iota
	ZoneHand
	ZoneMonster
	ZoneSpellTrap
	ZoneGraveyard
	ZoneExtraDeck
)

func (z ZoneKind) String() string {
	switch z {
	case ZoneDeck:
		return "Deck"
	case ZoneHand:
		return "Hand"
	case ZoneMonster:
		return "Monster Zone"
	case ZoneSpellTrap:
		return "Spell/Trap Zone"
	case ZoneGraveyard:
		return "Graveyard"
	case ZoneExtraDeck:
		return "Extra Deck"
	default:
		return "Unknown"
	}
}

// Location pins a card to a player's zone and index.
type Location struct {
	Player PlayerID
	Zone   ZoneKind
	Index  int
}

// Target selects a card for a targeting effect. Index is a zone index for
// field targets and a list index for graveyard targets.
type Target struct {
	Player PlayerID `json:"player"`
	Index  int      `json:"index"`
}
