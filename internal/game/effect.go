package game

import "github.com/peterkuimelis/duelcore/internal/catalog"

// Hook says when a card's effect fires.
type Hook int

const (
	HookNone Hook = iota
	HookNormalSummon
	HookSentToGraveyard
	HookActivation
)

func (h Hook) String() string {
	switch h {
	case HookNormalSummon:
		return "on-normal-summon"
	case HookSentToGraveyard:
		return "on-sent-to-graveyard"
	case HookActivation:
		return "on-activation"
	default:
		return "none"
	}
}

// TargetKind is the kind of choice an activation asks for.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetGraveyard
	TargetSpellTrap
	TargetOpponentMonster
)

func (t TargetKind) String() string {
	switch t {
	case TargetGraveyard:
		return "graveyard"
	case TargetSpellTrap:
		return "spellTrap"
	case TargetOpponentMonster:
		return "opponentMonster"
	default:
		return "none"
	}
}

func (t TargetKind) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// HandTrap identifies monster effects used from the hand during battle.
type HandTrap int

const (
	HandTrapNone HandTrap = iota
	HandTrapNegateAttack
	HandTrapZeroDamage
)

// Effect describes one card's scripted behavior. Flags drive the engine's
// legality checks; the closures do the card-specific work.
type Effect struct {
	Hook            Hook
	Target          TargetKind
	NeedsDiscard    bool
	NeedsZone       bool
	BattlePhaseOnly bool
	// Speed overrides the card type's spell speed when non-zero.
	Speed int
	// Search names the deck filter of a searching trigger.
	Search   string
	HandTrap HandTrap
	// BouncesAttacker: when attacked face-up, survives battle and returns
	// the attacker to its owner's hand.
	BouncesAttacker bool
	// BindsEquipped destroys the equipped monster when this equip leaves.
	BindsEquipped bool

	CanActivate   func(s *State, p PlayerID, self *CardInstance) bool
	Cost          func(s *State, p PlayerID, self *CardInstance)
	DefaultTarget func(s *State, p PlayerID, self *CardInstance) (Target, bool)
	ValidTarget   func(s *State, p PlayerID, self *CardInstance, t Target) bool
	Resolve       func(s *State, link *ChainLink)
}

// SearchFilter selects deck cards for a searching trigger.
type SearchFilter struct {
	ID          string
	Description string
	Match       func(c *catalog.Card) bool
}

var searchFilters = map[string]*SearchFilter{
	"atk_1500": {
		ID:          "atk_1500",
		Description: "monster with 1500 or less ATK",
		Match:       func(c *catalog.Card) bool { return c.IsMonster() && c.ATK <= 1500 },
	},
	"def_1500": {
		ID:          "def_1500",
		Description: "monster with 1500 or less DEF",
		Match:       func(c *catalog.Card) bool { return c.IsMonster() && c.DEF <= 1500 },
	},
	"drone": {
		ID:          "drone",
		Description: "Drone card",
		Match:       func(c *catalog.Card) bool { return c.HasTag("drone") },
	},
}

// FilterFor returns a search filter by id.
func FilterFor(id string) (*SearchFilter, bool) {
	f, ok := searchFilters[id]
	return f, ok
}

// SearchCandidates lists the instance ids in p's deck that match filter.
func SearchCandidates(s *State, p PlayerID, filter string) []int {
	f, ok := searchFilters[filter]
	if !ok || !p.valid() {
		return nil
	}
	var ids []int
	for _, c := range s.Players[p].Deck {
		if f.Match(c.Card) {
			ids = append(ids, c.ID)
		}
	}
	return ids
}
