package catalog

import (
	"fmt"
	"strings"
)

// --- Enums ---

type Kind int

const (
	KindMonster Kind = iota
	KindSpell
	KindTrap
)

func (k Kind) String() string {
	switch k {
	case KindMonster:
		return "Monster"
	case KindSpell:
		return "Spell"
	case KindTrap:
		return "Trap"
	default:
		return "Unknown"
	}
}

func (k *Kind) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "monster":
		*k = KindMonster
	case "spell":
		*k = KindSpell
	case "trap":
		*k = KindTrap
	default:
		return fmt.Errorf("unknown card kind %q", b)
	}
	return nil
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(k.String())), nil
}

type SpellKind int

const (
	SpellNormal SpellKind = iota
	SpellQuickPlay
	SpellContinuous
	SpellEquip
	SpellField
)

func (s SpellKind) String() string {
	switch s {
	case SpellNormal:
		return "normal"
	case SpellQuickPlay:
		return "quick-play"
	case SpellContinuous:
		return "continuous"
	case SpellEquip:
		return "equip"
	case SpellField:
		return "field"
	default:
		return "unknown"
	}
}

func (s *SpellKind) UnmarshalText(b []byte) error {
	for k := SpellNormal; k <= SpellField; k++ {
		if k.String() == strings.ToLower(string(b)) {
			*s = k
			return nil
		}
	}
	return fmt.Errorf("unknown spell kind %q", b)
}

func (s SpellKind) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type TrapKind int

const (
	TrapNormal TrapKind = iota
	TrapContinuous
	TrapCounter
)

func (t TrapKind) String() string {
	switch t {
	case TrapNormal:
		return "normal"
	case TrapContinuous:
		return "continuous"
	case TrapCounter:
		return "counter"
	default:
		return "unknown"
	}
}

func (t *TrapKind) UnmarshalText(b []byte) error {
	for k := TrapNormal; k <= TrapCounter; k++ {
		if k.String() == strings.ToLower(string(b)) {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("unknown trap kind %q", b)
}

func (t TrapKind) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Card is the immutable definition of a card.
type Card struct {
	ID    string    `yaml:"id" json:"id"`
	Name  string    `yaml:"name" json:"name"`
	Kind  Kind      `yaml:"kind" json:"kind"`
	Spell SpellKind `yaml:"spell,omitempty" json:"spell,omitempty"`
	Trap  TrapKind  `yaml:"trap,omitempty" json:"trap,omitempty"`
	Level int       `yaml:"level,omitempty" json:"level,omitempty"`
	ATK   int       `yaml:"atk,omitempty" json:"atk,omitempty"`
	DEF   int       `yaml:"def,omitempty" json:"def,omitempty"`
	Text  string    `yaml:"text,omitempty" json:"text,omitempty"`
	Tags  []string  `yaml:"tags,omitempty" json:"tags,omitempty"`
}

func (c *Card) IsMonster() bool { return c.Kind == KindMonster }
func (c *Card) IsSpell() bool   { return c.Kind == KindSpell }
func (c *Card) IsTrap() bool    { return c.Kind == KindTrap }

// HasTag reports whether the card belongs to the named family.
func (c *Card) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (c *Card) String() string {
	switch c.Kind {
	case KindMonster:
		return fmt.Sprintf("%s [Lv%d %d/%d]", c.Name, c.Level, c.ATK, c.DEF)
	case KindSpell:
		return fmt.Sprintf("%s [%s Spell]", c.Name, c.Spell)
	default:
		return fmt.Sprintf("%s [%s Trap]", c.Name, c.Trap)
	}
}
