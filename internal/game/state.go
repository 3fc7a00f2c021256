package game

import (
	"fmt"
	"math/rand"

	"github.com/peterkuimelis/duelcore/internal/catalog"
	"github.com/peterkuimelis/duelcore/internal/log"
)

const (
	StartingLifePoints = 8000
	InitialHandSize    = 5
	ZoneCount          = 5
)

// Shuffler supplies randomness for deck shuffles. *rand.Rand satisfies it.
type Shuffler interface {
	Intn(n int) int
}

// Shuffle performs an in-place Fisher–Yates shuffle.
func Shuffle(rng Shuffler, cards []*CardInstance) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Config holds the parameters of a duel.
type Config struct {
	Catalog *catalog.Catalog
	// Decks lists card ids per player before shuffling; index 0 is the top.
	Decks              [2][]string
	StartingLifePoints int
	HandSize           int
	// AI marks players driven by the built-in policy.
	AI        [2]bool
	NoDeckOut bool
	Seed      int64
	Shuffler  Shuffler
}

// Player represents one player's entire state.
type Player struct {
	ID         PlayerID
	LifePoints int
	Deck       []*CardInstance // top of deck is index 0
	Hand       []*CardInstance
	Graveyard  []*CardInstance
	ExtraDeck  []*CardInstance

	Monsters   [ZoneCount]*CardInstance
	SpellTraps [ZoneCount]*CardInstance
}

func (p *Player) clone() *Player {
	c := &Player{ID: p.ID, LifePoints: p.LifePoints}
	c.Deck = cloneCards(p.Deck)
	c.Hand = cloneCards(p.Hand)
	c.Graveyard = cloneCards(p.Graveyard)
	c.ExtraDeck = cloneCards(p.ExtraDeck)
	for i := 0; i < ZoneCount; i++ {
		if p.Monsters[i] != nil {
			c.Monsters[i] = p.Monsters[i].clone()
		}
		if p.SpellTraps[i] != nil {
			c.SpellTraps[i] = p.SpellTraps[i].clone()
		}
	}
	return c
}

func cloneCards(cards []*CardInstance) []*CardInstance {
	if cards == nil {
		return nil
	}
	out := make([]*CardInstance, len(cards))
	for i, c := range cards {
		out[i] = c.clone()
	}
	return out
}

// FreeMonsterZone returns the index of the first empty monster zone, or -1.
func (p *Player) FreeMonsterZone() int {
	for i, z := range p.Monsters {
		if z == nil {
			return i
		}
	}
	return -1
}

// FreeSpellTrapZone returns the index of the first empty spell/trap zone, or -1.
func (p *Player) FreeSpellTrapZone() int {
	for i, z := range p.SpellTraps {
		if z == nil {
			return i
		}
	}
	return -1
}

// MonsterCount returns the number of monsters on the field.
func (p *Player) MonsterCount() int {
	count := 0
	for _, z := range p.Monsters {
		if z != nil {
			count++
		}
	}
	return count
}

// HasAttackPositionMonster reports whether any monster on the field is in
// attack position. Without one, the opponent may attack directly.
func (p *Player) HasAttackPositionMonster() bool {
	for _, z := range p.Monsters {
		if z != nil && z.Position == PositionAttack {
			return true
		}
	}
	return false
}

// OccupiedMonsterZones returns the indexes of occupied monster zones in order.
func (p *Player) OccupiedMonsterZones() []int {
	var zones []int
	for i, z := range p.Monsters {
		if z != nil {
			zones = append(zones, i)
		}
	}
	return zones
}

// HandIndex returns the position of an instance in the hand, or -1.
func (p *Player) HandIndex(id int) int {
	for i, c := range p.Hand {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// DeckIndex returns the position of an instance in the deck, or -1.
func (p *Player) DeckIndex(id int) int {
	for i, c := range p.Deck {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (p *Player) removeFromHand(i int) *CardInstance {
	card := p.Hand[i]
	p.Hand = append(p.Hand[:i:i], p.Hand[i+1:]...)
	return card
}

// Borrow records a monster whose control changed until the end of the turn.
type Borrow struct {
	Card       int      `json:"card"`
	Owner      PlayerID `json:"owner"`
	OwnerZone  int      `json:"ownerZone"`
	Controller PlayerID `json:"controller"`
	Zone       int      `json:"zone"`
}

// TimedEffect is a lingering field effect with a turn countdown.
type TimedEffect struct {
	Card      int      `json:"card"`
	Name      string   `json:"name"`
	Owner     PlayerID `json:"owner"`
	Zone      int      `json:"zone"`
	Affected  PlayerID `json:"affected"`
	TurnsLeft int      `json:"turnsLeft"`
}

// State is an immutable snapshot of a duel. Transitions return a new State
// and never modify their input; callers must treat fields as read-only.
type State struct {
	Players [2]*Player
	Current PlayerID
	Phase   Phase
	Turn    int

	// NormalSummonAvailable is the once-per-turn normal summon flag.
	NormalSummonAvailable bool
	Attacked              [2][ZoneCount]bool
	PositionChanged       [2][ZoneCount]bool
	Borrowed              []Borrow
	Barrier               *TimedEffect

	Pending Pending
	Winner  PlayerID

	// Log is the append-only side channel of human-readable entries.
	Log []log.GameEvent

	cfg    *Config
	nextID int
	rng    Shuffler
	source log.Source
}

// NewDuel shuffles both decks, deals opening hands and returns the first state.
func NewDuel(cfg Config) (*State, error) {
	if cfg.Catalog == nil {
		cfg.Catalog = catalog.Default()
	}
	if cfg.StartingLifePoints <= 0 {
		cfg.StartingLifePoints = StartingLifePoints
	}
	if cfg.HandSize <= 0 {
		cfg.HandSize = InitialHandSize
	}
	if cfg.Shuffler == nil {
		cfg.Shuffler = rand.New(rand.NewSource(cfg.Seed))
	}

	s := &State{
		Current:               0,
		Phase:                 PhaseDraw,
		Turn:                  1,
		NormalSummonAvailable: true,
		Winner:                NoPlayer,
		cfg:                   &cfg,
		rng:                   cfg.Shuffler,
	}

	for p := PlayerID(0); p <= 1; p++ {
		cards, err := cfg.Catalog.Resolve(cfg.Decks[p])
		if err != nil {
			return nil, fmt.Errorf("deck %s: %w", p, err)
		}
		if len(cards) < cfg.HandSize {
			return nil, fmt.Errorf("deck %s: %d cards, need at least %d", p, len(cards), cfg.HandSize)
		}
		pl := &Player{ID: p, LifePoints: cfg.StartingLifePoints}
		for _, c := range cards {
			pl.Deck = append(pl.Deck, s.newInstance(c, p))
		}
		Shuffle(s.rng, pl.Deck)
		pl.Hand = append(pl.Hand, pl.Deck[:cfg.HandSize]...)
		pl.Deck = append([]*CardInstance(nil), pl.Deck[cfg.HandSize:]...)
		s.Players[p] = pl
	}

	s.emit(log.NewTurnEvent(s.Turn, int(s.Current)))
	return s, nil
}

func (s *State) newInstance(card *catalog.Card, owner PlayerID) *CardInstance {
	s.nextID++
	return &CardInstance{ID: s.nextID, Card: card, Owner: owner, EquippedTo: -1}
}

// clone returns a deep copy that can be mutated freely. The log keeps its
// prefix but gets a capped slice so appends never alias the original.
func (s *State) clone() *State {
	c := *s
	for i, p := range s.Players {
		c.Players[i] = p.clone()
	}
	c.Borrowed = append([]Borrow(nil), s.Borrowed...)
	if s.Barrier != nil {
		b := *s.Barrier
		c.Barrier = &b
	}
	c.Pending = s.Pending.clone()
	c.Log = s.Log[:len(s.Log):len(s.Log)]
	return &c
}

// Config returns the configuration the duel was created with.
func (s *State) Config() Config {
	return *s.cfg
}

// IsAI reports whether the player is driven by the built-in policy.
func (s *State) IsAI(p PlayerID) bool {
	return p.valid() && s.cfg.AI[p]
}

// Catalog returns the card catalog in use.
func (s *State) Catalog() *catalog.Catalog {
	return s.cfg.Catalog
}

func (s *State) CurrentPlayer() *Player {
	return s.Players[s.Current]
}

func (s *State) Opponent(p PlayerID) *Player {
	return s.Players[p.Opponent()]
}

// Over reports whether the duel has a winner.
func (s *State) Over() bool {
	return s.Winner != NoPlayer
}

// emit appends a log entry stamped with the acting source.
func (s *State) emit(ev log.GameEvent) {
	ev.Source = s.source
	ev.Seq = len(s.Log) + 1
	s.Log = append(s.Log, ev)
}

func (s *State) phaseName() string {
	return s.Phase.String()
}

// Find locates a card instance anywhere in the duel.
func (s *State) Find(id int) (*CardInstance, Location, bool) {
	for p, pl := range s.Players {
		pid := PlayerID(p)
		for i, c := range pl.Hand {
			if c.ID == id {
				return c, Location{pid, ZoneHand, i}, true
			}
		}
		for i, c := range pl.Monsters {
			if c != nil && c.ID == id {
				return c, Location{pid, ZoneMonster, i}, true
			}
		}
		for i, c := range pl.SpellTraps {
			if c != nil && c.ID == id {
				return c, Location{pid, ZoneSpellTrap, i}, true
			}
		}
		for i, c := range pl.Graveyard {
			if c.ID == id {
				return c, Location{pid, ZoneGraveyard, i}, true
			}
		}
		for i, c := range pl.Deck {
			if c.ID == id {
				return c, Location{pid, ZoneDeck, i}, true
			}
		}
		for i, c := range pl.ExtraDeck {
			if c.ID == id {
				return c, Location{pid, ZoneExtraDeck, i}, true
			}
		}
	}
	return nil, Location{}, false
}

// CheckZones verifies that every card instance is in exactly one place.
func CheckZones(s *State) error {
	seen := make(map[int]string)
	mark := func(c *CardInstance, where string) error {
		if prev, dup := seen[c.ID]; dup {
			return fmt.Errorf("%s is in both %s and %s", c, prev, where)
		}
		seen[c.ID] = where
		return nil
	}
	for p, pl := range s.Players {
		lists := map[string][]*CardInstance{
			"deck": pl.Deck, "hand": pl.Hand, "graveyard": pl.Graveyard, "extra deck": pl.ExtraDeck,
		}
		for name, cards := range lists {
			for _, c := range cards {
				if err := mark(c, fmt.Sprintf("P%d %s", p+1, name)); err != nil {
					return err
				}
			}
		}
		for i := 0; i < ZoneCount; i++ {
			if c := pl.Monsters[i]; c != nil {
				if err := mark(c, fmt.Sprintf("P%d monster zone %d", p+1, i+1)); err != nil {
					return err
				}
			}
			if c := pl.SpellTraps[i]; c != nil {
				if err := mark(c, fmt.Sprintf("P%d spell/trap zone %d", p+1, i+1)); err != nil {
					return err
				}
			}
		}
	}
	if len(seen) != s.nextID {
		return fmt.Errorf("%d instances accounted for, %d created", len(seen), s.nextID)
	}
	return nil
}

// --- Pure transitions ---

// DrawCard draws the top card for p. Drawing from an empty deck loses the
// duel unless deck-out is disabled.
func DrawCard(s *State, p PlayerID) *State {
	if !p.valid() || s.Over() {
		return s
	}
	d := s.clone()
	d.source = d.sourceFor(p)
	d.draw(p)
	return d
}

// SetLifePoints sets p's life points, clamped at zero.
func SetLifePoints(s *State, p PlayerID, lp int, reason string) *State {
	if !p.valid() {
		return s
	}
	d := s.clone()
	d.setLifePoints(p, lp, reason)
	return d
}

// SendToGraveyard moves the card at loc to its owner's graveyard.
func SendToGraveyard(s *State, loc Location, reason string) *State {
	if !loc.Player.valid() {
		return s
	}
	d := s.clone()
	card := d.take(loc)
	if card == nil {
		return s
	}
	d.toGraveyard(card, reason)
	return d
}

// SearchDeck moves a deck card to p's hand and shuffles the deck.
func SearchDeck(s *State, p PlayerID, id int) *State {
	if !p.valid() || s.Players[p].DeckIndex(id) < 0 {
		return s
	}
	d := s.clone()
	d.searchDeck(p, id, "search")
	return d
}

// AddToHand moves the card at loc into its owner's hand.
func AddToHand(s *State, loc Location) *State {
	if !loc.Player.valid() || loc.Zone == ZoneHand {
		return s
	}
	d := s.clone()
	card := d.take(loc)
	if card == nil {
		return s
	}
	card.resetForZone()
	owner := d.Players[card.Owner]
	owner.Hand = append(owner.Hand, card)
	d.emit(log.NewAddToHandEvent(d.Turn, d.phaseName(), int(card.Owner), card.Card.Name, "moved"))
	return d
}

// PlaceMonster moves a hand card into an empty monster zone, stamping the
// turn it was placed.
func PlaceMonster(s *State, p PlayerID, handIndex, zone int, pos Position, faceDown bool) *State {
	if !p.valid() || zone < 0 || zone >= ZoneCount || s.Players[p].Monsters[zone] != nil {
		return s
	}
	pl := s.Players[p]
	if handIndex < 0 || handIndex >= len(pl.Hand) || !pl.Hand[handIndex].Card.IsMonster() {
		return s
	}
	d := s.clone()
	d.placeMonster(p, zone, d.Players[p].removeFromHand(handIndex), pos, faceDown)
	return d
}

// PlaceSpellTrap moves a hand card into an empty spell/trap zone.
func PlaceSpellTrap(s *State, p PlayerID, handIndex, zone int, faceDown bool) *State {
	if !p.valid() || zone < 0 || zone >= ZoneCount || s.Players[p].SpellTraps[zone] != nil {
		return s
	}
	pl := s.Players[p]
	if handIndex < 0 || handIndex >= len(pl.Hand) || pl.Hand[handIndex].Card.IsMonster() {
		return s
	}
	d := s.clone()
	d.placeSpellTrap(p, zone, d.Players[p].removeFromHand(handIndex), faceDown)
	return d
}

// ClearZone empties a monster or spell/trap zone. The card goes to its
// owner's graveyard without evaluating triggers.
func ClearZone(s *State, loc Location) *State {
	if !loc.Player.valid() || (loc.Zone != ZoneMonster && loc.Zone != ZoneSpellTrap) {
		return s
	}
	d := s.clone()
	card := d.take(loc)
	if card == nil {
		return s
	}
	card.resetForZone()
	owner := d.Players[card.Owner]
	owner.Graveyard = append(owner.Graveyard, card)
	return d
}

// --- Draft mutators: only ever called on a clone ---

func (s *State) sourceFor(p PlayerID) log.Source {
	if s.IsAI(p) {
		return log.SourceAI
	}
	return log.SourcePlayer
}

func (s *State) draw(p PlayerID) *CardInstance {
	pl := s.Players[p]
	if len(pl.Deck) == 0 {
		if !s.cfg.NoDeckOut {
			s.win(p.Opponent(), fmt.Sprintf("%s cannot draw", p))
		}
		return nil
	}
	card := pl.Deck[0]
	pl.Deck = pl.Deck[1:]
	pl.Hand = append(pl.Hand, card)
	s.emit(log.NewDrawEvent(s.Turn, s.phaseName(), int(p), card.Card.Name))
	return card
}

func (s *State) win(w PlayerID, reason string) {
	if s.Winner != NoPlayer {
		return
	}
	s.Winner = w
	s.emit(log.NewWinEvent(s.Turn, s.phaseName(), int(w), reason))
}

func (s *State) setLifePoints(p PlayerID, lp int, reason string) {
	if lp < 0 {
		lp = 0
	}
	pl := s.Players[p]
	old := pl.LifePoints
	pl.LifePoints = lp
	s.emit(log.NewLifePointsEvent(s.Turn, s.phaseName(), int(p), old, lp, reason))
	if lp == 0 {
		s.win(p.Opponent(), fmt.Sprintf("%s's life points reached 0", p))
	}
}

func (s *State) damage(p PlayerID, amount int, reason string) {
	if amount <= 0 {
		return
	}
	s.setLifePoints(p, s.Players[p].LifePoints-amount, reason)
}

func (s *State) searchDeck(p PlayerID, id int, reason string) {
	pl := s.Players[p]
	i := pl.DeckIndex(id)
	if i < 0 {
		return
	}
	card := pl.Deck[i]
	pl.Deck = append(pl.Deck[:i:i], pl.Deck[i+1:]...)
	pl.Hand = append(pl.Hand, card)
	s.emit(log.NewAddToHandEvent(s.Turn, s.phaseName(), int(p), card.Card.Name, reason))
	Shuffle(s.rng, pl.Deck)
	s.emit(log.NewShuffleEvent(s.Turn, s.phaseName(), int(p)))
}

// take removes the card at loc from its zone without moving it anywhere.
func (s *State) take(loc Location) *CardInstance {
	pl := s.Players[loc.Player]
	switch loc.Zone {
	case ZoneHand:
		if loc.Index < 0 || loc.Index >= len(pl.Hand) {
			return nil
		}
		return pl.removeFromHand(loc.Index)
	case ZoneDeck:
		if loc.Index < 0 || loc.Index >= len(pl.Deck) {
			return nil
		}
		card := pl.Deck[loc.Index]
		pl.Deck = append(pl.Deck[:loc.Index:loc.Index], pl.Deck[loc.Index+1:]...)
		return card
	case ZoneGraveyard:
		if loc.Index < 0 || loc.Index >= len(pl.Graveyard) {
			return nil
		}
		card := pl.Graveyard[loc.Index]
		pl.Graveyard = append(pl.Graveyard[:loc.Index:loc.Index], pl.Graveyard[loc.Index+1:]...)
		return card
	case ZoneMonster:
		if loc.Index < 0 || loc.Index >= ZoneCount || pl.Monsters[loc.Index] == nil {
			return nil
		}
		return s.vacateMonster(loc.Player, loc.Index)
	case ZoneSpellTrap:
		if loc.Index < 0 || loc.Index >= ZoneCount || pl.SpellTraps[loc.Index] == nil {
			return nil
		}
		return s.vacateSpellTrap(loc.Player, loc.Index)
	}
	return nil
}
