package game

// effects maps card ids to their scripted behavior. Cards without an entry
// have no effect and are still legal to play.
var effects = map[string]*Effect{}

func register(id string, e *Effect) {
	if _, dup := effects[id]; dup {
		panic("duplicate effect registration: " + id)
	}
	effects[id] = e
}

// EffectFor returns the scripted effect for a card id.
func EffectFor(id string) (*Effect, bool) {
	e, ok := effects[id]
	return e, ok
}

// NeedsTarget reports whether activating the card takes a target.
func NeedsTarget(id string) bool {
	return SpellTargetType(id) != TargetNone
}

// SpellTargetType returns the kind of target the card's activation takes.
func SpellTargetType(id string) TargetKind {
	if e, ok := effects[id]; ok {
		return e.Target
	}
	return TargetNone
}

// NeedsDiscard reports whether activation costs a discard.
func NeedsDiscard(id string) bool {
	e, ok := effects[id]
	return ok && e.NeedsDiscard
}

// NeedsZoneForPlacement reports whether the card stays on the field and so
// needs a free spell/trap zone to activate from the hand.
func NeedsZoneForPlacement(id string) bool {
	e, ok := effects[id]
	return ok && e.NeedsZone
}

// ScriptedCards returns the ids with registered effects.
func ScriptedCards() []string {
	ids := make([]string, 0, len(effects))
	for id := range effects {
		ids = append(ids, id)
	}
	return ids
}
