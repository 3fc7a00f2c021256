package net

import (
	"fmt"

	"github.com/peterkuimelis/duelcore/internal/game"
	"github.com/peterkuimelis/duelcore/internal/log"
)

// BuildStateView creates a StateView from the perspective of the given
// player. The opponent's hand and face-down cards stay hidden.
func BuildStateView(st *game.State, me game.PlayerID) *StateView {
	opp := me.Opponent()
	aw := st.Awaiting()

	sv := &StateView{
		You:        buildPlayerView(st.Players[me], true),
		Opponent:   buildPlayerView(st.Players[opp], false),
		Turn:       st.Turn,
		Phase:      st.Phase.String(),
		IsYourTurn: st.Current == me,
		Awaiting:   aw.Kind.String(),
		YourMove:   !st.Over() && aw.Player == me,
	}
	if sv.YourMove {
		sv.Prompt = promptFor(st, aw)
	}
	if b := st.Barrier; b != nil {
		sv.Barrier = &BarrierView{Name: b.Name, Affected: b.Affected.String(), TurnsLeft: b.TurnsLeft}
	}
	if st.Over() {
		sv.Winner = st.Winner.String()
	}
	return sv
}

func buildPlayerView(pl *game.Player, isOwner bool) PlayerView {
	pv := PlayerView{
		Name:           pl.ID.String(),
		LP:             pl.LifePoints,
		HandCount:      len(pl.Hand),
		GraveyardCount: len(pl.Graveyard),
		DeckCount:      len(pl.Deck),
	}
	if isOwner {
		for _, c := range pl.Hand {
			pv.Hand = append(pv.Hand, CardViewOf(c))
		}
	}
	for _, c := range pl.Graveyard {
		pv.Graveyard = append(pv.Graveyard, c.Card.Name)
	}
	for i := 0; i < game.ZoneCount; i++ {
		pv.Monsters[i] = MonsterZoneView(pl.Monsters[i], isOwner)
		pv.SpellTraps[i] = SpellTrapZoneView(pl.SpellTraps[i], isOwner)
	}
	return pv
}

// CardViewOf describes a card its holder can see.
func CardViewOf(c *game.CardInstance) CardView {
	return CardView{
		ID:   c.ID,
		Name: c.Card.Name,
		Kind: c.Card.Kind.String(),
		ATK:  c.Card.ATK,
		DEF:  c.Card.DEF,
		Text: c.Card.Text,
	}
}

// MonsterZoneView creates a ZoneView for a monster zone.
func MonsterZoneView(ci *game.CardInstance, isOwner bool) ZoneView {
	if ci == nil {
		return ZoneView{Empty: true}
	}
	if ci.FaceDown && !isOwner {
		return ZoneView{FaceDown: true, Position: ci.Position.String()}
	}
	return ZoneView{
		FaceDown: ci.FaceDown,
		Name:     ci.Card.Name,
		ATK:      ci.Card.ATK,
		DEF:      ci.Card.DEF,
		Position: ci.Position.String(),
	}
}

// SpellTrapZoneView creates a ZoneView for a spell/trap zone.
func SpellTrapZoneView(ci *game.CardInstance, isOwner bool) ZoneView {
	if ci == nil {
		return ZoneView{Empty: true}
	}
	if ci.FaceDown && !isOwner {
		return ZoneView{FaceDown: true}
	}
	return ZoneView{FaceDown: ci.FaceDown, Name: ci.Card.Name, Equipped: ci.EquippedTo >= 0}
}

func promptFor(st *game.State, aw game.Await) string {
	switch aw.Kind {
	case game.AwaitDeckSearch:
		return "Choose a card to add to your hand"
	case game.AwaitEffectConfirm:
		return fmt.Sprintf("Activate the effect of %s?", aw.Trigger.SourceName)
	case game.AwaitShieldChoice:
		return fmt.Sprintf("Discard a card to avoid %d damage?", aw.Shield.Damage)
	case game.AwaitAttackResponse:
		a := aw.Attack
		attacker := st.Players[a.Attacker].Monsters[a.AttackerZone]
		if a.Direct() {
			return fmt.Sprintf("%s attacks you directly. Respond?", attacker.Card.Name)
		}
		return fmt.Sprintf("%s attacks your monster in Zone %d. Respond?", attacker.Card.Name, a.DefenderZone+1)
	}
	return ""
}

// EventViews converts log entries for the client.
func EventViews(events []log.GameEvent) []EventView {
	out := make([]EventView, 0, len(events))
	for _, e := range events {
		out = append(out, EventView{
			Seq:     e.Seq,
			Turn:    e.Turn,
			Phase:   e.Phase,
			Player:  e.Player,
			AI:      e.Source == log.SourceAI,
			Type:    e.Type.String(),
			Card:    e.Card,
			Details: e.Details,
		})
	}
	return out
}

// ActionViews numbers actions for the client.
func ActionViews(actions []game.Action) []ActionView {
	out := make([]ActionView, 0, len(actions))
	for i, a := range actions {
		out = append(out, ActionView{Index: i, Desc: a.String()})
	}
	return out
}

// Result describes how the duel ended, or "" while it is running.
func Result(st *game.State) string {
	if !st.Over() {
		return ""
	}
	for i := len(st.Log) - 1; i >= 0; i-- {
		if st.Log[i].Type == log.EventWin {
			return st.Log[i].Details
		}
	}
	return st.Winner.String() + " wins"
}
