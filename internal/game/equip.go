package game

// attachEquip links an equip card in a spell/trap zone to a monster zone of
// the same controller.
func (s *State) attachEquip(p PlayerID, equipZone, monsterZone int) {
	if equip := s.Players[p].SpellTraps[equipZone]; equip != nil {
		equip.EquippedTo = monsterZone
	}
}

// detachEquipsFrom destroys equip cards whose monster left the field.
func (s *State) detachEquipsFrom(p PlayerID, monsterZone int) {
	for zone, c := range s.Players[p].SpellTraps {
		if c == nil || c.EquippedTo != monsterZone {
			continue
		}
		c.EquippedTo = -1
		s.destroySpellTrap(p, zone, "equipped monster left the field")
	}
}

// onEquipLost runs when an attached equip leaves the field first. Equips
// that bind the monster's life to their own destroy it.
func (s *State) onEquipLost(p PlayerID, monsterZone int, equip *CardInstance) {
	eff, ok := EffectFor(equip.Card.ID)
	if !ok || !eff.BindsEquipped {
		return
	}
	if s.Players[p].Monsters[monsterZone] != nil {
		s.destroyMonster(p, monsterZone, equip.Card.Name+" left the field")
	}
}
