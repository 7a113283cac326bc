package match3

// ArmorReport lists the armored tiles touched in one step.
type ArmorReport struct {
	Collateral []*Tile // pulled in by an adjacent line match
	Hit        []*Tile // damaged but still standing
	Destroyed  []*Tile // health reached 0
}

// ApplyArmor runs before removal. Armored tiles next to a line-match member
// join the set; then every armored tile in the set loses one health and
// leaves the set again unless its health reached 0. Metal never stays in
// the set.
func ApplyArmor(b *Board, set *DestroySet, tr *Trace) ArmorReport {
	var rep ArmorReport

	for _, t := range set.Tiles() {
		if !set.Direct(t.ID) {
			continue
		}
		for _, n := range t.Pos().Neighbors() {
			nb := b.At(n)
			if nb == nil || !nb.Kind.IsArmored() {
				continue
			}
			if set.Add(nb, false) {
				rep.Collateral = append(rep.Collateral, nb)
				tr.Logf("Collateral damage: %s next to matched tile %d", nb, t.ID)
			}
		}
	}

	for _, t := range set.Tiles() {
		if !t.Kind.Destructible() {
			set.Drop(t.ID)
			continue
		}
		if !t.Kind.IsArmored() || t.Health <= 0 {
			continue
		}
		t.Health--
		if t.Health > 0 {
			set.Drop(t.ID)
			rep.Hit = append(rep.Hit, t)
			tr.Logf("Armored tile hit: %s", t)
			continue
		}
		rep.Destroyed = append(rep.Destroyed, t)
		tr.Logf("Armored tile destroyed: %s", t)
	}
	return rep
}
