package tracks

// applyTransitions returns a copy of inv with the transitions applied, the
// state mkvpropedit would leave the file in.
func applyTransitions(inv Inventory, transitions []Transition) Inventory {
	out := Inventory{Path: inv.Path, Tracks: make([]Track, len(inv.Tracks))}
	copy(out.Tracks, inv.Tracks)
	for _, tr := range transitions {
		for i := range out.Tracks {
			if out.Tracks[i].Kind == tr.Kind && out.Tracks[i].ID == tr.TrackID {
				out.Tracks[i].Default = tr.Default
			}
		}
	}
	return out
}
