package boundary

// EnabledLayers computes the default on/off state for every configured
// layer id from the relevant boundary set. The result domain is always
// exactly allLayerIDs; ids the mapper resolves outside that set are
// ignored. The computation is idempotent, and enabling is monotonic in the
// relevant set: adding boundaries never turns a layer off.
func EnabledLayers(relevant []Boundary, allLayerIDs []string, sections []Section) LayerStateMap {
	states := make(LayerStateMap, len(allLayerIDs))
	for _, id := range allLayerIDs {
		states[id] = false
	}
	for _, b := range relevant {
		for _, id := range MapLayerType(b.LayerType, sections).LayerIDs {
			if _, ok := states[id]; ok {
				states[id] = true
			}
		}
	}
	return states
}
