package boundary

import "math"

// cadastralTypes credit any property-boundary layer when at least one of
// the group is present; the upstream services rarely return all four for a
// single coordinate.
var cadastralTypes = map[string]bool{
	"Farm Portions": true,
	"Erven":         true,
	"Holdings":      true,
	"Public Places": true,
}

// exactTypes credit their layer only on an exact type match.
var exactTypes = map[string]bool{
	"Roads":                     true,
	"Contours":                  true,
	"Water Bodies":              true,
	"Environmental Constraints": true,
}

// partialCredit is granted to layers of any other type whenever the
// project has data at all.
const partialCredit = 0.3

// SectionProgress derives a completion percentage per configured section
// from the set of boundary types present in a project's data. Percentages
// are rounded and clamped to [0, 100]; a section with no layers reports 0.
func SectionProgress(typesPresent map[string]bool, sections []Section) []SectionStatus {
	anyCadastral := false
	anyPresent := false
	for t, present := range typesPresent {
		if !present {
			continue
		}
		anyPresent = true
		if cadastralTypes[t] {
			anyCadastral = true
		}
	}

	out := make([]SectionStatus, 0, len(sections))
	for _, s := range sections {
		var available float64
		for _, l := range s.Layers {
			switch {
			case cadastralTypes[l.Type]:
				if anyCadastral {
					available++
				}
			case exactTypes[l.Type]:
				if typesPresent[l.Type] {
					available++
				}
			default:
				if anyPresent {
					available += partialCredit
				}
			}
		}

		pct := 0
		if total := len(s.Layers); total > 0 {
			pct = int(math.Round(available / float64(total) * 100))
			if pct < 0 {
				pct = 0
			}
			if pct > 100 {
				pct = 100
			}
		}
		out = append(out, SectionStatus{
			Name:            s.Name,
			Percentage:      pct,
			AvailableLayers: available,
			TotalLayers:     len(s.Layers),
		})
	}
	return out
}
