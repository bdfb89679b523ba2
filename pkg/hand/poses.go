package hand

import "sort"

// Poses are canned hand positions, angles in logical degrees. They respect
// the default limits (ring never below 25).
var Poses = map[string]TargetVector{
	"neutral":   {90, 90, 90, 90, 90, 90},
	"open":      {90, 0, 0, 25, 0, 90},
	"closed":    {90, 160, 160, 160, 160, 90},
	"thumbs_up": {0, 160, 0, 25, 0, 90},
	"peace":     {90, 0, 160, 25, 160, 90},
	"point":     {90, 0, 160, 160, 160, 90},
	"grasp":     {90, 120, 120, 120, 120, 90},
}

// PoseNames returns the available pose names, sorted.
func PoseNames() []string {
	names := make([]string, 0, len(Poses))
	for name := range Poses {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
