package polygonize

import (
	"github.com/soypat/frontmesh/internal/d3"
)

// suspended is a front waiting to be resumed or merged into the active front.
type suspended struct {
	front *front
	// box contains all points of front enlarged by one propagation step.
	box d3.Box
}

// frontPool holds suspended fronts in the order they were suspended.
// Fronts are resumed last-in first-out.
type frontPool struct {
	fronts []suspended
}

// push suspends fr. The bounding box is computed from the front's current points.
func (fp *frontPool) push(a pointArena, fr *front, step float64) {
	box := fr.bounds(a).Enlarge(d3.Elem(2 * step)) // One step per side.
	fp.fronts = append(fp.fronts, suspended{front: fr, box: box})
}

// pop removes and returns the most recently suspended front.
// It returns nil if the pool is empty.
func (fp *frontPool) pop() *front {
	if len(fp.fronts) == 0 {
		return nil
	}
	last := len(fp.fronts) - 1
	fr := fp.fronts[last].front
	fp.fronts[last] = suspended{}
	fp.fronts = fp.fronts[:last]
	return fr
}

// remove deletes the i'th suspended front preserving the order of the rest.
func (fp *frontPool) remove(i int) {
	copy(fp.fronts[i:], fp.fronts[i+1:])
	fp.fronts[len(fp.fronts)-1] = suspended{}
	fp.fronts = fp.fronts[:len(fp.fronts)-1]
}

func (fp *frontPool) len() int { return len(fp.fronts) }
