package layout

import (
	"math"
	"math/rand"
)

// point is one node position in the simulation plane.
type point struct {
	x, y float64
}

// springLayout computes a Fruchterman-Reingold layout for a graph of n
// nodes. Edges are pairs of node indices. The result is deterministic for a
// given seed and is rescaled to fit [-scale, scale] on both axes.
func springLayout(n int, edges [][2]int, scale float64, iterations int, seed int64) []point {
	pos := make([]point, n)
	if n == 0 {
		return pos
	}

	rng := rand.New(rand.NewSource(seed))
	for i := range pos {
		pos[i] = point{
			x: rng.Float64()*2*scale - scale,
			y: rng.Float64()*2*scale - scale,
		}
	}
	if n == 1 {
		pos[0] = point{}
		return pos
	}

	// Optimal pairwise distance for the simulation area, with a linearly
	// cooling temperature capping each move.
	k := 2 * scale / math.Sqrt(float64(n))
	temperature := scale / 5
	cooling := temperature / float64(iterations+1)

	disp := make([]point, n)
	for iter := 0; iter < iterations; iter++ {
		for i := range disp {
			disp[i] = point{}
		}

		// Repulsion between every node pair.
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dx := pos[i].x - pos[j].x
				dy := pos[i].y - pos[j].y
				dist := math.Hypot(dx, dy)
				if dist < 1e-9 {
					// Coincident nodes get a deterministic nudge apart.
					dx = rng.Float64() - 0.5
					dy = rng.Float64() - 0.5
					dist = math.Hypot(dx, dy)
				}
				force := k * k / dist
				fx := dx / dist * force
				fy := dy / dist * force
				disp[i].x += fx
				disp[i].y += fy
				disp[j].x -= fx
				disp[j].y -= fy
			}
		}

		// Attraction along edges.
		for _, e := range edges {
			s, t := e[0], e[1]
			if s == t {
				continue
			}
			dx := pos[s].x - pos[t].x
			dy := pos[s].y - pos[t].y
			dist := math.Hypot(dx, dy)
			if dist < 1e-9 {
				continue
			}
			force := dist * dist / k
			fx := dx / dist * force
			fy := dy / dist * force
			disp[s].x -= fx
			disp[s].y -= fy
			disp[t].x += fx
			disp[t].y += fy
		}

		// Move each node, capped by the current temperature.
		for i := range pos {
			d := math.Hypot(disp[i].x, disp[i].y)
			if d < 1e-9 {
				continue
			}
			step := math.Min(d, temperature)
			pos[i].x += disp[i].x / d * step
			pos[i].y += disp[i].y / d * step
		}
		temperature -= cooling
	}

	rescale(pos, scale)
	return pos
}

// rescale centers the layout on the origin and fits it into
// [-scale, scale], preserving the aspect ratio.
func rescale(pos []point, scale float64) {
	if len(pos) == 0 {
		return
	}

	var cx, cy float64
	for _, p := range pos {
		cx += p.x
		cy += p.y
	}
	cx /= float64(len(pos))
	cy /= float64(len(pos))

	spread := 0.0
	for i := range pos {
		pos[i].x -= cx
		pos[i].y -= cy
		spread = math.Max(spread, math.Max(math.Abs(pos[i].x), math.Abs(pos[i].y)))
	}
	if spread < 1e-9 {
		return
	}

	factor := scale / spread
	for i := range pos {
		pos[i].x *= factor
		pos[i].y *= factor
	}
}
