// Package layout computes node coordinates for a network: a force directed
// spring layout followed by a vertical banding pass on the location node
// attribute, so extracellular entities end up on top and phenotypes at the
// bottom the way SIGNOR diagrams are drawn.
package layout

import (
	"context"

	"github.com/ndexcontent/signorloader/internal/network"
)

// Layout defaults.
const (
	DefaultScale      = 500.0
	DefaultIterations = 10
	DefaultSeed       = 10
)

// bandOrder lists the location bands top to bottom. CX y coordinates grow
// downward, so earlier bands get smaller y values. Empty and unrecognized
// locations fall into the last band.
var bandOrder = []string{
	"extracellular",
	"receptor",
	"cytoplasm",
	"factor",
	"",
}

// bandInset keeps node coordinates off the exact band boundaries, as a
// fraction of the band height.
const bandInset = 0.05

// SpringLayoutUpdater writes the cartesianLayout aspect of a network. It
// runs as the last update pass, after the location attributes are final.
type SpringLayoutUpdater struct {
	scale      float64
	iterations int
	seed       int64
}

// NewSpringLayoutUpdater creates the pass with default scale, iteration
// count and seed.
func NewSpringLayoutUpdater() *SpringLayoutUpdater {
	return &SpringLayoutUpdater{
		scale:      DefaultScale,
		iterations: DefaultIterations,
		seed:       DefaultSeed,
	}
}

func (u *SpringLayoutUpdater) Description() string {
	return "Applies spring layout to network"
}

// Update computes coordinates for every node and replaces the network's
// cartesianLayout aspect. The spring layout decides the x positions and the
// relative placement inside a band; the band itself comes from the node's
// location attribute.
func (u *SpringLayoutUpdater) Update(ctx context.Context, net *network.Network) []string {
	if net == nil {
		return []string{"network is nil"}
	}

	nodes := net.Nodes()
	if len(nodes) == 0 {
		return nil
	}

	// Node ids are mapped onto dense indices for the simulation.
	index := make(map[int64]int, len(nodes))
	for i, node := range nodes {
		index[node.ID] = i
	}
	edges := make([][2]int, 0, net.EdgeCount())
	for _, edge := range net.Edges() {
		edges = append(edges, [2]int{index[edge.Source], index[edge.Target]})
	}

	pos := springLayout(len(nodes), edges, u.scale, u.iterations, u.seed)
	u.applyBands(net, nodes, pos)

	coords := make([]network.CartesianCoordinate, len(nodes))
	for i, node := range nodes {
		coords[i] = network.CartesianCoordinate{Node: node.ID, X: pos[i].x, Y: pos[i].y}
	}
	net.SetCartesianLayout(coords)
	return nil
}

// bandIndex maps a location value onto its band. Anything not in bandOrder
// lands in the lowest band together with the empty location.
func bandIndex(location string) int {
	for i, band := range bandOrder {
		if location == band {
			return i
		}
	}
	return len(bandOrder) - 1
}

// applyBands rewrites the y coordinates so every node falls inside the band
// of its location, keeping the spring layout's relative vertical order
// within each band.
func (u *SpringLayoutUpdater) applyBands(net *network.Network, nodes []*network.Node, pos []point) {
	byBand := make([][]int, len(bandOrder))
	for i, node := range nodes {
		location := ""
		if attr, ok := net.NodeAttribute(node.ID, "location"); ok {
			location, _ = attr.Value.(string)
		}
		band := bandIndex(location)
		byBand[band] = append(byBand[band], i)
	}

	bandHeight := 2 * u.scale / float64(len(bandOrder))
	inset := bandHeight * bandInset

	for band, members := range byBand {
		if len(members) == 0 {
			continue
		}

		top := -u.scale + bandHeight*float64(band) + inset
		bottom := top + bandHeight - 2*inset

		minY, maxY := pos[members[0]].y, pos[members[0]].y
		for _, i := range members[1:] {
			if pos[i].y < minY {
				minY = pos[i].y
			}
			if pos[i].y > maxY {
				maxY = pos[i].y
			}
		}

		if maxY-minY < 1e-9 {
			center := (top + bottom) / 2
			for _, i := range members {
				pos[i].y = center
			}
			continue
		}

		for _, i := range members {
			pos[i].y = top + (pos[i].y-minY)/(maxY-minY)*(bottom-top)
		}
	}
}
