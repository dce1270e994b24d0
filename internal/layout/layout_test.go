package layout

import (
	"context"
	"math"
	"testing"

	"github.com/ndexcontent/signorloader/internal/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpringLayoutUpdater_Description(t *testing.T) {
	u := NewSpringLayoutUpdater()
	assert.Equal(t, "Applies spring layout to network", u.Description())
}

func TestSpringLayoutUpdater_NilNetwork(t *testing.T) {
	u := NewSpringLayoutUpdater()
	assert.Equal(t, []string{"network is nil"}, u.Update(context.Background(), nil))
}

func TestSpringLayoutUpdater_EmptyNetwork(t *testing.T) {
	u := NewSpringLayoutUpdater()
	net := network.NewNetwork()
	assert.Empty(t, u.Update(context.Background(), net))
	assert.Empty(t, net.CartesianLayout())
}

// bandedNetwork builds a small connected graph with two nodes per location
// band plus two without a recognized location.
func bandedNetwork(t *testing.T) *network.Network {
	t.Helper()
	net := network.NewNetwork()

	locations := []string{"extracellular", "receptor", "cytoplasm", "factor", ""}
	var previous *network.Node
	for _, location := range locations {
		for i := 0; i < 2; i++ {
			node := net.AddNode(location+"-node-"+string(rune('a'+i)), "id")
			net.SetNodeAttribute(node.ID, "location", location, network.TypeString)
			if previous != nil {
				_, err := net.AddEdge(previous.ID, node.ID, "binds")
				require.NoError(t, err)
			}
			previous = node
		}
	}
	return net
}

func meanYByLocation(t *testing.T, net *network.Network) map[string]float64 {
	t.Helper()
	coords := make(map[int64]network.CartesianCoordinate)
	for _, c := range net.CartesianLayout() {
		coords[c.Node] = c
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, node := range net.Nodes() {
		attr, ok := net.NodeAttribute(node.ID, "location")
		require.True(t, ok)
		location, _ := attr.Value.(string)

		c, ok := coords[node.ID]
		require.True(t, ok, "node %d missing from layout", node.ID)
		sums[location] += c.Y
		counts[location]++
	}

	means := make(map[string]float64)
	for location, sum := range sums {
		means[location] = sum / float64(counts[location])
	}
	return means
}

func TestSpringLayoutUpdater_BandOrdering(t *testing.T) {
	net := bandedNetwork(t)
	u := NewSpringLayoutUpdater()
	assert.Empty(t, u.Update(context.Background(), net))

	require.Len(t, net.CartesianLayout(), net.NodeCount())

	means := meanYByLocation(t, net)
	order := []string{"extracellular", "receptor", "cytoplasm", "factor", ""}
	for i := 0; i < len(order)-1; i++ {
		assert.Less(t, means[order[i]], means[order[i+1]],
			"mean y of %q should be above %q", order[i], order[i+1])
	}
}

func TestSpringLayoutUpdater_BandRanges(t *testing.T) {
	net := bandedNetwork(t)
	u := NewSpringLayoutUpdater()
	require.Empty(t, u.Update(context.Background(), net))

	coords := make(map[int64]network.CartesianCoordinate)
	for _, c := range net.CartesianLayout() {
		coords[c.Node] = c
	}

	bandHeight := 2 * DefaultScale / float64(len(bandOrder))
	for _, node := range net.Nodes() {
		attr, _ := net.NodeAttribute(node.ID, "location")
		location, _ := attr.Value.(string)
		band := bandIndex(location)

		top := -DefaultScale + bandHeight*float64(band)
		bottom := top + bandHeight
		c := coords[node.ID]
		assert.GreaterOrEqual(t, c.Y, top, "node %s below band top", node.Name)
		assert.LessOrEqual(t, c.Y, bottom, "node %s above band bottom", node.Name)
		assert.LessOrEqual(t, math.Abs(c.X), DefaultScale, "node %s x out of range", node.Name)
	}
}

func TestSpringLayoutUpdater_UnrecognizedLocationFallsToLowestBand(t *testing.T) {
	net := network.NewNetwork()
	known := net.AddNode("A", "P1")
	net.SetNodeAttribute(known.ID, "location", "extracellular", network.TypeString)
	odd := net.AddNode("B", "P2")
	net.SetNodeAttribute(odd.ID, "location", "mitochondrion", network.TypeString)
	_, err := net.AddEdge(known.ID, odd.ID, "binds")
	require.NoError(t, err)

	u := NewSpringLayoutUpdater()
	require.Empty(t, u.Update(context.Background(), net))

	coords := make(map[int64]network.CartesianCoordinate)
	for _, c := range net.CartesianLayout() {
		coords[c.Node] = c
	}
	assert.Less(t, coords[known.ID].Y, 0.0)
	assert.Greater(t, coords[odd.ID].Y, 0.0)
}

func TestSpringLayoutUpdater_MissingLocationFallsToLowestBand(t *testing.T) {
	net := network.NewNetwork()
	top := net.AddNode("A", "P1")
	net.SetNodeAttribute(top.ID, "location", "extracellular", network.TypeString)
	bare := net.AddNode("B", "P2")

	u := NewSpringLayoutUpdater()
	require.Empty(t, u.Update(context.Background(), net))

	coords := make(map[int64]network.CartesianCoordinate)
	for _, c := range net.CartesianLayout() {
		coords[c.Node] = c
	}
	assert.Less(t, coords[top.ID].Y, coords[bare.ID].Y)
}

func TestSpringLayoutUpdater_Deterministic(t *testing.T) {
	first := bandedNetwork(t)
	second := bandedNetwork(t)

	require.Empty(t, NewSpringLayoutUpdater().Update(context.Background(), first))
	require.Empty(t, NewSpringLayoutUpdater().Update(context.Background(), second))

	assert.Equal(t, first.CartesianLayout(), second.CartesianLayout())
}

func TestSpringLayout_SingleNode(t *testing.T) {
	pos := springLayout(1, nil, DefaultScale, DefaultIterations, DefaultSeed)
	require.Len(t, pos, 1)
	assert.Equal(t, point{}, pos[0])
}

func TestSpringLayout_SpreadsConnectedPair(t *testing.T) {
	pos := springLayout(2, [][2]int{{0, 1}}, DefaultScale, DefaultIterations, DefaultSeed)
	require.Len(t, pos, 2)

	dx := pos[0].x - pos[1].x
	dy := pos[0].y - pos[1].y
	assert.Greater(t, math.Hypot(dx, dy), 1.0, "connected nodes should not collapse")
	for _, p := range pos {
		assert.LessOrEqual(t, math.Abs(p.x), DefaultScale)
		assert.LessOrEqual(t, math.Abs(p.y), DefaultScale)
	}
}
