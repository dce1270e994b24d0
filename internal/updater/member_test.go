package updater

import (
	"context"
	"errors"
	"testing"

	"github.com/ndexcontent/signorloader/internal/network"
	"github.com/ndexcontent/signorloader/internal/signor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSearcher resolves symbols from a fixed map; unknown ids have no
// symbol, ids in failures error out.
type fakeSearcher struct {
	symbols  map[string]string
	failures map[string]bool
	calls    int
}

func (f *fakeSearcher) Symbol(ctx context.Context, id string) (string, error) {
	f.calls++
	if f.failures[id] {
		return "", errors.New("service unavailable")
	}
	return f.symbols[id], nil
}

func TestMemberUpdater(t *testing.T) {
	pf := signor.EntityMap{
		"JAK family": {"P23458", "O60674"},
		"SIGNOR-PF1": {"P23458", "O60674"},
	}
	complexes := signor.EntityMap{
		"mTORC2":    {"P42345", "SIGNOR-PF1"},
		"SIGNOR-C9": {"Q9Y4K3"},
	}
	searcher := &fakeSearcher{symbols: map[string]string{
		"P23458": "JAK1",
		"O60674": "JAK2",
		"P42345": "MTOR",
		"Q9Y4K3": "TRAF6",
	}}

	u := NewMemberUpdater(pf, complexes, searcher)

	t.Run("Nil network", func(t *testing.T) {
		assert.Equal(t, []string{"network is nil"}, u.Update(context.Background(), nil))
	})

	net := network.NewNetwork()
	family := net.AddNode("JAK family", "SIGNOR-PF1")
	net.SetNodeAttribute(family.ID, "type", "proteinfamily", network.TypeString)

	cmplx := net.AddNode("mTORC2", "SIGNOR-C1")
	net.SetNodeAttribute(cmplx.ID, "type", "complex", network.TypeString)

	protein := net.AddNode("JAK1", "P23458")
	net.SetNodeAttribute(protein.ID, "type", "protein", network.TypeString)

	untyped := net.AddNode("X", "P0")

	issues := u.Update(context.Background(), net)
	assert.Empty(t, issues)

	t.Run("Protein family members resolved to symbols", func(t *testing.T) {
		attr, ok := net.NodeAttribute(family.ID, "member")
		require.True(t, ok)
		assert.Equal(t, []string{"hgnc.symbol:JAK1", "hgnc.symbol:JAK2"}, attr.Value)
		assert.Equal(t, network.TypeListOfString, attr.Type)
	})

	t.Run("Complex members expand SIGNOR-PF references", func(t *testing.T) {
		attr, ok := net.NodeAttribute(cmplx.ID, "member")
		require.True(t, ok)
		assert.Equal(t, []string{
			"hgnc.symbol:MTOR", "hgnc.symbol:JAK1", "hgnc.symbol:JAK2",
		}, attr.Value)
	})

	t.Run("Plain proteins and untyped nodes untouched", func(t *testing.T) {
		_, ok := net.NodeAttribute(protein.ID, "member")
		assert.False(t, ok)
		_, ok = net.NodeAttribute(untyped.ID, "member")
		assert.False(t, ok)
	})
}

func TestMemberUpdater_Issues(t *testing.T) {
	pf := signor.EntityMap{
		"Known family": {"P1", "SIGNOR-PF404"},
		"Ghost family": {"NOHIT"},
	}
	searcher := &fakeSearcher{
		symbols:  map[string]string{"P1": "GENE1"},
		failures: map[string]bool{"BROKEN": true},
	}
	u := NewMemberUpdater(pf, signor.EntityMap{"Err complex": {"BROKEN"}}, searcher)

	net := network.NewNetwork()
	unmapped := net.AddNode("Unknown family", "SIGNOR-PF2")
	net.SetNodeAttribute(unmapped.ID, "type", "proteinfamily", network.TypeString)

	known := net.AddNode("Known family", "SIGNOR-PF3")
	net.SetNodeAttribute(known.ID, "type", "proteinfamily", network.TypeString)

	ghost := net.AddNode("Ghost family", "SIGNOR-PF4")
	net.SetNodeAttribute(ghost.ID, "type", "proteinfamily", network.TypeString)

	broken := net.AddNode("Err complex", "SIGNOR-C2")
	net.SetNodeAttribute(broken.ID, "type", "complex", network.TypeString)

	issues := u.Update(context.Background(), net)

	t.Run("Missing map entry reported", func(t *testing.T) {
		assert.Contains(t, issues, "No entry in proteinfamily map for node: Unknown family")
	})

	t.Run("Dangling SIGNOR reference reported, symbol still written", func(t *testing.T) {
		assert.Contains(t, issues,
			"Protein id: SIGNOR-PF404 matched prefix SIGNOR-PF which is assumed "+
				"to be a reference to another entry, but none found. Skipping.")

		attr, ok := net.NodeAttribute(known.ID, "member")
		require.True(t, ok)
		assert.Equal(t, []string{"hgnc.symbol:GENE1"}, attr.Value)
	})

	t.Run("No symbols at all skips the attribute", func(t *testing.T) {
		_, ok := net.NodeAttribute(ghost.ID, "member")
		assert.False(t, ok)
		assert.Contains(t, issues,
			"Not a single gene symbol found. Skipping insertion of member attribute for node Ghost family")
	})

	t.Run("Searcher errors become issues", func(t *testing.T) {
		_, ok := net.NodeAttribute(broken.ID, "member")
		assert.False(t, ok)
		assert.Contains(t, issues,
			"For node Err complex gene symbol lookup failed for BROKEN: service unavailable. Skipping.")
	})
}
