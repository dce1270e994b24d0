package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndexcontent/signorloader/internal/network"
	"github.com/ndexcontent/signorloader/internal/signor"
)

func fullSpeciesLoader(t *testing.T) *Loader {
	t.Helper()
	downloader := signor.NewDownloader(signor.NewClient("", "test"), t.TempDir())
	return New(downloader, &fakeNDEx{}, &fakeSearcher{}, Options{})
}

func TestWriteNetworkAttributes_FullOrganisms(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		organism string
		wantDesc string
	}{
		{
			name:     "Human",
			id:       "full_Human",
			organism: "Homo sapiens (human)",
			wantDesc: "This network contains all the Human interactions currently available in SIGNOR",
		},
		{
			name:     "Mouse",
			id:       "full_Mouse",
			organism: "Mus musculus (mouse)",
			wantDesc: "This network contains all the Mouse interactions currently available in SIGNOR",
		},
		{
			name:     "Rat",
			id:       "full_Rat",
			organism: "Rattus norvegicus (rat)",
			wantDesc: "This network contains all the Rat interactions currently available in SIGNOR",
		},
	}

	loader := fullSpeciesLoader(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			net := network.NewNetwork()
			err := loader.writeNetworkAttributes(net, tc.id, FullNetworkPrefix+" - "+tc.name, true)
			require.NoError(t, err)

			assert.Equal(t, tc.organism, networkAttrValue(t, net, "organism"))
			assert.Equal(t, tc.wantDesc, networkAttrValue(t, net, "description"))
		})
	}

	t.Run("Unknown organism", func(t *testing.T) {
		net := network.NewNetwork()
		err := loader.writeNetworkAttributes(net, "full_Platypus", FullNetworkPrefix+" - Platypus", true)
		require.NoError(t, err)

		_, ok := net.NetworkAttribute("organism")
		assert.False(t, ok)
		assert.Equal(t,
			"This network contains all the Unknown interactions currently available in SIGNOR",
			networkAttrValue(t, net, "description"))
	})

	t.Run("Only human full network is an interactome", func(t *testing.T) {
		net := network.NewNetwork()
		err := loader.writeNetworkAttributes(net, "full_Mouse", FullNetworkPrefix+" - Mouse", true)
		require.NoError(t, err)

		assert.Equal(t, []string{"pathway", "Signalling Pathway"},
			networkAttrValue(t, net, "networkType"))
	})
}

func TestWriteNetworkAttributes_MissingDescription(t *testing.T) {
	loader := fullSpeciesLoader(t)
	net := network.NewNetwork()

	err := loader.writeNetworkAttributes(net, "SIGNOR-NOPE", "NO SUCH PATHWAY", false)
	assert.Error(t, err)
}

func TestWriteNetworkAttributes_DescriptionWithoutAuthor(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "SIGNOR-AD_desc.txt",
		"SIGNOR ID\tPATHWAY NAME\tDESCRIPTION\tAUTHOR\n"+
			"SIGNOR-AD\tAlzheimer Disease\tAmyloid processing.\t\n")

	downloader := signor.NewDownloader(signor.NewClient("", "test"), dir)
	loader := New(downloader, &fakeNDEx{}, &fakeSearcher{}, Options{})

	net := network.NewNetwork()
	require.NoError(t, loader.writeNetworkAttributes(net, "SIGNOR-AD", "ALZHEIMER DISEASE", false))

	assert.Equal(t, "Alzheimer Disease", net.Name())
	_, ok := net.NetworkAttribute("author")
	assert.False(t, ok)

	// name from the description table drives the category lookup
	assert.Equal(t, []string{"pathway", "Disease Pathway"},
		networkAttrValue(t, net, "networkType"))
}

func TestNetworkType(t *testing.T) {
	tests := []struct {
		name        string
		networkName string
		isHumanFull bool
		want        []string
	}{
		{"Disease pathway", "Parkinson Disease", false, []string{"pathway", "Disease Pathway"}},
		{"Cancer pathway", "Prostate Cancer", false, []string{"pathway", "Cancer Pathway"}},
		{"Signalling pathway", "Insulin Signaling", false, []string{"pathway", "Signalling Pathway"}},
		{"Human interactome", "Signor Complete - Human", true, []string{"interactome", "pathway", "Signalling Pathway"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, networkType(tc.networkName, tc.isHumanFull))
		})
	}
}
