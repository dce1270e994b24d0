package loadplan

import (
	"strings"
	"testing"

	"github.com/ndexcontent/signorloader/internal/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlan() *LoadPlan {
	return &LoadPlan{
		Context: map[string]string{"pubmed": "https://www.ncbi.nlm.nih.gov/pubmed/"},
		SourcePlan: &NodePlan{
			NodeNameColumn: "ENTITYA",
			RepColumn:      "IDA",
			PropertyColumns: []PropertyColumn{
				{ColumnName: "TYPEA", AttributeName: "type"},
				{ColumnName: "DATABASEA", AttributeName: "DATABASE"},
				{ColumnName: "REGULATOR_LOCATION", AttributeName: "location"},
			},
		},
		TargetPlan: &NodePlan{
			NodeNameColumn: "ENTITYB",
			RepColumn:      "IDB",
			PropertyColumns: []PropertyColumn{
				{ColumnName: "TYPEB", AttributeName: "type"},
				{ColumnName: "DATABASEB", AttributeName: "DATABASE"},
				{ColumnName: "TARGET_LOCATION", AttributeName: "location"},
			},
		},
		EdgePlan: &EdgePlan{
			PredicateIDColumn: "EFFECT",
			DefaultPredicate:  "interacts with",
			PropertyColumns: []PropertyColumn{
				{ColumnName: "PMID", AttributeName: "citation", DataType: "list_of_string", ValuePrefix: "pubmed"},
				{ColumnName: "DIRECT", AttributeName: "direct"},
				{ColumnName: "SENTENCE", AttributeName: "sentence"},
			},
		},
	}
}

func readTestTable(t *testing.T, rows ...string) *Table {
	t.Helper()
	header := "entitya\tida\ttypea\tdatabasea\tregulator_location\t" +
		"entityb\tidb\ttypeb\tdatabaseb\ttarget_location\t" +
		"effect\tpmid\tdirect\tsentence"
	input := header + "\n" + strings.Join(rows, "\n") + "\n"
	table, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	return table
}

func TestConvert(t *testing.T) {
	table := readTestTable(t,
		"JAK1\tP23458\tprotein\tUNIPROT\treceptor\tSTAT1\tP42224\tprotein\tUNIPROT\tcytoplasm\tup-regulates\t12345\tt\tJAK1 activates STAT1",
		"STAT1\tP42224\tprotein\tUNIPROT\tcytoplasm\tMYC\tP01106\tprotein\tUNIPROT\tfactor\tdown-regulates\t-1,67890\tf\t",
	)

	net, err := Convert(table, testPlan())
	require.NoError(t, err)

	t.Run("Nodes de-duplicated by name", func(t *testing.T) {
		assert.Equal(t, 3, net.NodeCount())
		node, ok := net.NodeByName("STAT1")
		require.True(t, ok)
		assert.Equal(t, "P42224", node.Represents)
	})

	t.Run("Node attributes from first mention", func(t *testing.T) {
		node, _ := net.NodeByName("JAK1")
		attr, ok := net.NodeAttribute(node.ID, "location")
		require.True(t, ok)
		assert.Equal(t, "receptor", attr.Value)

		attr, ok = net.NodeAttribute(node.ID, "DATABASE")
		require.True(t, ok)
		assert.Equal(t, "UNIPROT", attr.Value)
	})

	t.Run("One edge per row", func(t *testing.T) {
		require.Equal(t, 2, net.EdgeCount())
		assert.Equal(t, "up-regulates", net.Edges()[0].Interaction)
		assert.Equal(t, "down-regulates", net.Edges()[1].Interaction)
	})

	t.Run("Citation list gets pubmed prefix", func(t *testing.T) {
		attr, ok := net.EdgeAttribute(net.Edges()[1].ID, "citation")
		require.True(t, ok)
		assert.Equal(t, []string{"pubmed:-1", "pubmed:67890"}, attr.Value)
		assert.Equal(t, network.TypeListOfString, attr.Type)
	})

	t.Run("Direct stays a raw string", func(t *testing.T) {
		attr, ok := net.EdgeAttribute(net.Edges()[0].ID, "direct")
		require.True(t, ok)
		assert.Equal(t, "t", attr.Value)
		assert.Equal(t, network.TypeString, attr.Type)
	})

	t.Run("Empty cells write no attribute", func(t *testing.T) {
		_, ok := net.EdgeAttribute(net.Edges()[1].ID, "sentence")
		assert.False(t, ok)
	})

	t.Run("Context is set", func(t *testing.T) {
		ctx, err := net.Context()
		require.NoError(t, err)
		assert.Contains(t, ctx, "pubmed")
	})
}

func TestConvert_DropsRowsMissingEndpoints(t *testing.T) {
	table := readTestTable(t,
		"JAK1\tP23458\tprotein\tUNIPROT\treceptor\t\tP42224\tprotein\tUNIPROT\tcytoplasm\tup-regulates\t12345\tt\t",
		"\tP23458\tprotein\tUNIPROT\treceptor\tSTAT1\tP42224\tprotein\tUNIPROT\tcytoplasm\tup-regulates\t12345\tt\t",
		"JAK1\tP23458\tprotein\tUNIPROT\treceptor\tSTAT1\tP42224\tprotein\tUNIPROT\tcytoplasm\tup-regulates\t12345\tt\t",
	)

	net, err := Convert(table, testPlan())
	require.NoError(t, err)
	assert.Equal(t, 2, net.NodeCount())
	assert.Equal(t, 1, net.EdgeCount())
}

func TestConvert_DefaultPredicate(t *testing.T) {
	table := readTestTable(t,
		"JAK1\tP23458\tprotein\tUNIPROT\treceptor\tSTAT1\tP42224\tprotein\tUNIPROT\tcytoplasm\t\t12345\tt\t",
	)

	net, err := Convert(table, testPlan())
	require.NoError(t, err)
	require.Equal(t, 1, net.EdgeCount())
	assert.Equal(t, "interacts with", net.Edges()[0].Interaction)
}

func TestConvert_MissingLocationColumn(t *testing.T) {
	// Full species tables have no location columns at all.
	header := "entitya\tida\tentityb\tidb\teffect"
	input := header + "\nJAK1\tP23458\tSTAT1\tP42224\tup-regulates\n"
	table, err := Read(strings.NewReader(input))
	require.NoError(t, err)

	plan := testPlan().WithoutColumns("REGULATOR_LOCATION", "TARGET_LOCATION")
	net, err := Convert(table, plan)
	require.NoError(t, err)

	node, ok := net.NodeByName("JAK1")
	require.True(t, ok)
	_, ok = net.NodeAttribute(node.ID, "location")
	assert.False(t, ok)
}
