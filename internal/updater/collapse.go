package updater

import (
	"context"
	"fmt"
	"strings"

	"github.com/ndexcontent/signorloader/internal/network"
)

const sentenceAttr = "sentence"

// EdgeCollapser merges edges sharing interaction, source and target into
// one edge. Attribute values of the group are combined into de-duplicated
// list_of_string values, except 'direct' which stays boolean. Sentences are
// prefixed with an HTML pubmed link built from the citation of the edge
// they came from, so the provenance of each sentence survives the merge.
type EdgeCollapser struct {
	pubmedURL string
}

// NewEdgeCollapser creates the pass.
func NewEdgeCollapser() *EdgeCollapser {
	return &EdgeCollapser{}
}

func (u *EdgeCollapser) Description() string {
	return "Collapses redundant edges"
}

// edgeKey identifies a group of collapsible edges.
type edgeKey struct {
	interaction    string
	source, target int64
}

func (u *EdgeCollapser) Update(ctx context.Context, net *network.Network) []string {
	if net == nil {
		return []string{nilNetworkIssue}
	}

	u.pubmedURL = ""
	if netCtx, err := net.Context(); err == nil {
		u.pubmedURL = netCtx["pubmed"]
	}

	// Group edges in insertion order so the surviving edge and the merged
	// value order are deterministic.
	groups := make(map[edgeKey][]int64)
	var keys []edgeKey
	for _, edge := range net.Edges() {
		key := edgeKey{interaction: edge.Interaction, source: edge.Source, target: edge.Target}
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], edge.ID)
	}

	var issues []string
	for _, key := range keys {
		issues = append(issues, u.collapseGroup(net, groups[key])...)
	}
	return issues
}

// mergedAttr accumulates the values one attribute takes across a group.
type mergedAttr struct {
	dtype  string
	values []any
	seen   map[string]bool
}

func (m *mergedAttr) add(value any) {
	for _, v := range flatten(value) {
		key := valueString(v)
		if m.seen[key] {
			continue
		}
		m.seen[key] = true
		m.values = append(m.values, v)
	}
}

func flatten(value any) []any {
	if list, ok := value.([]string); ok {
		out := make([]any, len(list))
		for i, v := range list {
			out[i] = v
		}
		return out
	}
	return []any{value}
}

func valueString(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

// collapseGroup merges all edges of one group into the first edge.
func (u *EdgeCollapser) collapseGroup(net *network.Network, edgeIDs []int64) []string {
	var issues []string
	baseID := edgeIDs[0]

	merged := make(map[string]*mergedAttr)
	var order []string
	for _, attr := range net.EdgeAttributes(baseID) {
		m := &mergedAttr{dtype: attr.Type, seen: make(map[string]bool)}
		value := attr.Value
		if attr.Name == sentenceAttr {
			value = u.prefixSentence(net, baseID, value)
		}
		m.add(value)
		merged[attr.Name] = m
		order = append(order, attr.Name)
	}

	for _, edgeID := range edgeIDs[1:] {
		for _, attr := range net.EdgeAttributes(edgeID) {
			m, ok := merged[attr.Name]
			if !ok {
				issues = append(issues, fmt.Sprintf(
					"Found unexpected new attribute %s in edge %d", attr.Name, edgeID))
				break
			}
			value := attr.Value
			if attr.Name == sentenceAttr {
				value = u.prefixSentence(net, edgeID, value)
			}
			m.add(value)
		}
		net.RemoveEdge(edgeID)
	}

	for _, name := range order {
		m := merged[name]
		if name == directAttr {
			if len(m.values) > 1 {
				issues = append(issues, fmt.Sprintf(
					"direct attribute has multiple values: %v", m.values))
			}
			net.SetEdgeAttribute(baseID, name, m.values[0], network.TypeBoolean)
			continue
		}
		list := make([]string, len(m.values))
		for i, v := range m.values {
			list[i] = valueString(v)
		}
		net.SetEdgeAttribute(baseID, name, list, network.TypeListOfString)
	}

	return issues
}

// prefixSentence prepends the pubmed links of an edge's citation to its
// sentence value(s).
func (u *EdgeCollapser) prefixSentence(net *network.Network, edgeID int64, value any) any {
	citation, ok := net.EdgeAttribute(edgeID, citationAttr)
	if !ok {
		return value
	}
	prefix := u.citationLinks(citation.Value)
	if prefix == "" {
		return value
	}

	switch v := value.(type) {
	case string:
		return prefix + v
	case []string:
		out := make([]string, len(v))
		for i, s := range v {
			out[i] = prefix + s
		}
		return out
	default:
		return value
	}
}

// citationLinks renders the citation entries as HTML anchors, each with a
// trailing space. An empty pubmed URL disables the links.
func (u *EdgeCollapser) citationLinks(value any) string {
	if u.pubmedURL == "" {
		return ""
	}

	var entries []string
	switch v := value.(type) {
	case string:
		entries = []string{v}
	case []string:
		entries = v
	default:
		return ""
	}

	var b strings.Builder
	for _, entry := range entries {
		id := entry
		if idx := strings.LastIndex(entry, ":"); idx >= 0 {
			id = entry[idx+1:]
		}
		b.WriteString(citationHTMLFragment(u.pubmedURL, id) + " ")
	}
	return b.String()
}

func citationHTMLFragment(pubmedURL, pubmedID string) string {
	return `<a target="_blank" href="` + pubmedURL + pubmedID +
		`">pubmed:` + pubmedID + `</a>`
}
