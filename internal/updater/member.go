package updater

import (
	"context"
	"fmt"
	"strings"

	"github.com/ndexcontent/signorloader/internal/network"
	"github.com/ndexcontent/signorloader/internal/signor"
)

const (
	typeAttr   = "type"
	memberAttr = "member"

	proteinFamilyType = "proteinfamily"
	complexType       = "complex"

	signorPFPrefix = "SIGNOR-PF"
	signorCPrefix  = "SIGNOR-C"
)

// SymbolSearcher resolves an entity identifier to a gene symbol. An empty
// symbol with a nil error means the service had no match.
type SymbolSearcher interface {
	Symbol(ctx context.Context, id string) (string, error)
}

// MemberUpdater fills the 'member' attribute of protein family and complex
// nodes with the gene symbols of their member entities, using the entity
// maps downloaded from Signor and a gene symbol lookup service.
type MemberUpdater struct {
	proteinFamilies signor.EntityMap
	complexes       signor.EntityMap
	searcher        SymbolSearcher
}

// NewMemberUpdater creates the pass.
func NewMemberUpdater(proteinFamilies, complexes signor.EntityMap, searcher SymbolSearcher) *MemberUpdater {
	return &MemberUpdater{
		proteinFamilies: proteinFamilies,
		complexes:       complexes,
		searcher:        searcher,
	}
}

func (u *MemberUpdater) Description() string {
	return "Add genes to member node attribute for complexes and protein families"
}

func (u *MemberUpdater) Update(ctx context.Context, net *network.Network) []string {
	if net == nil {
		return []string{nilNetworkIssue}
	}

	var issues []string
	for _, node := range net.Nodes() {
		attr, ok := net.NodeAttribute(node.ID, typeAttr)
		if !ok {
			continue
		}
		nodeType, _ := attr.Value.(string)

		var entityMap signor.EntityMap
		switch nodeType {
		case proteinFamilyType:
			entityMap = u.proteinFamilies
		case complexType:
			entityMap = u.complexes
		default:
			continue
		}

		entities, ok := entityMap[node.Name]
		if !ok {
			issues = append(issues, fmt.Sprintf(
				"No entry in %s map for node: %s", nodeType, node.Name))
			continue
		}

		resolved, refIssues := u.resolveSignorRefs(entities)
		issues = append(issues, refIssues...)
		issues = append(issues, u.setMemberGenes(ctx, net, node, resolved)...)
	}

	return issues
}

// resolveSignorRefs expands SIGNOR-PF and SIGNOR-C references to their
// member entities, one level deep, de-duplicating the result.
func (u *MemberUpdater) resolveSignorRefs(entities []string) ([]string, []string) {
	var resolved, issues []string
	seen := make(map[string]bool)

	add := func(entity string) {
		if seen[entity] {
			return
		}
		seen[entity] = true
		resolved = append(resolved, entity)
	}

	for _, entity := range entities {
		switch {
		case strings.HasPrefix(entity, signorPFPrefix):
			members, ok := u.proteinFamilies[entity]
			if !ok {
				issues = append(issues, referenceIssue(entity, signorPFPrefix))
				continue
			}
			for _, m := range members {
				add(m)
			}
		case strings.HasPrefix(entity, signorCPrefix):
			members, ok := u.complexes[entity]
			if !ok {
				issues = append(issues, referenceIssue(entity, signorCPrefix))
				continue
			}
			for _, m := range members {
				add(m)
			}
		default:
			add(entity)
		}
	}
	return resolved, issues
}

func referenceIssue(entity, prefix string) string {
	return fmt.Sprintf("Protein id: %s matched prefix %s which is assumed "+
		"to be a reference to another entry, but none found. Skipping.",
		entity, prefix)
}

// setMemberGenes looks up the gene symbol of each entity and writes the
// member attribute. Entities without a symbol are skipped with an issue;
// if none resolve the attribute is not written at all.
func (u *MemberUpdater) setMemberGenes(ctx context.Context, net *network.Network, node *network.Node, entities []string) []string {
	if len(entities) == 0 {
		return []string{"No proteins obtained for node: " + node.Name}
	}

	var issues []string
	members := make([]string, 0, len(entities))
	for _, entity := range entities {
		symbol, err := u.searcher.Symbol(ctx, entity)
		if err != nil {
			issues = append(issues, fmt.Sprintf(
				"For node %s gene symbol lookup failed for %s: %v. Skipping.",
				node.Name, entity, err))
			continue
		}
		if symbol == "" {
			issues = append(issues, fmt.Sprintf(
				"For node %s No gene symbol found for %s. Skipping.",
				node.Name, entity))
			continue
		}
		members = append(members, "hgnc.symbol:"+symbol)
	}

	if len(members) == 0 {
		issues = append(issues, "Not a single gene symbol found. Skipping "+
			"insertion of member attribute for node "+node.Name)
		return issues
	}

	net.SetNodeAttribute(node.ID, memberAttr, members, network.TypeListOfString)
	return issues
}
