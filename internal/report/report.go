// Package report collects the per-network issues found while loading.
package report

import (
	"sort"
	"strings"
)

// Report gathers the issues every update pass found on one network plus a
// tally of the node types seen, for the summary printed after a run.
type Report struct {
	networkName string

	// issue lists keyed by pass description, in first-seen order
	order    []string
	issueMap map[string][]string

	nodeTypes map[string]bool
}

// New creates an empty report for the named network.
func New(networkName string) *Report {
	return &Report{
		networkName: networkName,
		issueMap:    make(map[string][]string),
		nodeTypes:   make(map[string]bool),
	}
}

// NetworkName returns the name of the network this report covers.
func (r *Report) NetworkName() string {
	return r.networkName
}

// AddIssues records the issues of one pass. Empty issue lists and blank
// entries are dropped.
func (r *Report) AddIssues(description string, issues []string) {
	cleaned := make([]string, 0, len(issues))
	for _, issue := range issues {
		issue = strings.TrimSpace(issue)
		if issue == "" {
			continue
		}
		cleaned = append(cleaned, issue)
	}
	if len(cleaned) == 0 {
		return
	}

	if _, ok := r.issueMap[description]; !ok {
		r.order = append(r.order, description)
	}
	r.issueMap[description] = append(r.issueMap[description], cleaned...)
}

// AddNodeType records one node type seen in the network. Blank values are
// ignored.
func (r *Report) AddNodeType(nodeType string) {
	nodeType = strings.TrimSpace(nodeType)
	if nodeType == "" {
		return
	}
	r.nodeTypes[nodeType] = true
}

// NodeTypes returns the node types seen, sorted.
func (r *Report) NodeTypes() []string {
	types := make([]string, 0, len(r.nodeTypes))
	for t := range r.nodeTypes {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// IssueCount returns the total number of issues recorded.
func (r *Report) IssueCount() int {
	count := 0
	for _, issues := range r.issueMap {
		count += len(issues)
	}
	return count
}

// String renders the report as an indented text block: the network name,
// then each pass description with its issues.
func (r *Report) String() string {
	var b strings.Builder
	b.WriteString(r.networkName + "\n")
	for _, description := range r.order {
		b.WriteString("\t" + description + "\n")
		for _, issue := range r.issueMap[description] {
			b.WriteString("\t\t* " + issue + "\n")
		}
	}
	return b.String()
}

// CollectNodeTypes merges the node types of several reports into one
// sorted list.
func CollectNodeTypes(reports []*Report) []string {
	merged := make(map[string]bool)
	for _, r := range reports {
		if r == nil {
			continue
		}
		for t := range r.nodeTypes {
			merged[t] = true
		}
	}
	types := make([]string, 0, len(merged))
	for t := range merged {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
