package loadplan

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed loadplan.json
var defaultPlan []byte

// PropertyColumn maps one table column onto an element attribute.
type PropertyColumn struct {
	ColumnName    string `json:"column_name"`
	AttributeName string `json:"attribute_name,omitempty"`
	DataType      string `json:"data_type,omitempty"`
	Delimiter     string `json:"delimiter,omitempty"`
	ValuePrefix   string `json:"value_prefix,omitempty"`
}

// Name returns the attribute name, falling back to the column name.
func (p PropertyColumn) Name() string {
	if p.AttributeName != "" {
		return p.AttributeName
	}
	return p.ColumnName
}

// NodePlan describes how to build one endpoint of an edge row.
type NodePlan struct {
	NodeNameColumn  string           `json:"node_name_column"`
	RepColumn       string           `json:"rep_column,omitempty"`
	PropertyColumns []PropertyColumn `json:"property_columns,omitempty"`
}

// EdgePlan describes how to build the edge of a row.
type EdgePlan struct {
	PredicateIDColumn string           `json:"predicate_id_column,omitempty"`
	DefaultPredicate  string           `json:"default_predicate,omitempty"`
	PropertyColumns   []PropertyColumn `json:"property_columns,omitempty"`
}

// LoadPlan maps the columns of a relations table onto network elements.
type LoadPlan struct {
	SourcePlan *NodePlan         `json:"source_plan"`
	TargetPlan *NodePlan         `json:"target_plan"`
	EdgePlan   *EdgePlan         `json:"edge_plan"`
	Context    map[string]string `json:"context,omitempty"`
}

// Default returns the load plan bundled with the binary.
func Default() (*LoadPlan, error) {
	return parse(defaultPlan)
}

// FromFile reads an alternate load plan from disk.
func FromFile(path string) (*LoadPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read load plan: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*LoadPlan, error) {
	var plan LoadPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse load plan: %w", err)
	}
	if err := plan.validate(); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (p *LoadPlan) validate() error {
	if p.SourcePlan == nil || p.TargetPlan == nil {
		return fmt.Errorf("load plan must define source_plan and target_plan")
	}
	if p.SourcePlan.NodeNameColumn == "" || p.TargetPlan.NodeNameColumn == "" {
		return fmt.Errorf("load plan node plans must define node_name_column")
	}
	if p.EdgePlan == nil {
		return fmt.Errorf("load plan must define edge_plan")
	}
	if p.EdgePlan.PredicateIDColumn == "" && p.EdgePlan.DefaultPredicate == "" {
		return fmt.Errorf("edge_plan needs predicate_id_column or default_predicate")
	}
	return nil
}

// WithoutColumns returns a deep copy with the named property columns removed
// from both node plans. Used for the full species tables, which lack the
// location columns of the per-pathway downloads.
func (p *LoadPlan) WithoutColumns(columns ...string) *LoadPlan {
	drop := make(map[string]bool, len(columns))
	for _, c := range columns {
		drop[c] = true
	}

	clone := &LoadPlan{
		SourcePlan: p.SourcePlan.without(drop),
		TargetPlan: p.TargetPlan.without(drop),
		EdgePlan: &EdgePlan{
			PredicateIDColumn: p.EdgePlan.PredicateIDColumn,
			DefaultPredicate:  p.EdgePlan.DefaultPredicate,
			PropertyColumns:   append([]PropertyColumn(nil), p.EdgePlan.PropertyColumns...),
		},
	}
	if p.Context != nil {
		clone.Context = make(map[string]string, len(p.Context))
		for k, v := range p.Context {
			clone.Context[k] = v
		}
	}
	return clone
}

func (np *NodePlan) without(drop map[string]bool) *NodePlan {
	clone := &NodePlan{
		NodeNameColumn: np.NodeNameColumn,
		RepColumn:      np.RepColumn,
	}
	for _, pc := range np.PropertyColumns {
		if drop[pc.ColumnName] {
			continue
		}
		clone.PropertyColumns = append(clone.PropertyColumns, pc)
	}
	return clone
}
