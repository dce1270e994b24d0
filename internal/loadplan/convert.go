package loadplan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ndexcontent/signorloader/internal/network"
)

// Convert builds a network from a relations table using the load plan.
// Rows missing either endpoint name are dropped. Nodes are de-duplicated by
// name; node attributes come from the first row that mentions the node.
func Convert(t *Table, plan *LoadPlan) (*network.Network, error) {
	if err := plan.validate(); err != nil {
		return nil, err
	}

	net := network.NewNetwork()
	if plan.Context != nil {
		if err := net.SetContext(plan.Context); err != nil {
			return nil, err
		}
	}

	for i := range t.Rows {
		srcName := strings.TrimSpace(t.Get(i, plan.SourcePlan.NodeNameColumn))
		tgtName := strings.TrimSpace(t.Get(i, plan.TargetPlan.NodeNameColumn))
		if srcName == "" || tgtName == "" {
			continue
		}

		src, err := ensureNode(net, t, i, plan.SourcePlan)
		if err != nil {
			return nil, err
		}
		tgt, err := ensureNode(net, t, i, plan.TargetPlan)
		if err != nil {
			return nil, err
		}

		interaction := strings.TrimSpace(t.Get(i, plan.EdgePlan.PredicateIDColumn))
		if interaction == "" {
			interaction = plan.EdgePlan.DefaultPredicate
		}

		edge, err := net.AddEdge(src.ID, tgt.ID, interaction)
		if err != nil {
			return nil, err
		}
		for _, pc := range plan.EdgePlan.PropertyColumns {
			value, dtype, ok, err := propertyValue(t.Get(i, pc.ColumnName), pc)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
			if !ok {
				continue
			}
			net.SetEdgeAttribute(edge.ID, pc.Name(), value, dtype)
		}
	}

	return net, nil
}

func ensureNode(net *network.Network, t *Table, row int, np *NodePlan) (*network.Node, error) {
	name := strings.TrimSpace(t.Get(row, np.NodeNameColumn))
	if node, ok := net.NodeByName(name); ok {
		return node, nil
	}

	represents := strings.TrimSpace(t.Get(row, np.RepColumn))
	node := net.AddNode(name, represents)
	for _, pc := range np.PropertyColumns {
		value, dtype, ok, err := propertyValue(t.Get(row, pc.ColumnName), pc)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		if !ok {
			continue
		}
		net.SetNodeAttribute(node.ID, pc.Name(), value, dtype)
	}
	return node, nil
}

// propertyValue converts a raw cell into a typed attribute value. Empty
// cells produce no attribute at all.
func propertyValue(raw string, pc PropertyColumn) (any, string, bool, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, "", false, nil
	}

	switch pc.DataType {
	case "", network.TypeString:
		return applyPrefix(value, pc.ValuePrefix), network.TypeString, true, nil
	case network.TypeListOfString:
		delimiter := pc.Delimiter
		if delimiter == "" {
			delimiter = ","
		}
		var list []string
		for _, item := range strings.Split(value, delimiter) {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			list = append(list, applyPrefix(item, pc.ValuePrefix))
		}
		if len(list) == 0 {
			return nil, "", false, nil
		}
		return list, network.TypeListOfString, true, nil
	case network.TypeBoolean:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, "", false, fmt.Errorf("column %s: %w", pc.ColumnName, err)
		}
		return b, network.TypeBoolean, true, nil
	case network.TypeInteger:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, "", false, fmt.Errorf("column %s: %w", pc.ColumnName, err)
		}
		return n, network.TypeInteger, true, nil
	case network.TypeDouble:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, "", false, fmt.Errorf("column %s: %w", pc.ColumnName, err)
		}
		return f, network.TypeDouble, true, nil
	default:
		return nil, "", false, fmt.Errorf("column %s: unsupported data type %q", pc.ColumnName, pc.DataType)
	}
}

func applyPrefix(value, prefix string) string {
	if prefix == "" {
		return value
	}
	return prefix + ":" + value
}
