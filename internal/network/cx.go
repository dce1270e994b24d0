package network

import (
	"encoding/json"
	"fmt"
)

// The CX format is a JSON array of single-key fragments, one per aspect.
// See https://cytoscape.org/cx for the aspect definitions used here.

const cxNumberVerificationValue = 281474976710655

type cxNode struct {
	ID         int64  `json:"@id"`
	Name       string `json:"n,omitempty"`
	Represents string `json:"r,omitempty"`
}

type cxEdge struct {
	ID          int64  `json:"@id"`
	Source      int64  `json:"s"`
	Target      int64  `json:"t"`
	Interaction string `json:"i,omitempty"`
}

type cxNetworkAttribute struct {
	Name  string          `json:"n"`
	Value json.RawMessage `json:"v"`
	Type  string          `json:"d,omitempty"`
}

type cxElementAttribute struct {
	Owner int64           `json:"po"`
	Name  string          `json:"n"`
	Value json.RawMessage `json:"v"`
	Type  string          `json:"d,omitempty"`
}

type cxMetaDataEntry struct {
	Name             string `json:"name"`
	ElementCount     int64  `json:"elementCount"`
	IDCounter        int64  `json:"idCounter,omitempty"`
	Version          string `json:"version"`
	ConsistencyGroup int64  `json:"consistencyGroup"`
}

type cxNumberVerification struct {
	LongNumber int64 `json:"longNumber"`
}

type cxStatus struct {
	Error   string `json:"error"`
	Success bool   `json:"success"`
}

// encodeAttributeValue marshals an attribute value and returns the wire
// data type ('d' field), which is omitted for plain strings.
func encodeAttributeValue(a *Attribute) (json.RawMessage, string, error) {
	raw, err := json.Marshal(a.Value)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode attribute %q: %w", a.Name, err)
	}
	dtype := a.Type
	if dtype == TypeString {
		dtype = ""
	}
	return raw, dtype, nil
}

// decodeAttributeValue reverses encodeAttributeValue using the declared type.
func decodeAttributeValue(raw json.RawMessage, dtype string) (any, string, error) {
	switch dtype {
	case "", TypeString:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, "", err
		}
		return s, TypeString, nil
	case TypeBoolean:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, "", err
		}
		return b, TypeBoolean, nil
	case TypeInteger:
		var i int
		if err := json.Unmarshal(raw, &i); err != nil {
			return nil, "", err
		}
		return i, TypeInteger, nil
	case TypeDouble:
		var f float64
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, "", err
		}
		return f, TypeDouble, nil
	case TypeListOfString:
		var list []string
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, "", err
		}
		return list, TypeListOfString, nil
	default:
		return nil, "", fmt.Errorf("unsupported attribute data type %q", dtype)
	}
}

func (n *Network) collectNodeAttributes() ([]cxElementAttribute, error) {
	var out []cxElementAttribute
	for _, node := range n.nodes {
		for _, a := range n.nodeAttrs[node.ID] {
			raw, dtype, err := encodeAttributeValue(a)
			if err != nil {
				return nil, err
			}
			out = append(out, cxElementAttribute{Owner: node.ID, Name: a.Name, Value: raw, Type: dtype})
		}
	}
	return out, nil
}

func (n *Network) collectEdgeAttributes() ([]cxElementAttribute, error) {
	var out []cxElementAttribute
	for _, edge := range n.edges {
		for _, a := range n.edgeAttrs[edge.ID] {
			raw, dtype, err := encodeAttributeValue(a)
			if err != nil {
				return nil, err
			}
			out = append(out, cxElementAttribute{Owner: edge.ID, Name: a.Name, Value: raw, Type: dtype})
		}
	}
	return out, nil
}

// ToCX serializes the network as a CX document.
func (n *Network) ToCX() ([]byte, error) {
	nodes := make([]cxNode, 0, len(n.nodes))
	for _, node := range n.nodes {
		nodes = append(nodes, cxNode{ID: node.ID, Name: node.Name, Represents: node.Represents})
	}

	edges := make([]cxEdge, 0, len(n.edges))
	for _, edge := range n.edges {
		edges = append(edges, cxEdge{ID: edge.ID, Source: edge.Source, Target: edge.Target, Interaction: edge.Interaction})
	}

	netAttrs := make([]cxNetworkAttribute, 0, len(n.netAttrs))
	for _, a := range n.netAttrs {
		raw, dtype, err := encodeAttributeValue(a)
		if err != nil {
			return nil, err
		}
		netAttrs = append(netAttrs, cxNetworkAttribute{Name: a.Name, Value: raw, Type: dtype})
	}

	nodeAttrs, err := n.collectNodeAttributes()
	if err != nil {
		return nil, err
	}
	edgeAttrs, err := n.collectEdgeAttributes()
	if err != nil {
		return nil, err
	}

	// Aspects are emitted in a fixed order so output is reproducible.
	type aspect struct {
		name     string
		elements any
		count    int64
		counter  int64
	}
	aspects := []aspect{
		{name: "networkAttributes", elements: netAttrs, count: int64(len(netAttrs))},
		{name: "nodes", elements: nodes, count: int64(len(nodes)), counter: n.nextNodeID},
		{name: "edges", elements: edges, count: int64(len(edges)), counter: n.nextEdgeID},
		{name: "nodeAttributes", elements: nodeAttrs, count: int64(len(nodeAttrs))},
		{name: "edgeAttributes", elements: edgeAttrs, count: int64(len(edgeAttrs))},
		{name: "cartesianLayout", elements: n.layout, count: int64(len(n.layout))},
		{name: "cyVisualProperties", elements: n.visualProps, count: int64(len(n.visualProps))},
	}

	var metadata []cxMetaDataEntry
	for _, a := range aspects {
		if a.count == 0 {
			continue
		}
		metadata = append(metadata, cxMetaDataEntry{
			Name:             a.name,
			ElementCount:     a.count,
			IDCounter:        a.counter,
			Version:          "1.0",
			ConsistencyGroup: 1,
		})
	}

	fragments := []any{
		map[string][]cxNumberVerification{"numberVerification": {{LongNumber: cxNumberVerificationValue}}},
		map[string][]cxMetaDataEntry{"metaData": metadata},
	}
	for _, a := range aspects {
		if a.count == 0 {
			continue
		}
		fragments = append(fragments, map[string]any{a.name: a.elements})
	}
	fragments = append(fragments, map[string][]cxStatus{"status": {{Error: "", Success: true}}})

	return json.Marshal(fragments)
}

// FromCX parses a CX document into a Network. Aspects this loader does not
// use (cySubNetworks, cyGroups and friends) are ignored.
func FromCX(data []byte) (*Network, error) {
	var fragments []map[string]json.RawMessage
	if err := json.Unmarshal(data, &fragments); err != nil {
		return nil, fmt.Errorf("failed to parse CX document: %w", err)
	}

	n := NewNetwork()
	var nodeAttrs, edgeAttrs []cxElementAttribute

	for _, fragment := range fragments {
		for name, raw := range fragment {
			switch name {
			case "nodes":
				var nodes []cxNode
				if err := json.Unmarshal(raw, &nodes); err != nil {
					return nil, fmt.Errorf("failed to parse nodes aspect: %w", err)
				}
				for _, cn := range nodes {
					node := &Node{ID: cn.ID, Name: cn.Name, Represents: cn.Represents}
					n.nodes = append(n.nodes, node)
					n.nodeIndex[node.ID] = node
					if _, ok := n.nameIndex[node.Name]; !ok {
						n.nameIndex[node.Name] = node.ID
					}
					if cn.ID >= n.nextNodeID {
						n.nextNodeID = cn.ID + 1
					}
				}
			case "edges":
				var edges []cxEdge
				if err := json.Unmarshal(raw, &edges); err != nil {
					return nil, fmt.Errorf("failed to parse edges aspect: %w", err)
				}
				for _, ce := range edges {
					edge := &Edge{ID: ce.ID, Source: ce.Source, Target: ce.Target, Interaction: ce.Interaction}
					n.edges = append(n.edges, edge)
					n.edgeIndex[edge.ID] = edge
					if ce.ID >= n.nextEdgeID {
						n.nextEdgeID = ce.ID + 1
					}
				}
			case "networkAttributes":
				var attrs []cxNetworkAttribute
				if err := json.Unmarshal(raw, &attrs); err != nil {
					return nil, fmt.Errorf("failed to parse networkAttributes aspect: %w", err)
				}
				for _, ca := range attrs {
					value, dtype, err := decodeAttributeValue(ca.Value, ca.Type)
					if err != nil {
						return nil, fmt.Errorf("network attribute %q: %w", ca.Name, err)
					}
					n.SetNetworkAttribute(ca.Name, value, dtype)
				}
			case "nodeAttributes":
				if err := json.Unmarshal(raw, &nodeAttrs); err != nil {
					return nil, fmt.Errorf("failed to parse nodeAttributes aspect: %w", err)
				}
			case "edgeAttributes":
				if err := json.Unmarshal(raw, &edgeAttrs); err != nil {
					return nil, fmt.Errorf("failed to parse edgeAttributes aspect: %w", err)
				}
			case "cartesianLayout":
				var coords []CartesianCoordinate
				if err := json.Unmarshal(raw, &coords); err != nil {
					return nil, fmt.Errorf("failed to parse cartesianLayout aspect: %w", err)
				}
				n.layout = coords
			case "cyVisualProperties", "visualProperties":
				var props []json.RawMessage
				if err := json.Unmarshal(raw, &props); err != nil {
					return nil, fmt.Errorf("failed to parse %s aspect: %w", name, err)
				}
				n.visualProps = props
			}
		}
	}

	// Element attributes may precede their owners in the stream, so they
	// are attached after every fragment is read.
	for _, ca := range nodeAttrs {
		value, dtype, err := decodeAttributeValue(ca.Value, ca.Type)
		if err != nil {
			return nil, fmt.Errorf("node attribute %q: %w", ca.Name, err)
		}
		n.SetNodeAttribute(ca.Owner, ca.Name, value, dtype)
	}
	for _, ca := range edgeAttrs {
		value, dtype, err := decodeAttributeValue(ca.Value, ca.Type)
		if err != nil {
			return nil, fmt.Errorf("edge attribute %q: %w", ca.Name, err)
		}
		n.SetEdgeAttribute(ca.Owner, ca.Name, value, dtype)
	}

	for _, edge := range n.edges {
		if _, ok := n.nodeIndex[edge.Source]; !ok {
			return nil, fmt.Errorf("edge %d references missing source node %d", edge.ID, edge.Source)
		}
		if _, ok := n.nodeIndex[edge.Target]; !ok {
			return nil, fmt.Errorf("edge %d references missing target node %d", edge.ID, edge.Target)
		}
	}

	return n, nil
}
