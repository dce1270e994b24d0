package network

import (
	"encoding/json"
	"errors"
	"fmt"
)

// CX attribute data types. String is the wire default and may be omitted.
const (
	TypeString       = "string"
	TypeBoolean      = "boolean"
	TypeInteger      = "integer"
	TypeDouble       = "double"
	TypeListOfString = "list_of_string"
)

// ErrAttributeNotFound is returned when a named attribute does not exist.
var ErrAttributeNotFound = errors.New("attribute not found")

// Node represents a biological entity in the network.
type Node struct {
	ID         int64
	Name       string
	Represents string
}

// Edge represents a directed interaction between two nodes.
type Edge struct {
	ID          int64
	Source      int64
	Target      int64
	Interaction string
}

// Attribute is a typed name/value pair attached to a node, edge or the network.
// Value holds a string, bool, int, float64 or []string depending on Type.
type Attribute struct {
	Name  string
	Value any
	Type  string
}

// CartesianCoordinate is a node position in the cartesianLayout aspect.
// The y axis grows downward.
type CartesianCoordinate struct {
	Node int64   `json:"node"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Network manages nodes, edges and their attributes, preserving insertion
// order so the emitted CX is deterministic.
type Network struct {
	nodes []*Node
	edges []*Edge

	nodeIndex map[int64]*Node
	edgeIndex map[int64]*Edge

	// Index for faster lookup: Name -> ID
	// Useful for de-duplicating nodes while converting table rows.
	nameIndex map[string]int64

	nodeAttrs map[int64][]*Attribute
	edgeAttrs map[int64][]*Attribute
	netAttrs  []*Attribute

	layout      []CartesianCoordinate
	visualProps []json.RawMessage

	nextNodeID int64
	nextEdgeID int64
}

// NewNetwork creates an empty network.
func NewNetwork() *Network {
	return &Network{
		nodes:     []*Node{},
		edges:     []*Edge{},
		nodeIndex: make(map[int64]*Node),
		edgeIndex: make(map[int64]*Edge),
		nameIndex: make(map[string]int64),
		nodeAttrs: make(map[int64][]*Attribute),
		edgeAttrs: make(map[int64][]*Attribute),
	}
}

// AddNode creates a node with the next free ID and indexes it by name.
func (n *Network) AddNode(name, represents string) *Node {
	node := &Node{
		ID:         n.nextNodeID,
		Name:       name,
		Represents: represents,
	}
	n.nextNodeID++
	n.nodes = append(n.nodes, node)
	n.nodeIndex[node.ID] = node
	if _, ok := n.nameIndex[name]; !ok {
		n.nameIndex[name] = node.ID
	}
	return node
}

// NodeByName returns the first node added under the given name.
func (n *Network) NodeByName(name string) (*Node, bool) {
	id, ok := n.nameIndex[name]
	if !ok {
		return nil, false
	}
	return n.nodeIndex[id], true
}

// Node returns the node with the given ID.
func (n *Network) Node(id int64) (*Node, bool) {
	node, ok := n.nodeIndex[id]
	return node, ok
}

// AddEdge creates an edge between two existing nodes. Both endpoints must
// already be in the network.
func (n *Network) AddEdge(source, target int64, interaction string) (*Edge, error) {
	if _, ok := n.nodeIndex[source]; !ok {
		return nil, fmt.Errorf("source node %d not in network", source)
	}
	if _, ok := n.nodeIndex[target]; !ok {
		return nil, fmt.Errorf("target node %d not in network", target)
	}
	edge := &Edge{
		ID:          n.nextEdgeID,
		Source:      source,
		Target:      target,
		Interaction: interaction,
	}
	n.nextEdgeID++
	n.edges = append(n.edges, edge)
	n.edgeIndex[edge.ID] = edge
	return edge, nil
}

// Edge returns the edge with the given ID.
func (n *Network) Edge(id int64) (*Edge, bool) {
	edge, ok := n.edgeIndex[id]
	return edge, ok
}

// RemoveEdge deletes an edge and all of its attributes.
func (n *Network) RemoveEdge(id int64) {
	if _, ok := n.edgeIndex[id]; !ok {
		return
	}
	delete(n.edgeIndex, id)
	delete(n.edgeAttrs, id)
	for i, e := range n.edges {
		if e.ID == id {
			n.edges = append(n.edges[:i], n.edges[i+1:]...)
			break
		}
	}
}

// Nodes returns all nodes in insertion order.
func (n *Network) Nodes() []*Node {
	return n.nodes
}

// Edges returns all edges in insertion order.
func (n *Network) Edges() []*Edge {
	return n.edges
}

func (n *Network) NodeCount() int {
	return len(n.nodes)
}

func (n *Network) EdgeCount() int {
	return len(n.edges)
}

// setAttribute replaces an existing attribute with the same name or appends.
func setAttribute(attrs []*Attribute, name string, value any, dtype string) []*Attribute {
	for _, a := range attrs {
		if a.Name == name {
			a.Value = value
			a.Type = dtype
			return attrs
		}
	}
	return append(attrs, &Attribute{Name: name, Value: value, Type: dtype})
}

func getAttribute(attrs []*Attribute, name string) (*Attribute, bool) {
	for _, a := range attrs {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

func removeAttribute(attrs []*Attribute, name string) []*Attribute {
	for i, a := range attrs {
		if a.Name == name {
			return append(attrs[:i], attrs[i+1:]...)
		}
	}
	return attrs
}

// SetNodeAttribute sets or replaces a node attribute.
func (n *Network) SetNodeAttribute(nodeID int64, name string, value any, dtype string) {
	n.nodeAttrs[nodeID] = setAttribute(n.nodeAttrs[nodeID], name, value, dtype)
}

// NodeAttribute returns the named attribute of a node.
func (n *Network) NodeAttribute(nodeID int64, name string) (*Attribute, bool) {
	return getAttribute(n.nodeAttrs[nodeID], name)
}

// NodeAttributes returns all attributes of a node.
func (n *Network) NodeAttributes(nodeID int64) []*Attribute {
	return n.nodeAttrs[nodeID]
}

// RemoveNodeAttribute deletes the named attribute from a node.
func (n *Network) RemoveNodeAttribute(nodeID int64, name string) {
	n.nodeAttrs[nodeID] = removeAttribute(n.nodeAttrs[nodeID], name)
}

// SetEdgeAttribute sets or replaces an edge attribute.
func (n *Network) SetEdgeAttribute(edgeID int64, name string, value any, dtype string) {
	n.edgeAttrs[edgeID] = setAttribute(n.edgeAttrs[edgeID], name, value, dtype)
}

// EdgeAttribute returns the named attribute of an edge.
func (n *Network) EdgeAttribute(edgeID int64, name string) (*Attribute, bool) {
	return getAttribute(n.edgeAttrs[edgeID], name)
}

// EdgeAttributes returns all attributes of an edge.
func (n *Network) EdgeAttributes(edgeID int64) []*Attribute {
	return n.edgeAttrs[edgeID]
}

// RemoveEdgeAttribute deletes the named attribute from an edge.
func (n *Network) RemoveEdgeAttribute(edgeID int64, name string) {
	n.edgeAttrs[edgeID] = removeAttribute(n.edgeAttrs[edgeID], name)
}

// SetNetworkAttribute sets or replaces a network attribute.
func (n *Network) SetNetworkAttribute(name string, value any, dtype string) {
	n.netAttrs = setAttribute(n.netAttrs, name, value, dtype)
}

// NetworkAttribute returns the named network attribute.
func (n *Network) NetworkAttribute(name string) (*Attribute, bool) {
	return getAttribute(n.netAttrs, name)
}

// NetworkAttributes returns all network attributes in insertion order.
func (n *Network) NetworkAttributes() []*Attribute {
	return n.netAttrs
}

// Name returns the value of the 'name' network attribute.
func (n *Network) Name() string {
	attr, ok := n.NetworkAttribute("name")
	if !ok {
		return ""
	}
	s, _ := attr.Value.(string)
	return s
}

// SetName sets the 'name' network attribute.
func (n *Network) SetName(name string) {
	n.SetNetworkAttribute("name", name, TypeString)
}

// SetContext stores the namespace map as the '@context' network attribute,
// JSON encoded the way NDEx expects it.
func (n *Network) SetContext(ctx map[string]string) error {
	raw, err := json.Marshal(ctx)
	if err != nil {
		return err
	}
	n.SetNetworkAttribute("@context", string(raw), TypeString)
	return nil
}

// Context decodes the '@context' network attribute back into a namespace map.
func (n *Network) Context() (map[string]string, error) {
	attr, ok := n.NetworkAttribute("@context")
	if !ok {
		return nil, fmt.Errorf("@context: %w", ErrAttributeNotFound)
	}
	s, ok := attr.Value.(string)
	if !ok {
		return nil, fmt.Errorf("@context attribute is not a string")
	}
	var ctx map[string]string
	if err := json.Unmarshal([]byte(s), &ctx); err != nil {
		return nil, fmt.Errorf("failed to decode @context: %w", err)
	}
	return ctx, nil
}

// SetCartesianLayout replaces the cartesianLayout aspect.
func (n *Network) SetCartesianLayout(coords []CartesianCoordinate) {
	n.layout = coords
}

// CartesianLayout returns the cartesianLayout aspect.
func (n *Network) CartesianLayout() []CartesianCoordinate {
	return n.layout
}

// SetVisualProperties replaces the cyVisualProperties aspect with raw
// CX elements.
func (n *Network) SetVisualProperties(props []json.RawMessage) {
	n.visualProps = props
}

// VisualProperties returns the raw cyVisualProperties aspect elements.
func (n *Network) VisualProperties() []json.RawMessage {
	return n.visualProps
}

// ApplyStyleFrom copies the visual style of a template network.
func (n *Network) ApplyStyleFrom(template *Network) {
	if template == nil {
		return
	}
	props := template.VisualProperties()
	if len(props) == 0 {
		return
	}
	copied := make([]json.RawMessage, len(props))
	copy(copied, props)
	n.visualProps = copied
}
