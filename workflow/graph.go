package workflow

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Link identifies the producing node and output slot feeding an input.
type Link struct {
	Producer string
	Slot     int
}

// NodeMeta carries display metadata attached to a node under "_meta".
type NodeMeta struct {
	Title string `json:"title,omitempty"`
}

// Node is a single typed processing step in a workflow graph.
// Input values are JSON scalars, lists, or links encoded as
// [producerID, outputSlot] pairs.
type Node struct {
	ClassType string         `json:"class_type"`
	Inputs    map[string]any `json:"inputs"`
	Meta      *NodeMeta      `json:"_meta,omitempty"`
}

// Input returns the raw value of an input field.
func (n *Node) Input(field string) (any, bool) {
	if n.Inputs == nil {
		return nil, false
	}
	v, ok := n.Inputs[field]
	return v, ok
}

// InputString returns an input value if it is a string literal.
func (n *Node) InputString(field string) (string, bool) {
	v, ok := n.Input(field)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// InputLink returns an input value if it is a link to another node's output.
// Links decode from JSON as [producerID, slot] pairs.
func (n *Node) InputLink(field string) (Link, bool) {
	v, ok := n.Input(field)
	if !ok {
		return Link{}, false
	}
	return asLink(v)
}

// SetInput sets an input field to a literal value.
func (n *Node) SetInput(field string, value any) {
	if n.Inputs == nil {
		n.Inputs = make(map[string]any)
	}
	n.Inputs[field] = value
}

// LinkInput sets an input field to a link to another node's output slot.
func (n *Node) LinkInput(field, producer string, slot int) {
	n.SetInput(field, []any{producer, slot})
}

// asLink interprets a raw input value as a link if it has the
// [string, number] wire shape.
func asLink(v any) (Link, bool) {
	pair, ok := v.([]any)
	if !ok || len(pair) != 2 {
		return Link{}, false
	}
	producer, ok := pair[0].(string)
	if !ok {
		return Link{}, false
	}
	switch slot := pair[1].(type) {
	case float64:
		return Link{Producer: producer, Slot: int(slot)}, true
	case int:
		return Link{Producer: producer, Slot: slot}, true
	default:
		return Link{}, false
	}
}

// Graph is an in-memory workflow graph: node ids mapped to nodes, plus
// optional advisory hints parsed from the template's top-level "_meta" key.
type Graph struct {
	Nodes map[string]*Node
	Hints *Hints
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{Nodes: make(map[string]*Node)}
}

// ParseGraph decodes a template graph from its JSON wire form: a flat
// object of node ids to nodes. Top-level keys starting with "_" are
// side-channel entries, not nodes; "_meta" is parsed into Hints and any
// other reserved key is dropped.
func ParseGraph(data []byte) (*Graph, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("workflow: parse graph: %w", err)
	}

	g := NewGraph()
	for key, msg := range raw {
		if strings.HasPrefix(key, "_") {
			if key == "_meta" {
				var h Hints
				if err := json.Unmarshal(msg, &h); err == nil {
					g.Hints = &h
				}
			}
			continue
		}
		var n Node
		if err := json.Unmarshal(msg, &n); err != nil {
			return nil, fmt.Errorf("workflow: parse node %q: %w", key, err)
		}
		g.Nodes[key] = &n
	}
	return g, nil
}

// MarshalJSON encodes the graph back to its wire form, including hints
// under "_meta" when present.
func (g *Graph) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(g.Nodes)+1)
	for id, n := range g.Nodes {
		out[id] = n
	}
	if g.Hints != nil {
		out["_meta"] = g.Hints
	}
	return json.Marshal(out)
}

// Clone returns a deep copy of the graph. Templates are cloned once per
// invocation so concurrent invocations never share mutable node state.
func (g *Graph) Clone() *Graph {
	data, err := json.Marshal(g)
	if err != nil {
		// Graphs are built from JSON and contain only JSON-encodable
		// values, so this only fires on programmer error.
		panic(fmt.Sprintf("workflow: clone graph: %v", err))
	}
	clone, err := ParseGraph(data)
	if err != nil {
		panic(fmt.Sprintf("workflow: clone graph: %v", err))
	}
	return clone
}

// Get returns the node with the given id.
func (g *Graph) Get(id string) (*Node, bool) {
	n, ok := g.Nodes[id]
	return n, ok
}

// Has reports whether a node with the given id exists.
func (g *Graph) Has(id string) bool {
	_, ok := g.Nodes[id]
	return ok
}

// Add inserts or replaces a node.
func (g *Graph) Add(id string, n *Node) {
	g.Nodes[id] = n
}

// Remove deletes a node and detaches any links in other nodes' inputs that
// referenced its outputs. Callers removing a node whose output is still
// required end up with a graph the remote engine rejects at submission
// time; no topological validation happens here.
func (g *Graph) Remove(id string) {
	delete(g.Nodes, id)
	for _, n := range g.Nodes {
		for field, v := range n.Inputs {
			if link, ok := asLink(v); ok && link.Producer == id {
				delete(n.Inputs, field)
			}
		}
	}
}

// SetInput sets a literal input on a node.
func (g *Graph) SetInput(id, field string, value any) error {
	n, ok := g.Nodes[id]
	if !ok {
		return fmt.Errorf("workflow: set input: node %q not found", id)
	}
	n.SetInput(field, value)
	return nil
}

// LinkInput links a node's input to another node's output slot.
func (g *Graph) LinkInput(id, field, producer string, slot int) error {
	n, ok := g.Nodes[id]
	if !ok {
		return fmt.Errorf("workflow: link input: node %q not found", id)
	}
	n.LinkInput(field, producer, slot)
	return nil
}

// Payload returns the node-only map used as the submission body.
// Side-channel hints are excluded: remote engines reject top-level
// entries that lack a class_type.
func (g *Graph) Payload() map[string]*Node {
	out := make(map[string]*Node, len(g.Nodes))
	for id, n := range g.Nodes {
		out[id] = n
	}
	return out
}

// SortedIDs returns node ids in sorted order. Resolver scans iterate in
// this order so heuristic matches are deterministic.
func (g *Graph) SortedIDs() []string {
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
