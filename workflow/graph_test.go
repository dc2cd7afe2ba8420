package workflow

import (
	"encoding/json"
	"testing"
)

// testTemplate builds a template graph following the conventional slot
// layout: four reference loaders paired with auto-crop nodes, two batch
// slots, an identity node, a pose loader, prompt encoders, and
// save/preview nodes.
func testTemplate() *Graph {
	data := []byte(`{
		"12": {"class_type": "LoadImage", "inputs": {"image": "ref_1.png"}},
		"13": {"class_type": "LoadImage", "inputs": {"image": "ref_2.png"}},
		"14": {"class_type": "LoadImage", "inputs": {"image": "ref_3.png"}},
		"15": {"class_type": "LoadImage", "inputs": {"image": "ref_4.png"}},
		"20": {"class_type": "AutoCropFaces", "inputs": {"image": ["12", 0]}},
		"21": {"class_type": "AutoCropFaces", "inputs": {"image": ["13", 0]}},
		"22": {"class_type": "AutoCropFaces", "inputs": {"image": ["14", 0]}},
		"23": {"class_type": "AutoCropFaces", "inputs": {"image": ["15", 0]}},
		"97": {"class_type": "ImageBatch", "inputs": {"image1": ["20", 0], "image2": ["22", 0]}},
		"98": {"class_type": "ImageBatch", "inputs": {"image1": ["21", 0], "image2": ["97", 0]}},
		"60": {"class_type": "ApplyInstantID", "inputs": {"image": ["98", 0], "image_kps": ["67", 0]}},
		"67": {"class_type": "LoadImage", "inputs": {"image": "pose_default.png"}},
		"6": {"class_type": "CLIPTextEncode", "inputs": {"text": "template positive"}},
		"7": {"class_type": "CLIPTextEncode", "inputs": {"text": "template negative"}},
		"8": {"class_type": "CLIPTextEncode", "inputs": {"text": "style boilerplate"}},
		"9": {"class_type": "SaveImage", "inputs": {"images": ["60", 0]}},
		"25": {"class_type": "PreviewImage", "inputs": {"images": ["60", 0]}}
	}`)
	g, err := ParseGraph(data)
	if err != nil {
		panic(err)
	}
	return g
}

func TestParseGraph(t *testing.T) {
	g := testTemplate()
	if len(g.Nodes) != 17 {
		t.Fatalf("expected 17 nodes, got %d", len(g.Nodes))
	}

	n, ok := g.Get("60")
	if !ok {
		t.Fatal("expected node 60")
	}
	if n.ClassType != "ApplyInstantID" {
		t.Errorf("expected ApplyInstantID, got %s", n.ClassType)
	}
	link, ok := n.InputLink("image")
	if !ok {
		t.Fatal("expected image input to be a link")
	}
	if link.Producer != "98" || link.Slot != 0 {
		t.Errorf("expected link to 98/0, got %+v", link)
	}
}

func TestParseGraph_HintsAndReservedKeys(t *testing.T) {
	data := []byte(`{
		"1": {"class_type": "LoadImage", "inputs": {"image": "x.png"}},
		"_meta": {"instantid_apply_node": "60", "save_nodes": ["9"], "prompt_nodes": {"positive": ["6"]}},
		"_comment": "not a node"
	}`)
	g, err := ParseGraph(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(g.Nodes) != 1 {
		t.Errorf("expected reserved keys skipped, got %d nodes", len(g.Nodes))
	}
	if g.Hints == nil {
		t.Fatal("expected hints parsed from _meta")
	}
	if g.Hints.IdentityApplyNode != "60" {
		t.Errorf("expected identity hint 60, got %q", g.Hints.IdentityApplyNode)
	}
	if g.Hints.PromptNodes == nil || len(g.Hints.PromptNodes.Positive) != 1 {
		t.Errorf("expected positive prompt hint, got %+v", g.Hints.PromptNodes)
	}
}

func TestParseGraph_Invalid(t *testing.T) {
	if _, err := ParseGraph([]byte(`not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestGraph_MarshalRoundTrip(t *testing.T) {
	g := testTemplate()
	g.Hints = &Hints{SaveNodes: []string{"9"}}

	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back, err := ParseGraph(data)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if len(back.Nodes) != len(g.Nodes) {
		t.Errorf("expected %d nodes, got %d", len(g.Nodes), len(back.Nodes))
	}
	if back.Hints == nil || len(back.Hints.SaveNodes) != 1 {
		t.Error("expected hints preserved through round trip")
	}
}

func TestGraph_CloneIsolation(t *testing.T) {
	g := testTemplate()
	clone := g.Clone()

	clone.Nodes["6"].SetInput("text", "mutated")
	clone.Remove("15")

	if text, _ := g.Nodes["6"].InputString("text"); text != "template positive" {
		t.Errorf("template mutated through clone: %q", text)
	}
	if !g.Has("15") {
		t.Error("template node removed through clone")
	}
}

func TestGraph_RemoveDetachesLinks(t *testing.T) {
	g := testTemplate()
	g.Remove("12")

	if g.Has("12") {
		t.Fatal("expected node 12 removed")
	}
	// Crop 20 consumed 12's output; its image input must be detached.
	if _, ok := g.Nodes["20"].Input("image"); ok {
		t.Error("expected dangling link in node 20 detached")
	}
	// Unrelated links survive.
	if _, ok := g.Nodes["21"].InputLink("image"); !ok {
		t.Error("expected node 21 link untouched")
	}
}

func TestGraph_PayloadExcludesHints(t *testing.T) {
	g := testTemplate()
	g.Hints = &Hints{Title: "test"}

	payload := g.Payload()
	if len(payload) != len(g.Nodes) {
		t.Errorf("expected %d payload entries, got %d", len(g.Nodes), len(payload))
	}

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if _, ok := raw["_meta"]; ok {
		t.Error("payload must not carry _meta")
	}
}

func TestNode_InputHelpers(t *testing.T) {
	n := &Node{ClassType: "LoadImage"}

	if _, ok := n.Input("image"); ok {
		t.Error("expected no input on empty node")
	}

	n.SetInput("image", "a.png")
	if s, ok := n.InputString("image"); !ok || s != "a.png" {
		t.Errorf("expected a.png, got %q ok=%v", s, ok)
	}
	if _, ok := n.InputLink("image"); ok {
		t.Error("string input must not decode as link")
	}

	n.LinkInput("image", "42", 1)
	link, ok := n.InputLink("image")
	if !ok {
		t.Fatal("expected link input")
	}
	if link.Producer != "42" || link.Slot != 1 {
		t.Errorf("expected 42/1, got %+v", link)
	}
}

func TestSortedIDs(t *testing.T) {
	g := NewGraph()
	g.Add("b", &Node{ClassType: "X"})
	g.Add("a", &Node{ClassType: "X"})
	g.Add("c", &Node{ClassType: "X"})

	ids := g.SortedIDs()
	if len(ids) != 3 || ids[0] != "a" || ids[1] != "b" || ids[2] != "c" {
		t.Errorf("expected sorted ids, got %v", ids)
	}
}
