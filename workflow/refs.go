package workflow

import (
	"fmt"

	"github.com/storyforge/renderkit/errors"
)

// MaxReferenceImages is the largest number of reference images a single
// invocation can wire; the batching primitive is binary, so topologies
// beyond three images have no conventional slot layout.
const MaxReferenceImages = 3

// WireReferenceImages rewires the template so exactly the supplied
// reference images feed the identity-conditioning node.
//
// The first N = max(1, len(images)) conventional loader slots survive and
// receive the image names in order; loaders beyond N are removed together
// with any paired auto-crop node, found by following the crop node's image
// input back to its producer. Each surviving loader's effective source is
// its paired crop when one exists, else the loader itself. The identity
// node's image input is then wired per N: a direct link for one source,
// one batch node for two, and a binary batch tree for three.
//
// A template with no loader slots at all is left untouched: not every
// template has a reference-image slot, and callers must tolerate that.
func WireReferenceImages(g *Graph, images []string, roles Roles) error {
	if len(images) > MaxReferenceImages {
		return errors.InvalidInput("reference_images",
			fmt.Sprintf("at most %d reference images are supported (got %d)", MaxReferenceImages, len(images)))
	}

	loaders := ResolveLoaders(g, roles)
	if len(loaders) == 0 {
		return nil
	}

	// At least one loader survives even with zero images so the graph
	// stays structurally valid; it keeps its template-authored filename.
	n := len(images)
	if n < 1 {
		n = 1
	}
	if n > len(loaders) {
		n = len(loaders)
	}
	kept, unused := loaders[:n], loaders[n:]

	for i, name := range images {
		if i >= len(kept) {
			break
		}
		node := g.Nodes[kept[i]]
		node.SetInput(roles.LoaderImageInput, name)
	}

	// Map loaders to their paired auto-crop nodes before any removal;
	// Remove detaches links, which would make the pairing unrecoverable.
	cropFor := make(map[string]string)
	for _, id := range g.SortedIDs() {
		node := g.Nodes[id]
		if !classIn(node.ClassType, roles.CropClassTypes) {
			continue
		}
		if link, ok := node.InputLink(roles.CropImageInput); ok {
			cropFor[link.Producer] = id
		}
	}

	for _, id := range unused {
		if crop, ok := cropFor[id]; ok {
			g.Remove(crop)
			delete(cropFor, id)
		}
		g.Remove(id)
	}

	sources := make([]Link, 0, n)
	for _, id := range kept {
		src := Link{Producer: id}
		if crop, ok := cropFor[id]; ok && g.Has(crop) {
			src = Link{Producer: crop}
		}
		sources = append(sources, src)
	}

	_, identity, err := ResolveIdentity(g, roles)
	if err != nil {
		return err
	}

	switch n {
	case 1:
		identity.LinkInput(roles.IdentityImageInput, sources[0].Producer, sources[0].Slot)
		removeBatchNode(g, roles, roles.BatchSlots[0])
		removeBatchNode(g, roles, roles.BatchSlots[1])

	case 2:
		batch, err := ensureBatchNode(g, roles, roles.BatchSlots[0])
		if err != nil {
			return err
		}
		batch.LinkInput(roles.BatchFirstInput, sources[0].Producer, sources[0].Slot)
		batch.LinkInput(roles.BatchSecondInput, sources[1].Producer, sources[1].Slot)
		removeBatchNode(g, roles, roles.BatchSlots[1])
		identity.LinkInput(roles.IdentityImageInput, roles.BatchSlots[0], 0)

	case 3:
		// Binary merge tree: batch(1st, 3rd), then batch(2nd, that).
		first, err := ensureBatchNode(g, roles, roles.BatchSlots[0])
		if err != nil {
			return err
		}
		first.LinkInput(roles.BatchFirstInput, sources[0].Producer, sources[0].Slot)
		first.LinkInput(roles.BatchSecondInput, sources[2].Producer, sources[2].Slot)

		root, err := ensureBatchNode(g, roles, roles.BatchSlots[1])
		if err != nil {
			return err
		}
		root.LinkInput(roles.BatchFirstInput, sources[1].Producer, sources[1].Slot)
		root.LinkInput(roles.BatchSecondInput, roles.BatchSlots[0], 0)

		identity.LinkInput(roles.IdentityImageInput, roles.BatchSlots[1], 0)
	}

	return nil
}

// ensureBatchNode reuses the node at a conventional batch slot or creates
// one. Reusing a slot that hosts an unrelated class type would silently
// clobber the template, so the class is checked and mismatches are
// configuration errors.
func ensureBatchNode(g *Graph, roles Roles, id string) (*Node, error) {
	if n, ok := g.Get(id); ok {
		if n.ClassType != roles.BatchClassType {
			return nil, errors.Configuration("batch node",
				fmt.Sprintf("node %s has class %q, expected %q", id, n.ClassType, roles.BatchClassType))
		}
		return n, nil
	}
	n := &Node{ClassType: roles.BatchClassType, Inputs: make(map[string]any)}
	g.Add(id, n)
	return n, nil
}

// removeBatchNode removes a conventional batch slot if it actually hosts a
// batch node. Unrelated nodes that happen to sit on a batch slot id are
// left alone.
func removeBatchNode(g *Graph, roles Roles, id string) {
	if n, ok := g.Get(id); ok && n.ClassType == roles.BatchClassType {
		g.Remove(id)
	}
}
