package workflow

import (
	"strings"

	"github.com/storyforge/renderkit/errors"
)

// ResolveIdentity locates the identity-conditioning node: explicit hint,
// then conventional ids, then a class-type scan. The identity node is a
// required role; failing to find one is a configuration error on the
// template, distinct from any remote-execution failure.
func ResolveIdentity(g *Graph, roles Roles) (string, *Node, error) {
	if g.Hints != nil && g.Hints.IdentityApplyNode != "" {
		if n, ok := g.Get(g.Hints.IdentityApplyNode); ok {
			return g.Hints.IdentityApplyNode, n, nil
		}
		// Stale hint: fall through to heuristics.
	}

	for _, id := range roles.IdentityCandidates {
		if n, ok := g.Get(id); ok && classIn(n.ClassType, roles.IdentityClassTypes) {
			return id, n, nil
		}
	}

	for _, id := range g.SortedIDs() {
		if n := g.Nodes[id]; classIn(n.ClassType, roles.IdentityClassTypes) {
			return id, n, nil
		}
	}

	return "", nil, errors.Configuration("identity-conditioning node",
		"no identity-conditioning node found in template")
}

// ResolveKeypointLoader locates the loader feeding the identity node's
// pose input: explicit hint, then the pose-input link target, then
// conventional ids, then a filename keyword scan over loaders. The role
// is optional; ok is false when nothing matches.
func ResolveKeypointLoader(g *Graph, roles Roles) (string, bool) {
	if g.Hints != nil && g.Hints.KeypointLoadNode != "" {
		if g.Has(g.Hints.KeypointLoadNode) {
			return g.Hints.KeypointLoadNode, true
		}
	}

	if _, identity, err := ResolveIdentity(g, roles); err == nil {
		if link, ok := identity.InputLink(roles.IdentityPoseInput); ok {
			if n, ok := g.Get(link.Producer); ok && n.ClassType == roles.LoaderClassType {
				return link.Producer, true
			}
		}
	}

	for _, id := range roles.KeypointCandidates {
		if n, ok := g.Get(id); ok && n.ClassType == roles.LoaderClassType {
			return id, true
		}
	}

	for _, id := range g.SortedIDs() {
		n := g.Nodes[id]
		if n.ClassType != roles.LoaderClassType {
			continue
		}
		name, ok := n.InputString(roles.LoaderImageInput)
		if !ok {
			continue
		}
		lower := strings.ToLower(name)
		for _, kw := range roles.KeypointKeywords {
			if strings.Contains(lower, kw) {
				return id, true
			}
		}
	}

	return "", false
}

// ResolvePromptSets returns the node-id sets serving the positive and
// negative prompt roles: template hints when present, else the
// conventional defaults.
func ResolvePromptSets(g *Graph, roles Roles) (positive, negative map[string]bool) {
	pos := roles.PositivePromptNodes
	neg := roles.NegativePromptNodes
	if g.Hints != nil && g.Hints.PromptNodes != nil {
		if len(g.Hints.PromptNodes.Positive) > 0 {
			pos = g.Hints.PromptNodes.Positive
		}
		if len(g.Hints.PromptNodes.Negative) > 0 {
			neg = g.Hints.PromptNodes.Negative
		}
	}
	return toSet(pos), toSet(neg)
}

// ResolveSaveNodes returns the preferred final-artifact node ids.
func ResolveSaveNodes(g *Graph, roles Roles) []string {
	if g.Hints != nil && len(g.Hints.SaveNodes) > 0 {
		return g.Hints.SaveNodes
	}
	return roles.SaveNodes
}

// ResolvePreviewNodes returns the intermediate-preview node ids.
func ResolvePreviewNodes(g *Graph, roles Roles) []string {
	if g.Hints != nil && len(g.Hints.PreviewNodes) > 0 {
		return g.Hints.PreviewNodes
	}
	return roles.PreviewNodes
}

// ResolveLoaders returns the reference-loader ids present in the graph,
// in conventional slot order.
func ResolveLoaders(g *Graph, roles Roles) []string {
	var out []string
	for _, id := range roles.LoaderSlots {
		if n, ok := g.Get(id); ok && n.ClassType == roles.LoaderClassType {
			out = append(out, id)
		}
	}
	return out
}

func classIn(classType string, set []string) bool {
	for _, ct := range set {
		if classType == ct {
			return true
		}
	}
	return false
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
