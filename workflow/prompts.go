package workflow

import (
	"github.com/storyforge/renderkit/util"
)

// InjectPrompts rewrites the text of the resolved positive and negative
// prompt nodes. Only text-encoding nodes whose id is in a resolved set are
// touched; any other text-encoding node keeps its template-authored text
// (style boilerplate and the like). Prompt text is sanitized first. Empty
// prompt values leave the corresponding set untouched. The operation is
// idempotent.
func InjectPrompts(g *Graph, positive, negative string, roles Roles) {
	positive = util.SanitizeString(positive)
	negative = util.SanitizeString(negative)
	pos, neg := ResolvePromptSets(g, roles)

	for _, id := range g.SortedIDs() {
		node := g.Nodes[id]
		if node.ClassType != roles.TextEncodeClassType {
			continue
		}
		if positive != "" && pos[id] {
			node.SetInput(roles.TextInput, positive)
		}
		if negative != "" && neg[id] {
			node.SetInput(roles.TextInput, negative)
		}
	}
}
