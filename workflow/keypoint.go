package workflow

import (
	"github.com/storyforge/renderkit/logger"
)

// InjectKeypoint points the resolved pose-loader node at the given image
// name (already resolvable by the backend, e.g. post-upload) and marks it
// as sourced from the upload store.
//
// Keypoint injection is an enhancement, not a required stage: when no
// pose-input node can be resolved the graph is returned unchanged and the
// miss is logged. Returns true when a node was rewritten.
func InjectKeypoint(g *Graph, name string, roles Roles) bool {
	if name == "" {
		return false
	}

	id, ok := ResolveKeypointLoader(g, roles)
	if !ok {
		logger.Get("workflow").Warn("no pose-input node resolved, skipping keypoint injection",
			logger.Fields("keypoint", name))
		return false
	}

	node := g.Nodes[id]
	node.SetInput(roles.LoaderImageInput, name)
	node.SetInput("upload", "image")
	return true
}
