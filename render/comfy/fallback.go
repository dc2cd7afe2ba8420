package comfy

import (
	"strings"

	"github.com/storyforge/renderkit/workflow"
)

// recoverableSignatures are error substrings for the known failure mode
// where the identity pipeline cannot find a usable face in the wired
// reference source. Bypassing the crop/batch chain and feeding the raw
// loader output directly sometimes succeeds.
var recoverableSignatures = []string{
	"no face detected",
	"face detection",
	"insightface",
	"reference image",
}

// IsRecoverable reports whether a job error matches the known
// face-detection failure mode eligible for the single fallback retry.
func IsRecoverable(jobErr string) bool {
	lower := strings.ToLower(jobErr)
	for _, sig := range recoverableSignatures {
		if strings.Contains(lower, sig) {
			return true
		}
	}
	return false
}

// RewireForFallback mutates a prepared graph so the identity node's image
// input links directly to the first surviving raw loader, bypassing any
// crop and batch nodes. Returns false when the graph has no loader or no
// identity node to rewire.
func RewireForFallback(g *workflow.Graph, roles workflow.Roles) bool {
	loaders := workflow.ResolveLoaders(g, roles)
	if len(loaders) == 0 {
		return false
	}
	_, node, err := workflow.ResolveIdentity(g, roles)
	if err != nil {
		return false
	}
	node.LinkInput(roles.IdentityImageInput, loaders[0], 0)
	return true
}
