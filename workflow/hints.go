package workflow

// PromptHints names the text-encoding nodes serving positive and negative
// prompt roles.
type PromptHints struct {
	Positive []string `json:"positive,omitempty"`
	Negative []string `json:"negative,omitempty"`
}

// Hints is the advisory routing metadata a template may carry under its
// top-level "_meta" key. Every field is optional and may reference nodes
// that no longer exist in the template; resolvers verify before use and
// fall back to heuristics.
type Hints struct {
	Title string `json:"title,omitempty"`

	// IdentityApplyNode names the identity-conditioning node.
	IdentityApplyNode string `json:"instantid_apply_node,omitempty"`
	// KeypointLoadNode names the loader feeding the pose/keypoint input.
	KeypointLoadNode string `json:"keypoint_load_node,omitempty"`
	// PromptNodes names the positive/negative text-encoding nodes.
	PromptNodes *PromptHints `json:"prompt_nodes,omitempty"`
	// SaveNodes names nodes whose outputs are final artifacts.
	SaveNodes []string `json:"save_nodes,omitempty"`
	// PreviewNodes names nodes whose outputs are intermediate previews.
	PreviewNodes []string `json:"preview_nodes,omitempty"`
	// OverlayNodes names decorative overlay nodes; carried through for
	// consumers, not used by the wiring stages.
	OverlayNodes []string `json:"overlay_nodes,omitempty"`
}
