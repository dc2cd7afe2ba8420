package workflow

// Params carries the runtime values wired into a template for one
// invocation. Image names must already be resolvable by the target
// backend (uploaded to its asset store, or synthetic names bound to
// inline payloads).
type Params struct {
	// ReferenceImages are 0-3 image names, in priority order.
	ReferenceImages []string
	// Keypoint is an optional pose/keypoint image name.
	Keypoint string
	// Positive and Negative are the prompt texts; empty values leave the
	// template's prompts untouched.
	Positive string
	Negative string
}

// Prepare clones the template and applies the wiring stages in order:
// reference images, keypoint, prompts. The template itself is never
// mutated, so one template can serve concurrent invocations.
func Prepare(template *Graph, p Params, roles Roles) (*Graph, error) {
	g := template.Clone()

	if err := WireReferenceImages(g, p.ReferenceImages, roles); err != nil {
		return nil, err
	}
	InjectKeypoint(g, p.Keypoint, roles)
	InjectPrompts(g, p.Positive, p.Negative, roles)

	return g, nil
}
