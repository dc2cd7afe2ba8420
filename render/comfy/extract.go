package comfy

import (
	"sort"

	"github.com/storyforge/renderkit/errors"
	"github.com/storyforge/renderkit/workflow"
)

// selectImage ranks candidate images from a completion payload:
// images from preferred nodes first, then any non-temp image, then any
// temp image as a last resort. Node ids are scanned in sorted order so
// selection is deterministic.
func selectImage(outputs map[string]NodeOutput, preferred []string) (ImageRef, bool) {
	prefSet := make(map[string]bool, len(preferred))
	for _, id := range preferred {
		prefSet[id] = true
	}

	ids := make([]string, 0, len(outputs))
	for id := range outputs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	// Preferred nodes, non-temp before temp within them.
	for _, temp := range []bool{false, true} {
		for _, id := range ids {
			if !prefSet[id] {
				continue
			}
			for _, img := range outputs[id].Images {
				if img.IsTemp() == temp {
					return img, true
				}
			}
		}
	}

	// Anywhere else: first non-temp, then first temp.
	for _, temp := range []bool{false, true} {
		for _, id := range ids {
			for _, img := range outputs[id].Images {
				if img.IsTemp() == temp {
					return img, true
				}
			}
		}
	}

	return ImageRef{}, false
}

// ExtractOutput picks the primary artifact from a completion payload,
// preferring images produced by the graph's save nodes.
func ExtractOutput(g *workflow.Graph, roles workflow.Roles, outputs map[string]NodeOutput) (ImageRef, error) {
	ref, ok := selectImage(outputs, workflow.ResolveSaveNodes(g, roles))
	if !ok {
		return ImageRef{}, errors.Extraction("completion payload contains no images")
	}
	return ref, nil
}

// ExtractPreview picks a best-effort intermediate preview image from the
// preview node set. Absence is not an error.
func ExtractPreview(g *workflow.Graph, roles workflow.Roles, outputs map[string]NodeOutput) (ImageRef, bool) {
	previewSet := make(map[string]bool)
	for _, id := range workflow.ResolvePreviewNodes(g, roles) {
		previewSet[id] = true
	}
	if len(previewSet) == 0 {
		return ImageRef{}, false
	}

	previewOutputs := make(map[string]NodeOutput)
	for id, out := range outputs {
		if previewSet[id] {
			previewOutputs[id] = out
		}
	}
	return selectImage(previewOutputs, nil)
}
