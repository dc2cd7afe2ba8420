package render

import (
	"github.com/storyforge/renderkit/validation"
	"github.com/storyforge/renderkit/workflow"
)

// Status is the terminal state of a generation invocation.
type Status string

const (
	// StatusSuccess means an output artifact was produced and persisted.
	StatusSuccess Status = "success"
	// StatusFailed means the invocation ended without a usable artifact.
	StatusFailed Status = "failed"
)

// Request holds parameters for one generation invocation.
type Request struct {
	// Template is the workflow graph to adapt and execute.
	Template *workflow.Graph `json:"-" validate:"required"`
	// ReferenceImages are local paths of 0-3 identity reference images,
	// in priority order.
	ReferenceImages []string `json:"reference_images,omitempty" validate:"max=3"`
	// KeypointPath is the local path of an optional pose/keypoint image.
	KeypointPath string `json:"keypoint_path,omitempty"`
	// PositivePrompt replaces the template's positive prompt text.
	PositivePrompt string `json:"positive_prompt,omitempty"`
	// NegativePrompt replaces the template's negative prompt text.
	NegativePrompt string `json:"negative_prompt,omitempty"`
	// OutputDir is where output artifacts are persisted.
	OutputDir string `json:"output_dir,omitempty"`
	// OutputName overrides the autogenerated output file name.
	OutputName string `json:"output_name,omitempty"`
}

// Validate checks the request before any graph mutation happens.
// More than three reference images is rejected here, ahead of wiring.
func (r *Request) Validate() error {
	return validation.Validate(r)
}

// Outcome is the structured result returned to the caller.
type Outcome struct {
	// Status is success or failed.
	Status Status `json:"status"`
	// OutputPath is the local path of the primary artifact (success only).
	OutputPath string `json:"output_path,omitempty"`
	// PromptID is the remote job identifier, when submission happened.
	PromptID string `json:"prompt_id,omitempty"`
	// Workflow is the graph actually executed, for diagnostics.
	Workflow *workflow.Graph `json:"-"`
	// PreviewPath is the local path of a best-effort intermediate preview.
	PreviewPath string `json:"preview_path,omitempty"`
	// Error is a short diagnostic string (failed only).
	Error string `json:"error,omitempty"`
}

// Failed builds a failed Outcome from an error.
func Failed(promptID string, err error) *Outcome {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return &Outcome{
		Status:   StatusFailed,
		PromptID: promptID,
		Error:    msg,
	}
}
