package comfy

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/storyforge/renderkit/errors"
	"github.com/storyforge/renderkit/logger"
	"github.com/storyforge/renderkit/observability"
	"github.com/storyforge/renderkit/provider"
	"github.com/storyforge/renderkit/render"
	"github.com/storyforge/renderkit/util"
	"github.com/storyforge/renderkit/workflow"
)

// ProviderName is the registered name for the ComfyUI backend.
const ProviderName = "comfy"

// Provider implements render.Provider against a ComfyUI engine.
type Provider struct {
	cfg     Config
	client  *Client
	roles   workflow.Roles
	log     *logger.Logger
	metrics *observability.Metrics
}

// NewProvider creates a ComfyUI backend from configuration.
func NewProvider(cfg Config) (*Provider, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &Provider{
		cfg:    cfg,
		client: client,
		roles:  workflow.DefaultRoles(),
		log:    logger.Get("comfy"),
	}, nil
}

// WithRoles overrides the default node-role configuration.
func (p *Provider) WithRoles(roles workflow.Roles) *Provider {
	p.roles = roles
	return p
}

// WithMetrics enables per-stage metric recording.
func (p *Provider) WithMetrics(m *observability.Metrics) *Provider {
	p.metrics = m
	return p
}

// Factory returns a provider.Factory that creates ComfyUI backends from
// a generic config map.
func Factory() provider.Factory[render.Provider] {
	return func(cfg map[string]any) (render.Provider, error) {
		c := Config{}
		if v, ok := cfg["base_url"].(string); ok {
			c.BaseURL = v
		}
		if v, ok := cfg["poll_interval"].(time.Duration); ok {
			c.PollInterval = v
		}
		if v, ok := cfg["timeout"].(time.Duration); ok {
			c.Timeout = v
		}
		if v, ok := cfg["output_dir"].(string); ok {
			c.OutputDir = v
		}
		return NewProvider(c)
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable checks if the engine is reachable.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	return p.client.Ping(ctx) == nil
}

// Generate adapts the template, executes it, and extracts the artifact.
// Every stage failure is classified into the returned Outcome alongside
// the typed error.
func (p *Provider) Generate(ctx context.Context, req render.Request) (*render.Outcome, error) {
	ctx, gen := observability.StartGeneration(ctx, ProviderName, p.metrics)
	out, err := p.generate(ctx, req)
	gen.SetPromptID(out.PromptID)
	gen.End(ctx, string(out.Status), err)
	return out, err
}

func (p *Provider) generate(ctx context.Context, req render.Request) (*render.Outcome, error) {
	if err := req.Validate(); err != nil {
		return render.Failed("", err), err
	}

	// Resolve the required identity role before touching the network so
	// misconfigured templates fail fast.
	if _, _, err := workflow.ResolveIdentity(req.Template, p.roles); err != nil {
		return render.Failed("", err), err
	}

	params, err := p.uploadAssets(ctx, req)
	if err != nil {
		return render.Failed("", err), err
	}

	prepared, err := workflow.Prepare(req.Template, params, p.roles)
	if err != nil {
		return render.Failed("", err), err
	}

	promptID, result, err := p.execute(ctx, prepared)
	if err != nil {
		out := render.Failed(promptID, err)
		out.Workflow = prepared
		return out, err
	}

	if result.Status != ExecCompleted {
		promptID, prepared, result = p.maybeFallback(ctx, prepared, promptID, result)
	}

	switch result.Status {
	case ExecCompleted:
		return p.collect(ctx, req, prepared, promptID, result)
	case ExecTimedOut:
		err := errors.Timeout("comfy execution")
		out := render.Failed(promptID, err)
		out.Workflow = prepared
		return out, err
	default:
		err := errors.Processing(result.Err)
		out := render.Failed(promptID, err)
		out.Workflow = prepared
		return out, err
	}
}

// uploadAssets pushes reference images and the keypoint asset to the
// engine's store and returns the wiring parameters with server-assigned
// names. Any upload failure is fatal for the invocation: a silently
// missing identity reference produces an unidentifiable character.
func (p *Provider) uploadAssets(ctx context.Context, req render.Request) (workflow.Params, error) {
	params := workflow.Params{
		Positive: req.PositivePrompt,
		Negative: req.NegativePrompt,
	}

	for _, path := range req.ReferenceImages {
		name, err := p.uploadFile(ctx, path)
		if err != nil {
			return params, err
		}
		params.ReferenceImages = append(params.ReferenceImages, name)
	}

	if req.KeypointPath != "" {
		name, err := p.uploadFile(ctx, req.KeypointPath)
		if err != nil {
			return params, err
		}
		params.Keypoint = name
	}

	return params, nil
}

func (p *Provider) uploadFile(ctx context.Context, path string) (string, error) {
	start := time.Now()
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Upload(path, err)
	}
	name, err := p.client.UploadImage(ctx, filepath.Base(path), data)
	p.recordStage(ctx, "upload", statusOf(err), time.Since(start))
	if err != nil {
		return "", err
	}
	return name, nil
}

// execute submits a prepared graph and polls it to a terminal state.
func (p *Provider) execute(ctx context.Context, g *workflow.Graph) (string, *ExecutionResult, error) {
	start := time.Now()
	promptID, err := p.client.SubmitPrompt(ctx, g.Payload(), uuid.NewString())
	p.recordStage(ctx, "submit", statusOf(err), time.Since(start))
	if err != nil {
		return "", nil, err
	}
	p.log.Info("prompt submitted", logger.Fields(logger.FieldPromptID, promptID))

	start = time.Now()
	result := p.client.WaitForCompletion(ctx, promptID, p.cfg.PollInterval, p.cfg.Timeout)
	p.recordStage(ctx, "poll", string(result.Status), time.Since(start))
	return promptID, result, nil
}

// maybeFallback applies the single-shot retry for the known recoverable
// failure mode: rewire the identity input to the raw loader and resubmit
// once. A failed retry reports the original failure, not the retry's.
func (p *Provider) maybeFallback(ctx context.Context, prepared *workflow.Graph, promptID string, result *ExecutionResult) (string, *workflow.Graph, *ExecutionResult) {
	if result.Status != ExecFailed || !IsRecoverable(result.Err) {
		return promptID, prepared, result
	}

	retryGraph := prepared.Clone()
	if !RewireForFallback(retryGraph, p.roles) {
		return promptID, prepared, result
	}

	p.log.Warn("recoverable failure, retrying with raw loader wiring", logger.Fields(
		logger.FieldPromptID, promptID,
		logger.FieldError, util.Truncate(result.Err, 200),
	))

	retryID, retryResult, err := p.execute(ctx, retryGraph)
	if err != nil || retryResult.Status != ExecCompleted {
		// Original failure stands.
		p.log.Warn("fallback retry did not recover", logger.Fields(logger.FieldPromptID, promptID))
		return promptID, prepared, result
	}
	return retryID, retryGraph, retryResult
}

// collect downloads and persists the primary artifact and a best-effort
// preview, then assembles the success outcome.
func (p *Provider) collect(ctx context.Context, req render.Request, g *workflow.Graph, promptID string, result *ExecutionResult) (*render.Outcome, error) {
	ref, err := ExtractOutput(g, p.roles, result.Outputs)
	if err != nil {
		out := render.Failed(promptID, err)
		out.Workflow = g
		return out, err
	}

	start := time.Now()
	data, err := p.client.Download(ctx, ref)
	p.recordStage(ctx, "download", statusOf(err), time.Since(start))
	if err != nil {
		wrapped := errors.Extraction("download output: " + err.Error())
		out := render.Failed(promptID, wrapped)
		out.Workflow = g
		return out, wrapped
	}

	outputDir := req.OutputDir
	if outputDir == "" {
		outputDir = p.cfg.OutputDir
	}
	outputPath, err := render.SaveArtifact(outputDir, req.OutputName, data)
	if err != nil {
		out := render.Failed(promptID, err)
		out.Workflow = g
		return out, err
	}

	outcome := &render.Outcome{
		Status:     render.StatusSuccess,
		OutputPath: outputPath,
		PromptID:   promptID,
		Workflow:   g,
	}

	if previewRef, ok := ExtractPreview(g, p.roles, result.Outputs); ok {
		if previewData, err := p.client.Download(ctx, previewRef); err == nil {
			name := "preview_" + previewRef.Filename
			if path, err := render.SaveArtifact(outputDir, name, previewData); err == nil {
				outcome.PreviewPath = path
			}
		} else {
			p.log.Warn("preview download failed", logger.Fields(logger.FieldError, err.Error()))
		}
	}

	return outcome, nil
}

func (p *Provider) recordStage(ctx context.Context, stage, status string, d time.Duration) {
	p.log.Debug("stage finished", logger.StageFields(stage, status, d))
	if p.metrics != nil {
		p.metrics.RecordStage(ctx, ProviderName, stage, status, d)
	}
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
