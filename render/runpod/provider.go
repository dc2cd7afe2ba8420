package runpod

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/storyforge/renderkit/errors"
	"github.com/storyforge/renderkit/logger"
	"github.com/storyforge/renderkit/observability"
	"github.com/storyforge/renderkit/provider"
	"github.com/storyforge/renderkit/render"
	"github.com/storyforge/renderkit/workflow"
)

// ProviderName is the registered name for the serverless backend.
const ProviderName = "runpod"

// Provider implements render.Provider against a serverless queue endpoint.
type Provider struct {
	cfg     Config
	client  *Client
	roles   workflow.Roles
	log     *logger.Logger
	metrics *observability.Metrics
}

// NewProvider creates a serverless backend from configuration.
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
		log:    logger.Get("runpod"),
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

// Factory returns a provider.Factory that creates serverless backends
// from a generic config map.
func Factory() provider.Factory[render.Provider] {
	return func(cfg map[string]any) (render.Provider, error) {
		c := Config{}
		if v, ok := cfg["base_url"].(string); ok {
			c.BaseURL = v
		}
		if v, ok := cfg["endpoint_id"].(string); ok {
			c.EndpointID = v
		}
		if v, ok := cfg["api_key"].(string); ok {
			c.APIKey = v
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

// IsAvailable checks if the endpoint is reachable.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	return p.client.Health(ctx) == nil
}

// Generate adapts the template and executes it through the serverless
// queue. Assets travel inline, so there is no upload stage and no
// fallback retry: a failed serverless run is final.
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

	if _, _, err := workflow.ResolveIdentity(req.Template, p.roles); err != nil {
		return render.Failed("", err), err
	}

	params, images, err := p.inlineAssets(req)
	if err != nil {
		return render.Failed("", err), err
	}

	prepared, err := workflow.Prepare(req.Template, params, p.roles)
	if err != nil {
		return render.Failed("", err), err
	}

	start := time.Now()
	jobID, err := p.client.Run(ctx, RunInput{
		Workflow: prepared.Payload(),
		Images:   images,
	})
	p.recordStage(ctx, "submit", statusOf(err), time.Since(start))
	if err != nil {
		out := render.Failed("", err)
		out.Workflow = prepared
		return out, err
	}
	p.log.Info("job submitted", logger.Fields(logger.FieldJobID, jobID))

	start = time.Now()
	status, err := p.waitForTerminal(ctx, jobID)
	p.recordStage(ctx, "poll", statusOf(err), time.Since(start))
	if err != nil {
		out := render.Failed(jobID, err)
		out.Workflow = prepared
		return out, err
	}

	return p.collect(req, prepared, jobID, status)
}

// inlineAssets reads local assets and encodes them as data URLs with
// synthetic names for the wiring stages to reference.
func (p *Provider) inlineAssets(req render.Request) (workflow.Params, []InlineImage, error) {
	params := workflow.Params{
		Positive: req.PositivePrompt,
		Negative: req.NegativePrompt,
	}
	var images []InlineImage

	for _, path := range req.ReferenceImages {
		img, err := inlineImage(path)
		if err != nil {
			return params, nil, err
		}
		images = append(images, img)
		params.ReferenceImages = append(params.ReferenceImages, img.Name)
	}

	if req.KeypointPath != "" {
		img, err := inlineImage(req.KeypointPath)
		if err != nil {
			return params, nil, err
		}
		images = append(images, img)
		params.Keypoint = img.Name
	}

	return params, images, nil
}

func inlineImage(path string) (InlineImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return InlineImage{}, errors.Upload(path, err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	mime := "image/png"
	if ext == ".jpg" || ext == ".jpeg" {
		mime = "image/jpeg"
	}
	if ext == "" {
		ext = ".png"
	}
	return InlineImage{
		Name:  uuid.NewString() + ext,
		Image: "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
	}, nil
}

// waitForTerminal polls the status endpoint until a terminal status
// appears or the configured timeout elapses. Transient connection
// errors keep the loop going; only the bound ends it, with a timeout
// error distinct from an engine-reported failure.
func (p *Provider) waitForTerminal(ctx context.Context, jobID string) (*StatusResponse, error) {
	deadline := time.Now().Add(p.cfg.Timeout)
	transientErrs := 0

	ticker := time.NewTicker(p.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, errors.Timeout("runpod execution")
		case <-ticker.C:
		}

		if time.Now().After(deadline) {
			p.log.Warn("polling timed out", logger.Fields(
				logger.FieldJobID, jobID,
				"transient_errors", transientErrs,
			))
			return nil, errors.Timeout("runpod execution")
		}

		status, err := p.client.Status(ctx, jobID)
		if err != nil {
			transientErrs++
			p.log.Debug("status poll failed", logger.Fields(
				logger.FieldJobID, jobID,
				logger.FieldError, err.Error(),
			))
			continue
		}
		if status.Terminal() {
			return status, nil
		}
	}
}

// collect decodes and persists the first inline output image. Only a
// completed run may yield an artifact: FAILED is a failure even when
// the payload happens to carry an image.
func (p *Provider) collect(req render.Request, g *workflow.Graph, jobID string, status *StatusResponse) (*render.Outcome, error) {
	if status.Status != StatusCompleted && status.Status != StatusCompletedWithErrors {
		msg := status.Error
		if msg == "" {
			msg = "job ended with status " + status.Status
		}
		err := errors.Processing(msg)
		out := render.Failed(jobID, err)
		out.Workflow = g
		return out, err
	}

	var encoded string
	if status.Output != nil {
		for _, img := range status.Output.Images {
			if b64 := img.Base64(); b64 != "" {
				encoded = b64
				break
			}
		}
	}

	if encoded == "" {
		var err error
		if status.Status == StatusCompleted {
			err = errors.Extraction("completed job returned no images")
		} else {
			msg := status.Error
			if msg == "" {
				msg = "job ended with status " + status.Status
			}
			err = errors.Processing(msg)
		}
		out := render.Failed(jobID, err)
		out.Workflow = g
		return out, err
	}

	if status.Status == StatusCompletedWithErrors {
		p.log.Warn("job completed with errors, using returned image", logger.Fields(
			logger.FieldJobID, jobID,
			logger.FieldStatus, status.Status,
		))
	}

	data, err := base64.StdEncoding.DecodeString(stripDataURL(encoded))
	if err != nil {
		wrapped := errors.Extraction("decode output image: " + err.Error())
		out := render.Failed(jobID, wrapped)
		out.Workflow = g
		return out, wrapped
	}

	outputDir := req.OutputDir
	if outputDir == "" {
		outputDir = p.cfg.OutputDir
	}
	outputPath, err := render.SaveArtifact(outputDir, req.OutputName, data)
	if err != nil {
		out := render.Failed(jobID, err)
		out.Workflow = g
		return out, err
	}

	return &render.Outcome{
		Status:     render.StatusSuccess,
		OutputPath: outputPath,
		PromptID:   jobID,
		Workflow:   g,
	}, nil
}

// stripDataURL drops a "data:...;base64," prefix if present.
func stripDataURL(s string) string {
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	if idx := strings.Index(s, "base64,"); idx >= 0 {
		return s[idx+len("base64,"):]
	}
	return s
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
