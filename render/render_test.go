package render

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/storyforge/renderkit/errors"
	"github.com/storyforge/renderkit/workflow"
)

type fakeProvider struct {
	name      string
	available bool
	outcome   *Outcome
}

func (p *fakeProvider) Name() string                       { return p.name }
func (p *fakeProvider) IsAvailable(_ context.Context) bool { return p.available }
func (p *fakeProvider) Generate(_ context.Context, _ Request) (*Outcome, error) {
	return p.outcome, nil
}

func minimalTemplate(t *testing.T) *workflow.Graph {
	t.Helper()
	g, err := workflow.ParseGraph([]byte(`{"60": {"class_type": "ApplyInstantID", "inputs": {}}}`))
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestRequestValidate(t *testing.T) {
	req := Request{
		Template:        minimalTemplate(t),
		ReferenceImages: []string{"a.png", "b.png", "c.png"},
	}
	if err := req.Validate(); err != nil {
		t.Errorf("expected valid request, got %v", err)
	}
}

func TestRequestValidate_TooManyReferences(t *testing.T) {
	req := Request{
		Template:        minimalTemplate(t),
		ReferenceImages: []string{"a", "b", "c", "d"},
	}
	err := req.Validate()
	if err == nil {
		t.Fatal("expected validation error for 4 reference images")
	}
	if !errors.IsAppError(err) {
		t.Errorf("expected typed error, got %T", err)
	}
}

func TestRequestValidate_MissingTemplate(t *testing.T) {
	req := Request{ReferenceImages: []string{"a.png"}}
	if err := req.Validate(); err == nil {
		t.Fatal("expected validation error for missing template")
	}
}

func TestFailed(t *testing.T) {
	out := Failed("prompt-1", errors.Processing("node blew up"))
	if out.Status != StatusFailed {
		t.Errorf("expected failed status, got %s", out.Status)
	}
	if out.PromptID != "prompt-1" {
		t.Errorf("expected prompt id kept, got %q", out.PromptID)
	}
	if !strings.Contains(out.Error, "node blew up") {
		t.Errorf("expected diagnostic in error, got %q", out.Error)
	}
}

func TestManagerPriorityOrder(t *testing.T) {
	m := NewManager()

	primary := &fakeProvider{name: "comfy", available: true}
	fallback := &fakeProvider{name: "runpod", available: true}
	m.Register("comfy", func(_ map[string]any) (Provider, error) { return primary, nil })
	m.Register("runpod", func(_ map[string]any) (Provider, error) { return fallback, nil })
	if err := m.Initialize("comfy", nil); err != nil {
		t.Fatal(err)
	}
	if err := m.Initialize("runpod", nil); err != nil {
		t.Fatal(err)
	}

	p, err := m.Get(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if p.Name() != "comfy" {
		t.Errorf("expected primary backend first, got %s", p.Name())
	}

	primary.available = false
	p, err = m.Get(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if p.Name() != "runpod" {
		t.Errorf("expected fallback backend when primary is down, got %s", p.Name())
	}
}

func TestSaveArtifact(t *testing.T) {
	dir := t.TempDir()
	data := []byte{0x89, 'P', 'N', 'G'}

	path, err := SaveArtifact(dir, "out.png", data)
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, "out.png") {
		t.Errorf("unexpected path %q", path)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(data) {
		t.Error("written bytes do not round-trip")
	}
}

func TestSaveArtifact_GeneratedName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	path, err := SaveArtifact(dir, "", []byte("x"))
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Ext(path) != ".png" {
		t.Errorf("expected generated .png name, got %q", path)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("expected nested directory created, got %q", path)
	}
}
