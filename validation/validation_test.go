package validation

import (
	"strings"
	"testing"

	"github.com/storyforge/renderkit/errors"
)

func TestValidatorRequired(t *testing.T) {
	v := New().Required("base_url", "http://localhost:8188")
	if v.HasErrors() {
		t.Error("expected no errors for present field")
	}

	for _, value := range []string{"", "   "} {
		v := New().Required("base_url", value)
		if !v.HasErrors() {
			t.Errorf("expected error for blank value %q", value)
		}
	}
}

func TestValidatorMaxLength(t *testing.T) {
	v := New().MaxLength("output_name", "page_01.png", 64)
	if v.HasErrors() {
		t.Error("expected no errors within limit")
	}

	v = New().MaxLength("output_name", strings.Repeat("x", 65), 64)
	if !v.HasErrors() {
		t.Error("expected error past limit")
	}
}

func TestValidatorMax(t *testing.T) {
	v := New().Max("reference_images", 3, 3)
	if v.HasErrors() {
		t.Error("expected 3 references allowed")
	}

	v = New().Max("reference_images", 4, 3)
	if !v.HasErrors() {
		t.Error("expected error for 4 references")
	}
}

func TestValidatorOneOf(t *testing.T) {
	allowed := []string{"priority", "health"}

	v := New().OneOf("selector", "health", allowed)
	if v.HasErrors() {
		t.Error("expected allowed value accepted")
	}

	v = New().OneOf("selector", "", allowed)
	if v.HasErrors() {
		t.Error("expected empty value skipped")
	}

	v = New().OneOf("selector", "round-robin", allowed)
	if !v.HasErrors() {
		t.Error("expected error for unknown value")
	}
}

func TestValidatorCustom(t *testing.T) {
	v := New().Custom(2 < 1800, "poll_interval", "must be smaller than timeout")
	if v.HasErrors() {
		t.Error("expected passing condition to add nothing")
	}

	v = New().Custom(1800 < 1800, "poll_interval", "must be smaller than timeout")
	if !v.HasErrors() {
		t.Error("expected failing condition recorded")
	}
}

func TestValidatorCollectsAllErrors(t *testing.T) {
	v := New().
		Required("base_url", "").
		Required("endpoint_id", "").
		Max("reference_images", 5, 3)

	if len(v.Errors()) != 3 {
		t.Fatalf("expected all 3 errors collected, got %d", len(v.Errors()))
	}

	appErr := v.Validate()
	if appErr == nil {
		t.Fatal("expected AppError")
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected invalid input code, got %s", appErr.Code)
	}
	msg := appErr.Error()
	for _, field := range []string{"base_url", "endpoint_id", "reference_images"} {
		if !strings.Contains(msg, field) {
			t.Errorf("expected %s in message, got %q", field, msg)
		}
	}
	if appErr.Details["fields"] == nil {
		t.Error("expected per-field details attached")
	}
}

func TestValidatorValidateClean(t *testing.T) {
	if appErr := New().Required("base_url", "set").Validate(); appErr != nil {
		t.Errorf("expected nil for passing checks, got %v", appErr)
	}
}

type generateInput struct {
	Workflow        string   `json:"workflow" validate:"required"`
	PositivePrompt  string   `json:"positive_prompt" validate:"required"`
	ReferenceImages []string `json:"reference_images" validate:"max=3"`
	BaseURL         string   `json:"base_url" validate:"omitempty,url"`
}

func TestStructValidate(t *testing.T) {
	in := generateInput{
		Workflow:        `{"60": {}}`,
		PositivePrompt:  "a fox reading a book",
		ReferenceImages: []string{"a.png", "b.png"},
		BaseURL:         "http://localhost:8188",
	}
	if err := Validate(in); err != nil {
		t.Errorf("expected valid input, got %v", err)
	}
}

func TestStructValidateFailures(t *testing.T) {
	in := generateInput{
		ReferenceImages: []string{"a.png", "b.png", "c.png", "d.png"},
		BaseURL:         "not-a-url",
	}
	err := Validate(in)
	if err == nil {
		t.Fatal("expected error")
	}

	appErr, ok := err.(*errors.AppError)
	if !ok {
		t.Fatalf("expected *errors.AppError, got %T", err)
	}
	msg := appErr.Error()
	// Field names come from json tags, snake_cased.
	for _, want := range []string{"workflow", "positive_prompt", "reference_images", "base_url"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %s reported, got %q", want, msg)
		}
	}
}

func TestToSnakeCase(t *testing.T) {
	cases := map[string]string{
		"BaseURL":         "base_u_r_l",
		"PositivePrompt":  "positive_prompt",
		"ReferenceImages": "reference_images",
		"simple":          "simple",
	}
	for in, want := range cases {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
