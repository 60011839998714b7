package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func commentaryContext() *PromptExecutionContext {
	return NewContext().
		Set("Scenario", "Pilot").
		Set("Stores", 100).
		Set("Currency", "NOK").
		Set("ROI", "-91.4%").
		Set("Payback", "not reached").
		Set("WACC", "10.0%").
		Set("NPV", "-82 860 841 kr").
		Set("CostNPV", "90 698 723 kr").
		Set("NetPerStore", "-548 150 kr").
		Set("TopDriver", "labor efficiency").
		Set("Adoption", "20.0% / 70.0% / 100.0%").
		Set("Warnings", []string{"discountRate=1.2 outside [0, 1], using 1"}).
		Set("Sentences", 3)
}

func TestBuiltInCommentaryPrompt(t *testing.T) {
	r := NewRegistry()

	system, user, err := r.Render(CommentaryExecutive, commentaryContext())
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !strings.Contains(system, "never invent numbers") {
		t.Errorf("unexpected system prompt: %q", system)
	}
	for _, want := range []string{
		"Scenario: Pilot (100 stores, amounts in NOK)",
		"- ROI over three years is -91.4%",
		"- Input adjusted: discountRate=1.2",
		"Write 3 sentences",
	} {
		if !strings.Contains(user, want) {
			t.Errorf("user prompt missing %q:\n%s", want, user)
		}
	}
}

func TestRender_MissingVariable(t *testing.T) {
	r := NewRegistry()
	if _, _, err := r.Render(CommentaryExecutive, NewContext().Set("Scenario", "x")); err == nil {
		t.Error("expected error for missing template variables")
	}
	if _, _, err := r.Render("nope", NewContext()); err == nil {
		t.Error("expected error for unknown prompt")
	}
}

func TestLoadFromDirectory_Override(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "commentary")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	override := `{"system_prompt": "Be terse.", "user_prompt_template": "ROI {{.ROI}}"}`
	if err := os.WriteFile(filepath.Join(sub, "executive.json"), []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry()
	if err := r.LoadFromDirectory(dir); err != nil {
		t.Fatalf("LoadFromDirectory: %v", err)
	}

	pt, err := r.GetPrompt(CommentaryExecutive)
	if err != nil {
		t.Fatal(err)
	}
	if pt.Category != "commentary" {
		t.Errorf("category = %q", pt.Category)
	}
	system, user, err := r.Render(CommentaryExecutive, NewContext().Set("ROI", "5.0%"))
	if err != nil {
		t.Fatal(err)
	}
	if system != "Be terse." || user != "ROI 5.0%" {
		t.Errorf("override not applied: %q / %q", system, user)
	}
}

func TestLoadFromDirectory_Errors(t *testing.T) {
	r := NewRegistry()
	if err := r.LoadFromDirectory(filepath.Join(t.TempDir(), "missing")); err != nil {
		t.Errorf("missing dir should be ignored, got %v", err)
	}

	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{"user_prompt_template": "{{.Oops"}`), 0o644)
	if err := r.LoadFromDirectory(dir); err == nil {
		t.Error("expected error for invalid template")
	}
	if r.Count() != 1 {
		t.Errorf("Count = %d, want only the built-in prompt", r.Count())
	}
}
