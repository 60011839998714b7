// Package narrative writes the short management commentary attached to a
// report. A model is asked first; any failure falls back to a deterministic
// summary so a report always carries commentary.
package narrative

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/finnegil-spec/orbital-roi/pkg/core/prompt"
	"github.com/finnegil-spec/orbital-roi/pkg/core/report"
	"github.com/finnegil-spec/orbital-roi/pkg/core/roi"
	"github.com/finnegil-spec/orbital-roi/pkg/core/utils"
)

// AgentType is the routing key in config/models.yaml.
const AgentType = "commentary"

// Executor runs a prompt for an agent type; *agent.Manager implements it.
type Executor interface {
	ExecutePrompt(ctx context.Context, agentType string, prompt string, systemPrompt string) (string, error)
}

// Writer produces commentary for reports.
type Writer struct {
	executor Executor
	prompts  *prompt.Registry
	timeout  time.Duration
}

// NewWriter returns a writer. A zero timeout means 20 seconds.
func NewWriter(executor Executor, prompts *prompt.Registry, timeout time.Duration) *Writer {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	if prompts == nil {
		prompts = prompt.NewRegistry()
	}
	return &Writer{executor: executor, prompts: prompts, timeout: timeout}
}

// Comment returns commentary for r. The error is informational: when it is
// non-nil the returned text is the fallback summary.
func (w *Writer) Comment(ctx context.Context, r *report.Report) (string, error) {
	text, err := w.generate(ctx, r)
	if err != nil {
		log.Printf("[NARRATIVE] falling back to summary for %s: %v", r.ID, err)
		return Summary(r), err
	}
	return text, nil
}

func (w *Writer) generate(ctx context.Context, r *report.Report) (string, error) {
	if w.executor == nil {
		return "", fmt.Errorf("no model configured")
	}

	// 1. Prompt
	system, user, err := w.prompts.Render(prompt.CommentaryExecutive, promptContext(r))
	if err != nil {
		return "", err
	}

	// 2. Model call under a deadline
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	answer, err := w.executor.ExecutePrompt(ctx, AgentType, user, system)
	if err != nil {
		return "", fmt.Errorf("commentary generation failed: %w", err)
	}

	// 3. Clean up
	cleaned, err := Clean(answer)
	if err != nil {
		return "", err
	}
	if cleaned == "" {
		return "", fmt.Errorf("model returned empty commentary")
	}
	return cleaned, nil
}

// Clean strips an outer code fence and any HTML markup from a model answer.
func Clean(answer string) (string, error) {
	text := utils.StripCodeFence(answer)
	if !strings.ContainsAny(text, "<>") {
		return strings.TrimSpace(text), nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return "", fmt.Errorf("parse commentary html: %w", err)
	}
	doc.Find("script, style").Remove()
	return strings.TrimSpace(doc.Text()), nil
}

func promptContext(r *report.Report) *prompt.PromptExecutionContext {
	res := r.Result
	cur := r.Currency

	warnings := make([]string, 0, len(r.Warnings))
	for _, v := range r.Warnings {
		warnings = append(warnings, v.String())
	}

	return prompt.NewContext().
		Set("Scenario", r.Scenario).
		Set("Stores", r.Input.StoreCount).
		Set("Currency", cur.Code()).
		Set("ROI", report.Percent(res.ROI)).
		Set("Payback", paybackText(res.Payback)).
		Set("WACC", report.Percent(float64(r.Input.DiscountRate))).
		Set("NPV", cur.Money(res.NPV)).
		Set("CostNPV", cur.Money(res.CostNPV)).
		Set("NetPerStore", cur.Money(res.Breakdown.NetAnnualValuePerStore)).
		Set("TopDriver", TopDriver(res.Breakdown)).
		Set("Adoption", adoptionText(r.Input.Adoption)).
		Set("Warnings", warnings).
		Set("Sentences", 3)
}

// Summary is the deterministic commentary used when no model answers.
func Summary(r *report.Report) string {
	res := r.Result
	cur := r.Currency

	var b strings.Builder
	if years, ok := res.Payback.Years(); ok {
		fmt.Fprintf(&b, "The rollout across %d stores pays back in year %d", r.Input.StoreCount, years)
	} else {
		fmt.Fprintf(&b, "The rollout across %d stores does not pay back within %d years", r.Input.StoreCount, roi.Horizon)
	}
	fmt.Fprintf(&b, ", with a three-year NPV of %s at a WACC of %s and an ROI of %s on the discounted subscription cost.",
		cur.Money(res.NPV), report.Percent(float64(r.Input.DiscountRate)), report.Percent(res.ROI))

	net := res.Breakdown.NetAnnualValuePerStore
	if net < 0 {
		fmt.Fprintf(&b, " Each live store loses %s a year after the fee;", cur.Money(-net))
	} else {
		fmt.Fprintf(&b, " Each live store adds %s a year after the fee;", cur.Money(net))
	}
	fmt.Fprintf(&b, " the largest value driver is %s.", TopDriver(res.Breakdown))
	return b.String()
}

// TopDriver names the value driver with the largest absolute contribution.
func TopDriver(b roi.PerStoreValueBreakdown) string {
	drivers := []struct {
		name  string
		value float64
	}{
		{"sales uplift", b.SalesUpliftValue},
		{"gross margin improvement", b.MarginImprovementValue},
		{"waste reduction", b.WasteReductionValue},
		{"labor efficiency", b.LaborEfficiencyValue},
		{"compliance savings", b.ComplianceValue},
	}

	best := drivers[0]
	for _, d := range drivers[1:] {
		if abs(d.value) > abs(best.value) {
			best = d
		}
	}
	return best.name
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func paybackText(p roi.Payback) string {
	if years, ok := p.Years(); ok {
		return fmt.Sprintf("year %d", years)
	}
	return fmt.Sprintf("not reached within %d years", roi.Horizon)
}

func adoptionText(a roi.AdoptionSchedule) string {
	parts := make([]string, 0, roi.Horizon)
	for _, share := range a {
		parts = append(parts, report.Percent(float64(share)))
	}
	return strings.Join(parts, " / ")
}
