package prompt

// IDs of the built-in prompts.
const (
	CommentaryExecutive = "commentary.executive"
)

func defaults() []PromptTemplate {
	return []PromptTemplate{
		{
			ID:          CommentaryExecutive,
			Name:        "Executive commentary",
			Category:    "commentary",
			Description: "Short management summary of a chain ROI evaluation",
			SystemPrompt: "You are a retail finance analyst. Write plain prose for a chain's " +
				"management team. Use only the figures you are given and never invent numbers. " +
				"No markdown headings, no HTML, no code blocks.",
			UserPromptTmpl: `Scenario: {{.Scenario}} ({{.Stores}} stores, amounts in {{.Currency}})

Facts:
- ROI over three years is {{.ROI}}
- Payback year: {{.Payback}}
- NPV at a WACC of {{.WACC}} is {{.NPV}}
- Discounted subscription cost is {{.CostNPV}}
- Net annual value per store is {{.NetPerStore}}
- The largest value driver is {{.TopDriver}}
- Adoption is {{.Adoption}} in years 1 to 3
{{- range .Warnings}}
- Input adjusted: {{.}}
{{- end}}

Write {{.Sentences}} sentences: say whether the investment pays back, what drives the result, and which assumption matters most.`,
			Version: "1",
		},
	}
}
