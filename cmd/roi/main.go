// Command roi evaluates a chain ROI scenario from the terminal.
//
//	roi -list
//	roi -scenario "Lean pilot" -format md -out pilot.md
//	roi -stores 250 -fee 45000 -adoption 30,80,100 -currency USD
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/finnegil-spec/orbital-roi/pkg/core/agent"
	"github.com/finnegil-spec/orbital-roi/pkg/core/inputs"
	"github.com/finnegil-spec/orbital-roi/pkg/core/narrative"
	"github.com/finnegil-spec/orbital-roi/pkg/core/prompt"
	"github.com/finnegil-spec/orbital-roi/pkg/core/report"
	"github.com/finnegil-spec/orbital-roi/pkg/core/scenario"
	"github.com/finnegil-spec/orbital-roi/pkg/core/settings"
)

func main() {
	cfg, err := settings.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] %v\n", err)
		os.Exit(1)
	}
	if err := run(context.Background(), cfg, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options are the parsed command-line flags.
type options struct {
	scenario   string
	file       string
	currency   string
	format     string
	out        string
	commentary bool
	list       bool
	overrides  map[string]string
}

// formOverrides are flags in calculator form units (percent for rates).
var formOverrides = []struct {
	name  string
	usage string
	apply func(f *inputs.Form, v string)
}{
	{"stores", "number of stores", func(f *inputs.Form, v string) { f.Stores = v }},
	{"revenue", "annual revenue per store", func(f *inputs.Form, v string) { f.RevenuePerStore = v }},
	{"fee", "annual subscription fee per store", func(f *inputs.Form, v string) { f.FeePerStore = v }},
	{"wacc", "discount rate in percent", func(f *inputs.Form, v string) { f.WACC = v }},
	{"margin", "baseline gross margin in percent", func(f *inputs.Form, v string) { f.GrossMargin = v }},
	{"uplift", "sales uplift in percent", func(f *inputs.Form, v string) { f.SalesUplift = v }},
	{"pp", "gross margin improvement in percentage points", func(f *inputs.Form, v string) { f.MarginPP = v }},
	{"waste", "waste reduction in percent of revenue", func(f *inputs.Form, v string) { f.WasteReduction = v }},
	{"labor", "labor efficiency in percent of revenue", func(f *inputs.Form, v string) { f.LaborEfficiency = v }},
	{"compliance", "annual compliance saving per store", func(f *inputs.Form, v string) { f.Compliance = v }},
	{"adoption", "adoption percent for years 1-3, e.g. 20,70,100 (use ; with decimal commas)", func(f *inputs.Form, v string) {
		sep := ","
		if strings.Contains(v, ";") {
			sep = ";"
		}
		parts := strings.Split(v, sep)
		for i := 0; i < len(parts) && i < len(f.Adoption); i++ {
			f.Adoption[i] = strings.TrimSpace(parts[i])
		}
	}},
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("roi", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.scenario, "scenario", "", "scenario name from the scenario directory")
	fs.StringVar(&opts.file, "file", "", "scenario file (yaml, toml, json, hjson)")
	fs.StringVar(&opts.currency, "currency", "", "display currency: "+strings.Join(report.Currencies(), ", "))
	fs.StringVar(&opts.format, "format", "text", "output format: text, json, md, html, xlsx, pdf")
	fs.StringVar(&opts.out, "out", "", "write output to this file instead of stdout")
	fs.BoolVar(&opts.commentary, "commentary", false, "add model commentary")
	fs.BoolVar(&opts.list, "list", false, "list available scenarios and exit")

	raw := make(map[string]*string, len(formOverrides))
	for _, o := range formOverrides {
		raw[o.name] = fs.String(o.name, "", o.usage)
	}
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	opts.overrides = make(map[string]string)
	fs.Visit(func(f *flag.Flag) {
		if v, ok := raw[f.Name]; ok {
			opts.overrides[f.Name] = *v
		}
	})
	return opts, nil
}

func run(ctx context.Context, cfg settings.Settings, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	// 1. Scenarios
	scenarios, err := scenario.LoadDir(cfg.ScenarioDir)
	if err != nil {
		fmt.Fprintf(stderr, "[WARNING] scenarios: %v (only the default is available)\n", err)
		scenarios = []scenario.Scenario{scenario.Default()}
	}
	if opts.list {
		for _, s := range scenarios {
			fmt.Fprintf(stdout, "%-20s %s  %s\n", s.Name, s.Currency, s.Description)
		}
		return nil
	}

	base, err := pickScenario(opts, scenarios)
	if err != nil {
		return err
	}

	// 2. Inputs
	values := base.Values
	if len(opts.overrides) > 0 {
		values = applyOverrides(values, opts.overrides)
		if opts.scenario == "" && opts.file == "" {
			base.Name = "Custom"
		}
	}

	currency := opts.currency
	if currency == "" {
		currency = base.Currency
	}
	if currency == "" {
		currency = cfg.Currency
	}
	cur, err := report.ParseCurrency(currency)
	if err != nil {
		return err
	}

	// 3. Evaluate
	rep := report.New(base.Name, cur, values.InputSet())
	rep.Warnings = inputs.Check(values)

	if opts.commentary {
		rep.Commentary = comment(ctx, cfg, rep, stderr)
	}

	// 4. Render
	body, err := render(rep, opts.format)
	if err != nil {
		return err
	}
	if opts.out == "" {
		_, err = stdout.Write(body)
		return err
	}
	if err := os.WriteFile(opts.out, body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.out, err)
	}
	fmt.Fprintf(stdout, "wrote %s (%d bytes)\n", opts.out, len(body))
	return nil
}

func pickScenario(opts options, scenarios []scenario.Scenario) (scenario.Scenario, error) {
	switch {
	case opts.file != "":
		return scenario.Load(opts.file)
	case opts.scenario != "":
		s, ok := scenario.Find(scenarios, opts.scenario)
		if !ok {
			return scenario.Scenario{}, fmt.Errorf("unknown scenario %q (try -list)", opts.scenario)
		}
		return s, nil
	}
	if s, ok := scenario.Find(scenarios, "Default"); ok {
		return s, nil
	}
	return scenario.Default(), nil
}

// applyOverrides re-expresses values as a form, applies flag text and
// parses it back, so flags use the same units and parsing as the UI.
func applyOverrides(values inputs.Values, overrides map[string]string) inputs.Values {
	out := values
	for _, o := range formOverrides {
		v, ok := overrides[o.name]
		if !ok {
			continue
		}
		var f inputs.Form
		o.apply(&f, v)
		parsed := f.Values()
		switch o.name {
		case "stores":
			out.StoreCount = parsed.StoreCount
		case "revenue":
			out.RevenuePerStore = parsed.RevenuePerStore
		case "fee":
			out.SubscriptionFeePerStore = parsed.SubscriptionFeePerStore
		case "wacc":
			out.DiscountRate = parsed.DiscountRate
		case "margin":
			out.BaselineGrossMargin = parsed.BaselineGrossMargin
		case "uplift":
			out.SalesUpliftRate = parsed.SalesUpliftRate
		case "pp":
			out.MarginImprovementPP = parsed.MarginImprovementPP
		case "waste":
			out.WasteReductionRate = parsed.WasteReductionRate
		case "labor":
			out.LaborEfficiencyRate = parsed.LaborEfficiencyRate
		case "compliance":
			out.ComplianceSavingPerStore = parsed.ComplianceSavingPerStore
		case "adoption":
			out.Adoption = parsed.Adoption
		}
	}
	return out
}

func comment(ctx context.Context, cfg settings.Settings, rep *report.Report, stderr io.Writer) string {
	prompts := prompt.NewRegistry()
	if err := prompts.LoadFromDirectory(cfg.PromptsDir); err != nil {
		fmt.Fprintf(stderr, "[WARNING] %v\n", err)
	}
	agentCfg, err := agent.LoadConfig(cfg.ModelsConfig)
	if err != nil {
		fmt.Fprintf(stderr, "[WARNING] %v\n", err)
	}
	mgr := agent.NewManager(agentCfg, agent.Credentials{GeminiAPIKey: cfg.GeminiAPIKey, GeminiModel: cfg.GeminiModel})

	text, err := narrative.NewWriter(mgr, prompts, cfg.CommentaryTimeout).Comment(ctx, rep)
	if err != nil {
		fmt.Fprintf(stderr, "[NARRATIVE] using summary: %v\n", err)
	}
	return text
}

var errUnknownFormat = errors.New("unknown format")

func render(rep *report.Report, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "text", "txt":
		return []byte(report.Text(rep)), nil
	case "json":
		return json.MarshalIndent(struct {
			*report.Report
			Currency string `json:"currency"`
		}{rep, rep.Currency.Code()}, "", "  ")
	case "md", "markdown":
		return []byte(report.Markdown(rep)), nil
	case "html":
		return report.HTML(rep)
	case "xlsx":
		return report.Excel(rep)
	case "pdf":
		return report.PDF(rep)
	}
	return nil, fmt.Errorf("%w: %s", errUnknownFormat, format)
}
