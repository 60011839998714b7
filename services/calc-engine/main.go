// Command calc-engine is a JSON-in/JSON-out wrapper around the ROI engine
// for scripts and other services.
//
//	calc-engine -mode check -data '{"discountRate": 1.4}'
//	calc-engine -mode calculate -data '{"storeCount": 40, "adoption": [0.5, 1, 1]}'
//	calc-engine -mode wacc -data '{"unleveredBeta": 0.8, "riskFreeRate": 0.04, ...}'
//
// Fields left out of -data keep the calculator defaults.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/finnegil-spec/orbital-roi/pkg/core/inputs"
	"github.com/finnegil-spec/orbital-roi/pkg/core/roi"
	"github.com/finnegil-spec/orbital-roi/pkg/core/utils"
	"github.com/finnegil-spec/orbital-roi/pkg/core/wacc"
)

type checkOutput struct {
	Valid      bool               `json:"valid"`
	Violations []inputs.Violation `json:"violations"`
}

type calculateOutput struct {
	Input    roi.InputSet       `json:"input"`
	Result   roi.Result         `json:"result"`
	Warnings []inputs.Violation `json:"warnings,omitempty"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("calc-engine", flag.ContinueOnError)
	fs.SetOutput(stderr)
	mode := fs.String("mode", "calculate", "Mode: check, calculate or wacc")
	dataStr := fs.String("data", "", "JSON input values (fractions, not percent)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *dataStr == "" {
		fmt.Fprintln(stderr, "Error: No data provided")
		return 1
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")

	if *mode == "wacc" {
		var in wacc.Input
		if _, err := utils.SmartParse(*dataStr, &in); err != nil {
			fmt.Fprintf(stderr, "Error unmarshaling data: %v\n", err)
			return 1
		}
		if err := enc.Encode(wacc.Estimate(in)); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	values := inputs.DefaultForm().Values()
	if _, err := utils.SmartParse(*dataStr, &values); err != nil {
		fmt.Fprintf(stderr, "Error unmarshaling data: %v\n", err)
		return 1
	}

	switch *mode {
	case "check":
		violations := inputs.Check(values)
		if err := enc.Encode(checkOutput{Valid: len(violations) == 0, Violations: violations}); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		if len(violations) > 0 {
			return 3
		}
	case "calculate":
		in := values.InputSet()
		out := calculateOutput{Input: in, Result: roi.Evaluate(in), Warnings: inputs.Check(values)}
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	default:
		fmt.Fprintf(stderr, "Unknown mode: %s\n", *mode)
		return 2
	}
	return 0
}
