// Package scenario reads named input presets from YAML, TOML, JSON or Hjson
// files. Fields a file leaves out keep the default calculator values.
package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/finnegil-spec/orbital-roi/pkg/core/inputs"
	"github.com/finnegil-spec/orbital-roi/pkg/core/report"
	"github.com/finnegil-spec/orbital-roi/pkg/core/roi"
	"github.com/finnegil-spec/orbital-roi/pkg/core/utils"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v2"
)

// ErrUnsupportedFormat is returned for file extensions no reader handles.
var ErrUnsupportedFormat = errors.New("unsupported scenario format")

// Scenario is a named set of input values.
type Scenario struct {
	Name        string        `json:"name" yaml:"name" toml:"name"`
	Description string        `json:"description,omitempty" yaml:"description" toml:"description"`
	Currency    string        `json:"currency" yaml:"currency" toml:"currency"`
	Values      inputs.Values `json:"values" yaml:"values" toml:"values"`
}

// Default is the calculator's initial scenario.
func Default() Scenario {
	return Scenario{
		Name:        "Default",
		Description: "100-store chain, 20/70/100 % rollout",
		Currency:    report.DefaultCurrency,
		Values:      inputs.DefaultForm().Values(),
	}
}

// InputSet returns the clamped engine input for the scenario.
func (s Scenario) InputSet() roi.InputSet {
	return s.Values.InputSet()
}

// Validate checks the parts of a scenario that cannot be clamped.
func (s Scenario) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("scenario name is required")
	}
	if _, err := report.ParseCurrency(s.Currency); err != nil {
		return fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return nil
}

// Parse decodes a scenario. format is a file extension with or without
// the leading dot: yaml, yml, toml, json or hjson.
func Parse(data []byte, format string) (Scenario, error) {
	s := Default()
	s.Name = ""
	s.Description = ""

	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Scenario{}, fmt.Errorf("parse yaml scenario: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &s); err != nil {
			return Scenario{}, fmt.Errorf("parse toml scenario: %w", err)
		}
	case "json":
		if _, err := utils.SmartParse(string(data), &s); err != nil {
			return Scenario{}, fmt.Errorf("parse json scenario: %w", err)
		}
	case "hjson":
		converted, err := utils.ParseHJSON(string(data))
		if err != nil {
			return Scenario{}, fmt.Errorf("parse hjson scenario: %w", err)
		}
		if err := json.Unmarshal([]byte(converted), &s); err != nil {
			return Scenario{}, fmt.Errorf("decode hjson scenario: %w", err)
		}
	default:
		return Scenario{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err := s.Validate(); err != nil {
		return Scenario{}, err
	}
	return s, nil
}

// Load reads one scenario file, choosing the reader by extension.
func Load(path string) (Scenario, error) {
	ext := filepath.Ext(path)
	if !supported(ext) {
		return Scenario{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario: %w", err)
	}

	s, err := Parse(data, ext)
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return s, nil
}

// LoadDir loads every supported file in dir, sorted by scenario name.
// Files with other extensions are ignored; a broken file fails the load.
func LoadDir(dir string) ([]Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read scenario dir: %w", err)
	}

	var out []Scenario
	seen := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || !supported(filepath.Ext(e.Name())) {
			continue
		}
		s, err := Load(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[strings.ToLower(s.Name)]; dup {
			return nil, fmt.Errorf("scenario %q defined in both %s and %s", s.Name, prev, e.Name())
		}
		seen[strings.ToLower(s.Name)] = e.Name()
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	log.Printf("[SCENARIO] loaded %d scenarios from %s", len(out), dir)
	return out, nil
}

// Find returns the scenario with the given name (case-insensitive).
func Find(list []Scenario, name string) (Scenario, bool) {
	for _, s := range list {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Scenario{}, false
}

func supported(ext string) bool {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml", ".toml", ".json", ".hjson":
		return true
	}
	return false
}
