package export

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Dataset names an exportable admin table.
type Dataset string

const (
	DatasetUsers         Dataset = "users"
	DatasetAdmins        Dataset = "admins"
	DatasetSubscriptions Dataset = "subscriptions"
	DatasetTransactions  Dataset = "transactions"
)

// Datasets lists every exportable dataset.
var Datasets = []Dataset{DatasetUsers, DatasetAdmins, DatasetSubscriptions, DatasetTransactions}

// Valid returns true if the Dataset is known.
func (d Dataset) Valid() bool { return slices.Contains(Datasets, d) }

// Preset is a named column layout for a dataset.
type Preset struct {
	Name    string   `yaml:"name"`
	Dataset Dataset  `yaml:"dataset"`
	Columns []Column `yaml:"columns"`
}

type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

//go:embed presets.yaml
var defaultPresets []byte

// Presets holds the available layouts keyed by name.
type Presets struct {
	byName map[string]Preset
}

// LoadPresets parses the built-in presets and, when path is set, layers the file's presets on top.
// A file preset with an existing name replaces it.
func LoadPresets(path string) (*Presets, error) {
	p := &Presets{byName: map[string]Preset{}}
	if err := p.merge(defaultPresets); err != nil {
		return nil, fmt.Errorf("built-in presets: %w", err)
	}
	if path = strings.TrimSpace(path); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read presets file: %w", err)
		}
		if err := p.merge(raw); err != nil {
			return nil, fmt.Errorf("presets file %s: %w", path, err)
		}
	}
	return p, nil
}

func (p *Presets) merge(raw []byte) error {
	var f presetFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return err
	}
	for _, pr := range f.Presets {
		if err := pr.validate(); err != nil {
			return err
		}
		p.byName[pr.Name] = pr
	}
	return nil
}

func (pr Preset) validate() error {
	if strings.TrimSpace(pr.Name) == "" {
		return errors.New("preset name is required")
	}
	if !pr.Dataset.Valid() {
		return fmt.Errorf("preset %q: unknown dataset %q", pr.Name, pr.Dataset)
	}
	if len(pr.Columns) == 0 {
		return fmt.Errorf("preset %q: no columns", pr.Name)
	}
	for _, c := range pr.Columns {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("preset %q: %w", pr.Name, err)
		}
	}
	return nil
}

// Resolve returns the named preset, or the dataset's default (the preset named after it) when name is empty.
func (p *Presets) Resolve(dataset Dataset, name string) (Preset, error) {
	if name == "" {
		name = string(dataset)
	}
	pr, ok := p.byName[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown export preset %q", name)
	}
	if pr.Dataset != dataset {
		return Preset{}, fmt.Errorf("preset %q exports %s, not %s", name, pr.Dataset, dataset)
	}
	return pr, nil
}

// Names lists preset names for a dataset, sorted.
func (p *Presets) Names(dataset Dataset) []string {
	var out []string
	for name, pr := range p.byName {
		if pr.Dataset == dataset {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}
