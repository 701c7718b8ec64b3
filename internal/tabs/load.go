package tabs

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/labsite/pkg/types"
)

type tabsFile struct {
	Tabs []types.ResearchTab `yaml:"tabs"`
}

// LoadTabs reads research tab definitions from a YAML file with a top-level
// "tabs" key. Tabs without an id are dropped.
func LoadTabs(path string) ([]types.ResearchTab, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading research tabs: %w", err)
	}
	var f tabsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing research tabs %s: %w", path, err)
	}
	out := f.Tabs[:0]
	for _, t := range f.Tabs {
		if t.ID == "" {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}
