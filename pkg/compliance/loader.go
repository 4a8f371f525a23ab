package compliance

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Load reads every *.json file in dir as a []Suite document, returning the
// combined suites sorted by filename for deterministic test ordering.
func Load(dir string) ([]Suite, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading compliance dir %q: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".json" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var suites []Suite
	for _, name := range names {
		loaded, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", name, err)
		}
		suites = append(suites, loaded...)
	}
	if len(suites) == 0 {
		return nil, fmt.Errorf("no compliance fixtures found in %s", dir)
	}
	return suites, nil
}

// LoadFile parses a single compliance fixture file, which holds a JSON
// array of Suite documents.
func LoadFile(path string) ([]Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var suites []Suite
	if err := json.Unmarshal(data, &suites); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	for i := range suites {
		for j, c := range suites[i].Cases {
			if c.Expression == "" {
				return nil, fmt.Errorf("%s: suite %d case %d: expression is required", path, i, j)
			}
		}
	}
	return suites, nil
}
