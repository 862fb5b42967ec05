// Package manifest loads the test-case results written by the screenshot
// capture step, the input from which a fresh golden file is built.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"golden/internal/golden"
)

// Manifest lists the captured test cases of one run.
type Manifest struct {
	TestCases []golden.TestCase `json:"testCases" yaml:"testCases"`
}

// Validate requires every test case to name its page and public URL, and
// every screenshot to carry an alias and URL.
func (m *Manifest) Validate() error {
	var errs []error
	for i, tc := range m.TestCases {
		if strings.TrimSpace(tc.PageKey) == "" {
			errs = append(errs, fmt.Errorf("testCases[%d]: pageKey is required", i))
		}
		if strings.TrimSpace(tc.PublicURL) == "" {
			errs = append(errs, fmt.Errorf("testCases[%d] (%s): publicUrl is required", i, tc.PageKey))
		}
		for j, shot := range tc.Screenshots {
			if shot.Alias == "" || shot.URL == "" {
				errs = append(errs, fmt.Errorf("testCases[%d].screenshots[%d] (%s): alias and url are required", i, j, tc.PageKey))
			}
		}
	}
	return errors.Join(errs...)
}

// LoadFromPath reads a manifest file (YAML or JSON) and validates it.
func LoadFromPath(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Load(data, filepath.Ext(path))
}

// Load parses a manifest from bytes. ext is the file extension used as a
// format hint; empty = detect from content.
func Load(data []byte, ext string) (*Manifest, error) {
	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}
	if ext == "" && strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		ext = ".json"
	}

	var m Manifest
	if ext == ".json" {
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parse manifest json: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest yaml: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	return &m, nil
}
