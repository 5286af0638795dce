//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Location is one entry of a test dataset
type Location struct {
	ID       string
	Name     string
	Category string
	Lat, Lng float64
}

// DefaultLocations is a small dataset around Tokyo station
var DefaultLocations = []Location{
	{"loc-1", "Marunouchi Coffee Stand", "cafe", 35.6812, 139.7671},
	{"loc-2", "Ginza Bakery", "bakery", 35.6717, 139.7650},
	{"loc-3", "Kanda Curry House", "restaurant", 35.6918, 139.7709},
	{"loc-4", "Shibuya Records", "music", 35.6595, 139.7005},
	{"loc-5", "Ueno Park Cafe", "cafe", 35.7148, 139.7734},
}

// CreateTestWorkspace creates a temporary home for the app under test
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// CreateDataset writes locations as the memory backend's dataset
func (tf *TUITestFramework) CreateDataset(locations []Location) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}

	var b strings.Builder
	b.WriteString("locations:\n")
	for _, l := range locations {
		fmt.Fprintf(&b, "  - id: %s\n    name: %s\n    category: %s\n", l.ID, l.Name, l.Category)
		fmt.Fprintf(&b, "    coordinate:\n      latitude: %v\n      longitude: %v\n", l.Lat, l.Lng)
	}

	path := filepath.Join(tf.workspace, "locations.yaml")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write dataset: %w", err)
	}
	tf.dataset = path
	return path, nil
}

// CreateConfig writes a config file into the workspace and returns its path
func (tf *TUITestFramework) CreateConfig(contents string) (string, error) {
	path := filepath.Join(tf.workspace, "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	return path, nil
}

// StartWithDataset creates a workspace with the default dataset and starts the app
func (tf *TUITestFramework) StartWithDataset(args ...string) error {
	if _, err := tf.CreateTestWorkspace(); err != nil {
		return err
	}
	if _, err := tf.CreateDataset(DefaultLocations); err != nil {
		return err
	}
	return tf.StartApp(args...)
}
