// Package production provides production integrations for an hscx
// interpreter: snapshot persistence, meta-event publishing, and DOT/JSON
// visualization — each a thin adapter over the stdlib or, where the
// teacher reaches for one, gopkg.in/yaml.v3.
package production

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Snapshot is the serializable state of one interpreter: which chart it
// runs, its active configuration, and its host context data.
type Snapshot struct {
	ChartName     string         `json:"chartName" yaml:"chartName"`
	Configuration []string       `json:"configuration" yaml:"configuration"`
	ContextData   map[string]any `json:"context" yaml:"context"`
	Timestamp     time.Time      `json:"timestamp" yaml:"timestamp"`
}

// Persister saves and loads Snapshots, keyed by chart name.
type Persister interface {
	Save(ctx context.Context, snapshot Snapshot) error
	Load(ctx context.Context, chartName string) (Snapshot, error)
}

// JSONPersister is a file-based Persister using JSON, one file per chart
// name under dir.
type JSONPersister struct {
	dir string
}

// NewJSONPersister creates dir if needed and returns a JSONPersister
// rooted there.
func NewJSONPersister(dir string) (*JSONPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &JSONPersister{dir: dir}, nil
}

// Save writes snapshot to <dir>/<ChartName>.json.
func (p *JSONPersister) Save(ctx context.Context, snapshot Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	fn := filepath.Join(p.dir, snapshot.ChartName+".json")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

// Load reads <dir>/<chartName>.json.
func (p *JSONPersister) Load(ctx context.Context, chartName string) (Snapshot, error) {
	fn := filepath.Join(p.dir, chartName+".json")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Snapshot{}, fmt.Errorf("chart %q: %w", chartName, os.ErrNotExist)
		}
		return Snapshot{}, fmt.Errorf("read %s: %w", fn, err)
	}
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return Snapshot{}, fmt.Errorf("json unmarshal: %w", err)
	}
	snapshot.ChartName = chartName
	return snapshot, nil
}

// YAMLPersister is a file-based Persister using YAML, one file per chart
// name under dir.
type YAMLPersister struct {
	dir string
}

// NewYAMLPersister creates dir if needed and returns a YAMLPersister
// rooted there.
func NewYAMLPersister(dir string) (*YAMLPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &YAMLPersister{dir: dir}, nil
}

// Save writes snapshot to <dir>/<ChartName>.yaml.
func (p *YAMLPersister) Save(ctx context.Context, snapshot Snapshot) error {
	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	fn := filepath.Join(p.dir, snapshot.ChartName+".yaml")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

// Load reads <dir>/<chartName>.yaml.
func (p *YAMLPersister) Load(ctx context.Context, chartName string) (Snapshot, error) {
	fn := filepath.Join(p.dir, chartName+".yaml")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Snapshot{}, fmt.Errorf("chart %q: %w", chartName, os.ErrNotExist)
		}
		return Snapshot{}, fmt.Errorf("read %s: %w", fn, err)
	}
	var snapshot Snapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return Snapshot{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	snapshot.ChartName = chartName
	return snapshot, nil
}
