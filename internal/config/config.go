package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/ekisa-team/denobench/internal/envvar"
	"github.com/ekisa-team/denobench/internal/xfs"
)

// Dataset names a benchmark dataset understood by the eval_codes modules.
type Dataset string

const (
	// DatasetDavis is the DAVIS video benchmark.
	DatasetDavis Dataset = "davis"

	// DatasetSet8 is the Set8 video benchmark.
	DatasetSet8 Dataset = "set8"
)

// SourceType represents the type of weights source.
type SourceType string

const (
	// SourceTypeHuggingFace represents a Hugging Face model repository source.
	SourceTypeHuggingFace SourceType = "huggingface"
)

// Config holds the benchmark suite configuration.
type Config struct {
	Version     string                    `json:"version"                yaml:"version"`
	GPU         int                       `json:"gpu"                    yaml:"gpu"`
	Python      string                    `json:"python,omitempty"       yaml:"python,omitempty"`
	WorkDir     string                    `json:"work_dir,omitempty"     yaml:"work_dir,omitempty"`
	ConfigFile  string                    `json:"config_file"            yaml:"config_file"`
	NoiseLevels []int                     `json:"noise_levels"           yaml:"noise_levels"`
	Blind       bool                      `json:"blind,omitempty"        yaml:"blind,omitempty"`
	Datasets    []Dataset                 `json:"datasets,omitempty"     yaml:"datasets,omitempty"`
	SkipImages  bool                      `json:"skip_images,omitempty"  yaml:"skip_images,omitempty"`
	StepTimeout Duration                  `json:"step_timeout,omitempty" yaml:"step_timeout,omitempty"`
	Parameters  map[string]map[string]any `json:"parameters,omitempty"   yaml:"parameters,omitempty"`
	Weights     WeightsConfig             `json:"weights,omitempty"      yaml:"weights,omitempty"`
}

// WeightsConfig describes where pretrained weights come from and where they live.
type WeightsConfig struct {
	Dir    string       `json:"dir,omitempty"    yaml:"dir,omitempty"`
	Source SourceConfig `json:"source,omitempty" yaml:"source,omitempty"`
}

// SourceConfig wraps optional sources (only one should be set).
type SourceConfig struct {
	HuggingFace *HuggingFaceSource `json:"huggingface,omitempty" yaml:"huggingface,omitempty"`
}

// WeightsSource represents a source for pretrained weights.
type WeightsSource interface {
	Type() SourceType
}

// HuggingFaceSource represents a Hugging Face model repository source.
type HuggingFaceSource struct {
	Repo          string   `json:"repo"                     yaml:"repo"`
	Revision      string   `json:"revision,omitempty"       yaml:"revision,omitempty"`
	RepoType      string   `json:"repo_type,omitempty"      yaml:"repo_type,omitempty"`
	Token         string   `json:"token,omitempty"          yaml:"token,omitempty"`
	Include       []string `json:"include,omitempty"        yaml:"include,omitempty"`
	Exclude       []string `json:"exclude,omitempty"        yaml:"exclude,omitempty"`
	MaxWorkers    int      `json:"max_workers,omitempty"    yaml:"max_workers,omitempty"`
	ForceDownload bool     `json:"force_download,omitempty" yaml:"force_download,omitempty"`
}

// Type returns the Hugging Face source type.
func (h HuggingFaceSource) Type() SourceType {
	return SourceTypeHuggingFace
}

// GetSource returns the active weights source.
func (w *WeightsConfig) GetSource() (WeightsSource, error) {
	if w.Source.HuggingFace != nil {
		return *w.Source.HuggingFace, nil
	}

	return nil, errors.New("no weights source configured")
}

// Duration wraps time.Duration so it can be written as "2h" in YAML.
type Duration time.Duration

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// UnmarshalYAML decodes a Go duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}

	*d = Duration(parsed)
	return nil
}

// MarshalYAML encodes the duration as a string.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Normalize fills in defaults and expands user paths. It is called by the
// loader after schema validation.
func (c *Config) Normalize() {
	if c.Python == "" {
		if p := os.Getenv(envvar.DenobenchPython); p != "" {
			c.Python = p
		} else {
			c.Python = "python"
		}
	}

	if len(c.Datasets) == 0 {
		c.Datasets = []Dataset{DatasetDavis, DatasetSet8}
	}

	c.ConfigFile = xfs.ExpandTilde(c.ConfigFile)
	c.WorkDir = xfs.ExpandTilde(c.WorkDir)
	c.Weights.Dir = xfs.ExpandTilde(c.Weights.Dir)
}

// Validate checks constraints the JSON schema cannot express.
func (c *Config) Validate() error {
	if c.GPU < 0 {
		return fmt.Errorf("config: gpu must be non-negative, got %d", c.GPU)
	}

	if len(c.NoiseLevels) == 0 {
		return errors.New("config: at least one noise level is required")
	}
	for _, level := range c.NoiseLevels {
		if level < 0 {
			return fmt.Errorf("config: noise level must be non-negative, got %d", level)
		}
	}

	seen := make(map[Dataset]bool, len(c.Datasets))
	for _, ds := range c.Datasets {
		if ds != DatasetDavis && ds != DatasetSet8 {
			return fmt.Errorf("config: unknown dataset %q", ds)
		}
		if seen[ds] {
			return fmt.Errorf("config: dataset %q listed twice", ds)
		}
		seen[ds] = true
	}

	if c.ConfigFile == "" {
		return errors.New("config: config_file is required")
	}

	return nil
}

// Mode returns the model mode selected by the blind flag.
func (c *Config) Mode() string {
	if c.Blind {
		return "blind"
	}
	return "nonblind"
}
