package dataset

import "fmt"

// Name identifies a benchmark dataset.
type Name string

const (
	// Davis is the DAVIS video benchmark.
	Davis Name = "davis"

	// Set8 is the Set8 video benchmark.
	Set8 Name = "set8"
)

// Mode selects between the blind and non-blind model configurations.
type Mode string

const (
	// Blind denotes the noise-level-agnostic model configuration.
	Blind Mode = "blind"

	// NonBlind denotes the model configuration conditioned on the noise level.
	NonBlind Mode = "nonblind"
)

// Variant is one dataset/mode combination the driver can benchmark.
type Variant struct {
	Name Name
	Mode Mode
}

// ID returns a stable identifier, e.g. "davis-blind".
func (v Variant) ID() string {
	return fmt.Sprintf("%s-%s", v.Name, v.Mode)
}

// GenerationModule returns the eval_codes module that renders denoised
// images for this variant.
func (v Variant) GenerationModule() string {
	module := fmt.Sprintf("eval_codes.generate_images_%s", v.Name)
	if v.Mode == Blind {
		module += "_blind"
	}
	return module
}

// EvaluationModule returns the eval_codes module that scores generated images.
// A single module handles every variant; set8 runs are selected by flag.
func (v Variant) EvaluationModule() string {
	return "eval_codes.evaluation"
}

// EvaluationSelector returns the extra evaluation flags selecting this
// variant's dataset, if any.
func (v Variant) EvaluationSelector() []string {
	if v.Name == Set8 {
		return []string{"--set8"}
	}
	return nil
}
