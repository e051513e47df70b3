package config

import (
	"fmt"

	pipelineerrors "github.com/standardbeagle/dupgrouper/internal/errors"
)

// Validator validates configuration and sets smart defaults.
type Validator struct{}

// NewValidator creates a new configuration validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAndSetDefaults validates configuration and applies smart defaults.
// Returns a *pipelineerrors.ValidationError on failure.
func (v *Validator) ValidateAndSetDefaults(cfg *Config) error {
	if err := v.validateThresholds(cfg); err != nil {
		return err
	}
	if err := v.validatePenalties(cfg); err != nil {
		return err
	}
	if err := v.validateGates(cfg); err != nil {
		return err
	}
	if err := v.validateLimits(cfg); err != nil {
		return err
	}

	v.setSmartDefaults(cfg)
	return nil
}

func (v *Validator) validateThresholds(cfg *Config) error {
	if cfg.StructuralThreshold < 0 || cfg.StructuralThreshold > 1 {
		return pipelineerrors.NewValidationError("STRUCTURAL_THRESHOLD",
			fmt.Sprintf("%v", cfg.StructuralThreshold),
			fmt.Errorf("must be in [0, 1]"))
	}
	if cfg.SemanticThreshold < 0 || cfg.SemanticThreshold > 1 {
		return pipelineerrors.NewValidationError("SEMANTIC_SIMILARITY_THRESHOLD",
			fmt.Sprintf("%v", cfg.SemanticThreshold),
			fmt.Errorf("must be in [0, 1]"))
	}
	return nil
}

func (v *Validator) validatePenalties(cfg *Config) error {
	for name, p := range map[string]float64{
		"OPPOSITE_LOGIC_PENALTY":  cfg.OppositeLogicPenalty,
		"STATUS_CODE_PENALTY":     cfg.StatusCodePenalty,
		"SEMANTIC_METHOD_PENALTY": cfg.SemanticMethodPenalty,
	} {
		if p < 0 || p > 1 {
			return pipelineerrors.NewValidationError(name, fmt.Sprintf("%v", p),
				fmt.Errorf("multiplicative penalty must be in [0, 1]"))
		}
	}
	return nil
}

func (v *Validator) validateGates(cfg *Config) error {
	if cfg.MinLineCount < 0 {
		return pipelineerrors.NewValidationError("MIN_LINE_COUNT",
			fmt.Sprintf("%d", cfg.MinLineCount), fmt.Errorf("cannot be negative"))
	}
	if cfg.MinUniqueTokens < 0 {
		return pipelineerrors.NewValidationError("MIN_UNIQUE_TOKENS",
			fmt.Sprintf("%d", cfg.MinUniqueTokens), fmt.Errorf("cannot be negative"))
	}
	if cfg.MinGroupQuality < 0 || cfg.MinGroupQuality > 1 {
		return pipelineerrors.NewValidationError("MIN_GROUP_QUALITY",
			fmt.Sprintf("%v", cfg.MinGroupQuality), fmt.Errorf("must be in [0, 1]"))
	}
	return nil
}

func (v *Validator) validateLimits(cfg *Config) error {
	if cfg.MaxParallelism < 0 {
		return pipelineerrors.NewValidationError("MAX_PARALLELISM",
			fmt.Sprintf("%d", cfg.MaxParallelism), fmt.Errorf("cannot be negative"))
	}
	if cfg.MaxPatternMatches <= 0 {
		return pipelineerrors.NewValidationError("MAX_PATTERN_MATCHES",
			fmt.Sprintf("%d", cfg.MaxPatternMatches), fmt.Errorf("must be positive"))
	}
	if cfg.MaxMatchedTextBytes <= 0 {
		return pipelineerrors.NewValidationError("MAX_MATCHED_TEXT_BYTES",
			fmt.Sprintf("%d", cfg.MaxMatchedTextBytes), fmt.Errorf("must be positive"))
	}
	return nil
}

// setSmartDefaults applies smart defaults based on system capabilities.
func (v *Validator) setSmartDefaults(cfg *Config) {
	if cfg.MaxParallelism == 0 {
		cfg.MaxParallelism = defaultParallelism()
	}
}

// ValidateConfig is a convenience function for quick validation.
func ValidateConfig(cfg *Config) error {
	validator := NewValidator()
	return validator.ValidateAndSetDefaults(cfg)
}
