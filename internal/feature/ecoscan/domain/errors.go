// Package domain defines domain-level errors for the ecoscan feature.
package domain

import (
	"errors"
	"fmt"
)

// Stage identifies which inference stage of a scan produced an error.
type Stage string

const (
	StageClassification Stage = "classification"
	StageEstimation     Stage = "estimation"
)

// Domain errors for scan operations.
// Match them with errors.Is; use errors.As on the typed wrappers below for diagnostics.
var (
	// ErrEmptyImage indicates that no image bytes were supplied.
	ErrEmptyImage = errors.New("image data is empty")

	// ErrImageTooLarge indicates that the uploaded image exceeds the accepted size.
	ErrImageTooLarge = errors.New("image exceeds maximum size")

	// ErrClassificationParse indicates that the classifier output did not decode to the expected shape.
	ErrClassificationParse = errors.New("failed to parse classification response")

	// ErrEstimationParse indicates that the estimator output did not decode to the expected shape.
	ErrEstimationParse = errors.New("failed to parse eco-score response")

	// ErrInferenceService indicates a network, service or timeout failure talking to the inference provider.
	ErrInferenceService = errors.New("inference service request failed")

	// ErrConfiguration indicates missing or invalid process configuration.
	ErrConfiguration = errors.New("invalid configuration")
)

// ParseError carries the raw model output that failed to decode.
type ParseError struct {
	Kind error  // ErrClassificationParse or ErrEstimationParse
	Raw  string // unparsed model text
	Err  error  // underlying decode error, may be nil
}

// NewClassificationParseError wraps a classifier decode failure.
func NewClassificationParseError(raw string, err error) *ParseError {
	return &ParseError{Kind: ErrClassificationParse, Raw: raw, Err: err}
}

// NewEstimationParseError wraps an estimator decode failure.
func NewEstimationParseError(raw string, err error) *ParseError {
	return &ParseError{Kind: ErrEstimationParse, Raw: raw, Err: err}
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Stage reports which stage failed to parse.
func (e *ParseError) Stage() Stage {
	if errors.Is(e.Kind, ErrEstimationParse) {
		return StageEstimation
	}
	return StageClassification
}

// InferenceError annotates a failed call to the inference provider with its stage.
type InferenceError struct {
	Stage Stage
	Err   error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("%v (%s): %v", ErrInferenceService, e.Stage, e.Err)
}

func (e *InferenceError) Unwrap() []error {
	return []error{ErrInferenceService, e.Err}
}

// ConfigError reports a missing or invalid configuration key.
type ConfigError struct {
	Key    string
	Reason string // empty means the key is not set
}

func (e *ConfigError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%v: %s is not set", ErrConfiguration, e.Key)
	}
	return fmt.Sprintf("%v: %s: %s", ErrConfiguration, e.Key, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}
