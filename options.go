package gesturestore

import (
	"github.com/hupe1980/gesturestore/feature"
	"github.com/hupe1980/gesturestore/learner"
)

// Options contains configuration options for a Library.
type Options struct {
	// SequenceType is the initial sequence type policy.
	SequenceType feature.SequenceType

	// OrientationStyle is the initial orientation style policy.
	// It only affects extraction under feature.SequenceSensitive.
	OrientationStyle feature.OrientationStyle

	// Classifier is the classification strategy. If nil, a
	// nearest-exemplar InstanceLearner is used.
	Classifier learner.Learner

	// Logger receives structured operation logs. If nil, logging is
	// disabled.
	Logger *Logger
}

// DefaultOptions contains the default configuration options for a
// Library. The defaults match the legacy store: sequence-sensitive,
// orientation-sensitive.
var DefaultOptions = Options{
	SequenceType:     feature.SequenceSensitive,
	OrientationStyle: feature.OrientationSensitive,
}

// WithSequenceType sets the initial sequence type policy.
func WithSequenceType(t feature.SequenceType) func(o *Options) {
	return func(o *Options) {
		o.SequenceType = t
	}
}

// WithOrientationStyle sets the initial orientation style policy.
func WithOrientationStyle(style feature.OrientationStyle) func(o *Options) {
	return func(o *Options) {
		o.OrientationStyle = style
	}
}

// WithClassifier sets a custom classification strategy.
func WithClassifier(c learner.Learner) func(o *Options) {
	return func(o *Options) {
		o.Classifier = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *Logger) func(o *Options) {
	return func(o *Options) {
		o.Logger = l
	}
}
