// Package learner implements the instance-based classifier behind the
// gesture library: a store of labeled feature vectors scored against a
// query by nearest-exemplar similarity.
package learner

import (
	"fmt"

	"github.com/hupe1980/gesturestore/feature"
)

// Prediction is a (label, confidence) pair produced by classification.
// Scores are finite and totally ordered; they do not sum to 1.
type Prediction struct {
	Name  string
	Score float64
}

// PolicyMismatchError indicates a vector-dimension mismatch between a
// query and a stored instance, typically caused by changing the
// extraction policy without recomputing stored instances.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type PolicyMismatchError struct {
	Expected int
	Actual   int
	cause    error
}

func (e *PolicyMismatchError) Error() string {
	return fmt.Sprintf("policy mismatch: stored dimension %d, query dimension %d", e.Expected, e.Actual)
}

func (e *PolicyMismatchError) Unwrap() error { return e.cause }

// Learner is a trainable classification strategy over extracted
// instances. Instances are added and removed one at a time; there is no
// batch retraining step.
type Learner interface {
	// AddInstance appends an instance to the training set.
	AddInstance(inst *feature.Instance)

	// RemoveInstance removes the instance tied to the given gesture
	// identifier. Removing an absent identifier is a no-op.
	RemoveInstance(id int64)

	// RemoveInstances removes every instance carrying the given label.
	RemoveInstances(label string)

	// Instances returns the current training set ordered by gesture
	// identifier.
	Instances() []*feature.Instance

	// Classify scores the query vector against the training set and
	// returns predictions ordered by descending score. An empty
	// training set yields an empty, non-nil slice.
	Classify(t feature.SequenceType, vector []float32) ([]Prediction, error)
}
