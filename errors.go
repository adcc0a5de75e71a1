package gesturestore

import (
	"github.com/hupe1980/gesturestore/feature"
	"github.com/hupe1980/gesturestore/learner"
	"github.com/hupe1980/gesturestore/persistence"
)

// The error kinds a Library surfaces are defined next to the packages
// that raise them and re-exported here so callers can match them with
// errors.As without importing the subpackages.

// DecodeError indicates truncated or malformed binary input during
// load or snapshot import.
type DecodeError = persistence.DecodeError

// InvalidInputError indicates a gesture shape the active policy cannot
// handle, such as a multi-stroke gesture under the sequence-sensitive
// policy.
type InvalidInputError = feature.InvalidInputError

// PolicyMismatchError indicates a vector-dimension mismatch during
// classification, typically after a policy change without retraining.
type PolicyMismatchError = learner.PolicyMismatchError
