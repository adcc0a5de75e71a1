package learner

import (
	"math"
	"sort"
	"sync"

	"github.com/hupe1980/gesturestore/distance"
	"github.com/hupe1980/gesturestore/feature"
)

// Compile-time check to ensure InstanceLearner satisfies Learner.
var _ Learner = (*InstanceLearner)(nil)

// InstanceLearner is a nearest-exemplar classifier. Each stored
// instance is scored by inverse distance to the query and a label's
// confidence is the best score among its exemplars, so adding an
// exemplar close to the query can only raise its label.
type InstanceLearner struct {
	mu        sync.RWMutex
	instances map[int64]*feature.Instance
}

// NewInstanceLearner creates an empty instance learner.
func NewInstanceLearner() *InstanceLearner {
	return &InstanceLearner{
		instances: make(map[int64]*feature.Instance),
	}
}

// AddInstance appends an instance to the training set.
func (l *InstanceLearner) AddInstance(inst *feature.Instance) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.instances[inst.ID] = inst
}

// RemoveInstance removes the instance tied to the given gesture
// identifier, if present.
func (l *InstanceLearner) RemoveInstance(id int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.instances, id)
}

// RemoveInstances removes every instance carrying the given label.
func (l *InstanceLearner) RemoveInstances(label string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for id, inst := range l.instances {
		if inst.Label == label {
			delete(l.instances, id)
		}
	}
}

// Instances returns the training set ordered by gesture identifier.
func (l *InstanceLearner) Instances() []*feature.Instance {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*feature.Instance, 0, len(l.instances))
	for _, inst := range l.instances {
		out = append(out, inst)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Count returns the number of stored instances.
func (l *InstanceLearner) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.instances)
}

// Classify scores the query against every stored instance and
// aggregates per label. The distance function follows the sequence
// type: rotation-optimal cosine distance for sequence-sensitive
// vectors, squared L2 otherwise. Ties are broken by lexical label
// order so repeated calls are reproducible.
func (l *InstanceLearner) Classify(t feature.SequenceType, vector []float32) ([]Prediction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	best := make(map[string]float64, len(l.instances))
	for _, inst := range l.instances {
		if len(inst.Vector) != len(vector) {
			return nil, &PolicyMismatchError{Expected: len(inst.Vector), Actual: len(vector)}
		}

		var d float64
		if t == feature.SequenceSensitive {
			d = float64(distance.OptimalCosine(vector, inst.Vector))
		} else {
			d = float64(distance.SquaredL2(vector, inst.Vector))
		}

		weight := math.MaxFloat64
		if d > 0 {
			weight = 1 / d
		}
		if cur, ok := best[inst.Label]; !ok || weight > cur {
			best[inst.Label] = weight
		}
	}

	predictions := make([]Prediction, 0, len(best))
	for name, score := range best {
		predictions = append(predictions, Prediction{Name: name, Score: score})
	}
	sort.Slice(predictions, func(i, j int) bool {
		if predictions[i].Score != predictions[j].Score {
			return predictions[i].Score > predictions[j].Score
		}
		return predictions[i].Name < predictions[j].Name
	})
	return predictions, nil
}
