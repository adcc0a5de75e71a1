// Package gesturestore provides a trainable gesture pattern store for Go.
//
// A Library keeps named collections of example gesture traces, extracts
// a feature vector from each trace, and predicts the most likely label
// for a new trace by nearest-exemplar comparison against the stored
// examples. The whole labeled example set persists to a compact
// versioned binary file that round-trips exactly.
//
// # Quick Start
//
//	lib := gesturestore.New("gestures.bin")
//	lib.Load()
//
//	if err := lib.AddGesture("circle", gesture); err != nil {
//	    return err
//	}
//
//	predictions, err := lib.Recognize(query)
//	if err != nil {
//	    return err
//	}
//	if len(predictions) > 0 {
//	    fmt.Println("best match:", predictions[0].Name)
//	}
//
//	lib.Save()
//
// # Policies
//
// Two extraction policy axes are set independently at any time: the
// sequence type (feature.SequenceSensitive or feature.SequenceInvariant)
// and the orientation style (feature.OrientationSensitive or
// feature.OrientationInvariant). Changing a policy does not recompute
// instances already in the classifier; a query extracted under a
// different policy is rejected with a PolicyMismatchError at
// recognition time. Retrain (or reload) after a policy change.
package gesturestore

import (
	"context"
	"io"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/gesturestore/feature"
	"github.com/hupe1980/gesturestore/learner"
	"github.com/hupe1980/gesturestore/model"
	"github.com/hupe1980/gesturestore/persistence"
)

// Library maintains gesture examples and makes predictions on a new
// gesture.
//
// The label mapping and the classifier instance set are kept in
// lock-step: every gesture in the mapping has exactly one instance in
// the classifier and vice versa. All mutations go through a single
// internal add/remove path under the write lock so a partial update can
// never break that invariant. Reads (Recognize, Gestures,
// GestureEntries) may run concurrently with each other.
type Library struct {
	mu   sync.RWMutex
	path string

	sequenceType     feature.SequenceType
	orientationStyle feature.OrientationStyle

	classifier    learner.Learner
	namedGestures map[string][]*model.Gesture

	// changed gates Save: a clean library saves as a no-op.
	changed bool

	logger *Logger
}

// New creates a gesture library backed by the store file at path. The
// file is not touched until Load or Save is called.
func New(path string, optFns ...func(o *Options)) *Library {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	classifier := opts.Classifier
	if classifier == nil {
		classifier = learner.NewInstanceLearner()
	}

	logger := opts.Logger
	if logger == nil {
		logger = NoopLogger()
	}

	return &Library{
		path:             path,
		sequenceType:     opts.SequenceType,
		orientationStyle: opts.OrientationStyle,
		classifier:       classifier,
		namedGestures:    make(map[string][]*model.Gesture),
		logger:           logger,
	}
}

// SetSequenceType sets the sequence type policy. Instances already in
// the classifier are not recomputed; see the package documentation.
func (l *Library) SetSequenceType(t feature.SequenceType) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sequenceType = t
}

// SequenceType returns the active sequence type policy.
func (l *Library) SequenceType() feature.SequenceType {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sequenceType
}

// SetOrientationStyle sets the orientation style policy.
func (l *Library) SetOrientationStyle(o feature.OrientationStyle) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.orientationStyle = o
}

// OrientationStyle returns the active orientation style policy.
func (l *Library) OrientationStyle() feature.OrientationStyle {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.orientationStyle
}

// AddGesture adds an example gesture for the entry. A blank entry name
// is silently ignored. Extraction failures (for example a multi-stroke
// gesture under the sequence-sensitive policy) are returned as an
// InvalidInputError and leave the library unchanged.
func (l *Library) AddGesture(entryName string, g *model.Gesture) error {
	if entryName == "" {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	inst, err := feature.Extract(g, l.sequenceType, l.orientationStyle, entryName)
	if err != nil {
		l.logger.LogAdd(entryName, g.ID(), err)
		return err
	}

	l.addLocked(entryName, g, inst)
	l.changed = true
	l.logger.LogAdd(entryName, g.ID(), nil)
	return nil
}

// AddGestures adds a batch of example gestures for the entry,
// extracting features concurrently. Either every gesture is added or
// none is: the first extraction failure aborts the batch.
func (l *Library) AddGestures(entryName string, gestures []*model.Gesture) error {
	if entryName == "" || len(gestures) == 0 {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	instances := make([]*feature.Instance, len(gestures))
	grp, _ := errgroup.WithContext(context.Background())
	for i, g := range gestures {
		i, g := i, g
		grp.Go(func() error {
			inst, err := feature.Extract(g, l.sequenceType, l.orientationStyle, entryName)
			if err != nil {
				return err
			}
			instances[i] = inst
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		l.logger.LogAdd(entryName, 0, err)
		return err
	}

	for i, g := range gestures {
		l.addLocked(entryName, g, instances[i])
	}
	l.changed = true
	l.logger.LogAddBatch(entryName, len(gestures))
	return nil
}

// RemoveGesture removes a gesture from the entry, matched by gesture
// identifier. If no gestures remain for the entry, the entry itself is
// removed.
func (l *Library) RemoveGesture(entryName string, g *model.Gesture) {
	l.mu.Lock()
	defer l.mu.Unlock()

	gestures, ok := l.namedGestures[entryName]
	if !ok {
		return
	}

	l.removeLocked(entryName, gestures, g.ID())
	l.changed = true
	l.logger.LogRemove(entryName, g.ID(), nil)
}

// RemoveEntry removes an entry and every example trained under it.
func (l *Library) RemoveEntry(entryName string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.namedGestures, entryName)
	l.classifier.RemoveInstances(entryName)
	l.changed = true
	l.logger.LogRemoveEntry(entryName)
}

// Recognize extracts an instance from the query gesture under the
// current policy and returns predictions ordered by descending
// confidence. An untrained library returns an empty slice.
func (l *Library) Recognize(g *model.Gesture) ([]learner.Prediction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	inst, err := feature.Extract(g, l.sequenceType, l.orientationStyle, "")
	if err != nil {
		l.logger.LogRecognize(g.ID(), 0, err)
		return nil, err
	}

	predictions, err := l.classifier.Classify(l.sequenceType, inst.Vector)
	l.logger.LogRecognize(g.ID(), len(predictions), err)
	return predictions, err
}

// GestureEntries returns the entry names in the library. No ordering is
// guaranteed.
func (l *Library) GestureEntries() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	names := make([]string, 0, len(l.namedGestures))
	for name := range l.namedGestures {
		names = append(names, name)
	}
	return names
}

// Gestures returns a copy of the entry's gesture sequence, or nil if
// the entry does not exist. Mutating the returned slice does not affect
// the library.
func (l *Library) Gestures(entryName string) []*model.Gesture {
	l.mu.RLock()
	defer l.mu.RUnlock()

	gestures, ok := l.namedGestures[entryName]
	if !ok {
		return nil
	}
	cp := make([]*model.Gesture, len(gestures))
	copy(cp, gestures)
	return cp
}

// EntryCount returns the number of entries in the library.
func (l *Library) EntryCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.namedGestures)
}

// GestureCount returns the total number of example gestures across all
// entries.
func (l *Library) GestureCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := 0
	for _, gestures := range l.namedGestures {
		n += len(gestures)
	}
	return n
}

// Save persists the library to its store file. It reports success as a
// boolean: disk trouble never crashes the caller, it is logged and
// surfaced as false. Saving a clean library is a no-op returning true.
// A failed save leaves the file from the prior successful save
// untouched.
func (l *Library) Save() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.changed {
		return true
	}

	err := persistence.SaveToFile(l.path, func(w io.Writer) error {
		return persistence.WriteStore(w, l.namedGestures)
	})
	l.logger.LogSave(l.path, err)
	if err != nil {
		return false
	}

	l.changed = false
	return true
}

// Load replaces the in-memory label mapping and classifier state with
// the store file's contents, re-extracting instances under the current
// policy. A missing file returns false without being a fault; any
// decode or I/O failure also returns false (logged, never raised). On
// success the library is clean (Save is a no-op until the next
// mutation).
func (l *Library) Load() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := os.Stat(l.path); err != nil {
		l.logger.LogLoad(l.path, 0, err)
		return false
	}

	var entries map[string][]*model.Gesture
	err := persistence.LoadFromFile(l.path, func(r io.Reader) error {
		var err error
		entries, err = persistence.ReadStore(r)
		return err
	})
	if err != nil {
		l.logger.LogLoad(l.path, 0, err)
		return false
	}

	if err := l.replaceLocked(entries); err != nil {
		l.logger.LogLoad(l.path, 0, err)
		return false
	}

	l.changed = false
	l.logger.LogLoad(l.path, len(entries), nil)
	return true
}

// addLocked is the single path appending a gesture to the label mapping
// and its instance to the classifier, keeping both in lock-step.
// Callers hold the write lock.
func (l *Library) addLocked(entryName string, g *model.Gesture, inst *feature.Instance) {
	l.namedGestures[entryName] = append(l.namedGestures[entryName], g)
	l.classifier.AddInstance(inst)
}

// removeLocked is the single path removing a gesture from the label
// mapping and its instance from the classifier. Callers hold the write
// lock.
func (l *Library) removeLocked(entryName string, gestures []*model.Gesture, id int64) {
	kept := gestures[:0]
	for _, g := range gestures {
		if g.ID() != id {
			kept = append(kept, g)
		}
	}
	if len(kept) == 0 {
		// No samples left: drop the entry entirely.
		delete(l.namedGestures, entryName)
	} else {
		l.namedGestures[entryName] = kept
	}
	l.classifier.RemoveInstance(id)
}

// replaceLocked rebuilds the label mapping and classifier from entries,
// extracting every instance under the current policy. The new state is
// built aside and committed only when every extraction succeeded.
// Callers hold the write lock.
func (l *Library) replaceLocked(entries map[string][]*model.Gesture) error {
	instances := make([]*feature.Instance, 0, len(entries))
	for name, gestures := range entries {
		for _, g := range gestures {
			inst, err := feature.Extract(g, l.sequenceType, l.orientationStyle, name)
			if err != nil {
				return err
			}
			instances = append(instances, inst)
		}
	}

	for _, inst := range l.classifier.Instances() {
		l.classifier.RemoveInstance(inst.ID)
	}
	for _, inst := range instances {
		l.classifier.AddInstance(inst)
	}
	l.namedGestures = entries
	return nil
}
