// Package model provides state management for machine learning models.
package model

import (
	"sync"

	"github.com/YuminosukeSato/adaboost/pkg/errors"
)

// StateManager manages the fitted state of a model in a thread-safe manner.
// Models embed it by composition and record the training shape with
// SetDimensions.
type StateManager struct {
	mu     sync.RWMutex
	fitted bool

	nClassifiers int
	nSamples     int
}

// NewStateManager creates a new StateManager instance.
func NewStateManager() *StateManager {
	return &StateManager{}
}

// IsFitted returns whether the model has been fitted.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fitted
}

// SetFitted marks the model as fitted.
func (s *StateManager) SetFitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = true
}

// Reset resets the fitted state.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = false
	s.nClassifiers = 0
	s.nSamples = 0
}

// SetDimensions records the pool size and the number of training examples.
func (s *StateManager) SetDimensions(nClassifiers, nSamples int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nClassifiers = nClassifiers
	s.nSamples = nSamples
}

// GetDimensions returns the pool size and the number of training examples
// seen during fitting.
func (s *StateManager) GetDimensions() (nClassifiers, nSamples int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nClassifiers, s.nSamples
}

// RequireFitted returns a NotFittedError naming the model and the method
// being called if the model has not been fitted.
func (s *StateManager) RequireFitted(modelName, method string) error {
	if !s.IsFitted() {
		return errors.NewNotFittedError(modelName, method)
	}
	return nil
}

// ModelState is a snapshot of the state, used for debugging and logging.
type ModelState struct {
	Fitted       bool `json:"fitted"`
	NClassifiers int  `json:"n_classifiers,omitempty"`
	NSamples     int  `json:"n_samples,omitempty"`
}

// GetState returns the current state as a ModelState struct.
func (s *StateManager) GetState() ModelState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return ModelState{
		Fitted:       s.fitted,
		NClassifiers: s.nClassifiers,
		NSamples:     s.nSamples,
	}
}
