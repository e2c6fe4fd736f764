package prediction

import (
	"errors"
	"fmt"
)

var (
	// ErrRouteNotFound is returned when the requested route is not registered.
	ErrRouteNotFound = errors.New("route not found")
	// ErrModelNotReady is returned when a prediction is requested before training.
	ErrModelNotReady = errors.New("model not trained: train the model with historical data first")
	// ErrInvalidFactor is returned for NaN or infinite weather and traffic factors.
	ErrInvalidFactor = errors.New("invalid condition factor")
	// ErrInvalidTrainingData is returned for malformed training input.
	ErrInvalidTrainingData = errors.New("invalid training data")
	// ErrInsufficientTrainingData is returned when the split leaves nothing to fit on.
	ErrInsufficientTrainingData = fmt.Errorf("%w: insufficient samples", ErrInvalidTrainingData)
)
