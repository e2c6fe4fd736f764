// Package prediction fits a linear delay model on historical observations and
// turns registered routes into delay-adjusted arrival estimates.
//
// A Predictor starts untrained. Train splits the samples deterministically,
// fits the configured Fitter on the fitting subset and installs the resulting
// Coefficients in one step; the held-out R² is reported for observability
// only. PredictETA and OptimizeAll fail with ErrModelNotReady until a model is
// installed.
package prediction
