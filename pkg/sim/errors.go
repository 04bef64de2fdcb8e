package sim

import "errors"

// ErrInvalidInput marks client-side request errors: too few teams, a team
// count that is not a power of two, or a non-positive run count. Never
// retried automatically.
var ErrInvalidInput = errors.New("invalid simulation input")

// ErrModelUnavailable is returned when a simulation is requested but no
// predictive model is active. The caller must activate a model and retry.
var ErrModelUnavailable = errors.New("no active predictive model")
