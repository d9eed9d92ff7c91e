package forecast

import "errors"

// Typed failures callers are expected to catch and route to the
// moving-average fallback.
var (
	// ErrInsufficientData means the trailing history is too short to build
	// meaningful rolling-window features or to fit the model.
	ErrInsufficientData = errors.New("insufficient training data")

	// ErrModelNotTrained means no trained model is available in-process and
	// none could be reloaded from durable storage.
	ErrModelNotTrained = errors.New("model not trained")

	// ErrModelNotFound means durable storage holds no artifact.
	ErrModelNotFound = errors.New("model artifact not found")

	// ErrModelLoad means an artifact exists but could not be read back.
	ErrModelLoad = errors.New("model artifact load failed")
)
