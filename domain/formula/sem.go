package formula

import "goglm/domain/core"

// ComposeSEM composes a formula for a multi-equation structural model from a
// specification of outcomes and predictor sets. Structural equation models
// are not supported: every call fails with ErrNotImplemented, regardless of
// input.
func ComposeSEM(model any) (string, error) {
	return "", core.NewNotImplementedError("SEM formula creation")
}
