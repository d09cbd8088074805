package expression

import "errors"

// Sentinel errors for expression evaluation.
var (
	ErrEvaluationFailed = errors.New("expression evaluation failed")
	ErrTypeMismatch     = errors.New("expression did not produce the expected type")
)
