package base

import "errors"

// ErrCorruption marks data that failed structural validation: a truncated
// batch record, an unknown tag, a count mismatch. It is surfaced, never
// retried, by this layer. Match with errors.Is.
var ErrCorruption = errors.New("corruption")
