package model

import "github.com/rotisserie/eris"

// Error taxonomy shared across the core. ErrValidation covers bad or
// missing caller input; ErrNotFound covers cache misses on export. Both
// are terminal for their request. Nothing in the core retries: every
// operation is a pure read over an immutable snapshot, so a retry would
// reproduce the identical result.
var (
	ErrValidation = eris.New("validation failed")
	ErrNotFound   = eris.New("not found")
)
