package render

import "errors"

// ErrNoBufferLoaded is returned by Play before any track has been decoded.
// Callers treat it as a no-op.
var ErrNoBufferLoaded = errors.New("no track loaded")
