package engine

import "errors"

// ErrUnknownNet is returned by any Engine method given a net id the engine
// did not create (including one already retired by a prior MergeNets).
var ErrUnknownNet = errors.New("engine: unknown net id")
