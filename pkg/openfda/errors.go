package openfda

import "errors"

// ErrNoLabel indicates no label matched the requested drug name
var ErrNoLabel = errors.New("no drug label found")
