package ports

import "errors"

// ErrNotFound is returned by adapters when the catalog or engine they were
// asked for does not exist yet.
var ErrNotFound = errors.New("not found")
