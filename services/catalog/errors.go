package catalog

import "errors"

// ErrNotFound is wrapped by every lookup miss.
var ErrNotFound = errors.New("not found in catalog")
