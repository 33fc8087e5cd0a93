package domain

import "errors"

// ErrNotFound reports an entity missing locally or on the commerce
// platform. A cart id the platform no longer knows surfaces as this error.
var ErrNotFound = errors.New("not found")
