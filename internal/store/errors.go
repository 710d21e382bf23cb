package store

import "errors"

// ErrClientNameRequired rejects a creation draft with no client name.
var ErrClientNameRequired = errors.New("client name is required")
