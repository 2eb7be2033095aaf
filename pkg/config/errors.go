package config

import "errors"

// ErrInvalidConfig is returned for any malformed or incomplete client
// configuration. It is raised synchronously at construction and never
// retried. Use errors.Is() to check.
var ErrInvalidConfig = errors.New("invalid configuration")
