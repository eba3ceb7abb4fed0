package config

import "errors"

// ErrInvalidConfig is returned when a config file cannot be read or a value
// is out of range.
var ErrInvalidConfig = errors.New("invalid config")
