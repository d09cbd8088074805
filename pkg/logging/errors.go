package logging

import "errors"

// ErrInvalidLogLevel is returned by Config.Validate (and so by New) when
// Config.Level names a level New doesn't recognise.
var ErrInvalidLogLevel = errors.New("invalid log level")
