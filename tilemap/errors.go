package tilemap

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrOutOfBounds     = errors.New("tile out of bounds")
	ErrSheetMissing    = errors.New("sheet missing")
	ErrGroupMissing    = errors.New("group missing")
	ErrUnknownKind     = errors.New("unknown kind")
	ErrUnknownFormat   = errors.New("unknown config format")
	ErrUnknownFeature  = errors.New("unknown feature")
	ErrFeatureMissing  = errors.New("feature missing")
)

// ConfigError reports a malformed or inconsistent sheets or groups config.
// Loading stops at the first one.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configErr(path string, format string, args ...any) error {
	return &ConfigError{Path: path, Err: fmt.Errorf(format, args...)}
}
