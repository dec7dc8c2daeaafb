package engine

import "fmt"

// ConfigError reports an unusable input root. It is fatal to a Run.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid input directory %s: %s", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IOError reports a filesystem failure. It is fatal only when the output
// root cannot be created.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// PathError reports a discovered file that does not resolve inside the
// input root, or whose destination would leave the output root.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("path %s rejected: %s", e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// DecodeError reports source bytes the codec could not parse.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: %s", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeError reports a codec failure while producing the output.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encoding %s: %s", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}
