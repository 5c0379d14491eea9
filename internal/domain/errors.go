package domain

import "fmt"

// LoadError reports a missing, unreadable or malformed input file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// JoinError reports a district that matched more than one table row under
// the error duplicate policy.
type JoinError struct {
	District string
	Matches  int
}

func (e *JoinError) Error() string {
	return fmt.Sprintf("join: district %q matches %d table rows", e.District, e.Matches)
}

// RenderError reports a geometry that cannot be drawn as polygon data.
type RenderError struct {
	District string
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render district %q: %v", e.District, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// WriteError reports a failure writing the output document.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
