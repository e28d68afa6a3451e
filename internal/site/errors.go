package site

import "errors"

var (
	// ErrDocsDirNotFound indicates the content root does not exist.
	ErrDocsDirNotFound = errors.New("content directory not found")

	// ErrRender indicates a page failed to render.
	ErrRender = errors.New("page render failed")

	// ErrStrictWarnings indicates a strict-mode build aborted on warnings.
	ErrStrictWarnings = errors.New("build produced warnings in strict mode")
)
