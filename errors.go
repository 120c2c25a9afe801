package dw2md

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyDocument     = errors.New("document content cannot be empty")
	ErrInvalidImageWidth = errors.New("invalid image width")
	ErrPreviewRender     = errors.New("HTML preview rendering failed")
)
