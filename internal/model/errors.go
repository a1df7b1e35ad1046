package model

import "errors"

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrNotValid is returned when a resource is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrUploadFailed is returned when a hosting backend response has no
	// extractable identifier or URL. Callers degrade (omit the link) instead
	// of aborting.
	ErrUploadFailed = errors.New("upload failed")
	// ErrNoArtifact is returned when a finished build produced no flashable zip.
	ErrNoArtifact = errors.New("no artifact found")
	// ErrBuildFailed is returned when the build log lacks the success marker.
	ErrBuildFailed = errors.New("build failed")
)
