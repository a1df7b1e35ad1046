package model

import "time"

// UploadLink is a public download link returned by a hosting backend.
type UploadLink struct {
	Backend string
	URL     string
}

// BuildResult is the final outcome of a successful build session: the
// artifact plus whatever links the hosting backends handed back. Backends
// whose upload degraded are simply absent from Links.
type BuildResult struct {
	Session  BuildSession
	Artifact *Artifact
	Links    []UploadLink
	Duration time.Duration
}
