package buildtool

import (
	"context"
)

// Toolchain runs the external source-sync and build tools. The tools
// themselves are pre-existing programs (repo, the ROM build system), this
// interface only launches them and exposes their exit results.
type Toolchain interface {
	// Sync runs the source-sync tool and blocks until it exits.
	Sync(ctx context.Context) error

	// StartBuild launches the build tool as a background task with its
	// combined output redirected to the build log file. The returned channel
	// receives the build's exit result exactly once.
	StartBuild(ctx context.Context) (<-chan error, error)
}
