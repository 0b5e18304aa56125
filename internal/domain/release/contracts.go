package release

import (
	"context"
)

// ReleaseService defines methods for producing store-ready mobile artifacts.
type ReleaseService interface {
	// BuildAndroid produces a release AAB through the project's Gradle
	// wrapper and copies it to the output directory.
	BuildAndroid(ctx context.Context, spec BuildSpec) (*BuildResult, error)

	// BuildIOS archives and exports a release IPA through xcodebuild and
	// copies it to the output directory.
	BuildIOS(ctx context.Context, spec BuildSpec) (*BuildResult, error)

	// WriteInstructions renders the store upload steps for a finished build
	// and writes them next to the artifact. It returns the written path.
	WriteInstructions(result *BuildResult) (string, error)
}

// Builder runs one platform's toolchain. Implementations shell out and must
// honour context cancellation.
type Builder interface {
	Build(ctx context.Context, spec BuildSpec) (*BuildResult, error)
}
