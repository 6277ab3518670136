package sinks

import (
	"context"
	"errors"

	"github.com/flowbaker/copysmith/pkg/aggregate"
)

// ArtifactSink stores a packaged artifact and returns where it ended up.
type ArtifactSink interface {
	Name() string
	Store(ctx context.Context, runID string, artifact *aggregate.Artifact) (string, error)
}

// StoreAll stores artifact in every sink. A failing sink does not prevent the others
// from running; the locations of the successful ones are returned with the joined error.
func StoreAll(ctx context.Context, sinks []ArtifactSink, runID string, artifact *aggregate.Artifact) ([]string, error) {
	var (
		locations []string
		errs      []error
	)

	for _, sink := range sinks {
		location, err := sink.Store(ctx, runID, artifact)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		locations = append(locations, location)
	}

	return locations, errors.Join(errs...)
}
