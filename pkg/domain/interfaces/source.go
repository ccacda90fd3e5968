package interfaces

import (
	"context"
	"io"
)

// SourceOpener opens a desired-list source by location (file path, "-" for
// stdin, or an object URL)
type SourceOpener interface {
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}
