package source

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/optsync/pkg/domain/interfaces"
	"github.com/secmon-lab/optsync/pkg/utils/logging"
	"github.com/secmon-lab/optsync/pkg/utils/safe"
)

// Stdin is the location that selects standard input
const Stdin = "-"

const gcsScheme = "gs://"

const maxLineSize = 1024 * 1024

var (
	// ErrInvalidObjectURL is returned for a gs:// location without bucket or object
	ErrInvalidObjectURL = goerr.New("invalid object URL")
)

// Reader opens desired-list sources: local files, standard input and Cloud
// Storage objects
type Reader struct {
	stdin io.Reader

	mu  sync.Mutex
	gcs *storage.Client
}

var _ interfaces.SourceOpener = &Reader{}

// Option is a functional option for Reader configuration
type Option func(*Reader)

// WithStdin replaces os.Stdin as the source for "-"
func WithStdin(r io.Reader) Option {
	return func(x *Reader) {
		x.stdin = r
	}
}

// WithStorageClient sets the Cloud Storage client used for gs:// locations
func WithStorageClient(c *storage.Client) Option {
	return func(x *Reader) {
		x.gcs = c
	}
}

// New creates a Reader
func New(opts ...Option) *Reader {
	r := &Reader{stdin: os.Stdin}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open returns a reader for location
func (r *Reader) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	switch {
	case location == Stdin:
		return io.NopCloser(r.stdin), nil

	case strings.HasPrefix(location, gcsScheme):
		bucket, object, err := parseObjectURL(location)
		if err != nil {
			return nil, err
		}
		client, err := r.storageClient(ctx)
		if err != nil {
			return nil, err
		}
		rd, err := client.Bucket(bucket).Object(object).NewReader(ctx)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open object", goerr.V("bucket", bucket), goerr.V("object", object))
		}
		return rd, nil

	default:
		// #nosec G304 - path is expected to be provided by CLI argument
		f, err := os.Open(location)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open source file", goerr.V("path", location))
		}
		return f, nil
	}
}

// ReadAll reads every location in order and returns their trimmed non-blank
// lines. With no locations, standard input is read.
func (r *Reader) ReadAll(ctx context.Context, locations []string) ([]string, error) {
	if len(locations) == 0 {
		locations = []string{Stdin}
	}

	var values []string
	for _, location := range locations {
		rc, err := r.Open(ctx, location)
		if err != nil {
			return nil, err
		}
		lines, err := ReadLines(rc)
		safe.Close(ctx, rc)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read source", goerr.V("location", location))
		}

		logging.From(ctx).Debug("Read desired options", "location", location, "count", len(lines))
		values = append(values, lines...)
	}

	return values, nil
}

// Close releases the Cloud Storage client if one was created
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.gcs == nil {
		return nil
	}
	err := r.gcs.Close()
	r.gcs = nil
	if err != nil {
		return goerr.Wrap(err, "failed to close storage client")
	}
	return nil
}

func (r *Reader) storageClient(ctx context.Context) (*storage.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.gcs != nil {
		return r.gcs, nil
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}
	r.gcs = client
	return client, nil
}

// ReadLines returns the trimmed, non-blank lines of rd
func ReadLines(rd io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to scan lines")
	}
	return lines, nil
}

func parseObjectURL(location string) (bucket, object string, err error) {
	rest := strings.TrimPrefix(location, gcsScheme)
	bucket, object, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || object == "" {
		return "", "", goerr.Wrap(ErrInvalidObjectURL, "expected gs://bucket/object", goerr.V("location", location))
	}
	return bucket, object, nil
}
