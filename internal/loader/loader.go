package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-formgen-ssi/pkg/schema"
)

// DefaultTimeout bounds HTTP fetches when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// ErrHTTPDisabled is returned for URL sources unless WithHTTP was supplied.
var ErrHTTPDisabled = errors.New("loader: http sources are disabled")

// Loader reads schema documents from disk, an fs.FS or HTTP.
type Loader struct {
	fs      fs.FS
	client  *http.Client
	timeout time.Duration
	maxSize int64
}

var _ schema.Loader = (*Loader)(nil)

// Option configures a Loader.
type Option func(*Loader)

// WithFS enables fs sources.
func WithFS(files fs.FS) Option {
	return func(l *Loader) {
		l.fs = files
	}
}

// WithHTTP enables URL sources. A nil client uses a fresh http.Client.
func WithHTTP(client *http.Client) Option {
	return func(l *Loader) {
		if client == nil {
			client = &http.Client{}
		}
		l.client = client
	}
}

// WithTimeout overrides DefaultTimeout for HTTP requests.
func WithTimeout(timeout time.Duration) Option {
	return func(l *Loader) {
		if timeout > 0 {
			l.timeout = timeout
		}
	}
}

// WithMaxSize caps the size of a fetched document. Zero disables the cap.
func WithMaxSize(limit int64) Option {
	return func(l *Loader) {
		l.maxSize = limit
	}
}

// New returns a Loader. Only file sources are enabled by default.
func New(options ...Option) *Loader {
	l := &Loader{timeout: DefaultTimeout, maxSize: 5 << 20}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Load reads src and wraps the payload in a schema.Document.
func (l *Loader) Load(ctx context.Context, src schema.Source) (schema.Document, error) {
	if err := ctx.Err(); err != nil {
		return schema.Document{}, err
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind {
	case schema.SourceKindFile:
		data, err = loadFile(src.Location)
	case schema.SourceKindFS:
		data, err = loadFromFS(l.fs, src.Location)
	case schema.SourceKindURL:
		if l.client == nil {
			return schema.Document{}, ErrHTTPDisabled
		}
		data, err = loadHTTP(ctx, l.client, src.Location, l.timeout, l.maxSize)
	default:
		err = fmt.Errorf("unsupported source kind %q", src.Kind)
	}
	if err != nil {
		return schema.Document{}, fmt.Errorf("loader: %s: %w", src, err)
	}
	if l.maxSize > 0 && int64(len(data)) > l.maxSize {
		return schema.Document{}, fmt.Errorf("loader: %s: document exceeds %d bytes", src, l.maxSize)
	}
	return schema.NewDocument(src, data)
}
