// Package asset fetches and decodes texture images from disk or over HTTP.
package asset

import (
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/toroids/internal/logger"
)

// Result is the outcome of one asynchronous load.
type Result struct {
	ID    string
	Image image.Image
	Err   error // *LoadFailure when non-nil
}

// Loader fetches texture images. It is safe for concurrent use.
type Loader struct {
	client *http.Client
	cache  *Cache
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient sets the client used for http and https identifiers.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithCache makes the loader consult and fill c.
func WithCache(c *Cache) Option {
	return func(l *Loader) { l.cache = c }
}

// NewLoader creates a loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{client: http.DefaultClient}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches and decodes one image. Every error is a *LoadFailure.
func (l *Loader) Load(ctx context.Context, id string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, &LoadFailure{ID: id, Err: err}
	}

	if l.cache != nil {
		if img, ok := l.cache.Get(id); ok {
			logger.Debug("texture cache hit", zap.String("id", id))
			return img, nil
		}
	}

	start := time.Now()
	rc, err := l.open(ctx, id)
	if err != nil {
		return nil, &LoadFailure{ID: id, Err: err}
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, &LoadFailure{ID: id, Err: fmt.Errorf("reading: %w", err)}
	}

	img, format, err := decode(id, data)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, &LoadFailure{ID: id, Err: fmt.Errorf("decoding: %w", err)}
	}

	logger.Debug("texture loaded",
		zap.String("id", id),
		zap.String("format", format),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
		zap.Duration("took", time.Since(start)))

	if l.cache != nil {
		l.cache.Set(id, img)
	}
	return img, nil
}

// Go starts Load on its own goroutine. The returned channel receives exactly
// one Result and is then closed; it is buffered, so the goroutine never
// blocks on an abandoned receiver.
func (l *Loader) Go(ctx context.Context, id string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		defer func() {
			if r := recover(); r != nil {
				ch <- Result{ID: id, Err: &LoadFailure{ID: id, Err: fmt.Errorf("panic: %v", r)}}
			}
		}()
		img, err := l.Load(ctx, id)
		ch <- Result{ID: id, Image: img, Err: err}
	}()
	return ch
}
