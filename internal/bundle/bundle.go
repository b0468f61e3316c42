// Package bundle resolves the six ring textures as one all-or-nothing unit.
package bundle

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/toroids/internal/logger"
)

// Loader fetches a single decoded image. *asset.Loader satisfies it.
type Loader interface {
	Load(ctx context.Context, id string) (image.Image, error)
}

// TextureSet holds one decoded image per role. It only exists once every
// role has resolved.
type TextureSet struct {
	ids    Identifiers
	images [roleCount]image.Image
}

// Get returns the image bound to r.
func (s *TextureSet) Get(r Role) image.Image {
	if r < 0 || r >= roleCount {
		return nil
	}
	return s.images[r]
}

// ID returns the identifier the image for r was loaded from.
func (s *TextureSet) ID(r Role) string {
	return s.ids.Get(r)
}

// ErrMissingIdentifier is returned before any load when a role has no
// identifier.
var ErrMissingIdentifier = errors.New("bundle: missing texture identifier")

// BundleLoadFailure reports that the bundle could not be resolved. Err is the
// first failure observed, normally an *asset.LoadFailure, or the context
// error when the caller gave up.
type BundleLoadFailure struct {
	Role Role // meaningless when Aborted
	Err  error

	Aborted bool // the parent context ended before any load failed
}

func (e *BundleLoadFailure) Error() string {
	if e.Aborted {
		return fmt.Sprintf("texture bundle aborted: %v", e.Err)
	}
	return fmt.Sprintf("texture bundle failed on %s map: %v", e.Role, e.Err)
}

func (e *BundleLoadFailure) Unwrap() error {
	return e.Err
}

// Resolve loads all six textures concurrently. It returns as soon as the
// first load fails; loads still in flight are cancelled and their results
// discarded. On success each role holds the image of its own identifier
// regardless of completion order.
func Resolve(ctx context.Context, loader Loader, ids Identifiers) (*TextureSet, error) {
	for _, role := range Roles {
		if ids.Get(role) == "" {
			return nil, fmt.Errorf("%w for %s map", ErrMissingIdentifier, role)
		}
	}

	log := logger.Named("bundle")
	start := time.Now()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	set := &TextureSet{ids: ids}
	g, gctx := errgroup.WithContext(ctx)

	// first carries the first failure; errgroup's own error only surfaces
	// after every loader has returned.
	first := make(chan *BundleLoadFailure, 1)
	var once sync.Once

	for _, role := range Roles {
		id := ids.Get(role)
		g.Go(func() error {
			img, err := loader.Load(gctx, id)
			if err != nil {
				failure := &BundleLoadFailure{Role: role, Err: err}
				once.Do(func() { first <- failure })
				return failure
			}
			set.images[role] = img
			return nil
		})
	}

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	fail := func(failure *BundleLoadFailure) (*TextureSet, error) {
		// A load that gave up because the caller did is an abort, not a
		// failure of that role.
		if err := ctx.Err(); err != nil && errors.Is(failure.Err, err) {
			failure = &BundleLoadFailure{Err: err, Aborted: true}
		}
		log.Debug("resolve failed", zap.Stringer("role", failure.Role), zap.Error(failure.Err))
		return nil, failure
	}

	select {
	case err := <-done:
		if err != nil {
			return fail(<-first)
		}
	case failure := <-first:
		return fail(failure)
	case <-ctx.Done():
		return fail(&BundleLoadFailure{Err: ctx.Err()})
	}

	log.Debug("resolved", zap.Duration("took", time.Since(start)))
	return set, nil
}
