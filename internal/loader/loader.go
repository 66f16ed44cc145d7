// Package loader drives the two-step character load: page one as fast as
// possible, then everything else in the background.
package loader

import (
	"context"
	"sync"

	"chardash/internal/log"
	"chardash/internal/store"
)

// Controller decides when each load step runs.
type Controller struct {
	store  *store.Store
	logger *log.Logger

	wg sync.WaitGroup
}

// New creates a controller for s.
func New(s *store.Store) *Controller {
	return &Controller{
		store:  s,
		logger: log.LogWithFields(log.F("component", "loader")),
	}
}

// EnsureFirstPage fetches page one at the current page size if the store
// has nothing yet. It is a no-op once a load has started.
func (c *Controller) EnsureFirstPage(ctx context.Context) error {
	st := c.store.State()
	if len(st.Characters) > 0 || st.Phase != store.Idle {
		return nil
	}
	return c.store.FetchFirstPage(ctx, st.PageSize)
}

// ShouldLoadRemaining reports whether the background step should start.
func (c *Controller) ShouldLoadRemaining() bool {
	st := c.store.State()
	return !st.Loading() && !st.BackgroundLoading() && st.CanLoadRemaining()
}

// LoadRemaining runs the background step. Its error is logged and
// returned, never written into the state.
func (c *Controller) LoadRemaining(ctx context.Context) error {
	if !c.ShouldLoadRemaining() {
		return nil
	}
	err := c.store.FetchRemainingCharacters(ctx)
	if store.IsNotNeeded(err) {
		return nil
	}
	if err != nil {
		log.LogWithError(err).Warn("failed to load remaining characters")
	}
	return err
}

// Load runs both steps and returns once every page is in.
func (c *Controller) Load(ctx context.Context) error {
	if err := c.EnsureFirstPage(ctx); err != nil {
		return err
	}
	return c.LoadRemaining(ctx)
}

// Start loads page one and then hands the rest to a goroutine. The
// channel receives the first-page result and is closed when the
// background step is over.
func (c *Controller) Start(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(done)

		err := c.EnsureFirstPage(ctx)
		done <- err
		if err != nil {
			return
		}
		_ = c.LoadRemaining(ctx)
	}()
	return done
}

// Reload starts over from page one. It is rejected while a load runs.
func (c *Controller) Reload(ctx context.Context) error {
	st := c.store.State()
	if err := c.store.FetchFirstPage(ctx, st.PageSize); err != nil {
		return err
	}
	c.logger.Debug("reloaded first page")
	return nil
}

// Wait blocks until every goroutine started by Start has returned.
func (c *Controller) Wait() {
	c.wg.Wait()
}
