package browser

import (
	"context"
	"sync"

	"github.com/sandevgo/factdeck/internal/core"
	"github.com/sandevgo/factdeck/pkg/log"
)

// Browser owns one session's State and performs the provider calls for it.
// It is safe for concurrent use; the lock is never held across a fetch.
type Browser struct {
	provider core.FactProvider

	mu     sync.RWMutex
	state  State
	closed bool

	mount  sync.Once
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewBrowser(ctx context.Context, provider core.FactProvider) *Browser {
	bctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	return &Browser{
		provider: provider,
		state:    New(),
		ctx:      bctx,
		cancel:   cancel,
	}
}

// Snapshot returns the current state.
func (b *Browser) Snapshot() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// Mount starts the session's single automatic fetch in the background.
// Calls after the first are no-ops.
func (b *Browser) Mount() {
	b.mount.Do(func() {
		b.FetchAsync()
	})
}

// FetchAsync begins a fetch and completes it in the background. It reports
// false when a fetch was already in flight or the browser is closed.
func (b *Browser) FetchAsync() bool {
	t, ok := b.begin(true)
	if !ok {
		return false
	}

	go func() {
		defer b.wg.Done()
		b.complete(b.ctx, t)
	}()
	return true
}

// Fetch performs fetchRandomFact synchronously and returns the new state.
// When another fetch is already in flight it returns the current state.
func (b *Browser) Fetch(ctx context.Context) State {
	t, ok := b.begin(false)
	if !ok {
		return b.Snapshot()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(b.ctx, cancel)
	defer stop()

	return b.complete(ctx, t)
}

// Previous is goToPrevious.
func (b *Browser) Previous() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = b.state.Previous()
	return b.state
}

// Next is goToNext: it steps forward or, at the end of history, fetches
// synchronously.
func (b *Browser) Next(ctx context.Context) State {
	b.mu.Lock()
	next, needFetch := b.state.Next()
	b.state = next
	b.mu.Unlock()

	if !needFetch {
		return next
	}
	return b.Fetch(ctx)
}

// NextAsync is Next with the fetch running in the background.
func (b *Browser) NextAsync() State {
	b.mu.Lock()
	next, needFetch := b.state.Next()
	b.state = next
	b.mu.Unlock()

	if needFetch {
		b.FetchAsync()
	}
	return b.Snapshot()
}

// GoTo is goToFact. It reports false for an index outside the history.
func (b *Browser) GoTo(index int) (State, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.state.At(index); !ok {
		return b.state, false
	}
	b.state = b.state.GoTo(index)
	return b.state, true
}

// Close cancels any in-flight fetch and waits for background work. Results
// arriving after Close are dropped.
func (b *Browser) Close() error {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()

	b.cancel()
	b.wg.Wait()
	return nil
}

// begin issues a ticket. With background set it also registers the
// goroutine with wg under the lock, so Close cannot miss it.
func (b *Browser) begin(background bool) (Ticket, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return 0, false
	}

	next, t, ok := b.state.BeginFetch()
	if !ok {
		return 0, false
	}
	b.state = next
	if background {
		b.wg.Add(1)
	}
	return t, true
}

func (b *Browser) complete(ctx context.Context, t Ticket) State {
	logger := log.FromCtx(b.ctx)

	fact, err := b.provider.RandomFact(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return b.state
	}

	if err != nil {
		logger.Warn().Err(err).Uint64("ticket", uint64(t)).Msg("fact fetch failed")
		b.state = b.state.FailFetch(t)
		return b.state
	}

	b.state = b.state.CompleteFetch(t, fact)
	logger.Debug().
		Uint64("ticket", uint64(t)).
		Int("history", b.state.Len()).
		Msg("fact fetched")
	return b.state
}
