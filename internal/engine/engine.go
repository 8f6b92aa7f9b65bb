package engine

import (
	"context"
	"time"

	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
	"github.com/custodia-labs/sercha-tmx/internal/index"
	"github.com/custodia-labs/sercha-tmx/internal/logger"
)

const defaultBuffer = 16

// Engine owns the search index and serves requests from a single goroutine.
type Engine struct {
	requests chan Request
	replies  chan Reply
	done     chan struct{}

	resultCap   int
	keyProperty string
}

// Option configures an Engine.
type Option func(*Engine)

// WithResultCap sets the maximum number of positions per search.
func WithResultCap(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.resultCap = n
		}
	}
}

// WithKeyProperty sets the property used for id-based search modes.
func WithKeyProperty(name string) Option {
	return func(e *Engine) {
		if name != "" {
			e.keyProperty = name
		}
	}
}

// New creates an engine. Call Run to start serving.
func New(opts ...Option) *Engine {
	e := &Engine{
		requests:    make(chan Request, defaultBuffer),
		replies:     make(chan Reply, defaultBuffer),
		done:        make(chan struct{}),
		resultCap:   domain.DefaultResultCap,
		keyProperty: domain.KeyPropertyDefault,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Requests returns the channel requests are sent on. Closing it stops Run.
func (e *Engine) Requests() chan<- Request {
	return e.requests
}

// Replies returns the channel replies are delivered on. It is closed when
// Run returns.
func (e *Engine) Replies() <-chan Reply {
	return e.replies
}

// Done is closed when Run has returned.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

// Run serves requests strictly in arrival order until ctx is done or the
// request channel is closed. It must be called at most once.
func (e *Engine) Run(ctx context.Context) error {
	defer close(e.done)
	defer close(e.replies)

	// The index lives only on this goroutine's stack.
	idx := index.Build(nil, index.WithKeyProperty(e.keyProperty))

	logger.Debug("Search engine started (cap %d, key property %q)", e.resultCap, e.keyProperty)

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Search engine stopping: %v", ctx.Err())
			return nil

		case req, ok := <-e.requests:
			if !ok {
				logger.Debug("Search engine stopping: request channel closed")
				return nil
			}

			var reply Reply
			reply, idx = e.handle(req, idx)
			if reply == nil {
				continue
			}

			select {
			case e.replies <- reply:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// handle processes one request and returns its reply and the index to use
// from now on.
func (e *Engine) handle(req Request, idx *index.Index) (Reply, *index.Index) {
	switch r := req.(type) {
	case LoadData:
		start := time.Now()
		idx = index.Build(r.Units, index.WithKeyProperty(e.keyProperty))
		logger.Info("Indexed %d units in %s", idx.Len(), time.Since(start))
		return DataLoaded{Seq: r.Seq, Count: idx.Len()}, idx

	case Search:
		resp := idx.Query(domain.SearchQuery{
			Mode:     r.Mode,
			Text:     r.Query,
			BatchIDs: r.BatchList,
		}, e.resultCap)
		logger.Debug("Search %s %q: unfiltered=%t matches=%d truncated=%t",
			r.Mode, r.Query, resp.Unfiltered, len(resp.Positions), resp.Truncated)
		return SearchResults{
			Seq:        r.Seq,
			Positions:  resp.Positions,
			Unfiltered: resp.Unfiltered,
			Truncated:  resp.Truncated,
		}, idx

	default:
		logger.Warn("Search engine ignoring unknown request %T", req)
		return nil, idx
	}
}
