package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
	"github.com/custodia-labs/sercha-tmx/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-tmx/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.SearchBackend = (*Client)(nil)

// Client is a blocking request/reply adapter over an Engine. It is safe for
// concurrent use; round trips are serialised so each caller receives its own
// reply.
type Client struct {
	mu     sync.Mutex
	engine *Engine
	seq    uint64
	closed bool
}

// NewClient creates a client for e. The engine must be running for calls to
// complete.
func NewClient(e *Engine) *Client {
	return &Client{engine: e}
}

// Load sends a copy of units to the engine and waits for the indexed count.
func (c *Client) Load(ctx context.Context, units []domain.TranslationUnit) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	msg, err := NewLoadData(c.seq, units)
	if err != nil {
		return 0, fmt.Errorf("copy units: %w", err)
	}

	reply, err := c.roundTrip(ctx, msg, msg.Seq)
	if err != nil {
		return 0, err
	}
	loaded, ok := reply.(DataLoaded)
	if !ok {
		return 0, fmt.Errorf("unexpected reply %T to load", reply)
	}
	return loaded.Count, nil
}

// Search sends q to the engine and waits for the result.
func (c *Client) Search(ctx context.Context, q domain.SearchQuery) (domain.SearchResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	msg := NewSearch(c.seq, q)

	reply, err := c.roundTrip(ctx, msg, msg.Seq)
	if err != nil {
		return domain.SearchResponse{}, err
	}
	results, ok := reply.(SearchResults)
	if !ok {
		return domain.SearchResponse{}, fmt.Errorf("unexpected reply %T to search", reply)
	}
	return results.Response(), nil
}

// Close stops the engine by closing its request channel. Further calls
// return domain.ErrEngineStopped.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.engine.requests)
	}
	return nil
}

// roundTrip sends req and waits for the reply carrying seq. Replies to
// earlier, abandoned round trips are dropped. Caller must hold c.mu.
func (c *Client) roundTrip(ctx context.Context, req Request, seq uint64) (Reply, error) {
	if c.closed {
		return nil, domain.ErrEngineStopped
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	select {
	case c.engine.requests <- req:
	case <-c.engine.done:
		return nil, domain.ErrEngineStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	for {
		select {
		case reply, ok := <-c.engine.replies:
			if !ok {
				return nil, domain.ErrEngineStopped
			}
			if reply.Sequence() == seq {
				return reply, nil
			}
			logger.Debug("Discarding stale reply %d (waiting for %d)", reply.Sequence(), seq)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
