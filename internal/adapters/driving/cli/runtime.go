package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/sercha-tmx/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
	"github.com/custodia-labs/sercha-tmx/internal/core/services"
	"github.com/custodia-labs/sercha-tmx/internal/decoders/xmltree"
	"github.com/custodia-labs/sercha-tmx/internal/engine"
	"github.com/custodia-labs/sercha-tmx/internal/logger"
	"github.com/custodia-labs/sercha-tmx/internal/normalisers/tmx"
)

// runtime wires one command invocation: settings, the engine goroutine and
// the services in front of it.
type runtime struct {
	settings domain.Settings
	document *services.DocumentService
	search   *services.SearchService

	client *engine.Client
	group  *errgroup.Group
	cancel context.CancelFunc
}

// newRuntime starts the engine under an errgroup derived from ctx. The
// returned context is cancelled if the engine fails.
func newRuntime(ctx context.Context) (*runtime, context.Context, error) {
	store, err := newConfigStore(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open config: %w", err)
	}
	settings := services.LoadSettings(store)
	logger.Debug("Config: %s", store.Path())

	ctx, cancel := context.WithCancel(ctx)
	group, gctx := errgroup.WithContext(ctx)

	eng := engine.New(
		engine.WithResultCap(settings.ResultCap),
		engine.WithKeyProperty(settings.KeyProperty),
	)
	group.Go(func() error {
		return eng.Run(gctx)
	})
	client := engine.NewClient(eng)

	records := memory.NewRecordStore()
	docs := services.NewDocumentService(xmltree.New(), tmx.New(), records, client, settings)
	return &runtime{
		settings: settings,
		document: docs,
		search:   services.NewSearchService(records, client, settings, services.WithDocumentService(docs)),
		client:   client,
		group:    group,
		cancel:   cancel,
	}, gctx, nil
}

// Close stops the engine and waits for its goroutine to exit.
func (r *runtime) Close() error {
	_ = r.client.Close()
	err := r.group.Wait()
	r.cancel()
	return err
}

// documentFunc runs a command against a loaded document.
type documentFunc func(ctx context.Context, rt *runtime, summary *domain.DocumentSummary) error

// withDocument starts a runtime, loads path and hands both to fn. The
// engine is stopped before returning.
func withDocument(cmd *cobra.Command, path string, fn documentFunc) (err error) {
	rt, ctx, err := newRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rt.Close(); err == nil {
			err = cerr
		}
	}()

	done := logger.Timed("Load " + path)
	summary, err := rt.document.Load(ctx, path)
	done()
	if err != nil {
		return err
	}
	if summary.SkippedCount > 0 {
		logger.Warn("%d malformed units skipped", summary.SkippedCount)
	}

	return fn(ctx, rt, summary)
}
