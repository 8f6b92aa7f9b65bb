package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
	"github.com/custodia-labs/sercha-tmx/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-tmx/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-tmx/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService loads one translation memory per session.
type DocumentService struct {
	decoder    driven.TreeDecoder
	normaliser driven.UnitNormaliser
	store      driven.RecordStore
	backend    driven.SearchBackend

	fallbackLang string

	// loadMu serialises loads so a reload never interleaves with another.
	loadMu sync.Mutex

	// swapMu pairs the record store with the search index. Loads hold it
	// for writing while both change; searches hold it for reading.
	swapMu sync.RWMutex

	readFile func(string) ([]byte, error)
	now      func() time.Time
}

// NewDocumentService creates a new document service.
func NewDocumentService(
	decoder driven.TreeDecoder,
	normaliser driven.UnitNormaliser,
	store driven.RecordStore,
	backend driven.SearchBackend,
	settings domain.Settings,
) *DocumentService {
	return &DocumentService{
		decoder:      decoder,
		normaliser:   normaliser,
		store:        store,
		backend:      backend,
		fallbackLang: settings.FallbackSourceLanguage,
		readFile:     os.ReadFile,
		now:          time.Now,
	}
}

// Load reads the document at path and replaces the current one.
// If path is already loaded with identical content, the current summary is
// returned without reindexing.
func (s *DocumentService) Load(ctx context.Context, path string) (*domain.DocumentSummary, error) {
	data, err := s.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	fingerprint := xxhash.Sum64(data)
	if current, err := s.store.Current(ctx); err == nil &&
		current.Path == path && current.Fingerprint == fingerprint {
		logger.Debug("%s unchanged (fingerprint %016x), skipping reload", path, fingerprint)
		summary := current.Summary
		return &summary, nil
	}

	return s.load(ctx, path, data, fingerprint)
}

// LoadBytes loads an in-memory document and replaces the current one.
func (s *DocumentService) LoadBytes(ctx context.Context, name string, data []byte) (*domain.DocumentSummary, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	return s.load(ctx, name, data, xxhash.Sum64(data))
}

// load runs the pipeline. Caller must hold loadMu.
func (s *DocumentService) load(
	ctx context.Context, path string, data []byte, fingerprint uint64,
) (*domain.DocumentSummary, error) {
	logger.Section("Load Document")
	logger.Debug("Source: %s (%d bytes)", path, len(data))

	done := logger.Timed("Decode")
	root, err := s.decoder.Decode(ctx, data)
	done()
	if err != nil {
		s.reset(ctx)
		if !errors.Is(err, domain.ErrDecodeFailure) && ctx.Err() == nil {
			err = fmt.Errorf("%w: %w", domain.ErrDecodeFailure, err)
		}
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	summary := s.normaliser.Summary(root, s.fallbackLang)
	units, skipped, err := s.normalise(ctx, s.normaliser.Units(root), summary.SourceLanguage)
	if err != nil {
		s.reset(ctx)
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	summary.UnitCount = len(units)
	summary.SkippedCount = skipped

	doc := &domain.Document{
		ID:          uuid.NewString(),
		Path:        path,
		Fingerprint: fingerprint,
		Summary:     summary,
		Units:       units,
		LoadedAt:    s.now(),
	}

	if err := s.swap(ctx, doc); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	logger.Info("Loaded %s: %d units, %d skipped, source language %s",
		path, summary.UnitCount, summary.SkippedCount, summary.SourceLanguage)
	return &summary, nil
}

// swap installs doc in the backend and the store together. On failure both
// are cleared so neither keeps a document the other lacks.
func (s *DocumentService) swap(ctx context.Context, doc *domain.Document) error {
	s.swapMu.Lock()
	defer s.swapMu.Unlock()

	indexed, err := s.backend.Load(ctx, doc.Units)
	if err != nil {
		s.clear(ctx)
		return fmt.Errorf("index: %w", err)
	}
	if indexed != len(doc.Units) {
		logger.Warn("Backend indexed %d of %d units", indexed, len(doc.Units))
	}

	if err := s.store.Replace(ctx, doc); err != nil {
		s.clear(ctx)
		return fmt.Errorf("store: %w", err)
	}
	return nil
}

// normalise converts raw units in document order, dropping malformed ones.
func (s *DocumentService) normalise(
	ctx context.Context, raws []domain.RawNode, sourceLang string,
) ([]domain.TranslationUnit, int, error) {
	defer logger.Timed("Normalise")()

	units := make([]domain.TranslationUnit, 0, len(raws))
	skipped := 0
	for i, raw := range raws {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, 0, err
			}
		}
		unit, err := s.normaliser.Normalise(raw, i, sourceLang)
		if err != nil {
			if errors.Is(err, domain.ErrMalformedUnit) {
				logger.Warn("Skipping unit: %v", err)
				skipped++
				continue
			}
			return nil, 0, err
		}
		units = append(units, *unit)
	}
	return units, skipped, nil
}

// reset discards the previous document after a failed load.
func (s *DocumentService) reset(ctx context.Context) {
	s.swapMu.Lock()
	defer s.swapMu.Unlock()
	s.clear(ctx)
}

// clear empties the store and the index. Caller must hold swapMu.
func (s *DocumentService) clear(ctx context.Context) {
	if err := s.store.Clear(ctx); err != nil {
		logger.Warn("Failed to clear record store: %v", err)
	}
	if _, err := s.backend.Load(ctx, nil); err != nil {
		logger.Warn("Failed to clear search index: %v", err)
	}
}

// Summary returns the loaded document's summary.
func (s *DocumentService) Summary(ctx context.Context) (*domain.DocumentSummary, error) {
	doc, err := s.store.Current(ctx)
	if err != nil {
		return nil, err
	}
	summary := doc.Summary
	return &summary, nil
}

// Current returns the loaded document.
func (s *DocumentService) Current(ctx context.Context) (*domain.Document, error) {
	return s.store.Current(ctx)
}

// Unit returns the unit at position.
func (s *DocumentService) Unit(ctx context.Context, position int) (*domain.TranslationUnit, error) {
	return s.store.Unit(ctx, position)
}
