package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/sercha-tmx/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
	"github.com/custodia-labs/sercha-tmx/internal/decoders/xmltree"
	"github.com/custodia-labs/sercha-tmx/internal/index"
	"github.com/custodia-labs/sercha-tmx/internal/normalisers/tmx"
)

const scenarioTMX = `<?xml version="1.0" encoding="UTF-8"?>
<tmx version="1.4">
  <header creationtool="Editor" creationtoolversion="2.1" srclang="en-US" adminlang="en-US"
          segtype="sentence" datatype="plaintext" o-tmf="xliff"/>
  <body>
    <tu tuid="u1">
      <prop type="x-segment-id">ABC123</prop>
      <tuv xml:lang="en-US"><seg>Hello</seg></tuv>
      <tuv xml:lang="fr-FR"><seg>Bonjour</seg></tuv>
    </tu>
    <tu>
      <tuv xml:lang="en-US"><seg>Bye</seg></tuv>
      <tuv xml:lang="fr-FR"><seg>Au revoir</seg></tuv>
    </tu>
  </body>
</tmx>`

const malformedTMX = `<tmx version="1.4">
  <header srclang="de-DE"/>
  <body>
    <tu tuid="a"><tuv xml:lang="de-DE"><seg>Eins</seg></tuv></tu>
    <tu tuid="broken"/>
    <tu><tuv xml:lang="de-DE"><seg>Drei</seg></tuv></tu>
  </body>
</tmx>`

// indexBackend is an in-process driven.SearchBackend over the real index.
type indexBackend struct {
	mu        sync.Mutex
	idx       *index.Index
	loads     int
	loadErr   error
	searchErr error
	cap       int
}

func newIndexBackend() *indexBackend {
	return &indexBackend{idx: index.Build(nil)}
}

func (b *indexBackend) Load(_ context.Context, units []domain.TranslationUnit) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loads++
	if b.loadErr != nil && units != nil {
		return 0, b.loadErr
	}
	b.idx = index.Build(units)
	return b.idx.Len(), nil
}

func (b *indexBackend) Search(_ context.Context, q domain.SearchQuery) (domain.SearchResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.searchErr != nil {
		return domain.SearchResponse{}, b.searchErr
	}
	return b.idx.Query(q, b.cap), nil
}

func (b *indexBackend) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.idx.Len()
}

func (b *indexBackend) Loads() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loads
}

var (
	errBackend = errors.New("backend unavailable")
	errStore   = errors.New("store unavailable")
)

// gatedStore wraps the memory store so a test can fail Replace or hold it
// open while the backend already carries the new index.
type gatedStore struct {
	*memory.RecordStore

	replaceErr error
	entered    chan struct{}
	release    chan struct{}
}

// hold makes the next Replace signal entered and wait for release.
func (s *gatedStore) hold() {
	s.entered = make(chan struct{})
	s.release = make(chan struct{})
}

func (s *gatedStore) Replace(ctx context.Context, doc *domain.Document) error {
	if s.entered != nil {
		close(s.entered)
		<-s.release
	}
	if s.replaceErr != nil {
		return s.replaceErr
	}
	return s.RecordStore.Replace(ctx, doc)
}

type fixture struct {
	docs    *DocumentService
	search  *SearchService
	store   *gatedStore
	backend *indexBackend
}

func newFixture(settings domain.Settings) *fixture {
	store := &gatedStore{RecordStore: memory.NewRecordStore()}
	backend := newIndexBackend()
	docs := NewDocumentService(xmltree.New(), tmx.New(), store, backend, settings)
	return &fixture{
		docs:    docs,
		search:  NewSearchService(store, backend, settings, WithDocumentService(docs)),
		store:   store,
		backend: backend,
	}
}
