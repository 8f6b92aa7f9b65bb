package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-tmx/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
)

// fakeSearch pages a fixed number of generated units and records requests.
type fakeSearch struct {
	mu       sync.Mutex
	requests []domain.SearchRequest
	total    int
	err      error
}

func (f *fakeSearch) Search(_ context.Context, req domain.SearchRequest) (*domain.SearchPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}

	size := req.PageSize
	if size <= 0 {
		size = 10
	}
	page := max(req.Page, 1)
	out := &domain.SearchPage{
		Hits:      []domain.UnitHit{},
		Total:     f.total,
		Filtered:  req.Query != "",
		Page:      page,
		PageCount: (f.total + size - 1) / size,
	}
	for i := (page - 1) * size; i < min(page*size, f.total); i++ {
		out.Hits = append(out.Hits, domain.UnitHit{Position: i, Unit: testUnit(i)})
	}
	return out, nil
}

func (f *fakeSearch) last() domain.SearchRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func testUnit(i int) domain.TranslationUnit {
	return domain.TranslationUnit{
		ID:             fmt.Sprintf("tu-%d", i),
		SourceLanguage: "en-US",
		Variants: []domain.Variant{
			{Language: "en-US", Text: fmt.Sprintf("Source text %d", i)},
			{Language: "de-DE", Text: fmt.Sprintf("Zieltext %d", i)},
		},
		Properties: map[string]string{"x-segment-id": fmt.Sprintf("SEG-%03d", i)},
		Metadata:   domain.UnitMetadata{CreatedBy: "translator", UsageCount: "3"},
		Notes:      []string{"checked by reviewer"},
	}
}

// awaitMsg runs cmd, expanding batches, and returns the first message of
// type T. Commands run concurrently so cursor blink timers do not block.
func awaitMsg[T any](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	require.NotNil(t, cmd)

	out := make(chan tea.Msg, 64)
	var run func(tea.Cmd)
	run = func(c tea.Cmd) {
		if c == nil {
			return
		}
		go func() {
			msg := c()
			if batch, ok := msg.(tea.BatchMsg); ok {
				for _, sub := range batch {
					run(sub)
				}
				return
			}
			out <- msg
		}()
	}
	run(cmd)

	timeout := time.After(2 * time.Second)
	for {
		select {
		case msg := <-out:
			if m, ok := msg.(T); ok {
				return m
			}
		case <-timeout:
			var zero T
			t.Fatalf("no %T message produced", zero)
			return zero
		}
	}
}

func typeText(v *View, text string) (*View, tea.Cmd) {
	return v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func newTestView(svc *fakeSearch) *View {
	v := NewView(nil, nil, svc)
	v.SetDimensions(120, 40)
	v.SetDebounce(0)
	return v
}

// complete runs a search command and feeds its result back into the view.
func complete(t *testing.T, v *View, cmd tea.Cmd) *View {
	t.Helper()
	msg := awaitMsg[messages.SearchCompleted](t, cmd)
	v, _ = v.Update(msg)
	return v
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, &fakeSearch{})

	require.NotNil(t, v)
	assert.Equal(t, domain.SearchModeFullText, v.Mode())
	assert.Equal(t, 1, v.Page())
	assert.Equal(t, "Initialising...", v.View())
}

func TestView_Init(t *testing.T) {
	v := NewView(nil, nil, &fakeSearch{})

	assert.NotNil(t, v.Init())
}

func TestView_WindowSize(t *testing.T) {
	v := NewView(nil, nil, &fakeSearch{})

	v, _ = v.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.NotEqual(t, "Initialising...", v.View())
}

func TestView_TypingArmsDebounceTick(t *testing.T) {
	svc := &fakeSearch{total: 3}
	v := newTestView(svc)
	v.SetDebounce(5 * time.Millisecond)

	v, cmd := typeText(v, "source")
	tick := awaitMsg[messages.SearchTick](t, cmd)
	assert.Equal(t, v.Seq(), tick.Seq)

	v, cmd = v.Update(tick)
	v = complete(t, v, cmd)

	assert.Equal(t, "source", svc.last().Query)
	assert.Equal(t, domain.SearchModeFullText, svc.last().Mode)
	assert.Len(t, v.Hits(), 3)
	assert.Contains(t, v.View(), "tu-2")
}

func TestView_StaleTickIgnored(t *testing.T) {
	v := newTestView(&fakeSearch{total: 3})
	v.SetDebounce(time.Hour)

	v, _ = typeText(v, "a")
	stale := v.Seq()
	v, _ = typeText(v, "b")

	_, cmd := v.Update(messages.SearchTick{Seq: stale})

	assert.Nil(t, cmd)
	assert.Greater(t, v.Seq(), stale)
}

func TestView_StaleResultDropped(t *testing.T) {
	v := newTestView(&fakeSearch{total: 3})
	v.Refresh()
	current := v.Seq()

	old := &domain.SearchPage{Hits: []domain.UnitHit{{Position: 99, Unit: testUnit(99)}}, Total: 1}
	v, _ = v.Update(messages.SearchCompleted{Seq: current - 1, Page: old})
	assert.Nil(t, v.Result())
	assert.Empty(t, v.Hits())

	fresh := &domain.SearchPage{Hits: []domain.UnitHit{{Position: 1, Unit: testUnit(1)}}, Total: 1, Page: 1, PageCount: 1}
	v, _ = v.Update(messages.SearchCompleted{Seq: current, Page: fresh})
	require.NotNil(t, v.Result())
	assert.Equal(t, 1, v.Hits()[0].Position)
}

func TestView_ZeroDebounceSearchesImmediately(t *testing.T) {
	svc := &fakeSearch{total: 2}
	v := newTestView(svc)

	v, cmd := typeText(v, "x")
	v = complete(t, v, cmd)

	assert.Equal(t, "x", svc.last().Query)
	assert.Len(t, v.Hits(), 2)
}

func TestView_ModeCycling(t *testing.T) {
	svc := &fakeSearch{total: 1}
	v := newTestView(svc)

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, domain.SearchModeIDPrefix, v.Mode())
	changed := awaitMsg[messages.ModeChanged](t, cmd)
	assert.Equal(t, domain.SearchModeIDPrefix, changed.Mode)
	v = complete(t, v, cmd)
	assert.Equal(t, domain.SearchModeIDPrefix, svc.last().Mode)

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, domain.SearchModeFullText, v.Mode())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, domain.SearchModeBatchID, v.Mode())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, domain.SearchModeFullText, v.Mode())
}

func TestView_Paging(t *testing.T) {
	svc := &fakeSearch{total: 25}
	v := newTestView(svc)
	v = complete(t, v, v.Refresh())
	require.Equal(t, 3, v.Result().PageCount)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Nil(t, cmd)

	v, cmd = v.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	v = complete(t, v, cmd)
	assert.Equal(t, 2, svc.last().Page)
	assert.Equal(t, 10, v.Hits()[0].Position)
	assert.Contains(t, v.View(), "page 2 of 3")

	v, cmd = v.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	v = complete(t, v, cmd)
	assert.Len(t, v.Hits(), 5)

	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Nil(t, cmd)

	v, cmd = v.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	v = complete(t, v, cmd)
	assert.Equal(t, 2, v.Page())
}

func TestView_EditResetsPage(t *testing.T) {
	svc := &fakeSearch{total: 25}
	v := newTestView(svc)
	v = complete(t, v, v.Refresh())
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	v = complete(t, v, cmd)
	require.Equal(t, 2, v.Page())

	v, cmd = typeText(v, "q")
	complete(t, v, cmd)

	assert.Equal(t, 1, svc.last().Page)
}

func TestView_DetailPane(t *testing.T) {
	v := newTestView(&fakeSearch{total: 2})
	v = complete(t, v, v.Refresh())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyDown})
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, v.ShowingDetail())

	view := v.View()
	assert.Contains(t, view, "tu-1")
	assert.Contains(t, view, "Zieltext 1")
	assert.Contains(t, view, "x-segment-id = SEG-001")
	assert.Contains(t, view, "translator")
	assert.Contains(t, view, "checked by reviewer")

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.False(t, v.ShowingDetail())
}

func TestView_DetailNeedsSelection(t *testing.T) {
	v := newTestView(&fakeSearch{})

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, v.ShowingDetail())
}

func TestView_EscClearsQuery(t *testing.T) {
	svc := &fakeSearch{total: 4}
	v := newTestView(svc)
	v, cmd := typeText(v, "hello")
	v = complete(t, v, cmd)

	v, cmd = v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	v = complete(t, v, cmd)

	assert.Equal(t, "", v.Query())
	assert.Equal(t, "", svc.last().Query)
	assert.False(t, v.Result().Filtered)

	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
}

func TestView_SearchError(t *testing.T) {
	svc := &fakeSearch{err: domain.ErrNoDocument}
	v := newTestView(svc)

	v = complete(t, v, v.Refresh())

	assert.ErrorIs(t, v.Err(), domain.ErrNoDocument)
	assert.Contains(t, v.View(), "Error:")
}

func TestView_NoSearchService(t *testing.T) {
	v := NewView(nil, nil, nil)

	msg := awaitMsg[messages.ErrorOccurred](t, v.Refresh())

	assert.ErrorIs(t, msg.Err, ErrNoSearchService)
}

func TestView_ErrorOccurred(t *testing.T) {
	v := newTestView(&fakeSearch{})

	v, _ = v.Update(messages.ErrorOccurred{Err: errors.New("reload failed")})

	assert.EqualError(t, v.Err(), "reload failed")
}

func TestView_WithSettings(t *testing.T) {
	svc := &fakeSearch{total: 10}
	settings := domain.DefaultSettings()
	settings.PageSize = 4
	settings.DebounceMillis = 0

	v := newTestView(svc).WithSettings(settings)
	v, cmd := typeText(v, "s")
	v = complete(t, v, cmd)

	assert.Equal(t, 4, svc.last().PageSize)
	assert.Len(t, v.Hits(), 4)
}

func TestView_WithContext(t *testing.T) {
	type ctxKey struct{}
	v := NewView(nil, nil, &fakeSearch{})
	ctx := context.WithValue(context.Background(), ctxKey{}, "x")

	assert.Same(t, v, v.WithContext(ctx))
}

func TestView_Reset(t *testing.T) {
	v := newTestView(&fakeSearch{total: 3})
	v, cmd := typeText(v, "abc")
	v = complete(t, v, cmd)

	v.Reset()

	assert.Equal(t, "", v.Query())
	assert.Empty(t, v.Hits())
	assert.Nil(t, v.Result())
	assert.Equal(t, 1, v.Page())
}
