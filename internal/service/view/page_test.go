package view

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/sandevgo/factdeck/internal/core"
	"github.com/sandevgo/factdeck/internal/service/browser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withFacts(t *testing.T, facts ...core.Fact) browser.State {
	t.Helper()
	s := browser.New()
	for _, f := range facts {
		var tk browser.Ticket
		var ok bool
		s, tk, ok = s.BeginFetch()
		require.True(t, ok)
		s = s.CompleteFetch(tk, f)
	}
	return s
}

func TestProject_Empty(t *testing.T) {
	p := Project(browser.New())

	assert.Equal(t, ModeEmpty, p.Mode)
	assert.Equal(t, EmptyText, p.Message)
	assert.Empty(t, p.Text)
	assert.True(t, p.Previous.Disabled)
	assert.False(t, p.Next.Disabled)
	assert.Equal(t, NewFactLabel, p.Next.Label)
	assert.Equal(t, "History (0 facts)", p.HistoryTitle)
	assert.Empty(t, p.Entries)
	assert.Equal(t, EmptyHistory, p.HistoryEmpty)
}

func TestProject_Loading(t *testing.T) {
	s := withFacts(t, core.Fact{Text: "A"}, core.Fact{Text: "B"})
	s = s.Previous()
	s, _, _ = s.BeginFetch()

	p := Project(s)
	assert.Equal(t, ModeLoading, p.Mode)
	assert.Equal(t, LoadingText, p.Message)
	assert.Empty(t, p.Text)
	assert.True(t, p.Previous.Disabled)
	assert.True(t, p.Next.Disabled)
	assert.Equal(t, NextLabel, p.Next.Label)
	assert.Len(t, p.Entries, 2)
}

func TestProject_Error(t *testing.T) {
	s := withFacts(t, core.Fact{Text: "A"})
	s, tk, _ := s.BeginFetch()
	s = s.FailFetch(tk)

	p := Project(s)
	assert.Equal(t, ModeError, p.Mode)
	assert.Equal(t, browser.FetchFailedMessage, p.Message)
	assert.Empty(t, p.Text)
	assert.Empty(t, p.Counter)
	assert.False(t, p.Next.Disabled)
	assert.Equal(t, NewFactLabel, p.Next.Label)
}

func TestProject_Fact(t *testing.T) {
	s := withFacts(t,
		core.Fact{Text: "A", SourceURL: "https://example.com/a"},
		core.Fact{Text: "B"},
		core.Fact{Text: "C"},
	)

	p := Project(s.GoTo(0))
	assert.Equal(t, ModeFact, p.Mode)
	assert.Equal(t, "A", p.Text)
	assert.Equal(t, "https://example.com/a", p.Source)
	assert.Equal(t, "Fact #1 of 3", p.Counter)
	assert.True(t, p.Previous.Disabled)
	assert.Equal(t, NextLabel, p.Next.Label)

	p = Project(s.GoTo(1))
	assert.Equal(t, UnknownSource, p.Source)
	assert.Equal(t, "Fact #2 of 3", p.Counter)
	assert.False(t, p.Previous.Disabled)
	assert.Equal(t, NextLabel, p.Next.Label)

	p = Project(s)
	assert.Equal(t, "Fact #3 of 3", p.Counter)
	assert.Equal(t, NewFactLabel, p.Next.Label)
	assert.Equal(t, "History (3 facts)", p.HistoryTitle)
	assert.Empty(t, p.HistoryEmpty)
}

func TestProject_Entries(t *testing.T) {
	long := strings.Repeat("x", 100)
	s := withFacts(t, core.Fact{Text: "short"}, core.Fact{Text: long})

	p := Project(s.GoTo(0))
	require.Len(t, p.Entries, 2)

	assert.Equal(t, Entry{Index: 0, Position: 1, Preview: "short", Label: "Fact #1", Current: true}, p.Entries[0])
	assert.Equal(t, 1, p.Entries[1].Index)
	assert.Equal(t, 2, p.Entries[1].Position)
	assert.Equal(t, strings.Repeat("x", 80)+"...", p.Entries[1].Preview)
	assert.False(t, p.Entries[1].Current)
}

func TestPreview(t *testing.T) {
	exact := strings.Repeat("a", 80)
	assert.Equal(t, exact, Preview(exact))
	assert.Equal(t, exact+"...", Preview(exact+"b"))
	assert.Equal(t, "", Preview(""))

	// multi-byte characters count once each
	umlauts := strings.Repeat("ü", 81)
	assert.Equal(t, strings.Repeat("ü", 80)+"...", Preview(umlauts))
}

func TestPage_JSON(t *testing.T) {
	p := Project(withFacts(t, core.Fact{Text: "A"}))

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "fact", decoded["mode"])
	assert.Equal(t, "A", decoded["text"])
	assert.Equal(t, "Fact #1 of 1", decoded["counter"])
}

func TestMode_TextRoundTrip(t *testing.T) {
	for _, m := range []Mode{ModeEmpty, ModeLoading, ModeError, ModeFact} {
		raw, err := m.MarshalText()
		require.NoError(t, err)

		var got Mode
		require.NoError(t, got.UnmarshalText(raw))
		assert.Equal(t, m, got)
	}

	var bad Mode
	assert.Error(t, bad.UnmarshalText([]byte("sideways")))
}
