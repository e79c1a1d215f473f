// Package view projects a browser.State onto what the user sees. Front ends
// only style the Page; every rule of the rendering contract lives here.
package view

import (
	"fmt"

	"github.com/sandevgo/factdeck/internal/core"
	"github.com/sandevgo/factdeck/internal/service/browser"
)

const (
	Title           = core.AppName
	PanelHeading    = "Current Fact"
	LoadingText     = "Loading..."
	EmptyText       = "No fact available"
	EmptyHistory    = "No facts yet"
	UnknownSource   = "Unknown"
	PreviousLabel   = "Previous"
	NextLabel       = "Next"
	NewFactLabel    = "Get New Fact"
	PreviewLength   = 80
	previewEllipsis = "..."
)

// Mode selects which variant of the fact panel is shown.
type Mode int

const (
	ModeEmpty Mode = iota
	ModeLoading
	ModeError
	ModeFact
)

func (m Mode) String() string {
	switch m {
	case ModeLoading:
		return "loading"
	case ModeError:
		return "error"
	case ModeFact:
		return "fact"
	default:
		return "empty"
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	switch string(b) {
	case "loading":
		*m = ModeLoading
	case "error":
		*m = ModeError
	case "fact":
		*m = ModeFact
	case "empty":
		*m = ModeEmpty
	default:
		return fmt.Errorf("unknown page mode %q", b)
	}
	return nil
}

// Button is a navigation control.
type Button struct {
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
}

// Entry is one row of the history panel.
type Entry struct {
	Index    int    `json:"index"`
	Position int    `json:"position"`
	Preview  string `json:"preview"`
	Label    string `json:"label"`
	Current  bool   `json:"current"`
}

// Page is the complete observable output for one State.
type Page struct {
	Mode    Mode   `json:"mode"`
	Message string `json:"message,omitempty"`

	Text    string `json:"text,omitempty"`
	Source  string `json:"source,omitempty"`
	Counter string `json:"counter,omitempty"`

	Previous Button `json:"previous"`
	Next     Button `json:"next"`

	HistoryTitle string  `json:"history_title"`
	Entries      []Entry `json:"entries"`
	HistoryEmpty string  `json:"history_empty,omitempty"`
}

// Project renders s.
func Project(s browser.State) Page {
	p := Page{
		Previous: Button{
			Label:    PreviousLabel,
			Disabled: s.Cursor() <= 0 || s.Loading(),
		},
		Next: Button{
			Label:    NextLabel,
			Disabled: s.Loading(),
		},
		HistoryTitle: fmt.Sprintf("History (%d facts)", s.Len()),
	}
	if s.AtEnd() {
		p.Next.Label = NewFactLabel
	}

	current, hasFact := s.Current()
	switch {
	case s.Loading():
		p.Mode = ModeLoading
		p.Message = LoadingText
	case s.ErrorMessage() != "":
		p.Mode = ModeError
		p.Message = s.ErrorMessage()
	case hasFact:
		p.Mode = ModeFact
		p.Text = current.Text
		p.Source = SourceLabel(current)
		p.Counter = fmt.Sprintf("Fact #%d of %d", s.Cursor()+1, s.Len())
	default:
		p.Mode = ModeEmpty
		p.Message = EmptyText
	}

	p.Entries = make([]Entry, 0, s.Len())
	for i, f := range s.History() {
		p.Entries = append(p.Entries, Entry{
			Index:    i,
			Position: i + 1,
			Preview:  Preview(f.Text),
			Label:    fmt.Sprintf("Fact #%d", i+1),
			Current:  i == s.Cursor(),
		})
	}
	if len(p.Entries) == 0 {
		p.HistoryEmpty = EmptyHistory
	}
	return p
}

// SourceLabel is the fact's source URL, or "Unknown".
func SourceLabel(f core.Fact) string {
	if f.SourceURL == "" {
		return UnknownSource
	}
	return f.SourceURL
}

// Preview cuts text to PreviewLength characters and marks the cut.
func Preview(text string) string {
	runes := []rune(text)
	if len(runes) <= PreviewLength {
		return text
	}
	return string(runes[:PreviewLength]) + previewEllipsis
}
