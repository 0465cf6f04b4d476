// Package session holds the per-user dashboard state: the filter selection
// and the conversation transcript. State changes only through the methods
// below; surfaces never assign fields directly.
package session

import (
	"slices"
	"sort"

	"github.com/sandevgo/salesdash/internal/core"
	"github.com/sandevgo/salesdash/internal/sales"
)

type Turn struct {
	Role string // core.RoleUser or core.RoleAssistant
	Text string
}

type Session struct {
	defaults sales.Filters
	filters  sales.Filters
	history  []Turn
}

// New starts a session with every year and category of ds selected.
func New(ds *sales.Dataset) *Session {
	defaults := sales.DefaultFilters(ds)
	return &Session{
		defaults: defaults,
		filters:  defaults.Clone(),
	}
}

// Filters returns a copy of the current selection.
func (s *Session) Filters() sales.Filters {
	return s.filters.Clone()
}

func (s *Session) SetYears(years []int) {
	years = slices.Clone(years)
	sort.Ints(years)
	s.filters.Years = slices.Compact(years)
}

func (s *Session) SetCategories(categories []string) {
	categories = slices.Clone(categories)
	sort.Strings(categories)
	s.filters.Categories = slices.Compact(categories)
}

// ToggleYear selects the year if it is not selected and deselects it otherwise.
func (s *Session) ToggleYear(year int) {
	if i := slices.Index(s.filters.Years, year); i >= 0 {
		s.filters.Years = slices.Delete(slices.Clone(s.filters.Years), i, i+1)
		return
	}
	s.SetYears(append(slices.Clone(s.filters.Years), year))
}

func (s *Session) ToggleCategory(category string) {
	if i := slices.Index(s.filters.Categories, category); i >= 0 {
		s.filters.Categories = slices.Delete(slices.Clone(s.filters.Categories), i, i+1)
		return
	}
	s.SetCategories(append(slices.Clone(s.filters.Categories), category))
}

// Reset restores the default selection. The transcript is kept.
func (s *Session) Reset() {
	s.filters = s.defaults.Clone()
}

func (s *Session) AppendTurn(role, text string) {
	s.history = append(s.history, Turn{Role: role, Text: text})
}

// History returns a copy of the transcript in order.
func (s *Session) History() []Turn {
	return slices.Clone(s.history)
}

// Messages converts the transcript into reasoning-service messages.
func (s *Session) Messages() []core.Message {
	out := make([]core.Message, 0, len(s.history))
	for _, t := range s.history {
		out = append(out, core.Message{Role: t.Role, Content: t.Text})
	}
	return out
}
