// Package view derives the visible subset of findings for each category:
// filter, sort, paginate, and project into a declarative view model.
package view

import (
	"fmt"

	"github.com/northcutted/scanboard/pkg/types"
)

const (
	DefaultPageSize   = 10
	DefaultDepth      = 2
	DefaultSortColumn = "severity"
)

// PageSizes are the page sizes offered to users.
var PageSizes = []int{5, 10, 25, 50}

// State is the per-category view state. Filter setters only record the new
// value; Board.Refresh applies them and resets the page.
type State struct {
	Category      types.Category
	Search        string
	Severity      types.Severity // empty means no severity filter
	Module        string         // active module drill-down, static findings only
	Depth         int
	ShowDismissed bool
	SortColumn    string
	SortAsc       bool
	Page          int
	PageSize      int
}

// NewState returns the default state: severity descending, page 1.
func NewState(category types.Category) *State {
	return &State{
		Category:   category,
		Depth:      DefaultDepth,
		SortColumn: DefaultSortColumn,
		SortAsc:    false,
		Page:       1,
		PageSize:   DefaultPageSize,
	}
}

// SetDepth changes the module depth. Any active module selection was made
// at the old depth and no longer names a valid bucket, so it is cleared.
func (s *State) SetDepth(depth int) {
	if depth < 1 {
		depth = 1
	}
	if depth != s.Depth {
		s.Module = ""
	}
	s.Depth = depth
}

// SetSeverity sets the severity filter. The empty string clears it; any
// other token is normalized.
func (s *State) SetSeverity(token string) {
	if token == "" {
		s.Severity = ""
		return
	}
	s.Severity = types.NormalizeSeverity(token)
}

// ToggleSort flips the direction when col is already the sort column;
// otherwise it switches to col ascending.
func (s *State) ToggleSort(col string) {
	if s.SortColumn == col {
		s.SortAsc = !s.SortAsc
		return
	}
	s.SortColumn = col
	s.SortAsc = true
}

// SetPageSize changes the page size and returns to the first page.
func (s *State) SetPageSize(size int) error {
	if size < 1 {
		return fmt.Errorf("invalid page size %d", size)
	}
	s.PageSize = size
	s.Page = 1
	return nil
}

// Step moves the page by delta; Paginate clamps the result.
func (s *State) Step(delta int) {
	s.Page += delta
	if s.Page < 1 {
		s.Page = 1
	}
}
