package view

import (
	"fmt"

	"github.com/northcutted/scanboard/pkg/types"
)

// DismissalStore is the persistence behind a board's dismissals.
type DismissalStore interface {
	Dismissed
	Toggle(key string) (bool, error)
}

// Board holds the loaded findings of every category together with their
// view states, the derived filtered sets, and the user's selection.
type Board struct {
	data      map[types.Category][]types.Finding
	states    map[types.Category]*State
	filtered  map[types.Category][]types.Finding
	store     DismissalStore
	Selection *Selection
}

// NewBoard builds a board over data and filters every category once.
// store may be nil, in which case nothing is ever dismissed.
func NewBoard(data map[types.Category][]types.Finding, store DismissalStore) *Board {
	b := &Board{
		data:      make(map[types.Category][]types.Finding, len(types.Categories)),
		states:    make(map[types.Category]*State, len(types.Categories)),
		filtered:  make(map[types.Category][]types.Finding, len(types.Categories)),
		store:     store,
		Selection: NewSelection(),
	}
	for _, c := range types.Categories {
		b.data[c] = data[c]
		b.states[c] = NewState(c)
	}
	b.RefreshAll()
	return b
}

// State returns the mutable view state of a category.
func (b *Board) State(c types.Category) *State {
	return b.states[c]
}

// Data returns the raw findings of a category.
func (b *Board) Data(c types.Category) []types.Finding {
	return b.data[c]
}

// Filtered returns the current filtered and sorted findings of a category.
func (b *Board) Filtered(c types.Category) []types.Finding {
	return b.filtered[c]
}

// Refresh re-applies the filters of one category and returns to page 1.
func (b *Board) Refresh(c types.Category) {
	b.filtered[c] = Apply(b.data[c], b.states[c], b.dismissed())
}

// RefreshAll re-applies the filters of every category.
func (b *Board) RefreshAll() {
	for _, c := range types.Categories {
		b.Refresh(c)
	}
}

// Page returns the current page of a category.
func (b *Board) Page(c types.Category) Page {
	st := b.states[c]
	p := Paginate(b.filtered[c], st.Page, st.PageSize)
	st.Page = p.Number
	return p
}

// Toggle flips the dismissal of key, persists it, and re-filters every
// category since a dismissal can affect all of them.
func (b *Board) Toggle(key string) (bool, error) {
	if b.store == nil {
		return false, fmt.Errorf("no dismissal store configured")
	}
	now, err := b.store.Toggle(key)
	if err != nil {
		return false, err
	}
	b.RefreshAll()
	return now, nil
}

// IsDismissed reports whether key is currently dismissed.
func (b *Board) IsDismissed(key string) bool {
	d := b.dismissed()
	return d != nil && d.IsDismissed(key)
}

// Active returns every non-dismissed finding across categories, ignoring
// filters. Summary counters and charts are computed over this set.
func (b *Board) Active() []types.Finding {
	var out []types.Finding
	for _, c := range types.Categories {
		for _, f := range b.data[c] {
			if !b.IsDismissed(f.Key) {
				out = append(out, f)
			}
		}
	}
	return out
}

// Exportable returns the filtered findings of every category, restricted
// to the selection when one is active.
func (b *Board) Exportable() []types.Finding {
	var out []types.Finding
	for _, c := range types.Categories {
		for _, f := range b.filtered[c] {
			if b.Selection.Len() > 0 && !b.Selection.Contains(f.Key) {
				continue
			}
			out = append(out, f)
		}
	}
	return out
}

// Find looks a finding up by key across all categories.
func (b *Board) Find(key string) (types.Finding, bool) {
	for _, c := range types.Categories {
		for _, f := range b.data[c] {
			if f.Key == key {
				return f, true
			}
		}
	}
	return types.Finding{}, false
}

func (b *Board) dismissed() Dismissed {
	if b.store == nil {
		return nil
	}
	return b.store
}
