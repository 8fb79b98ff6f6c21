package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/northcutted/scanboard/pkg/dismissal"
	"github.com/northcutted/scanboard/pkg/loader"
	"github.com/northcutted/scanboard/pkg/types"
	"github.com/northcutted/scanboard/pkg/view"
)

// Filter flags shared by view and export.
var (
	categoryName  string
	searchTerm    string
	severityName  string
	sortColumn    string
	sortDesc      bool
	pageNumber    int
	pageSize      int
	moduleKey     string
	moduleDepth   int
	showDismissed bool
)

func addFilterFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&categoryName, "category", "", "Limit to one category: sast, sca-fs, or sca-image")
	f.StringVar(&searchTerm, "search", "", "Case-insensitive substring over rule id, message, package, and location")
	f.StringVar(&severityName, "severity", "", "Only show one severity (critical, high, medium, low, unknown)")
	f.StringVar(&sortColumn, "sort", view.DefaultSortColumn, "Sort column (severity, id, message, location, package, installed, fixed)")
	f.BoolVar(&sortDesc, "desc", false, "Sort descending (default: descending for severity, ascending otherwise)")
	f.StringVar(&moduleKey, "module", "", "Drill into one module of the code findings, e.g. src/api")
	f.IntVar(&moduleDepth, "depth", view.DefaultDepth, "Path depth used to group code findings into modules")
	f.BoolVar(&showDismissed, "show-dismissed", false, "Include dismissed findings")
}

// selectedCategories resolves --category to the categories it targets.
func selectedCategories() ([]types.Category, error) {
	if categoryName == "" {
		return types.Categories, nil
	}
	c, ok := types.ParseCategory(categoryName)
	if !ok {
		return nil, fmt.Errorf("unknown category %q (want sast, sca-fs, or sca-image)", categoryName)
	}
	return []types.Category{c}, nil
}

// openBoard loads the reports and the dismissal file into a board.
func openBoard(ctx context.Context) (*view.Board, *dismissal.Store, error) {
	store, err := dismissal.Open(settings.Dismissals)
	if err != nil {
		return nil, nil, err
	}

	res := loader.Load(ctx, settings.Sources)
	if res.Warnings != nil {
		slog.Warn("some sources fell back to empty reports", "error", res.Warnings)
	}
	slog.Debug("reports loaded", "findings", res.Total(), "dismissed", store.Len())

	return view.NewBoard(res.Findings, store), store, nil
}

// applyFilters copies the filter flags into the view state of every
// targeted category and re-filters them.
func applyFilters(cmd *cobra.Command, b *view.Board, cats []types.Category) error {
	// depth and page-size flags are folded into settings by viper.
	depth, size := settings.Depth, settings.PageSize

	for _, c := range cats {
		st := b.State(c)
		st.Search = searchTerm
		st.SetSeverity(severityName)
		st.ShowDismissed = showDismissed
		st.SortColumn = sortColumn
		st.SortAsc = sortColumn != view.DefaultSortColumn
		if cmd.Flags().Changed("desc") {
			st.SortAsc = !sortDesc
		}
		if c.Kind() == types.KindStatic {
			st.SetDepth(depth)
			st.Module = moduleKey
		}
		if err := st.SetPageSize(size); err != nil {
			return err
		}
		b.Refresh(c)
		if pageNumber > 1 {
			st.Page = pageNumber
		}
	}
	return nil
}
