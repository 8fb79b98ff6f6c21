package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/northcutted/scanboard/pkg/types"
)

var dismissCmd = &cobra.Command{
	Use:   "dismiss <key>...",
	Short: "Toggle the dismissal of findings",
	Long: `Toggle each key between dismissed and active. Dismissed findings are
hidden from tables, counters, and charts. Keys are printed by
"scanboard view" and stay stable when reports are regenerated.`,
	Example: `  scanboard dismiss sast:3f2a9c0d1e4b5a67
  scanboard dismiss sca-fs:91bd00aa23cc4e10 sca-image:0c1d2e3f4a5b6c7d`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDismiss,
}

var dismissedCmd = &cobra.Command{
	Use:   "dismissed",
	Short: "List dismissed findings",
	Long: `List every dismissed key, most severe first. Keys that no longer match a
finding in the current reports are listed last.`,
	Args:  cobra.NoArgs,
	RunE:  runDismissed,
}

func init() {
	rootCmd.AddCommand(dismissCmd)
	rootCmd.AddCommand(dismissedCmd)
}

func runDismiss(cmd *cobra.Command, args []string) error {
	b, _, err := openBoard(cmd.Context())
	if err != nil {
		return err
	}

	for _, key := range splitKeys(args) {
		if _, ok := b.Find(key); !ok {
			slog.Warn("key not in current reports, toggling anyway", "key", key)
		}
		now, err := b.Toggle(key)
		if err != nil {
			return fmt.Errorf("failed to toggle %s: %w", key, err)
		}
		if now {
			fmt.Fprintf(stdout, "dismissed %s\n", key)
		} else {
			fmt.Fprintf(stdout, "restored %s\n", key)
		}
	}
	return nil
}

func runDismissed(cmd *cobra.Command, args []string) error {
	b, store, err := openBoard(cmd.Context())
	if err != nil {
		return err
	}

	keys := store.Keys()
	if len(keys) == 0 {
		fmt.Fprintln(stdout, "No dismissed findings.")
		return nil
	}

	var found []types.Finding
	var missing []string
	for _, k := range keys {
		if f, ok := b.Find(k); ok {
			found = append(found, f)
		} else {
			missing = append(missing, k)
		}
	}
	types.SortBySeverity(found)

	tw := newTable([]string{"Key", "Severity", "ID", "Location/Package"})
	for _, f := range found {
		tw.Append([]string{f.Key, string(f.Severity), f.ID, f.Subject()})
	}
	for _, k := range missing {
		tw.Append([]string{k, "-", "-", "(not in current reports)"})
	}
	tw.Render()
	return nil
}
