package cmd

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/northcutted/scanboard/pkg/grouping"
	"github.com/northcutted/scanboard/pkg/types"
	"github.com/northcutted/scanboard/pkg/view"
)

var groupBy string

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Summarize findings by module or by package",
	Long: `Group code findings into modules by the leading segments of their path,
or group dependency findings by package with the worst severity and the
highest fixed version among them. Dismissed findings are excluded.`,
	Example: `  scanboard groups --by module --depth 1
  scanboard groups --by package --category sca-image`,
	Args: cobra.NoArgs,
	RunE: runGroups,
}

func init() {
	f := groupsCmd.Flags()
	f.StringVar(&groupBy, "by", "module", "Grouping: module or package")
	f.StringVar(&categoryName, "category", "", "Category to group (default: sast for modules, sca-fs for packages)")
	f.IntVar(&moduleDepth, "depth", view.DefaultDepth, "Path depth for module grouping")
	rootCmd.AddCommand(groupsCmd)
}

func runGroups(cmd *cobra.Command, args []string) error {
	b, _, err := openBoard(cmd.Context())
	if err != nil {
		return err
	}

	switch groupBy {
	case "module":
		c := types.CategoryStatic
		if categoryName != "" && categoryName != string(types.CategoryStatic) {
			return fmt.Errorf("module grouping only applies to the sast category")
		}
		printModuleGroups(grouping.ByModule(b.Filtered(c), settings.Depth))
	case "package":
		c := types.CategoryFS
		if categoryName != "" {
			parsed, ok := types.ParseCategory(categoryName)
			if !ok || parsed.Kind() != types.KindDependency {
				return fmt.Errorf("package grouping needs sca-fs or sca-image, got %q", categoryName)
			}
			c = parsed
		}
		printPackageGroups(grouping.ByPackage(b.Filtered(c)))
	default:
		return fmt.Errorf("unknown grouping %q (want module or package)", groupBy)
	}
	return nil
}

func printModuleGroups(groups []grouping.ModuleGroup) {
	if len(groups) == 0 {
		fmt.Fprintln(stdout, "No code findings.")
		return
	}
	tw := newTable([]string{"Module", "Total", "Critical", "High", "Medium", "Low", "Unknown"})
	for _, g := range groups {
		row := []string{g.Key, strconv.Itoa(g.Total())}
		for _, sev := range types.Severities {
			row = append(row, strconv.Itoa(g.Counts[sev]))
		}
		tw.Append(row)
	}
	tw.Render()
}

func printPackageGroups(groups []grouping.PackageGroup) {
	if len(groups) == 0 {
		fmt.Fprintln(stdout, "No dependency findings.")
		return
	}
	tw := newTable([]string{"Package", "Installed", "Max Severity", "Findings", "Recommended Fix"})
	for _, g := range groups {
		tw.Append([]string{
			g.Package,
			g.Installed,
			string(g.MaxSeverity()),
			strconv.Itoa(len(g.Findings)),
			g.RecommendedFix,
		})
	}
	tw.Render()
}

func newTable(header []string) *tablewriter.Table {
	tw := tablewriter.NewWriter(stdout)
	tw.SetHeader(header)
	tw.SetBorder(false)
	tw.SetAutoWrapText(false)
	tw.SetAutoFormatHeaders(false)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	return tw
}
