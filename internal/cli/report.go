package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/herdstats/internal/report"
	"github.com/emiliopalmerini/herdstats/internal/util"
)

var reportCmd = &cobra.Command{
	Use:   "report <yearly|lactation|classification|monthly>",
	Short: "Compute one dashboard page in the terminal",
	Long: `Compute a dashboard page with the same filters and rules as the web
dashboard and print it, as a table or as JSON.

Examples:
  herdstats report yearly --breed Chios --lact-from 1 --lact-to 5 --min-days 90
  herdstats report classification --breed Lacaune --year-from 2015
  herdstats report monthly --format json`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"yearly", "lactation", "classification", "monthly"},
	RunE:      runReport,
}

var (
	reportBreed    string
	reportLactFrom int
	reportLactTo   int
	reportYearFrom int
	reportYearTo   int
	reportMinDays  int
	reportFormat   string
)

func init() {
	rootCmd.AddCommand(reportCmd)
	f := reportCmd.Flags()
	f.StringVar(&reportBreed, "breed", "", "Breed name (default: first breed)")
	f.IntVar(&reportLactFrom, "lact-from", 0, "First lactation period")
	f.IntVar(&reportLactTo, "lact-to", 0, "Last lactation period")
	f.IntVar(&reportYearFrom, "year-from", 0, "First production year")
	f.IntVar(&reportYearTo, "year-to", 0, "Last production year")
	f.IntVar(&reportMinDays, "min-days", 0, "Minimum lactation days")
	f.StringVarP(&reportFormat, "format", "f", "table", "Output format: table or json")
}

// reportRequest builds a request from the flags the user actually set.
func reportRequest(cmd *cobra.Command) report.Request {
	flag := func(name string, v int) *int {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		return &v
	}
	return report.Request{
		Breed:    reportBreed,
		LactFrom: flag("lact-from", reportLactFrom),
		LactTo:   flag("lact-to", reportLactTo),
		YearFrom: flag("year-from", reportYearFrom),
		YearTo:   flag("year-to", reportYearTo),
		MinDays:  flag("min-days", reportMinDays),
	}
}

func runReport(cmd *cobra.Command, args []string) error {
	kind, err := report.ParseKind(args[0])
	if err != nil {
		return err
	}
	if reportFormat != "table" && reportFormat != "json" {
		return fmt.Errorf("unknown format %q", reportFormat)
	}

	ctx := cmd.Context()
	app, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close(context.Background())

	page, err := app.Service.Render(ctx, kind, reportRequest(cmd))
	if err != nil {
		return err
	}

	if reportFormat == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	}
	return printPage(cmd.OutOrStdout(), page)
}

func printPage(out io.Writer, page *report.Page) error {
	fmt.Fprintf(out, "%s (breed %s)\n\n", page.Title, page.Form.Breed)

	if page.Notice != nil {
		fmt.Fprintf(out, "%s: %s\n", strings.ToUpper(string(page.Notice.Level)), page.Notice.Message)
		return nil
	}

	if len(page.Summary) > 0 {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, ind := range page.Summary {
			fmt.Fprintf(w, "%s\t%s %s\n", ind.Label, util.FormatFloat(ind.Value), ind.Unit)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}

	if page.Data == nil {
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, strings.Join(page.Data.Columns, "\t")+"\t")
	for _, row := range page.Data.Rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = util.FormatCell(c)
		}
		fmt.Fprintln(w, strings.Join(cells, "\t")+"\t")
	}
	return w.Flush()
}
