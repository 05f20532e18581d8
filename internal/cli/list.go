package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lumipallolabs/driveinfo/internal/core"
	"github.com/lumipallolabs/driveinfo/internal/logging"
	"github.com/lumipallolabs/driveinfo/internal/model"
	"github.com/lumipallolabs/driveinfo/internal/ui"
)

// driveSource is replaced in tests
var driveSource = model.SystemSource

var (
	flagUnit string
	flagAll  bool
	flagTSV  bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the drive table and exit",
	Long: `Prints the same table the interface shows. The unit base and not-ready
filter default to the saved settings.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&flagUnit, "unit", "", "Unit base: 1000 (GB) or 1024 (GiB)")
	listCmd.Flags().BoolVar(&flagAll, "all", false, "Include drives that are not ready")
	listCmd.Flags().BoolVar(&flagTSV, "tsv", false, "Print tab-separated values (clipboard format)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	snap := openStore().Snapshot()

	opts := core.BuildOptions{
		UnitBase:        snap.UnitBase,
		IncludeNotReady: snap.IncludeNotReady,
	}
	if cmd.Flags().Changed("unit") {
		base, err := model.ParseUnitBase(flagUnit)
		if err != nil {
			return err
		}
		opts.UnitBase = base
	}
	if cmd.Flags().Changed("all") {
		opts.IncludeNotReady = flagAll
	}

	failed := 0
	records, err := core.Build(cmd.Context(), driveSource(), opts, func(e core.Event) {
		if f, ok := e.(core.DriveFailedEvent); ok {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "Error getting drive information for %s: %v\n", f.Name, f.Err)
		}
	})
	if err != nil {
		var ee *model.EnumerationError
		if errors.As(err, &ee) {
			return &exitError{code: ee.Class.ExitCode(), err: ee}
		}
		return err
	}
	logging.Build.Printf("list: %d records, %d failed", len(records), failed)

	out := cmd.OutOrStdout()
	if flagTSV {
		_, err := io.WriteString(out, ui.TSV(records, opts.UnitBase))
		return err
	}
	return writeTable(out, records, opts.UnitBase)
}

// writeTable prints records as aligned columns
func writeTable(w io.Writer, records []model.Record, base model.UnitBase) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(ui.Headers(base), "\t")+"\t")
	for _, row := range ui.Rows(records) {
		fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	}
	return tw.Flush()
}
