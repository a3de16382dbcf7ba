package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/supportops/casereport-go/pkg/casereport"
	"github.com/supportops/casereport-go/pkg/casereport/config"
	"github.com/supportops/casereport-go/pkg/casereport/output"
)

type fcrFlags struct {
	reopened       string
	closed         string
	parent         string
	date           string
	childThreshold int
	childOverride  int
	denominator    string
	output         string
}

func newFCRCommand() *cobra.Command {
	var f fcrFlags
	cmd := &cobra.Command{
		Use:   "fcr",
		Short: "Compute the first call resolution rate for a report date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFCR(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.reopened, "reopened", "", "Re-opened cases export")
	cmd.Flags().StringVar(&f.closed, "closed", "", "Closed cases export")
	cmd.Flags().StringVar(&f.parent, "parent", "", "Parent cases export (not read with --child-override)")
	cmd.Flags().StringVar(&f.date, "date", "", "Report date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&f.childThreshold, "child-threshold", 4, "Minimum Subtotal count that counts as child cases")
	cmd.Flags().IntVar(&f.childOverride, "child-override", 0, "Use this child case count instead of reading --parent")
	cmd.Flags().StringVar(&f.denominator, "denominator", "", "FCR denominator: distinct or category-sum")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output file path (default: stdout)")
	_ = cmd.MarkFlagRequired("reopened")
	_ = cmd.MarkFlagRequired("closed")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func runFCR(cmd *cobra.Command, f fcrFlags) error {
	date, err := parseDate(f.date)
	if err != nil {
		return err
	}

	cfg, err := config.Resolve(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("child-threshold") {
		cfg.ChildCaseThreshold = f.childThreshold
	}
	if cmd.Flags().Changed("denominator") {
		cfg.Denominator = f.denominator
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts, err := casereport.NewFCROptions(cfg, date)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("child-override") {
		opts.ChildCaseOverride = &f.childOverride
	} else if f.parent == "" {
		return fmt.Errorf("--parent is required unless --child-override is given")
	}

	reopened, err := openSource(f.reopened, casereport.ReopenedReport)
	if err != nil {
		return err
	}
	defer reopened.close()
	closed, err := openSource(f.closed, casereport.ClosedReport)
	if err != nil {
		return err
	}
	defer closed.close()
	parent := source{Source: casereport.Source{Name: casereport.ParentCasesReport}}
	if opts.ShouldScanSubtotals() {
		if parent, err = openSource(f.parent, casereport.ParentCasesReport); err != nil {
			return err
		}
		defer parent.close()
	}

	result, err := casereport.CalculateFCR(reopened.Source, closed.Source, parent.Source, opts)
	if err != nil {
		return err
	}
	log.Info().Str("fcr", output.FormatPercent(result.FCR)).Msg("fcr.done")

	jsonData, err := output.FCRToJSON(result, pretty)
	if err != nil {
		return eris.Wrap(err, "serialization failed")
	}
	return writeOutput(f.output, jsonData)
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return eris.Wrapf(err, "failed to write output %s", path)
	}
	return nil
}
