package main

import (
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/supportops/casereport-go/pkg/casereport"
	"github.com/supportops/casereport-go/pkg/casereport/config"
	"github.com/supportops/casereport-go/pkg/casereport/models"
	"github.com/supportops/casereport-go/pkg/casereport/output"
)

type bandFlag struct {
	name  string
	max   float64
	color string
}

type formatFlags struct {
	date                  string
	runTime               string
	output                string
	outDir                string
	summary               bool
	bands                 []*bandFlag
	needsImprovementColor string
}

func newFormatCommand() *cobra.Command {
	f := formatFlags{
		bands: []*bandFlag{
			{name: "outstanding"},
			{name: "exceeds"},
			{name: "competent"},
		},
	}
	cmd := &cobra.Command{
		Use:   "format REPORT",
		Short: "Write cycle, weight and average formulas into a case report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args[0], f)
		},
	}

	cmd.Flags().StringVar(&f.date, "date", "", "Report date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.runTime, "time", "13:00", "Report run time (HH:MM, 24h)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output workbook path")
	cmd.Flags().StringVar(&f.outDir, "out-dir", ".", "Directory for the output workbook when --output is not given")
	cmd.Flags().BoolVar(&f.summary, "summary", false, "Print the agent summary as JSON")
	for _, b := range f.bands {
		cmd.Flags().Float64Var(&b.max, b.name, 0, "Upper bound (exclusive) of the "+b.name+" band")
		cmd.Flags().StringVar(&b.color, b.name+"-color", "", "Fill color of the "+b.name+" band (#RRGGBB)")
	}
	cmd.Flags().StringVar(&f.needsImprovementColor, "needs-improvement-color", "", "Fill color above every band (#RRGGBB)")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func runFormat(cmd *cobra.Command, path string, f formatFlags) error {
	runAt, err := parseRunAt(f.date, f.runTime)
	if err != nil {
		return err
	}

	cfg, err := config.Resolve(configPath)
	if err != nil {
		return err
	}
	applyBandFlags(cmd, &cfg.Thresholds, f)

	opts, err := casereport.NewFormatOptions(cfg, runAt)
	if err != nil {
		return err
	}

	src, err := openSource(path, casereport.CaseReport)
	if err != nil {
		return err
	}
	defer src.close()

	doc, summary, err := casereport.FormatCaseReport(src.Source, opts)
	if err != nil {
		return err
	}
	defer doc.Close()
	summary.BookName = filepath.Base(path)

	target := f.output
	if target == "" {
		target = filepath.Join(f.outDir, output.ReportFilename(runAt))
	}
	if err := output.SaveWorkbook(doc, target); err != nil {
		return eris.Wrapf(err, "failed to save %s", target)
	}
	log.Info().Str("path", target).Int("agents", len(summary.Agents)).Msg("report.saved")

	if !f.summary {
		return nil
	}
	jsonData, err := output.SummaryToJSON(summary, pretty)
	if err != nil {
		return eris.Wrap(err, "serialization failed")
	}
	return writeOutput("", jsonData)
}

// applyBandFlags overrides configured threshold levels with the flags that were set.
func applyBandFlags(cmd *cobra.Command, band *models.ThresholdBand, f formatFlags) {
	for _, b := range f.bands {
		for i := range band.Levels {
			if band.Levels[i].Name != b.name {
				continue
			}
			if cmd.Flags().Changed(b.name) {
				band.Levels[i].Max = b.max
			}
			if cmd.Flags().Changed(b.name + "-color") {
				band.Levels[i].Color = b.color
			}
		}
	}
	if cmd.Flags().Changed("needs-improvement-color") {
		band.Default.Color = f.needsImprovementColor
	}
}

func parseRunAt(date, clock string) (time.Time, error) {
	day, err := parseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, eris.Wrapf(err, "invalid --time %q (want HH:MM)", clock)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
}
