package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pivolan/results_analyzer/analysis"
	"github.com/pivolan/results_analyzer/config"
	"github.com/pivolan/results_analyzer/domain/models"
	"github.com/pivolan/results_analyzer/logging"
	"github.com/pivolan/results_analyzer/plot"
	"github.com/pivolan/results_analyzer/report"
	"github.com/pivolan/results_analyzer/results"
)

var (
	cfgFile     string
	resultsFile string
	outputDir   string
	formats     []string
	debug       bool
	filters     []string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "results-analyzer",
	Short: "Group, test and plot experiment results stored as CSV",
	Long: `results-analyzer loads a CSV file of experiment results and groups its rows
by one or more columns to print summary statistics, run significance tests and
draw box, line, bar, scatter, heatmap and histogram plots.

Every --filter flag keeps the rows matching any of its COLUMN=VALUE pairs;
repeating the flag narrows the rows further.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	f.StringVarP(&resultsFile, "file", "f", "", "results file, may be .gz, .lz4 or .zip (overrides config)")
	f.StringVarP(&outputDir, "out", "o", "", "directory figures are written to (overrides config)")
	f.StringSliceVar(&formats, "format", nil, "figure formats: png, html (overrides config)")
	f.BoolVar(&debug, "debug", false, "enable debug logging")
	f.StringArrayVar(&filters, "filter", nil, `keep rows matching any "COLUMN=VALUE,COLUMN=VALUE" pair; repeat to narrow further`)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	if cfgFile != "" {
		c, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = c
	} else {
		c, err := config.GetConfig()
		if err != nil {
			return err
		}
		copied := *c
		cfg = &copied
	}

	f := cmd.Root().PersistentFlags()
	if f.Changed("file") {
		cfg.ResultsFile = resultsFile
	}
	if f.Changed("out") {
		cfg.OutputDir = outputDir
	}
	if f.Changed("format") {
		cfg.Formats = formats
	}
	if debug {
		cfg.LogLevel = "debug"
	}
	return nil
}

// environment is what every analysis command works with.
type environment struct {
	log     *zap.Logger
	gallery *plot.Gallery
	session *analysis.Session
	out     io.Writer
}

// prepare builds the logger, loads the results file and applies the --filter
// flags. With banner set, the columns and row count of the loaded table are
// printed before any filter.
func prepare(cmd *cobra.Command, banner bool) (*environment, error) {
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	table, err := results.Load(cfg.ResultsFile)
	if err != nil {
		return nil, err
	}
	log.Debug("results loaded",
		zap.String("file", cfg.ResultsFile),
		zap.Int("rows", table.Len()),
		zap.Strings("columns", table.Header()))

	out := cmd.OutOrStdout()
	gallery := plot.NewGallery(log, cfg.Width, cfg.Height)
	session := analysis.NewSession(table, gallery, out, log, cfg.Alpha)
	if banner {
		report.Banner(out, table)
	}
	for _, filter := range filters {
		matches, err := models.ParseMatches(filter)
		if err != nil {
			return nil, err
		}
		if err := session.Filter(matches...); err != nil {
			return nil, err
		}
	}
	return &environment{log: log, gallery: gallery, session: session, out: out}, nil
}

// finish renders every pending figure.
func (e *environment) finish() error {
	defer e.log.Sync()
	if e.gallery.Pending() == 0 {
		return nil
	}
	written, err := e.gallery.Show(cfg.OutputDir, cfg.Formats...)
	for _, path := range written {
		fmt.Fprintf(e.out, "✓ Wrote %s\n", path)
	}
	return err
}
