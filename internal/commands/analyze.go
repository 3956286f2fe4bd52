package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/finbuddy-dev/finbuddy/internal/classify"
	"github.com/finbuddy-dev/finbuddy/internal/config"
	"github.com/finbuddy-dev/finbuddy/internal/logging"
	"github.com/finbuddy-dev/finbuddy/internal/model"
	"github.com/finbuddy-dev/finbuddy/internal/pagetext"
	"github.com/finbuddy-dev/finbuddy/internal/report"
	"github.com/finbuddy-dev/finbuddy/internal/statement"
)

func newAnalyzeCommand(debug *bool) *cobra.Command {
	var configPath string
	var reportPath string
	var csvPath string
	var lenient bool

	cmd := &cobra.Command{
		Use:   "analyze <statement>",
		Short: "Analyze a statement and write the budget report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(args[0], configPath, reportPath, csvPath, lenient, *debug)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", config.DefaultPath, "config file")
	cmd.Flags().StringVar(&reportPath, "report", "", "report output path (default from config)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "also export transactions as CSV")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "log reconciliation failures instead of aborting")

	return cmd
}

func runAnalyze(source, configPath, reportPath, csvPath string, lenient, debug bool) error {
	log := logging.New(debug)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	table := statement.DefaultRegistry().Get(cfg.Statement.Vendor)
	if table == nil {
		return fmt.Errorf("unknown statement vendor %q", cfg.Statement.Vendor)
	}

	policy, err := statement.ParsePolicy(cfg.Statement.Reconcile)
	if err != nil {
		return err
	}
	if lenient {
		policy = statement.ReconcileLenient
	}

	classifier, err := newClassifier(cfg)
	if err != nil {
		return err
	}
	classifier.SetLogger(log)

	log.Info().Str("file", source).Msg("analyzing statement")
	pages, err := pagetext.ReadPages(source)
	if err != nil {
		return err
	}

	parser := statement.NewParser(table, classifier)
	parser.SetLogger(log)
	parser.SetPolicy(policy)

	doc := model.NewDocument()
	if err := parser.ParsePages(doc, pages); err != nil {
		return err
	}

	rep := report.Build(doc, table.Vendor(), source)
	if reportPath == "" {
		reportPath = cfg.Report.Output
	}
	if err := rep.Save(reportPath); err != nil {
		return err
	}

	if csvPath != "" {
		if err := writeCSV(csvPath, doc); err != nil {
			return err
		}
	}

	if err := saveDescriptions(cfg, doc, log); err != nil {
		return err
	}

	for _, h := range rep.Holders {
		status := "unverified"
		if h.Verified {
			status = "verified"
		}
		fmt.Printf("%s #%s: %d transactions, %s (%s)\n", h.Holder, h.AccountID, h.Rows, h.TotalExpenses, status)
	}
	fmt.Printf("Total expenses: %s\n", rep.TotalExpenses)
	fmt.Printf("Report: %s\n", reportPath)
	return nil
}

func writeCSV(path string, doc *model.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating CSV export: %w", err)
	}
	if err := report.WriteRows(f, report.Rows(doc)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// saveDescriptions refreshes the feedback file and folds labeled
// corrections back into the training corpus.
func saveDescriptions(cfg *config.Config, doc *model.Document, log zerolog.Logger) error {
	existing, err := classify.LoadDescriptionRecords(cfg.Report.Descriptions)
	if err != nil {
		log.Warn().Err(err).Msg("could not load existing descriptions")
	}
	records := report.CollectDescriptions(doc, existing)
	if err := classify.SaveDescriptionRecords(cfg.Report.Descriptions, records); err != nil {
		return err
	}
	log.Info().Str("path", cfg.Report.Descriptions).Int("descriptions", len(records)).Msg("descriptions written")

	corpus, err := classify.LoadCorpus(cfg.Classifier.Corpus)
	if err != nil {
		log.Warn().Err(err).Msg("training corpus unavailable, skipping corrections")
		return nil
	}
	if n := corpus.ApplyCorrections(records); n > 0 {
		if err := corpus.Save(cfg.Classifier.Corpus); err != nil {
			return err
		}
		log.Info().Int("updated", n).Msg("folded corrections into training corpus")
	}
	return nil
}
