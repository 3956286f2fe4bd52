// Package commands wires the finbuddy CLI.
package commands

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/finbuddy-dev/finbuddy/internal/buildinfo"
	"github.com/finbuddy-dev/finbuddy/internal/classify"
	"github.com/finbuddy-dev/finbuddy/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var debug bool

	rootCmd := &cobra.Command{
		Use:     "finbuddy",
		Short:   "Multi-user budget analysis from bank statements",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newAnalyzeCommand(&debug))
	rootCmd.AddCommand(newTrainCommand(&debug))
	rootCmd.AddCommand(newClassifyCommand(&debug))
	rootCmd.AddCommand(newCategoriesCommand())

	return rootCmd
}

// loadConfig reads the given config file. When the default path is
// absent the built-in defaults apply; an explicitly named file must
// exist.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		if path == config.DefaultPath && errors.Is(err, fs.ErrNotExist) {
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// newClassifier builds a classifier from configuration.
func newClassifier(cfg *config.Config) (*classify.Classifier, error) {
	return classify.New(classify.Config{
		CorpusPath:     cfg.Classifier.Corpus,
		OverridesPath:  cfg.Classifier.Overrides,
		VectorizerPath: cfg.Classifier.Vectorizer,
		ModelPath:      cfg.Classifier.Model,
		Threshold:      cfg.Classifier.ConfidenceThreshold,
	})
}
