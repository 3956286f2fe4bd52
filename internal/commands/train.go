package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finbuddy-dev/finbuddy/internal/config"
	"github.com/finbuddy-dev/finbuddy/internal/logging"
)

func newTrainCommand(debug *bool) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the categorization model from the corpus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrain(configPath, *debug)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", config.DefaultPath, "config file")

	return cmd
}

func runTrain(configPath string, debug bool) error {
	log := logging.New(debug)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	classifier, err := newClassifier(cfg)
	if err != nil {
		return err
	}
	classifier.SetLogger(log)

	if err := classifier.Train(); err != nil {
		return err
	}

	fmt.Printf("Model trained: %s, %s\n", cfg.Classifier.Vectorizer, cfg.Classifier.Model)
	return nil
}
