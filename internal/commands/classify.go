package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finbuddy-dev/finbuddy/internal/config"
	"github.com/finbuddy-dev/finbuddy/internal/logging"
)

func newClassifyCommand(debug *bool) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "classify <description>...",
		Short: "Predict categories for transaction descriptions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(configPath, args, *debug)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", config.DefaultPath, "config file")

	return cmd
}

func runClassify(configPath string, descriptions []string, debug bool) error {
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

	for _, desc := range descriptions {
		pred := classifier.Classify(desc)
		fmt.Printf("%s\t%s\t%.2f\n", desc, pred.Category, pred.Confidence)
	}
	return nil
}
