package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/finbuddy-dev/finbuddy/internal/classify"
	"github.com/finbuddy-dev/finbuddy/internal/config"
)

// seedCorpus gives a new workspace enough labeled merchants to train a
// first model. Users grow it through the description feedback loop.
const seedCorpus = `{
    "CHIPOTLE": "food",
    "COMCAST": "utilities",
    "COUNTY FEE": "miscellaneous",
    "CVS PHARMACY": "health",
    "DOMINION ENERGY": "utilities",
    "GEICO": "insurance",
    "GIANT FOOD": "groceries",
    "GITHUB": "software",
    "MACYS": "shopping",
    "METRO TRANSIT": "transportation",
    "NYTIMES": "subscriptions",
    "OAKWOOD APARTMENTS": "rent",
    "PLANET FITNESS": "personal_care",
    "REGAL CINEMAS": "entertainment",
    "SHELL OIL": "transportation",
    "STARBUCKS": "food",
    "TRADER JOES": "groceries",
    "USPS": "services",
    "VERIZON WIRELESS": "bills"
}
`

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new finbuddy workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir)
		},
	}

	return cmd
}

func runInit(dir string) error {
	// Create directory structure.
	for _, d := range []string{"data", "private"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write finbuddy.yaml.
	cfg := config.Default()
	if err := config.Save(filepath.Join(dir, config.DefaultPath), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Seed the training corpus, never clobbering an existing one.
	corpusPath := filepath.Join(dir, cfg.Classifier.Corpus)
	if _, err := os.Stat(corpusPath); os.IsNotExist(err) {
		if err := os.WriteFile(corpusPath, []byte(seedCorpus), 0o644); err != nil {
			return fmt.Errorf("writing training corpus: %w", err)
		}
	}

	// Seed the override table, same rule.
	overridesPath := filepath.Join(dir, cfg.Classifier.Overrides)
	if _, err := os.Stat(overridesPath); os.IsNotExist(err) {
		if err := classify.WriteDefaultOverrides(overridesPath); err != nil {
			return fmt.Errorf("writing overrides: %w", err)
		}
	}

	// Write .gitignore. Statement data and trained artifacts stay out
	// of version control.
	gitignore := "private/\ndata/vectorizer.gob\ndata/model.gob\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	fmt.Printf("Initialized finbuddy workspace at %s\n", dir)
	return nil
}
