package classify

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/finbuddy-dev/finbuddy/internal/model"
)

// Override maps a merchant regular expression to a category. Patterns
// are matched case-insensitively anywhere in the raw description, in
// order: the first match wins with confidence 1.
type Override struct {
	Pattern  *regexp.Regexp
	Category model.Category
}

type overrideFile struct {
	Overrides []overrideEntry `yaml:"overrides"`
}

type overrideEntry struct {
	Pattern  string `yaml:"pattern"`
	Category string `yaml:"category"`
}

var defaultOverrideEntries = []overrideEntry{
	{Pattern: `GIANT\s*\d*`, Category: "groceries"},
	{Pattern: `GONG CHA`, Category: "food"},
	{Pattern: `WALMART`, Category: "shopping"},
	{Pattern: `TARGET`, Category: "shopping"},
	{Pattern: `UBER\s*EATS`, Category: "food"},
	{Pattern: `DOORDASH`, Category: "food"},
	{Pattern: `NETFLIX`, Category: "entertainment"},
	{Pattern: `SPOTIFY`, Category: "entertainment"},
	{Pattern: `AMAZON`, Category: "shopping"},
	{Pattern: `WHOLEFDS`, Category: "groceries"},
	{Pattern: `TRADER\s*JOE`, Category: "groceries"},
}

func compileOverride(pattern, category string) (Override, error) {
	cat, err := model.ParseCategory(category)
	if err != nil {
		return Override{}, TrainingDataError{
			Reason:      "override category outside the closed set",
			Description: pattern,
			Category:    category,
		}
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return Override{}, fmt.Errorf("compiling override pattern %q: %w", pattern, err)
	}
	return Override{Pattern: re, Category: cat}, nil
}

// DefaultOverrides returns the built-in merchant table.
func DefaultOverrides() []Override {
	overrides := make([]Override, 0, len(defaultOverrideEntries))
	for _, e := range defaultOverrideEntries {
		o, err := compileOverride(e.Pattern, e.Category)
		if err != nil {
			panic("built-in override: " + err.Error())
		}
		overrides = append(overrides, o)
	}
	return overrides
}

// LoadOverrides reads an override table resource, validating every entry.
// A missing file is not an error: the built-in defaults apply.
func LoadOverrides(path string) ([]Override, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultOverrides(), nil
		}
		return nil, fmt.Errorf("reading overrides: %w", err)
	}

	var f overrideFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing overrides: %w", err)
	}

	overrides := make([]Override, 0, len(f.Overrides))
	for _, e := range f.Overrides {
		o, err := compileOverride(e.Pattern, e.Category)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, o)
	}
	return overrides, nil
}

// WriteDefaultOverrides seeds path with the built-in table so it can be
// maintained as a resource.
func WriteDefaultOverrides(path string) error {
	data, err := yaml.Marshal(overrideFile{Overrides: defaultOverrideEntries})
	if err != nil {
		return fmt.Errorf("encoding overrides: %w", err)
	}
	return writeFileAtomic(path, data)
}
