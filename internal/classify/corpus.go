package classify

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/finbuddy-dev/finbuddy/internal/model"
)

// Corpus is the description→category training data.
type Corpus struct {
	entries map[string]model.Category
}

// DescriptionRecord is one description→category pair: the list form of
// the corpus file and the shape of correction feedback.
type DescriptionRecord struct {
	Transaction string `json:"transaction"`
	Category    string `json:"category"`
}

// LoadCorpus reads the training corpus, accepting either a flat
// description→category object or a list of records. Every category is
// validated against the closed set.
func LoadCorpus(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, TrainingDataError{Reason: "training corpus not found at " + path}
		}
		return nil, fmt.Errorf("reading training corpus: %w", err)
	}
	return ParseCorpus(data)
}

// ParseCorpus decodes corpus bytes in either accepted form.
func ParseCorpus(data []byte) (*Corpus, error) {
	var flat map[string]string
	if err := json.Unmarshal(data, &flat); err == nil {
		return corpusFromMap(flat)
	}

	var records []DescriptionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, TrainingDataError{Reason: "corpus is neither a mapping nor a record list"}
	}
	flat = make(map[string]string, len(records))
	for _, rec := range records {
		flat[rec.Transaction] = rec.Category
	}
	return corpusFromMap(flat)
}

func corpusFromMap(flat map[string]string) (*Corpus, error) {
	entries := make(map[string]model.Category, len(flat))
	for desc, raw := range flat {
		cat, err := model.ParseCategory(raw)
		if err != nil {
			return nil, TrainingDataError{
				Reason:      "category outside the closed set",
				Description: desc,
				Category:    raw,
			}
		}
		entries[desc] = cat
	}
	return &Corpus{entries: entries}, nil
}

// Len returns the number of examples.
func (c *Corpus) Len() int { return len(c.entries) }

// Descriptions returns corpus keys in sorted order.
func (c *Corpus) Descriptions() []string {
	keys := make([]string, 0, len(c.entries))
	for desc := range c.entries {
		keys = append(keys, desc)
	}
	sort.Strings(keys)
	return keys
}

// Category returns the label for desc.
func (c *Corpus) Category(desc string) (model.Category, bool) {
	cat, ok := c.entries[desc]
	return cat, ok
}

// Categories returns the distinct labels in sorted order.
func (c *Corpus) Categories() []model.Category {
	seen := make(map[model.Category]bool)
	var cats []model.Category
	for _, cat := range c.entries {
		if !seen[cat] {
			seen[cat] = true
			cats = append(cats, cat)
		}
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}

// ApplyCorrections overwrites categories for descriptions already
// present in the corpus. New descriptions are never inserted through
// this path, and a correction labeled unknown (or outside the closed
// set) never overwrites a real label. Returns the number of updates.
func (c *Corpus) ApplyCorrections(records []DescriptionRecord) int {
	updated := 0
	for _, rec := range records {
		existing, ok := c.entries[rec.Transaction]
		if !ok {
			continue
		}
		cat, err := model.ParseCategory(rec.Category)
		if err != nil || cat == model.CategoryUnknown {
			continue
		}
		if existing != cat {
			c.entries[rec.Transaction] = cat
			updated++
		}
	}
	return updated
}

// Save writes the corpus in flat-map form with sorted keys, atomically.
func (c *Corpus) Save(path string) error {
	flat := make(map[string]string, len(c.entries))
	for desc, cat := range c.entries {
		flat[desc] = string(cat)
	}
	data, err := json.MarshalIndent(flat, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding corpus: %w", err)
	}
	return writeFileAtomic(path, append(data, '\n'))
}

// expandVariants decorates a training description the way real statement
// rows decorate merchant names.
func expandVariants(desc string) []string {
	return []string{
		desc,
		desc + " #",
		desc + " STORE",
		"SQ *" + desc,
		desc + "*",
		desc + " LLC",
		desc + " INC",
	}
}
