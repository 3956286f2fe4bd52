package classify

import (
	"encoding/gob"
	"fmt"
	"io"
)

// Vectorizer holds the trained vocabulary and the class order the model
// was fit with. Both must travel together: scores come back from the
// model as a slice indexed by class position.
type Vectorizer struct {
	Vocabulary map[string]bool
	Classes    []string
}

func NewVectorizer() *Vectorizer {
	return &Vectorizer{Vocabulary: make(map[string]bool)}
}

// Fit records every token of every training document.
func (v *Vectorizer) Fit(docs [][]string) {
	for _, doc := range docs {
		for _, tok := range doc {
			v.Vocabulary[tok] = true
		}
	}
}

// Transform keeps only tokens the vectorizer saw during training.
func (v *Vectorizer) Transform(tokens []string) []string {
	var kept []string
	for _, tok := range tokens {
		if v.Vocabulary[tok] {
			kept = append(kept, tok)
		}
	}
	return kept
}

func (v *Vectorizer) WriteTo(w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("encoding vectorizer: %w", err)
	}
	return nil
}

func ReadVectorizer(r io.Reader) (*Vectorizer, error) {
	var v Vectorizer
	if err := gob.NewDecoder(r).Decode(&v); err != nil {
		return nil, fmt.Errorf("decoding vectorizer: %w", err)
	}
	if v.Vocabulary == nil {
		v.Vocabulary = make(map[string]bool)
	}
	return &v, nil
}
