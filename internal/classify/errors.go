package classify

import "fmt"

// TrainingDataError reports unusable training or override data: a
// missing corpus, a malformed file, or a category outside the closed
// set. Fatal to training; the override tier keeps working without a
// model.
type TrainingDataError struct {
	Reason      string
	Description string
	Category    string
}

func (e TrainingDataError) Error() string {
	msg := "training data error: " + e.Reason
	if e.Description != "" {
		msg += fmt.Sprintf(" (description %q)", e.Description)
	}
	if e.Category != "" {
		msg += fmt.Sprintf(" (category %q)", e.Category)
	}
	return msg
}
