package classify

import (
	"regexp"
	"strings"
)

var punctuation = regexp.MustCompile(`[^\w\s]`)

// Trailing decorations are stripped once each, in order. Later entries
// still apply after an earlier strip.
var trailingDecorations = []*regexp.Regexp{
	regexp.MustCompile(`\s+\d+$`),
	regexp.MustCompile(`\s+#\d+$`),
	regexp.MustCompile(`\s+LLC$`),
	regexp.MustCompile(`\s+INC$`),
	regexp.MustCompile(`\s+CORP$`),
	regexp.MustCompile(`\s+USA$`),
	regexp.MustCompile(`\s+VA$`),
	regexp.MustCompile(`\s+MD$`),
	regexp.MustCompile(`\s+DC$`),
}

// NormalizeDescription uppercases text, folds punctuation into spaces,
// collapses whitespace runs, and strips common trailing decorations
// (store numbers, LLC, INC, CORP, state and country abbreviations).
func NormalizeDescription(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ToUpper(text)
	text = punctuation.ReplaceAllString(text, " ")
	text = strings.Join(strings.Fields(text), " ")
	for _, re := range trailingDecorations {
		text = re.ReplaceAllString(text, "")
	}
	return strings.TrimSpace(text)
}

var termPattern = regexp.MustCompile(`[a-zA-Z0-9]+`)

// English stop words carry no merchant signal and are dropped before
// vectorizing.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true,
	"at": true, "be": true, "but": true, "by": true, "for": true,
	"from": true, "had": true, "has": true, "have": true, "he": true,
	"if": true, "in": true, "is": true, "it": true, "its": true,
	"no": true, "not": true, "of": true, "on": true, "or": true,
	"so": true, "than": true, "that": true, "the": true, "then": true,
	"they": true, "this": true, "to": true, "was": true, "we": true,
	"were": true, "will": true, "with": true, "you": true,
}

// Tokenize splits normalized text into alphanumeric terms, dropping
// English stop words.
func Tokenize(text string) []string {
	var tokens []string
	for _, term := range termPattern.FindAllString(text, -1) {
		if stopWords[strings.ToLower(term)] {
			continue
		}
		tokens = append(tokens, term)
	}
	return tokens
}
