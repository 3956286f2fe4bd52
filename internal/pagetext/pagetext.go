// Package pagetext loads statement files as ordered page text.
package pagetext

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ReadPages loads a statement as one string per page. PDF files go
// through the PDF extractor; anything else is read as plain text with
// form feeds dividing pages.
func ReadPages(path string) ([]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return ExtractPDF(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading statement: %w", err)
	}
	return SplitPages(string(data)), nil
}

// SplitPages divides plain statement text on form feeds, dropping pages
// that hold no text.
func SplitPages(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var pages []string
	for _, page := range strings.Split(text, "\f") {
		page = strings.Trim(page, "\n")
		if strings.TrimSpace(page) != "" {
			pages = append(pages, page)
		}
	}
	return pages
}

// ExtractPDF pulls text from a PDF, one string per page, joining each
// visual row's words with single spaces. The underlying library panics
// on some malformed files, so extraction converts panics into errors.
func ExtractPDF(path string) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extracting %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("extracting page %d of %s: %w", i, path, err)
		}
		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no text in %s", path)
	}
	return pages, nil
}
