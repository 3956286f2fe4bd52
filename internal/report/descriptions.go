package report

import (
	"github.com/finbuddy-dev/finbuddy/internal/classify"
	"github.com/finbuddy-dev/finbuddy/internal/model"
)

// CollectDescriptions gathers the distinct transaction descriptions in
// doc as feedback records for later labeling. Labels already present in
// existing survive; descriptions seen for the first time start as
// unknown.
func CollectDescriptions(doc *model.Document, existing []classify.DescriptionRecord) []classify.DescriptionRecord {
	labels := make(map[string]string, len(existing))
	for _, rec := range existing {
		labels[rec.Transaction] = rec.Category
	}

	seen := make(map[string]bool)
	var records []classify.DescriptionRecord
	for _, holder := range doc.Holders() {
		for _, tx := range doc.Accounts[holder].Transactions {
			if seen[tx.Description] {
				continue
			}
			seen[tx.Description] = true

			label := labels[tx.Description]
			if label == "" {
				label = string(model.CategoryUnknown)
			}
			records = append(records, classify.DescriptionRecord{
				Transaction: tx.Description,
				Category:    label,
			})
		}
	}
	return records
}
