package statement

import (
	"wealthscribe/pkg/core/document"
	"wealthscribe/pkg/core/terms"
	"wealthscribe/pkg/models"
)

// ExtractRows walks every data row of the table and fills the current and
// annual figures of out from the mapped columns.
//
// Each row is tested against all three dictionaries independently; a row
// whose label satisfies more than one dictionary populates every matching
// field from the same cells. That can misclassify loosely-worded rows,
// but it is the documented behavior of this extractor, preserved on
// purpose. Within one pass a later matching row overwrites an earlier
// one's value.
func ExtractRows(table document.RawTable, cols Columns, out *models.ExtractedFinancials) {
	for _, row := range table {
		if len(row) == 0 || row[0] == "" {
			continue
		}
		label := row[0]

		for _, dict := range terms.All() {
			if _, ok := dict.Match(label); !ok {
				continue
			}
			out.CurrentPeriod.Set(dict.Item, cellAt(row, cols.Current))
			out.AnnualPeriod.Set(dict.Item, cellAt(row, cols.Annual))
		}
	}
}

// cellAt parses the cell at index, or nil when the row is too short.
func cellAt(row []string, index int) *float64 {
	if index < 0 || index >= len(row) {
		return nil
	}
	return ParseCellValue(row[index])
}
