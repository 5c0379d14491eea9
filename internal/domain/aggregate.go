package domain

// Totals maps a category name to its summed count across all districts.
type Totals map[string]int

// Aggregate sums each category over the merged records. Absent values count
// as zero, so a category with no reported values totals zero.
func Aggregate(records []MergedRecord, categories []Category) Totals {
	totals := make(Totals, len(categories))
	for _, c := range categories {
		totals[c.Name] = 0
	}
	for _, r := range records {
		for _, c := range categories {
			totals[c.Name] += r.CountOrZero(c.Name)
		}
	}
	return totals
}
